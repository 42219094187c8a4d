package domain

import (
	"encoding/json"
	"fmt"
)

// LoaderType is the mod loader family a modpack targets.
type LoaderType int

const (
	LoaderFabric LoaderType = iota
	LoaderQuilt
)

func (t LoaderType) String() string {
	switch t {
	case LoaderFabric:
		return "fabric"
	case LoaderQuilt:
		return "quilt"
	default:
		return "unknown"
	}
}

func (t LoaderType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *LoaderType) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw {
	case "fabric":
		*t = LoaderFabric
	case "quilt":
		*t = LoaderQuilt
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedLoader, raw)
	}
	return nil
}

// Loader describes the mod loader installation a modpack requires. The full
// triple participates in equality: any change means the previously installed
// loader must be discarded.
type Loader struct {
	Type             LoaderType `json:"type"`
	Version          string     `json:"version"`
	MinecraftVersion string     `json:"minecraft_version"`
}

// VersionName is the launcher-facing version id for this loader install,
// e.g. "fabric-loader-0.15.11-1.20.4". It doubles as the directory name
// under versions/.
func (l Loader) VersionName() string {
	return fmt.Sprintf("%s-loader-%s-%s", l.Type, l.Version, l.MinecraftVersion)
}

// ProfileURL returns the loader meta endpoint serving the launcher profile
// json for this loader/game version pair.
func (l Loader) ProfileURL() (string, error) {
	switch l.Type {
	case LoaderFabric:
		return fmt.Sprintf("https://meta.fabricmc.net/v2/versions/loader/%s/%s/profile/json",
			l.MinecraftVersion, l.Version), nil
	case LoaderQuilt:
		return fmt.Sprintf("https://meta.quiltmc.org/v3/versions/loader/%s/%s/profile/json",
			l.MinecraftVersion, l.Version), nil
	default:
		return "", fmt.Errorf("%w: %d", ErrUnsupportedLoader, l.Type)
	}
}
