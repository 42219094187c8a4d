package launcher

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"mopack/internal/domain"
)

// instancesDirName holds one subdirectory per installed modpack uuid under
// the vanilla launcher's application data directory.
const instancesDirName = ".mopack"

// Vanilla registers modpacks with the stock launcher by upserting entries
// into its global launcher_profiles.json registry.
type Vanilla struct {
	appData string
}

// NewVanilla returns a Vanilla launcher rooted at the given application
// data directory.
func NewVanilla(appData string) *Vanilla {
	return &Vanilla{appData: appData}
}

func (v *Vanilla) Kind() Kind { return KindVanilla }

func (v *Vanilla) ModpackRoot(uuid string) (string, error) {
	root := filepath.Join(v.appData, instancesDirName, uuid)
	if err := os.MkdirAll(root, 0755); err != nil {
		return "", fmt.Errorf("creating modpack root: %w", err)
	}
	return root, nil
}

func (v *Vanilla) LoaderBase() (string, bool) {
	return v.minecraftDir(), true
}

func (v *Vanilla) minecraftDir() string {
	if runtime.GOOS == "darwin" {
		return filepath.Join(v.appData, "minecraft")
	}
	return filepath.Join(v.appData, ".minecraft")
}

// profile mirrors one entry of launcher_profiles.json. Optional fields the
// installer never sets are omitted rather than emitted as null.
type profile struct {
	LastUsed      string `json:"lastUsed"`
	LastVersionID string `json:"lastVersionId"`
	Created       string `json:"created"`
	Name          string `json:"name"`
	Icon          string `json:"icon"`
	Type          string `json:"type"`
	GameDir       string `json:"gameDir,omitempty"`
	JavaDir       string `json:"javaDir,omitempty"`
	JavaArgs      string `json:"javaArgs,omitempty"`
}

// profileRegistry is the launcher's global profile file. Settings are
// carried through untouched so an upsert never clobbers launcher state this
// installer doesn't own.
type profileRegistry struct {
	Settings json.RawMessage    `json:"settings,omitempty"`
	Profiles map[string]profile `json:"profiles"`
	Version  int                `json:"version"`
}

// WriteProfile upserts the modpack's entry, keyed by manifest uuid, into
// launcher_profiles.json. The registry file must already exist: its absence
// means the launcher was never run.
func (v *Vanilla) WriteProfile(m *domain.Manifest, modpackRoot string) error {
	registryPath := filepath.Join(v.minecraftDir(), "launcher_profiles.json")
	data, err := os.ReadFile(registryPath)
	if err != nil {
		return fmt.Errorf("reading launcher profiles: %w", err)
	}
	var registry profileRegistry
	if err := json.Unmarshal(data, &registry); err != nil {
		return fmt.Errorf("parsing launcher profiles: %w", err)
	}
	if registry.Profiles == nil {
		registry.Profiles = map[string]profile{}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	registry.Profiles[m.UUID] = profile{
		LastUsed:      now,
		LastVersionID: m.Loader.VersionName(),
		Created:       now,
		Name:          m.Name,
		Icon:          "Furnace",
		Type:          "custom",
		GameDir:       modpackRoot,
		JavaArgs:      jvmArgs(m),
	}

	out, err := json.Marshal(&registry)
	if err != nil {
		return fmt.Errorf("encoding launcher profiles: %w", err)
	}
	if err := os.WriteFile(registryPath, out, 0644); err != nil {
		return fmt.Errorf("writing launcher profiles: %w", err)
	}
	return nil
}

func (v *Vanilla) Uninstall(markerName string) error {
	instances := filepath.Join(v.appData, instancesDirName)
	entries, err := os.ReadDir(instances)
	if err != nil {
		return fmt.Errorf("listing instances: %w", err)
	}
	for _, entry := range entries {
		dir := filepath.Join(instances, entry.Name())
		if _, err := os.Stat(filepath.Join(dir, markerName)); err != nil {
			continue
		}
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("removing instance %s: %w", entry.Name(), err)
		}
		if err := os.Mkdir(dir, 0755); err != nil {
			return fmt.Errorf("recreating instance dir: %w", err)
		}
	}
	return nil
}
