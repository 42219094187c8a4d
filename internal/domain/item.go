package domain

import (
	"encoding/json"
	"fmt"
)

// DefaultID is the sentinel feature id assigned to items and includes that
// do not declare one. It is always part of the enabled feature set.
const DefaultID = "default"

// Source identifies the strategy used to turn an item's location into
// downloaded bytes.
type Source int

const (
	SourceModrinth Source = iota // registry-hosted, location is a project slug
	SourceDDL                    // direct download link, location is a URL
	SourceMediafire              // scraped redirect page, location is a page URL
)

func (s Source) String() string {
	switch s {
	case SourceModrinth:
		return "modrinth"
	case SourceDDL:
		return "ddl"
	case SourceMediafire:
		return "mediafire"
	default:
		return "unknown"
	}
}

// MarshalJSON emits the wire string for the source kind.
func (s Source) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON parses a wire source string. Unknown values are an error so
// that a manifest this installer cannot understand is rejected up front.
func (s *Source) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw {
	case "modrinth":
		*s = SourceModrinth
	case "ddl":
		*s = SourceDDL
	case "mediafire":
		*s = SourceMediafire
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedSource, raw)
	}
	return nil
}

// Category determines which directory under the modpack root an item is
// installed into. Items are otherwise identical across categories.
type Category int

const (
	CategoryMods Category = iota
	CategoryShaderpacks
	CategoryResourcepacks
)

// Dir returns the destination directory name under the modpack root.
func (c Category) Dir() string {
	switch c {
	case CategoryMods:
		return "mods"
	case CategoryShaderpacks:
		return "shaderpacks"
	case CategoryResourcepacks:
		return "resourcepacks"
	default:
		return ""
	}
}

func (c Category) String() string { return c.Dir() }

// Author credits an item's creator.
type Author struct {
	Name string `json:"name"`
	Link string `json:"link"`
}

// Item is a single downloadable entry in one of the manifest's three
// category lists. Path is empty until the item has been resolved to a file
// on disk (or when the item is disabled).
type Item struct {
	Name     string   `json:"name"`
	Source   Source   `json:"source"`
	Location string   `json:"location"`
	Version  string   `json:"version"`
	Path     string   `json:"path,omitempty"`
	ID       string   `json:"id,omitempty"`
	Authors  []Author `json:"authors"`
}

// Resolved reports whether the item has a recorded on-disk path.
func (i Item) Resolved() bool { return i.Path != "" }
