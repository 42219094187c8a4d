package domain

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// SupportedManifestVersion is the only manifest schema this installer
// understands. Anything else is rejected before the pipeline runs.
const SupportedManifestVersion = 3

const (
	defaultMaxMem = 2048
	defaultMinMem = 512
)

// Feature is a user-toggleable flag gating whether dependent items and
// include bundles are installed.
type Feature struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Default bool   `json:"default"`
}

// Include references a versioned bundle zip distributed as a release asset.
type Include struct {
	Location string `json:"location"`
	ID       string `json:"id,omitempty"`
}

// ZipName is the release asset name and included_files key for this bundle.
func (i Include) ZipName() string { return i.ID + ".zip" }

// Included records what an include bundle put on disk: the published content
// hash it was extracted from and every file it created. It is only present
// in the local manifest.
type Included struct {
	MD5   string   `json:"md5"`
	Files []string `json:"files"`
}

// Manifest is the modpack's authoritative description. The remote copy is
// fetched from the modpack source; the local copy persisted at
// <modpack_root>/manifest.json additionally carries resolved item paths,
// included_files and provenance, and is the durable record of what is
// actually installed.
//
// Manifests are values: updates produce a new Manifest rather than mutating
// in place.
type Manifest struct {
	ManifestVersion int    `json:"manifest_version"`
	ModpackVersion  string `json:"modpack_version"`
	Name            string `json:"name"`
	Subtitle        string `json:"subtitle"`
	Description     string `json:"description"`
	Icon            bool   `json:"icon"`
	UUID            string `json:"uuid"`
	Loader          Loader `json:"loader"`

	Mods          []Item    `json:"mods"`
	Shaderpacks   []Item    `json:"shaderpacks"`
	Resourcepacks []Item    `json:"resourcepacks"`
	Include       []Include `json:"include"`
	Features      []Feature `json:"features"`

	EnabledFeatures []string `json:"enabled_features"`

	// Local-only fields.
	IncludedFiles map[string]Included `json:"included_files,omitempty"`
	Source        string              `json:"source,omitempty"`
	InstallerPath string              `json:"installer_path,omitempty"`

	MaxMem   int    `json:"max_mem"`
	MinMem   int    `json:"min_mem"`
	JavaArgs string `json:"java_args,omitempty"`
}

// DecodeManifest parses manifest JSON and applies the documented defaults:
// item and include ids fall back to "default", enabled_features always
// contains the default id, and memory settings fall back to 2048/512.
func DecodeManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	m.applyDefaults()
	return &m, nil
}

func (m *Manifest) applyDefaults() {
	for _, items := range [][]Item{m.Mods, m.Shaderpacks, m.Resourcepacks} {
		for i := range items {
			if items[i].ID == "" {
				items[i].ID = DefaultID
			}
		}
	}
	for i := range m.Include {
		if m.Include[i].ID == "" {
			m.Include[i].ID = DefaultID
		}
	}
	if !slices.Contains(m.EnabledFeatures, DefaultID) {
		m.EnabledFeatures = append([]string{DefaultID}, m.EnabledFeatures...)
	}
	if m.MaxMem == 0 {
		m.MaxMem = defaultMaxMem
	}
	if m.MinMem == 0 {
		m.MinMem = defaultMinMem
	}
}

// Validate rejects manifests this installer cannot act on. It is run on
// every remote manifest before the pipeline starts and on every local
// manifest at read time.
func (m *Manifest) Validate() error {
	if m.ManifestVersion != SupportedManifestVersion {
		return fmt.Errorf("%w: got %d, want %d", ErrManifestVersion, m.ManifestVersion, SupportedManifestVersion)
	}
	if _, err := uuid.Parse(m.UUID); err != nil {
		return fmt.Errorf("invalid modpack uuid %q: %w", m.UUID, err)
	}
	return nil
}

// Items returns the item list for the given category.
func (m *Manifest) Items(c Category) []Item {
	switch c {
	case CategoryMods:
		return m.Mods
	case CategoryShaderpacks:
		return m.Shaderpacks
	case CategoryResourcepacks:
		return m.Resourcepacks
	default:
		return nil
	}
}

// SetItems replaces the item list for the given category.
func (m *Manifest) SetItems(c Category, items []Item) {
	switch c {
	case CategoryMods:
		m.Mods = items
	case CategoryShaderpacks:
		m.Shaderpacks = items
	case CategoryResourcepacks:
		m.Resourcepacks = items
	}
}

// Categories lists every item category in manifest order.
func Categories() []Category {
	return []Category{CategoryMods, CategoryShaderpacks, CategoryResourcepacks}
}
