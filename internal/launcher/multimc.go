package launcher

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"mopack/internal/domain"
)

// MultiMC registers modpacks as instances of a MultiMC-style launcher
// (MultiMC, Prism, PolyMC): a component list declaring the game and loader
// versions plus a key=value instance config.
type MultiMC struct {
	root string
}

// NewMultiMC returns a MultiMC launcher rooted at the launcher's data
// directory.
func NewMultiMC(root string) *MultiMC {
	return &MultiMC{root: root}
}

func (l *MultiMC) Kind() Kind { return KindMultiMC }

func (l *MultiMC) instanceDir(uuid string) string {
	return filepath.Join(l.root, "instances", uuid)
}

func (l *MultiMC) ModpackRoot(uuid string) (string, error) {
	root := filepath.Join(l.instanceDir(uuid), ".minecraft")
	if err := os.MkdirAll(root, 0755); err != nil {
		return "", fmt.Errorf("creating modpack root: %w", err)
	}
	return root, nil
}

// LoaderBase reports no loader install: the launcher resolves loader
// components from the pack file itself.
func (l *MultiMC) LoaderBase() (string, bool) { return "", false }

type component struct {
	Important bool   `json:"important,omitempty"`
	UID       string `json:"uid"`
	Version   string `json:"version"`
}

type pack struct {
	Components    []component `json:"components"`
	FormatVersion int         `json:"formatVersion"`
}

func loaderComponent(l domain.Loader) (component, error) {
	switch l.Type {
	case domain.LoaderFabric:
		return component{UID: "net.fabricmc.fabric-loader", Version: l.Version}, nil
	case domain.LoaderQuilt:
		return component{UID: "org.quiltmc.quilt-loader", Version: l.Version}, nil
	default:
		return component{}, fmt.Errorf("%w: %s", domain.ErrUnsupportedLoader, l.Type)
	}
}

// WriteProfile writes mmc-pack.json and instance.cfg into the instance
// directory.
func (l *MultiMC) WriteProfile(m *domain.Manifest, _ string) error {
	loader, err := loaderComponent(m.Loader)
	if err != nil {
		return err
	}
	p := pack{
		Components: []component{
			{Important: true, UID: "net.minecraft", Version: m.Loader.MinecraftVersion},
			loader,
		},
		FormatVersion: 1,
	}
	data, err := json.Marshal(&p)
	if err != nil {
		return fmt.Errorf("encoding mmc-pack.json: %w", err)
	}
	dir := l.instanceDir(m.UUID)
	if err := os.WriteFile(filepath.Join(dir, "mmc-pack.json"), data, 0644); err != nil {
		return fmt.Errorf("writing mmc-pack.json: %w", err)
	}

	cfg := fmt.Sprintf("iconKey=%s\nname=%s\nMaxMemAlloc=%d\nMinMemAlloc=%d\nOverrideMemory=true",
		m.UUID, m.Name, m.MaxMem, m.MinMem)
	if m.JavaArgs != "" {
		cfg += fmt.Sprintf("\nJvmArgs=%s\nOverrideJavaArgs=true", m.JavaArgs)
	}
	if err := os.WriteFile(filepath.Join(dir, "instance.cfg"), []byte(cfg+"\n"), 0644); err != nil {
		return fmt.Errorf("writing instance.cfg: %w", err)
	}
	return nil
}

func (l *MultiMC) Uninstall(markerName string) error {
	instances := filepath.Join(l.root, "instances")
	entries, err := os.ReadDir(instances)
	if err != nil {
		return fmt.Errorf("listing instances: %w", err)
	}
	for _, entry := range entries {
		dir := filepath.Join(instances, entry.Name())
		if _, err := os.Stat(filepath.Join(dir, ".minecraft", markerName)); err != nil {
			continue
		}
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("removing instance %s: %w", entry.Name(), err)
		}
		if err := os.MkdirAll(filepath.Join(dir, ".minecraft"), 0755); err != nil {
			return fmt.Errorf("recreating instance dir: %w", err)
		}
	}
	return nil
}
