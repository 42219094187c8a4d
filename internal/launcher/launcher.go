// Package launcher abstracts the third-party launcher managing the modpack
// installation: where the modpack root lives, whether a loader must be
// installed alongside, and how the installed content is registered so the
// launcher can run it.
package launcher

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"mopack/internal/domain"
)

var ErrUnknownLauncher = errors.New("unknown launcher")

// Kind identifies a launcher family.
type Kind int

const (
	KindVanilla Kind = iota
	KindMultiMC
)

func (k Kind) String() string {
	switch k {
	case KindVanilla:
		return "vanilla"
	case KindMultiMC:
		return "multimc"
	default:
		return "unknown"
	}
}

// Launcher is a launcher backend. Implementations register installed
// content in the launcher's own configuration format.
type Launcher interface {
	Kind() Kind
	// ModpackRoot returns (and creates) the directory holding the
	// installation for the given modpack uuid.
	ModpackRoot(uuid string) (string, error)
	// LoaderBase returns the directory whose versions/ subtree receives the
	// loader install, or ok=false when the launcher resolves loaders itself.
	LoaderBase() (dir string, ok bool)
	// WriteProfile registers the installed modpack with the launcher.
	WriteProfile(m *domain.Manifest, modpackRoot string) error
	// Uninstall removes the instance marked with the given identity file
	// name, leaving an empty instance directory behind.
	Uninstall(markerName string) error
}

// Detect resolves a launcher selection string ("vanilla" or
// "multimc-<DirName>") against the current user's directories.
func Detect(selection string) (Launcher, error) {
	name, rest, _ := strings.Cut(selection, "-")
	switch name {
	case "vanilla":
		appData, err := appDataDir()
		if err != nil {
			return nil, err
		}
		return NewVanilla(appData), nil
	case "multimc":
		if rest == "" {
			return nil, fmt.Errorf("%w: %q is missing the data dir segment", ErrUnknownLauncher, selection)
		}
		dir, err := multimcDir(rest)
		if err != nil {
			return nil, err
		}
		return NewMultiMC(dir), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownLauncher, selection)
	}
}

func appDataDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		return os.UserHomeDir()
	case "windows", "darwin":
		return os.UserConfigDir()
	default:
		return "", fmt.Errorf("unsupported os %q", runtime.GOOS)
	}
}

func multimcDir(name string) (string, error) {
	appData, err := appDataDir()
	if err != nil {
		return "", err
	}
	var dir string
	if runtime.GOOS == "linux" {
		dir = filepath.Join(appData, ".local", "share", name)
	} else {
		dir = filepath.Join(appData, name)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("locating %s: %w", name, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", dir)
	}
	return dir, nil
}

// jvmArgs synthesizes the launcher JVM argument line from the manifest's
// memory settings plus any user args.
func jvmArgs(m *domain.Manifest) string {
	return strings.TrimSpace(fmt.Sprintf("-Xmx%dM -Xms%dM %s", m.MaxMem, m.MinMem, m.JavaArgs))
}
