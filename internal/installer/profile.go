// Package installer implements the install/update pipeline: manifest
// retrieval and validation, the bounded download orchestrator, include
// bundle synchronization, the update diff and local manifest persistence.
package installer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/charmbracelet/log"

	"mopack/internal/domain"
	"mopack/internal/forge"
	"mopack/internal/httpcache"
	"mopack/internal/launcher"
	"mopack/internal/source"
)

// localManifestName is the file under the modpack root recording what is
// actually installed.
const localManifestName = "manifest.json"

// InstallerProfile is the session state threaded through the pipeline. It
// binds the remote manifest to a launcher target, HTTP client and feature
// selection, plus the local manifest snapshot used for diffing. It is never
// persisted.
type InstallerProfile struct {
	Manifest        *domain.Manifest
	HTTP            *httpcache.Client
	Forge           *forge.Client
	Resolver        *source.Resolver
	Installed       bool
	UpdateAvailable bool
	ModpackSource   string
	ModpackBranch   string
	EnabledFeatures []string
	Launcher        launcher.Launcher
	LocalManifest   *domain.Manifest
}

// Options configures Init. HTTP, Source, Branch and Launcher are required;
// Forge and Resolver default to clients built over HTTP.
type Options struct {
	HTTP     *httpcache.Client
	Forge    *forge.Client
	Resolver *source.Resolver
	Source   string // "<owner>/<repo>/" including the trailing slash
	Branch   string
	Launcher launcher.Launcher
}

// Init fetches and validates the remote manifest, detects whether the
// modpack is already installed and whether an update is available, and
// returns the profile the install and update entry points operate on.
//
// Init is the only recoverable entry point: everything it returns as an
// error (transport, parse, version mismatch) is something the caller can
// report and retry.
func Init(ctx context.Context, opts Options) (*InstallerProfile, error) {
	fc := opts.Forge
	if fc == nil {
		fc = forge.New(opts.HTTP)
	}
	resolver := opts.Resolver
	if resolver == nil {
		resolver = source.NewResolver(opts.HTTP)
	}

	data, err := fc.RawFile(ctx, opts.Source, opts.Branch, localManifestName)
	if err != nil {
		return nil, err
	}
	m, err := domain.DecodeManifest(data)
	if err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	root, err := opts.Launcher.ModpackRoot(m.UUID)
	if err != nil {
		return nil, err
	}

	installed := false
	var local *domain.Manifest
	if raw, err := os.ReadFile(filepath.Join(root, localManifestName)); err == nil {
		installed = true
		lm, err := domain.DecodeManifest(raw)
		if err == nil {
			err = lm.Validate()
		}
		if err != nil {
			// The install exists but its record is unusable; an update will
			// refuse to run until a fresh install rewrites it.
			log.Warn("ignoring unreadable local manifest", "err", err)
		} else {
			local = lm
		}
	}

	updateAvailable := local != nil && local.ModpackVersion != m.ModpackVersion

	var enabled []string
	if local != nil {
		enabled = slices.Clone(local.EnabledFeatures)
	} else {
		enabled = []string{domain.DefaultID}
		for _, feat := range m.Features {
			if feat.Default {
				enabled = append(enabled, feat.ID)
			}
		}
	}

	return &InstallerProfile{
		Manifest:        m,
		HTTP:            opts.HTTP,
		Forge:           fc,
		Resolver:        resolver,
		Installed:       installed,
		UpdateAvailable: updateAvailable,
		ModpackSource:   opts.Source,
		ModpackBranch:   opts.Branch,
		EnabledFeatures: enabled,
		Launcher:        opts.Launcher,
		LocalManifest:   local,
	}, nil
}

func (p *InstallerProfile) featureEnabled(id string) bool {
	return slices.Contains(p.EnabledFeatures, id)
}

func (p *InstallerProfile) modpackRoot() (string, error) {
	root, err := p.Launcher.ModpackRoot(p.Manifest.UUID)
	if err != nil {
		return "", fmt.Errorf("resolving modpack root: %w", err)
	}
	return root, nil
}
