package installer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"mopack/internal/domain"
	"mopack/internal/source"
)

// MergeItems computes the update diff for one item category. Remote items
// whose name already exists locally keep the local entry (and with it the
// resolved path); remote items without a local counterpart stay unresolved
// for a fresh download. Local items with no remote counterpart are returned
// as dropped.
//
// Matching is by display name, not id: local manifests written by earlier
// installs key their paths to entries whose ids mostly collapse to
// "default", so name is the only stable join key across versions. A renamed
// item is therefore treated as removed plus added.
func MergeItems(remote, local []domain.Item) (merged, dropped []domain.Item) {
	byName := make(map[string]domain.Item, len(local))
	for _, item := range local {
		byName[item.Name] = item
	}
	merged = make([]domain.Item, 0, len(remote))
	kept := make(map[string]bool, len(remote))
	for _, item := range remote {
		if installed, ok := byName[item.Name]; ok {
			merged = append(merged, installed)
		} else {
			merged = append(merged, item)
		}
		kept[item.Name] = true
	}
	for _, item := range local {
		if !kept[item.Name] {
			dropped = append(dropped, item)
		}
	}
	return merged, dropped
}

// Update diffs the remote manifest against the locally persisted one, drops
// superseded items from disk, discards a stale loader install, then
// delegates to Install with the merged manifest.
func Update(ctx context.Context, p *InstallerProfile) error {
	root, err := p.modpackRoot()
	if err != nil {
		return err
	}
	raw, err := os.ReadFile(filepath.Join(root, localManifestName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: no local manifest at %s", domain.ErrNotInstalled, root)
		}
		return fmt.Errorf("reading local manifest: %w", err)
	}
	local, err := domain.DecodeManifest(raw)
	if err != nil {
		return fmt.Errorf("local manifest: %w", err)
	}
	if err := local.Validate(); err != nil {
		return fmt.Errorf("local manifest: %w", err)
	}

	merged := *p.Manifest
	for _, cat := range domain.Categories() {
		items, dropped := MergeItems(p.Manifest.Items(cat), local.Items(cat))
		for _, item := range dropped {
			if !item.Resolved() {
				continue
			}
			if err := source.ValidatePath(item.Path, root); err != nil {
				return fmt.Errorf("dropped %s %q: %w", cat, item.Name, err)
			}
			log.Debug("removing superseded item", "category", cat, "name", item.Name)
			if err := os.Remove(item.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("removing superseded %s %q: %w", cat, item.Name, err)
			}
		}
		merged.SetItems(cat, items)
	}

	if p.Manifest.Loader != local.Loader {
		if base, ok := p.Launcher.LoaderBase(); ok {
			stale := filepath.Join(base, "versions", local.Loader.VersionName())
			log.Info("loader changed, removing old install", "old", local.Loader.VersionName(), "new", p.Manifest.Loader.VersionName())
			if err := os.RemoveAll(stale); err != nil {
				return fmt.Errorf("removing old loader: %w", err)
			}
		}
	}

	p.Manifest = &merged
	p.LocalManifest = local
	return Install(ctx, p)
}
