package installer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"mopack/internal/domain"
	"mopack/internal/forge"
)

// syncIncludes brings the include bundles in line with the release matching
// the modpack branch. Bundles whose published hash equals the previously
// recorded one are left untouched; changed or new bundles have their stale
// files deleted, the asset downloaded and re-extracted. Bundles whose
// feature was disabled lose their files outright.
//
// Extraction is sequential: bundles may overlap directories and the path
// bookkeeping stays simple.
func (p *InstallerProfile) syncIncludes(ctx context.Context, root string) (map[string]domain.Included, error) {
	var prev map[string]domain.Included
	if p.LocalManifest != nil {
		prev = p.LocalManifest.IncludedFiles
	}

	for zipName, rec := range prev {
		if p.featureEnabled(strings.TrimSuffix(zipName, ".zip")) {
			continue
		}
		log.Debug("removing disabled include bundle", "bundle", zipName)
		if err := removeRecorded(rec.Files, root); err != nil {
			return nil, err
		}
	}

	result := map[string]domain.Included{}
	if len(p.Manifest.Include) == 0 {
		return result, nil
	}

	release, err := p.Forge.Release(ctx, p.ModpackSource, p.ModpackBranch)
	if err != nil {
		return nil, err
	}
	hashes, err := release.HashTable()
	if err != nil {
		return nil, err
	}

	for _, inc := range p.Manifest.Include {
		if !p.featureEnabled(inc.ID) {
			continue
		}
		zipName := inc.ZipName()
		asset, ok := findAsset(release.Assets, zipName)
		if !ok {
			continue
		}
		sum, ok := hashes[zipName]
		if !ok {
			return nil, fmt.Errorf("release hash table has no entry for %s", zipName)
		}

		if rec, ok := prev[zipName]; ok {
			if rec.MD5 == sum {
				result[zipName] = rec
				continue
			}
			log.Debug("include bundle changed", "bundle", zipName, "old", rec.MD5, "new", sum)
			if err := removeRecorded(rec.Files, root); err != nil {
				return nil, err
			}
		}

		data, err := p.Forge.Asset(ctx, p.ModpackSource, asset.ID)
		if err != nil {
			return nil, err
		}
		zipPath := filepath.Join(root, asset.Name)
		if err := os.WriteFile(zipPath, data, 0644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", zipName, err)
		}
		files, err := extractZip(zipPath, root)
		if err != nil {
			return nil, fmt.Errorf("extracting %s: %w", zipName, err)
		}
		if err := os.Remove(zipPath); err != nil {
			return nil, fmt.Errorf("removing temporary %s: %w", zipName, err)
		}
		result[zipName] = domain.Included{MD5: sum, Files: files}
	}
	return result, nil
}

func findAsset(assets []forge.Asset, name string) (forge.Asset, bool) {
	for _, a := range assets {
		if a.Name == name {
			return a, true
		}
	}
	return forge.Asset{}, false
}

// removeRecorded deletes every file a bundle record lists. Recorded paths
// must sit inside the modpack root; anything else means the local manifest
// was tampered with.
func removeRecorded(files []string, root string) error {
	for _, f := range files {
		rel, err := filepath.Rel(root, f)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
			return fmt.Errorf("%w: recorded include file %s", domain.ErrPathViolation, f)
		}
		if err := os.Remove(f); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing stale include file: %w", err)
		}
	}
	return nil
}
