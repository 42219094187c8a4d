package installer

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"mopack/internal/domain"
	"mopack/internal/httpcache"
)

// MarkerName is the identity file written into the modpack root: a URL-safe
// unpadded base64 encoding of the modpack source. Uninstall uses it to
// recognize which installed instance belongs to which source.
func MarkerName(modpackSource string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(modpackSource))
}

// Install drives the whole pipeline: loader install, the three item
// category downloads, include bundle sync, the local manifest snapshot and
// the launcher profile. A failed Install may leave a partially populated
// modpack root; re-running it repairs the installation idempotently.
func Install(ctx context.Context, p *InstallerProfile) error {
	m := p.Manifest
	root, err := p.modpackRoot()
	if err != nil {
		return err
	}
	log.Info("installing modpack", "name", m.Name, "version", m.ModpackVersion, "root", root)

	if base, ok := p.Launcher.LoaderBase(); ok {
		if err := installLoader(ctx, p.HTTP, m.Loader, base); err != nil {
			return err
		}
	}

	local := *m
	for _, cat := range domain.Categories() {
		items, err := p.downloadItems(ctx, m.Items(cat), cat, root)
		if err != nil {
			return fmt.Errorf("downloading %s: %w", cat, err)
		}
		local.SetItems(cat, items)
	}

	included, err := p.syncIncludes(ctx, root)
	if err != nil {
		return fmt.Errorf("syncing include bundles: %w", err)
	}

	local.EnabledFeatures = p.EnabledFeatures
	local.IncludedFiles = included
	local.Source = p.ModpackSource + p.ModpackBranch
	if exe, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		local.InstallerPath = exe
	}

	marker := filepath.Join(root, MarkerName(p.ModpackSource))
	if err := os.WriteFile(marker, nil, 0644); err != nil {
		return fmt.Errorf("writing identity marker: %w", err)
	}

	data, err := json.MarshalIndent(&local, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding local manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(root, localManifestName), data, 0644); err != nil {
		return fmt.Errorf("writing local manifest: %w", err)
	}

	if err := p.Launcher.WriteProfile(&local, root); err != nil {
		return fmt.Errorf("writing launcher profile: %w", err)
	}

	p.Installed = true
	p.UpdateAvailable = false
	p.LocalManifest = &local
	log.Info("install complete", "name", m.Name, "version", m.ModpackVersion)
	return nil
}

// installLoader places the loader's launcher profile json under
// <base>/versions/<name>/ together with the empty jar the launcher expects.
// An already present profile is left alone.
func installLoader(ctx context.Context, client *httpcache.Client, loader domain.Loader, base string) error {
	name := loader.VersionName()
	dir := filepath.Join(base, "versions", name)
	jsonPath := filepath.Join(dir, name+".json")
	if _, err := os.Stat(jsonPath); err == nil {
		log.Debug("loader already installed", "loader", name)
		return nil
	}

	url, err := loader.ProfileURL()
	if err != nil {
		return err
	}
	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("downloading loader profile: %w", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating loader directory: %w", err)
	}
	if err := os.WriteFile(jsonPath, resp.Body, 0644); err != nil {
		return fmt.Errorf("writing loader profile: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name+".jar"), nil, 0644); err != nil {
		return fmt.Errorf("writing loader jar stub: %w", err)
	}
	log.Info("installed loader", "loader", name)
	return nil
}
