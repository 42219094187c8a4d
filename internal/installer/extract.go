package installer

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// extractZip extracts every entry of the archive into destDir and returns
// the absolute paths of the files it created. Directory entries are created
// but not recorded: only files are deleted when a bundle goes stale.
func extractZip(archivePath, destDir string) (files []string, err error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("opening zip: %w", err)
	}
	defer func() {
		if cerr := r.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing zip: %w", cerr)
		}
	}()

	for _, f := range r.File {
		path, err := extractZipFile(f, destDir)
		if err != nil {
			return nil, err
		}
		if path != "" {
			files = append(files, path)
		}
	}
	return files, nil
}

// extractZipFile writes one archive entry under destDir and returns the
// created file path, or "" for directory entries.
func extractZipFile(f *zip.File, destDir string) (path string, err error) {
	destPath, err := sanitizePath(destDir, f.Name)
	if err != nil {
		return "", err
	}

	if f.FileInfo().IsDir() {
		return "", os.MkdirAll(destPath, 0755)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return "", fmt.Errorf("creating directory for %s: %w", f.Name, err)
	}

	rc, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("opening %s in archive: %w", f.Name, err)
	}
	defer func() {
		if cerr := rc.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing archive entry %s: %w", f.Name, cerr)
		}
	}()

	out, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", destPath, err)
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing %s: %w", destPath, cerr)
		}
	}()

	if _, err := io.Copy(out, rc); err != nil {
		return "", fmt.Errorf("writing %s: %w", destPath, err)
	}
	return destPath, nil
}

// sanitizePath keeps extracted entries inside destDir, rejecting archives
// that smuggle ".." components ("zip slip").
func sanitizePath(destDir, name string) (string, error) {
	destPath := filepath.Join(destDir, filepath.Clean(name))
	cleanDir := filepath.Clean(destDir)
	if destPath != cleanDir && !strings.HasPrefix(destPath, cleanDir+string(os.PathSeparator)) {
		return "", fmt.Errorf("path traversal detected: %s", name)
	}
	return destPath, nil
}
