package source

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"mopack/internal/domain"
)

const defaultModrinthBase = "https://api.modrinth.com/v2"

// loaderAny marks registry entries compatible with every loader.
const loaderAny = "minecraft"

type modrinthFile struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

type modrinthVersion struct {
	VersionNumber string         `json:"version_number"`
	Files         []modrinthFile `json:"files"`
	Loaders       []string       `json:"loaders"`
}

// resolveModrinth queries the registry's versions-for-project endpoint and
// downloads the first file of the entry whose version string matches the
// item exactly and whose loader list is compatible. Shaderpacks skip the
// loader filter: the registry tags them with shader loaders, not mod
// loaders.
func (r *Resolver) resolveModrinth(ctx context.Context, item domain.Item, cat domain.Category, root string, loaderType domain.LoaderType) (string, error) {
	resp, err := r.HTTP.GetUncached(ctx, r.ModrinthBase+"/project/"+item.Location+"/version")
	if err != nil {
		return "", fmt.Errorf("querying versions for %q: %w", item.Name, err)
	}
	var versions []modrinthVersion
	if err := json.Unmarshal(resp.Body, &versions); err != nil {
		return "", fmt.Errorf("parsing versions for %q: %w", item.Name, err)
	}

	for _, v := range versions {
		if v.VersionNumber != item.Version {
			continue
		}
		compatible := slices.Contains(v.Loaders, loaderAny) ||
			slices.Contains(v.Loaders, loaderType.String()) ||
			cat == domain.CategoryShaderpacks
		if !compatible || len(v.Files) == 0 {
			continue
		}
		file := v.Files[0]
		content, err := r.HTTP.GetUncached(ctx, file.URL)
		if err != nil {
			return "", fmt.Errorf("downloading %q: %w", item.Name, err)
		}
		return write(root, cat, file.Filename, content.Body)
	}
	return "", fmt.Errorf("%w: %s %s (%s)", domain.ErrItemNotFound, item.Name, item.Version, loaderType)
}
