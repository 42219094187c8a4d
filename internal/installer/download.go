package installer

import (
	"fmt"
	"os"
	"slices"

	"context"

	"golang.org/x/sync/errgroup"

	"mopack/internal/domain"
	"mopack/internal/source"
)

// downloadConcurrency bounds in-flight item resolutions within a category.
const downloadConcurrency = 14

// downloadItems applies the enable/disable/removal policy to one category's
// item list and returns the new list:
//
//   - unresolved and enabled: resolve and record the path
//   - resolved and enabled: keep the path, validate containment
//   - resolved and disabled: delete the file, clear the path
//
// Resolutions fan out over at most downloadConcurrency goroutines. The
// first failure cancels the rest and fails the whole category.
func (p *InstallerProfile) downloadItems(ctx context.Context, items []domain.Item, cat domain.Category, root string) ([]domain.Item, error) {
	out := slices.Clone(items)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(downloadConcurrency)
	for i := range out {
		i := i
		g.Go(func() error {
			item := out[i]
			enabled := p.featureEnabled(item.ID)
			switch {
			case !item.Resolved() && enabled:
				path, err := p.Resolver.Resolve(ctx, item, cat, root, p.Manifest.Loader.Type)
				if err != nil {
					return err
				}
				out[i].Path = path
			case item.Resolved():
				if err := source.ValidatePath(item.Path, root); err != nil {
					return fmt.Errorf("%s %q: %w", cat, item.Name, err)
				}
				if !enabled {
					if err := os.Remove(item.Path); err != nil && !os.IsNotExist(err) {
						return fmt.Errorf("removing disabled %s %q: %w", cat, item.Name, err)
					}
					out[i].Path = ""
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
