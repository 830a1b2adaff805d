package taxonomy

import (
	"context"
	"errors"

	"github.com/zkamal/recipebox/internal/domain"
	"github.com/zkamal/recipebox/internal/logger"
)

// Resolver runs the fallback chain. Stages execute strictly in order; a
// stage starts only after the previous one has definitively failed or
// produced an unusable result.
type Resolver struct {
	remote  domain.TypeSource
	cache   *DiskCache
	bundled domain.TypeSource
	log     *logger.Logger
}

// NewResolver creates a resolver over the three stages.
func NewResolver(remote domain.TypeSource, cache *DiskCache, bundled domain.TypeSource, log *logger.Logger) *Resolver {
	return &Resolver{
		remote:  remote,
		cache:   cache,
		bundled: bundled,
		log:     log,
	}
}

// Resolve returns the current taxonomy. It never fails: every stage error
// is swallowed and the next stage is tried, so the caller always gets a
// list, possibly empty. Trading staleness for availability is the point —
// type browsing must work offline with no prior cache.
//
// A successful remote fetch seeds the disk cache, but only while no cache
// file exists; an existing snapshot is never overwritten.
func (r *Resolver) Resolve(ctx context.Context) []domain.RecipeType {
	types, err := r.remote.Types(ctx)
	if err == nil {
		if _, seedErr := r.cache.SeedOnce(types); seedErr != nil {
			r.log.Warn("taxonomy: cache seed failed: %v", seedErr)
		}
		return types
	}
	if errors.Is(err, domain.ErrNotLoggedIn) {
		r.log.Debug("taxonomy: no credential, skipping remote fetch")
	} else {
		r.log.Warn("taxonomy: remote fetch failed, falling back: %v", err)
	}

	if types, err := r.cache.Load(); err == nil {
		return types
	}

	types, err = r.bundled.Types(ctx)
	if err != nil {
		r.log.Error("taxonomy: bundled fallback failed: %v", err)
		return []domain.RecipeType{}
	}
	r.log.Debug("taxonomy: using bundled defaults (%d types)", len(types))
	return types
}
