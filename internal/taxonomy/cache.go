package taxonomy

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/zkamal/recipebox/internal/domain"
	"github.com/zkamal/recipebox/internal/logger"
)

// DiskCache is a single-slot cache for a taxonomy snapshot, stored as one
// JSON file. The slot is seed-once: SeedOnce writes only while no file
// exists, so the first successful fetch pins the cached snapshot for good.
// Safe for concurrent use.
type DiskCache struct {
	mu   sync.Mutex
	path string
	log  *logger.Logger
}

// NewDiskCache creates a cache writing to path, creating the parent
// directory if needed.
func NewDiskCache(path string, log *logger.Logger) (*DiskCache, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("taxonomy: create cache dir %s: %w", dir, err)
		}
	}
	return &DiskCache{path: path, log: log}, nil
}

// Load reads and decodes the cached snapshot. Missing, undecodable, or
// empty snapshots are all errors; callers fall through to the next source.
func (c *DiskCache) Load() ([]domain.RecipeType, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("taxonomy: read cache: %w", err)
	}

	var types []domain.RecipeType
	if err := json.Unmarshal(data, &types); err != nil {
		return nil, fmt.Errorf("taxonomy: decode cache: %w", err)
	}
	if len(types) == 0 {
		return nil, fmt.Errorf("taxonomy: cache is empty")
	}

	c.log.Debug("taxonomy: cache hit (%d types)", len(types))
	return types, nil
}

// SeedOnce writes the snapshot only when no cache file exists yet. Reports
// whether a write happened. Write errors are returned but an existing file
// is not: skipping is the normal case after the first success.
func (c *DiskCache) SeedOnce(types []domain.RecipeType) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := os.Stat(c.path); err == nil {
		c.log.Debug("taxonomy: cache already seeded, keeping existing snapshot")
		return false, nil
	}

	data, err := json.Marshal(types)
	if err != nil {
		return false, fmt.Errorf("taxonomy: encode cache: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return false, fmt.Errorf("taxonomy: write cache: %w", err)
	}

	c.log.Debug("taxonomy: seeded cache with %d types", len(types))
	return true, nil
}
