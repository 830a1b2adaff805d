// Package store persists the user's recipe collection in an embedded
// BadgerDB. The collection is one JSON blob under a fixed key, loaded and
// saved whole on every operation: last writer wins, which is fine for a
// single-user, single-session app.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/dgraph-io/badger/v4"

	"github.com/zkamal/recipebox/internal/domain"
	"github.com/zkamal/recipebox/internal/logger"
)

// recipesKey is the fixed key the collection blob lives under.
const recipesKey = "recipes"

// Compile-time interface check.
var _ domain.RecipeStore = (*BadgerStore)(nil)

// Config holds the store's database settings.
type Config struct {
	// Path is the directory for database files. Ignored when InMemory is set.
	Path string
	// InMemory keeps everything in RAM; used in tests.
	InMemory bool
	// SyncWrites makes every write durable before returning.
	SyncWrites bool
}

// DefaultConfig returns durable on-disk settings rooted at path.
func DefaultConfig(path string) Config {
	return Config{Path: path, SyncWrites: true}
}

// InMemoryConfig returns settings for an ephemeral test store.
func InMemoryConfig() Config {
	return Config{InMemory: true}
}

// BadgerStore implements domain.RecipeStore on BadgerDB. Mutations are
// serialized with a mutex so a read-modify-write cycle can't interleave
// with another within one process.
type BadgerStore struct {
	mu  sync.Mutex
	db  *badger.DB
	log *logger.Logger
}

// Open opens (creating if needed) the recipe store described by cfg.
// The caller must Close it when done.
func Open(cfg Config, log *logger.Logger) (*BadgerStore, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Path == "" {
			return nil, errors.New("store: path is required for a persistent store")
		}
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("store: create directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites).WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}
	return &BadgerStore{db: db, log: log}, nil
}

// Close releases the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// LoadAll returns the stored collection in insertion order. An absent or
// undecodable blob is returned as an empty collection, not an error.
func (s *BadgerStore) LoadAll() ([]domain.Recipe, error) {
	var raw []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(recipesKey))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return nil, fmt.Errorf("store: load collection: %w", err)
		}
		return []domain.Recipe{}, nil
	}

	var recipes []domain.Recipe
	if err := json.Unmarshal(raw, &recipes); err != nil {
		// Undecodable data is treated the same as absent.
		s.log.Warn("store: discarding undecodable collection blob: %v", err)
		return []domain.Recipe{}, nil
	}
	return recipes, nil
}

// Add appends the recipe and persists the whole collection. Id uniqueness
// is assumed, not enforced.
func (s *BadgerStore) Add(r domain.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	recipes, err := s.LoadAll()
	if err != nil {
		return err
	}
	recipes = append(recipes, r)

	s.log.Debug("store: adding recipe %s (%q), count=%d", r.ID, r.Title, len(recipes))
	return s.save(recipes)
}

// Update replaces the first entry with a matching id, keeping its position.
// An unknown id is a silent no-op.
func (s *BadgerStore) Update(r domain.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	recipes, err := s.LoadAll()
	if err != nil {
		return err
	}
	for i := range recipes {
		if recipes[i].ID == r.ID {
			recipes[i] = r
			s.log.Debug("store: updated recipe %s (%q)", r.ID, r.Title)
			return s.save(recipes)
		}
	}
	s.log.Debug("store: update for unknown recipe %s, ignoring", r.ID)
	return nil
}

// Delete removes every entry whose id matches (there should be at most one).
func (s *BadgerStore) Delete(r domain.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	recipes, err := s.LoadAll()
	if err != nil {
		return err
	}
	kept := recipes[:0]
	for _, existing := range recipes {
		if existing.ID != r.ID {
			kept = append(kept, existing)
		}
	}

	s.log.Debug("store: deleted recipe %s, count=%d", r.ID, len(kept))
	return s.save(kept)
}

// Get returns the first entry with the given id, or domain.ErrNotFound.
func (s *BadgerStore) Get(id string) (*domain.Recipe, error) {
	recipes, err := s.LoadAll()
	if err != nil {
		return nil, err
	}
	for i := range recipes {
		if recipes[i].ID == id {
			return &recipes[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *BadgerStore) save(recipes []domain.Recipe) error {
	data, err := json.Marshal(recipes)
	if err != nil {
		return fmt.Errorf("store: encode collection: %w", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(recipesKey), data)
	})
	if err != nil {
		return fmt.Errorf("store: save collection: %w", err)
	}
	return nil
}
