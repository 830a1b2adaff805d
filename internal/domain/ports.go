package domain

import "context"

// TypeSource yields the recipe-type taxonomy. Implementations can be
// network-backed, disk-backed, or bundled defaults; the resolver in the
// taxonomy package chains them.
type TypeSource interface {
	// Types returns the taxonomy. An empty slice with a nil error means the
	// source had nothing usable; callers treat that the same as an error.
	Types(ctx context.Context) ([]RecipeType, error)
}

// RecipeStore persists the user's recipe collection. The collection is
// read-modify-written as a whole on every mutation; last writer wins.
type RecipeStore interface {
	// LoadAll returns the stored collection in insertion order. An absent or
	// undecodable collection is returned as an empty slice, never an error.
	LoadAll() ([]Recipe, error)
	// Add appends the recipe to the collection. Id uniqueness is assumed,
	// not checked.
	Add(r Recipe) error
	// Update replaces the first entry with a matching id, preserving its
	// position. Unknown ids are a silent no-op.
	Update(r Recipe) error
	// Delete removes every entry with a matching id.
	Delete(r Recipe) error
	// Get returns the first entry with the given id, or ErrNotFound.
	Get(id string) (*Recipe, error)
}

// CredentialStore is an opaque secure key-value store for bearer tokens.
type CredentialStore interface {
	// Get returns the secret stored under key, or ErrNotFound.
	Get(key string) (string, error)
	Set(key, value string) error
	// Delete removes the secret under key. Deleting an absent key is not
	// an error.
	Delete(key string) error
}
