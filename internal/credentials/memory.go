package credentials

import (
	"sync"

	"github.com/awnumar/memguard"

	"github.com/zkamal/recipebox/internal/domain"
)

// Compile-time interface check.
var _ domain.CredentialStore = (*MemStore)(nil)

// MemStore holds secrets in memguard enclaves without touching disk.
// Used in tests and for ephemeral sessions.
type MemStore struct {
	mu      sync.Mutex
	secrets map[string]*memguard.Enclave
}

// NewMemStore creates an empty in-memory credential store.
func NewMemStore() *MemStore {
	return &MemStore{secrets: make(map[string]*memguard.Enclave)}
}

// Get returns the secret under key, or domain.ErrNotFound.
func (s *MemStore) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	enc, ok := s.secrets[key]
	if !ok {
		return "", domain.ErrNotFound
	}
	return openEnclave(enc)
}

// Set stores the secret under key.
func (s *MemStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.secrets[key] = memguard.NewEnclave([]byte(value))
	return nil
}

// Delete removes the secret under key.
func (s *MemStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.secrets, key)
	return nil
}
