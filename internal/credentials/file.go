// Package credentials provides bearer-token storage implementations.
//
// Secrets are held in memguard enclaves while in memory so the token never
// sits around as a plain Go string longer than a caller needs it. The file
// store additionally persists tokens across runs, standing in for the
// platform keychain a mobile build would use.
package credentials

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/awnumar/memguard"

	"github.com/zkamal/recipebox/internal/domain"
	"github.com/zkamal/recipebox/internal/logger"
)

// Compile-time interface check.
var _ domain.CredentialStore = (*FileStore)(nil)

// FileStore persists one secret per key as a 0600 file under dir, caching
// open secrets in memguard enclaves. Safe for concurrent use.
type FileStore struct {
	mu    sync.Mutex
	dir   string
	cache map[string]*memguard.Enclave
	log   *logger.Logger
}

// NewFileStore creates a credential store rooted at dir, creating it with
// owner-only permissions if needed.
func NewFileStore(dir string, log *logger.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("credentials: create dir %s: %w", dir, err)
	}
	return &FileStore{
		dir:   dir,
		cache: make(map[string]*memguard.Enclave),
		log:   log,
	}, nil
}

// Get returns the secret stored under key, reading through to disk when the
// enclave cache is cold. Returns domain.ErrNotFound for unknown keys.
func (s *FileStore) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if enc, ok := s.cache[key]; ok {
		return openEnclave(enc)
	}

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("credentials: read %s: %w", key, err)
	}

	// Promote to the enclave cache; NewBufferFromBytes wipes data.
	s.cache[key] = memguard.NewBufferFromBytes(data).Seal()
	s.log.Debug("credentials: loaded %s from disk", key)
	return openEnclave(s.cache[key])
}

// Set stores the secret under key, in memory and on disk.
func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.WriteFile(s.path(key), []byte(value), 0o600); err != nil {
		return fmt.Errorf("credentials: write %s: %w", key, err)
	}
	s.cache[key] = memguard.NewEnclave([]byte(value))
	s.log.Debug("credentials: stored %s", key)
	return nil
}

// Delete removes the secret under key. Deleting an absent key is not an error.
func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.cache, key)
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("credentials: delete %s: %w", key, err)
	}
	s.log.Debug("credentials: deleted %s", key)
	return nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key)
}

func openEnclave(enc *memguard.Enclave) (string, error) {
	buf, err := enc.Open()
	if err != nil {
		return "", fmt.Errorf("credentials: open enclave: %w", err)
	}
	defer buf.Destroy()
	return string(buf.Bytes()), nil
}
