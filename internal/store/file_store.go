package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"sessionkey/internal/domain"
)

const fileSuffix = ".key"

var (
	// ErrInvalidStoreKey is returned for keys that cannot be used as file names.
	ErrInvalidStoreKey = errors.New("store: invalid key")

	validKey = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)
)

// FileStore keeps one file per key under dir.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore returns a FileStore rooted at dir. The directory is created on
// first write.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Get returns the bytes stored under key.
func (s *FileStore) Get(ctx context.Context, key domain.StoreKey) ([]byte, bool, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, false, err
	}
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := readFile(path)
	if err != nil {
		return nil, false, unavailable(err, "file store: read "+key.String())
	}
	if b == nil {
		return nil, false, nil
	}
	return b, true, nil
}

// Set atomically replaces the file for key with value.
func (s *FileStore) Set(ctx context.Context, key domain.StoreKey, value []byte) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := writeFile(path, value, 0o600); err != nil {
		return unavailable(err, "file store: write "+key.String())
	}
	return nil
}

// SetIfAbsent creates the file for key unless it already exists, and returns
// the bytes the file holds afterwards.
func (s *FileStore) SetIfAbsent(ctx context.Context, key domain.StoreKey, value []byte) ([]byte, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	created, err := createFile(path, value, 0o600)
	if err != nil {
		return nil, unavailable(err, "file store: create "+key.String())
	}
	if created {
		return value, nil
	}
	b, err := readFile(path)
	if err != nil {
		return nil, unavailable(err, "file store: read "+key.String())
	}
	if b == nil {
		return nil, unavailable(os.ErrNotExist, "file store: read "+key.String())
	}
	return b, nil
}

func (s *FileStore) path(key domain.StoreKey) (string, error) {
	if !validKey.MatchString(key.String()) || key == "." || key == ".." {
		return "", ErrInvalidStoreKey
	}
	return filepath.Join(s.dir, key.String()+fileSuffix), nil
}

// Compile-time assertion that FileStore implements domain.KeyValueStore.
var _ domain.KeyValueStore = (*FileStore)(nil)
