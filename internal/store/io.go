package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	pkgerrors "github.com/pkg/errors"

	"sessionkey/internal/domain"
)

// readFile reads the file at path into b; a missing file is not an error.
func readFile(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// writeFile writes bytes via a temp file, then atomically replaces the target.
func writeFile(path string, b []byte, mode os.FileMode) error {
	tmp, err := writeTemp(path, b, mode)
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp) }()

	return os.Rename(tmp, path)
}

// createFile publishes bytes at path only if nothing is there yet. The temp
// file is hard-linked into place, so the target is either absent or complete,
// and a concurrent creator in another process gets os.ErrExist.
func createFile(path string, b []byte, mode os.FileMode) (created bool, err error) {
	tmp, err := writeTemp(path, b, mode)
	if err != nil {
		return false, err
	}
	defer func() { _ = os.Remove(tmp) }()

	err = os.Link(tmp, path)
	if errors.Is(err, os.ErrExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// writeTemp writes b to a synced temp file next to path and returns its name.
func writeTemp(path string, b []byte, mode os.FileMode) (string, error) {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	f, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return "", err
	}
	tmp := f.Name()

	fail := func(err error) (string, error) {
		_ = f.Close()
		_ = os.Remove(tmp)
		return "", err
	}
	if _, err := f.Write(b); err != nil {
		return fail(err)
	}
	if err := f.Chmod(mode); err != nil {
		return fail(err)
	}
	if err := f.Sync(); err != nil {
		return fail(err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}
	return tmp, nil
}

// unavailable marks err as a storage failure and records where it happened.
func unavailable(err error, op string) error {
	return pkgerrors.Wrap(fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err), op)
}
