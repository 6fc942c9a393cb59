package store

import (
	"context"
	"errors"

	"sessionkey/internal/domain"
)

// ErrEmptyPassphrase is returned when a SealedStore is built without a passphrase.
var ErrEmptyPassphrase = errors.New("store: sealed store requires a passphrase")

// SealedStore encrypts values with a passphrase before writing them to inner.
type SealedStore struct {
	inner      domain.KeyValueStore
	passphrase string
	params     scryptParams
}

// NewSealedStore wraps inner so every value is sealed with passphrase.
func NewSealedStore(inner domain.KeyValueStore, passphrase string) (*SealedStore, error) {
	if passphrase == "" {
		return nil, ErrEmptyPassphrase
	}
	return &SealedStore{inner: inner, passphrase: passphrase, params: scryptParamsDefault()}, nil
}

// Get loads and decrypts the value stored under key. A wrong passphrase is a
// storage failure: the slot exists but cannot be read.
func (s *SealedStore) Get(ctx context.Context, key domain.StoreKey) ([]byte, bool, error) {
	b, ok, err := s.inner.Get(ctx, key)
	if err != nil || !ok {
		return nil, ok, err
	}
	pt, err := open(s.passphrase, b, []byte(key))
	if err != nil {
		return nil, false, unavailable(err, "sealed store: open "+key.String())
	}
	return pt, true, nil
}

// Set encrypts value and stores it under key.
func (s *SealedStore) Set(ctx context.Context, key domain.StoreKey, value []byte) error {
	b, err := seal(s.passphrase, value, []byte(key), s.params)
	if err != nil {
		return unavailable(err, "sealed store: seal "+key.String())
	}
	return s.inner.Set(ctx, key, b)
}

// SetIfAbsent seals value and creates the slot with it unless the slot is
// already taken. The returned bytes are the decrypted contents of the slot.
func (s *SealedStore) SetIfAbsent(ctx context.Context, key domain.StoreKey, value []byte) ([]byte, error) {
	b, err := seal(s.passphrase, value, []byte(key), s.params)
	if err != nil {
		return nil, unavailable(err, "sealed store: seal "+key.String())
	}
	stored, err := s.inner.SetIfAbsent(ctx, key, b)
	if err != nil {
		return nil, err
	}
	pt, err := open(s.passphrase, stored, []byte(key))
	if err != nil {
		return nil, unavailable(err, "sealed store: open "+key.String())
	}
	return pt, nil
}

// Compile-time assertion that SealedStore implements domain.KeyValueStore.
var _ domain.KeyValueStore = (*SealedStore)(nil)
