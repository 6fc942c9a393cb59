package keymaterial

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"sessionkey/internal/crypto"
	"sessionkey/internal/domain"
)

// Generator produces fresh session key material.
type Generator func() (domain.SessionKeyMaterial, error)

// Service manages the session key slot in a backing store.
type Service struct {
	store    domain.KeyValueStore
	generate Generator
	log      *zap.Logger

	mu     sync.Mutex
	loaded bool
	cached domain.SessionKeyMaterial
}

// Option configures a Service.
type Option func(*Service)

// WithGenerator replaces the CSPRNG-backed generator.
func WithGenerator(g Generator) Option {
	return func(s *Service) { s.generate = g }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.log = l }
}

// New returns a key material service backed by the given store.
func New(store domain.KeyValueStore, opts ...Option) *Service {
	s := &Service{
		store:    store,
		generate: crypto.GenerateSessionKey,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadOrCreate returns the stored material, generating and persisting it when
// the slot is empty.
//
// Steps:
//  1. Return the cached material if an earlier call already resolved it.
//  2. Read the slot; existing material is validated and returned unchanged.
//  3. Otherwise generate 32 random bytes and create the slot with them. If
//     another process created it first, its material is adopted instead.
func (s *Service) LoadOrCreate(ctx context.Context) (domain.SessionKeyMaterial, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return s.cached, nil
	}

	raw, ok, err := s.store.Get(ctx, domain.SessionKeySlot)
	if err != nil {
		return domain.SessionKeyMaterial{}, storageErr(err, "read")
	}

	if ok {
		material, err := s.adopt(raw)
		if err != nil {
			return domain.SessionKeyMaterial{}, err
		}
		s.log.Debug("loaded session key material from store")
		s.remember(material)
		return material, nil
	}

	fresh, err := s.generate()
	if err != nil {
		return domain.SessionKeyMaterial{}, err
	}
	stored, err := s.store.SetIfAbsent(ctx, domain.SessionKeySlot, fresh.Slice())
	if err != nil {
		crypto.WipeMaterial(&fresh)
		return domain.SessionKeyMaterial{}, storageErr(err, "write")
	}
	material, err := s.adopt(stored)
	if err != nil {
		crypto.WipeMaterial(&fresh)
		return domain.SessionKeyMaterial{}, err
	}
	if material == fresh {
		s.log.Info("created session key material")
	} else {
		// Another process created the slot between our read and write.
		crypto.WipeMaterial(&fresh)
		s.log.Info("adopted session key material created concurrently")
	}
	s.remember(material)
	return material, nil
}

// adopt validates raw slot bytes as session key material and wipes raw.
func (s *Service) adopt(raw []byte) (domain.SessionKeyMaterial, error) {
	material, err := domain.SessionKeyMaterialFromBytes(raw)
	crypto.Wipe(raw)
	if err != nil {
		return domain.SessionKeyMaterial{}, fmt.Errorf("%w: %v", domain.ErrInvalidKeyMaterial, err)
	}
	if _, err := crypto.PrivateKey(material); err != nil {
		return domain.SessionKeyMaterial{}, err
	}
	return material, nil
}

func (s *Service) remember(m domain.SessionKeyMaterial) {
	s.cached = m
	s.loaded = true
}

// storageErr makes sure every store failure matches domain.ErrStorageUnavailable,
// including context errors and backends that do not wrap it themselves.
func storageErr(err error, op string) error {
	if errors.Is(err, domain.ErrStorageUnavailable) {
		return fmt.Errorf("session key %s: %w", op, err)
	}
	return fmt.Errorf("session key %s: %w: %w", op, domain.ErrStorageUnavailable, err)
}

// Compile-time assertion that Service implements domain.KeyMaterialService.
var _ domain.KeyMaterialService = (*Service)(nil)
