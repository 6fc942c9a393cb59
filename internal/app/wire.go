package app

import (
	"context"
	"path/filepath"

	"go.uber.org/zap"

	"sessionkey/internal/chain"
	"sessionkey/internal/domain"
	"sessionkey/internal/services/handshake"
	"sessionkey/internal/services/identity"
	"sessionkey/internal/services/keymaterial"
	"sessionkey/internal/store"
)

// Wire bundles the store, validator and services for the CLI.
type Wire struct {
	Store     domain.KeyValueStore
	Keys      domain.KeyMaterialService
	IDs       domain.IdentityService
	Validator domain.SignatureValidator
	Handshake *handshake.Service

	closers []func()
}

// NewWire constructs the dependency graph from cfg.
func NewWire(ctx context.Context, cfg Config, log *zap.Logger) (*Wire, error) {
	w := &Wire{}

	kv, err := w.openStore(ctx, cfg)
	if err != nil {
		w.Close()
		return nil, err
	}
	if cfg.Passphrase != "" {
		sealed, err := store.NewSealedStore(kv, cfg.Passphrase)
		if err != nil {
			w.Close()
			return nil, err
		}
		kv = sealed
	}
	w.Store = kv

	// Plain ecrecover unless a chain RPC is configured for smart wallets.
	var validator domain.SignatureValidator = chain.NewRecoverValidator()
	if cfg.RPCURL != "" {
		client, err := chain.Dial(ctx, cfg.RPCURL, cfg.ChainID)
		if err != nil {
			w.Close()
			return nil, err
		}
		w.closers = append(w.closers, client.Close)
		validator = chain.NewContractValidator(client, chain.WithLogger(log))
		log.Info("validating primary signatures against chain", zap.String("rpc", cfg.RPCURL))
	}
	w.Validator = validator

	w.Keys = keymaterial.New(kv, keymaterial.WithLogger(log))
	w.IDs = identity.New()
	w.Handshake = handshake.New(validator, handshake.WithLogger(log))
	return w, nil
}

func (w *Wire) openStore(ctx context.Context, cfg Config) (domain.KeyValueStore, error) {
	switch cfg.Store {
	case StoreMemory:
		return store.NewMemoryStore(), nil
	case StorePostgres:
		s, pool, err := store.NewPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		w.closers = append(w.closers, pool.Close)
		return s, nil
	case StoreSecretsManager:
		return store.NewSecretsStore(ctx, cfg.SecretID)
	default:
		return store.NewFileStore(filepath.Join(cfg.Home, "keys")), nil
	}
}

// Close releases pooled connections.
func (w *Wire) Close() {
	for i := len(w.closers) - 1; i >= 0; i-- {
		w.closers[i]()
	}
	w.closers = nil
}
