package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"sessionkey/internal/domain"
	"sessionkey/internal/services/authorization"
	"sessionkey/internal/wallet"
)

// ErrNoPrimarySigner is returned when no primary keystore account is configured.
var ErrNoPrimarySigner = errors.New("no primary signer configured (set PRIMARY_KEYSTORE and PRIMARY_ADDRESS)")

// App is the context commands run against.
type App struct {
	*Wire
	Config Config
	Log    *zap.Logger
}

// New validates cfg and builds the dependency graph.
func New(ctx context.Context, cfg Config, log *zap.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w, err := NewWire(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	return &App{Wire: w, Config: cfg, Log: log}, nil
}

// Session loads or creates the session key and derives its identity.
func (a *App) Session(ctx context.Context) (domain.SessionKeyMaterial, domain.SessionIdentity, error) {
	material, err := a.Keys.LoadOrCreate(ctx)
	if err != nil {
		return domain.SessionKeyMaterial{}, domain.SessionIdentity{}, err
	}
	id, err := a.IDs.Derive(material)
	if err != nil {
		return domain.SessionKeyMaterial{}, domain.SessionIdentity{}, err
	}
	return material, id, nil
}

// NewState returns an unauthenticated session state for the device key.
func (a *App) NewState(ctx context.Context) (*authorization.State, error) {
	material, _, err := a.Session(ctx)
	if err != nil {
		return nil, err
	}
	return authorization.New(material, a.Handshake, authorization.WithLogger(a.Log))
}

// PrimarySigner opens the configured keystore account.
func (a *App) PrimarySigner() (domain.PrimarySigner, error) {
	if a.Config.PrimaryKeystore == "" || a.Config.PrimaryAddress == "" {
		return nil, ErrNoPrimarySigner
	}
	s, err := wallet.OpenKeystoreSigner(
		a.Config.PrimaryKeystore,
		common.HexToAddress(a.Config.PrimaryAddress),
		a.Config.PrimaryPassword,
	)
	if err != nil {
		return nil, fmt.Errorf("open primary signer: %w", err)
	}
	return s, nil
}
