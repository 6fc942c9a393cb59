package app_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sessionkey/internal/app"
	"sessionkey/internal/domain"
	"sessionkey/internal/store"
	"sessionkey/internal/wallet"
)

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv(app.EnvHome, "/tmp/sk")
	t.Setenv(app.EnvStore, "Postgres")
	t.Setenv(app.EnvDatabaseURL, "postgres://localhost/sk")
	t.Setenv(app.EnvChainID, "137")
	t.Setenv(app.EnvSecretID, "")

	cfg, err := app.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/sk", cfg.Home)
	assert.Equal(t, app.StorePostgres, cfg.Store)
	assert.Equal(t, 0, cfg.ChainID.Cmp(big.NewInt(137)))
	assert.Equal(t, "sessionkey", cfg.SecretID)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_BadChainID(t *testing.T) {
	t.Setenv(app.EnvChainID, "polygon")
	_, err := app.LoadConfig()
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name string
		cfg  app.Config
		want error
	}{
		{name: "file", cfg: app.Config{Store: app.StoreFile}},
		{name: "postgres without url", cfg: app.Config{Store: app.StorePostgres}, want: app.ErrMissingSetting},
		{name: "secrets without id", cfg: app.Config{Store: app.StoreSecretsManager}, want: app.ErrMissingSetting},
		{name: "unknown", cfg: app.Config{Store: "floppy"}, want: app.ErrUnknownStore},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.want)
		})
	}

	bad := app.Config{Store: app.StoreMemory, PrimaryAddress: "not-an-address"}
	assert.Error(t, bad.Validate())
}

func TestApp_SessionIsStableAcrossRuns(t *testing.T) {
	ctx := context.Background()
	cfg := app.Config{Home: t.TempDir(), Store: app.StoreFile, Passphrase: "hunter2 hunter2"}

	a1, err := app.New(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	defer a1.Close()
	m1, id1, err := a1.Session(ctx)
	require.NoError(t, err)

	a2, err := app.New(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	defer a2.Close()
	m2, id2, err := a2.Session(ctx)
	require.NoError(t, err)

	assert.Equal(t, m1, m2)
	assert.True(t, id1.Equal(id2))

	// The slot holds a sealed blob, not the raw key.
	raw, ok, err := store.NewFileStore(cfg.Home+"/keys").Get(ctx, domain.SessionKeySlot)
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotEqual(t, m1.Slice(), raw)

	cfg.Passphrase = "wrong"
	a3, err := app.New(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	defer a3.Close()
	_, _, err = a3.Session(ctx)
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}

func TestApp_EndToEnd(t *testing.T) {
	ctx := context.Background()
	a, err := app.New(ctx, app.Config{Store: app.StoreMemory}, zap.NewNop())
	require.NoError(t, err)
	defer a.Close()

	st, err := a.NewState(ctx)
	require.NoError(t, err)

	primary, err := wallet.GeneratePrivateKeySigner()
	require.NoError(t, err)
	rec, err := st.Authorize(ctx, primary)
	require.NoError(t, err)
	assert.True(t, rec.Verified)
	assert.Equal(t, domain.HandshakeVerified, a.Handshake.State(st.Session()))

	out := st.SubmitAction("Play rock")
	assert.True(t, out.Accepted())
}

func TestApp_PrimarySignerRequiresConfig(t *testing.T) {
	a, err := app.New(context.Background(), app.Config{Store: app.StoreMemory}, zap.NewNop())
	require.NoError(t, err)
	defer a.Close()

	_, err = a.PrimarySigner()
	assert.ErrorIs(t, err, app.ErrNoPrimarySigner)
}
