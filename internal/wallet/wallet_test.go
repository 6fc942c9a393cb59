package wallet_test

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sessionkey/internal/crypto"
	"sessionkey/internal/mocks"
	"sessionkey/internal/wallet"
)

func TestPrivateKeySigner_PersonalSign(t *testing.T) {
	s, err := wallet.GeneratePrivateKeySigner()
	require.NoError(t, err)

	sig, err := s.SignMessage(context.Background(), "Authorize session key: 0x01")
	require.NoError(t, err)
	assert.Contains(t, []byte{27, 28}, sig[64])

	addr, _, err := crypto.RecoverText("Authorize session key: 0x01", sig)
	require.NoError(t, err)
	assert.Equal(t, s.Address(), addr)
}

func TestPrivateKeySigner_CancelledContext(t *testing.T) {
	s, err := wallet.GeneratePrivateKeySigner()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.SignMessage(ctx, "x")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestKeystoreSigner(t *testing.T) {
	dir := t.TempDir()
	addr, err := wallet.NewKeystoreAccount(dir, "correct horse")
	require.NoError(t, err)

	_, err = wallet.OpenKeystoreSigner(dir, addr, "wrong")
	assert.Error(t, err)

	_, err = wallet.OpenKeystoreSigner(dir, common.HexToAddress("0x01"), "correct horse")
	assert.Error(t, err)

	s, err := wallet.OpenKeystoreSigner(dir, addr, "correct horse")
	require.NoError(t, err)
	assert.Equal(t, addr, s.Address())

	sig, err := s.SignMessage(context.Background(), "hello")
	require.NoError(t, err)
	got, _, err := crypto.RecoverText("hello", sig)
	require.NoError(t, err)
	assert.Equal(t, addr, got)
}

func TestConfirmingSigner(t *testing.T) {
	ctx := context.Background()
	inner := mocks.NewMockPrimarySignerForTest(t)
	primary := common.HexToAddress("0xabc")
	inner.EXPECT().Address().Return(primary).AnyTimes()
	inner.EXPECT().SignMessage(ctx, "ok please").Return([]byte{1}, nil)

	var prompted []string
	s := wallet.Confirming(inner, func(_ context.Context, addr common.Address, text string) (bool, error) {
		assert.Equal(t, primary, addr)
		prompted = append(prompted, text)
		return text == "ok please", nil
	})

	sig, err := s.SignMessage(ctx, "ok please")
	require.NoError(t, err)
	assert.Equal(t, []byte{1}, sig)

	_, err = s.SignMessage(ctx, "no thanks")
	assert.ErrorIs(t, err, wallet.ErrDeclined)
	assert.Equal(t, []string{"ok please", "no thanks"}, prompted)
}
