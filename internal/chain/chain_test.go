package chain

import (
	"bytes"
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"sessionkey/internal/crypto"
	"sessionkey/internal/domain"
	"sessionkey/internal/mocks"
)

// revertError mimics the JSON-RPC error a node returns for a reverted call.
type revertError struct{}

func (revertError) Error() string  { return "execution reverted" }
func (revertError) ErrorCode() int { return 3 }

var fastRetry = RetryConfig{
	MaxRetries:      2,
	InitialInterval: time.Millisecond,
	MaxInterval:     time.Millisecond,
	MaxElapsedTime:  time.Second,
}

func signed(t *testing.T, msg string) (common.Address, []byte) {
	t.Helper()
	priv, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	sig, err := crypto.SignText(priv, msg)
	require.NoError(t, err)
	return ethcrypto.PubkeyToAddress(priv.PublicKey), sig
}

func magicReturn() []byte {
	out := make([]byte, 32)
	copy(out, MagicValue[:])
	return out
}

func TestRecoverValidator(t *testing.T) {
	ctx := context.Background()
	addr, sig := signed(t, "Authorize session key: 0xabc")
	v := NewRecoverValidator()

	ok, err := v.IsValidSignature(ctx, addr, "Authorize session key: 0xabc", sig)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = v.IsValidSignature(ctx, addr, "Authorize session key: 0xdef", sig)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = v.IsValidSignature(ctx, addr, "Authorize session key: 0xabc", sig[:10])
	require.NoError(t, err)
	assert.False(t, ok, "malformed signature is a mismatch, not an error")
}

func TestContractValidator_EOAFallsBackToRecover(t *testing.T) {
	ctx := context.Background()
	client := mocks.NewMockClientForTest(t)
	addr, sig := signed(t, "hello")

	client.EXPECT().CodeAt(gomock.Any(), addr, nil).Return(nil, nil).Times(2)

	v := NewContractValidator(client, WithRetry(fastRetry))
	ok, err := v.IsValidSignature(ctx, addr, "hello", sig)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = v.IsValidSignature(ctx, addr, "bye", sig)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestContractValidator_SmartWallet(t *testing.T) {
	ctx := context.Background()
	wallet := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	sig := bytes.Repeat([]byte{0x11}, 65)

	isCallTo := gomock.Cond(func(x any) bool {
		call, ok := x.(ethereum.CallMsg)
		return ok && call.To != nil && *call.To == wallet && bytes.HasPrefix(call.Data, MagicValue[:])
	})

	tests := []struct {
		name string
		ret  []byte
		err  error
		want bool
	}{
		{name: "magic", ret: magicReturn(), want: true},
		{name: "wrong value", ret: make([]byte, 32), want: false},
		{name: "empty return", ret: nil, want: false},
		{name: "revert", err: revertError{}, want: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := mocks.NewMockClientForTest(t)
			client.EXPECT().CodeAt(gomock.Any(), wallet, nil).Return([]byte{0x60, 0x80}, nil)
			client.EXPECT().CallContract(gomock.Any(), isCallTo, nil).Return(tc.ret, tc.err)

			ok, err := NewContractValidator(client, WithRetry(fastRetry)).
				IsValidSignature(ctx, wallet, "hello", sig)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ok)
		})
	}
}

func TestContractValidator_TransportFailureIsInfrastructure(t *testing.T) {
	ctx := context.Background()
	client := mocks.NewMockClientForTest(t)
	wallet := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	down := errors.New("dial tcp: connection refused")

	client.EXPECT().CodeAt(gomock.Any(), wallet, nil).Return(nil, down).Times(3)

	ok, err := NewContractValidator(client, WithRetry(fastRetry)).
		IsValidSignature(ctx, wallet, "hello", make([]byte, 65))
	assert.False(t, ok)
	assert.ErrorIs(t, err, domain.ErrVerificationInfrastructureUnavailable)
	assert.ErrorIs(t, err, down)
}

func TestContractValidator_RecoversAfterTransientFailure(t *testing.T) {
	ctx := context.Background()
	client := mocks.NewMockClientForTest(t)
	wallet := common.HexToAddress("0x00000000000000000000000000000000000000aa")

	gomock.InOrder(
		client.EXPECT().CodeAt(gomock.Any(), wallet, nil).Return([]byte{0x60}, nil),
		client.EXPECT().CallContract(gomock.Any(), gomock.Any(), nil).Return(nil, errors.New("timeout")),
		client.EXPECT().CallContract(gomock.Any(), gomock.Any(), nil).Return(magicReturn(), nil),
	)

	ok, err := NewContractValidator(client, WithRetry(fastRetry)).
		IsValidSignature(ctx, wallet, "hello", make([]byte, 65))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestContractValidator_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	client := mocks.NewMockClientForTest(t)
	client.EXPECT().CodeAt(gomock.Any(), gomock.Any(), nil).Return(nil, context.Canceled).MaxTimes(1)

	_, err := NewContractValidator(client, WithRetry(fastRetry)).
		IsValidSignature(ctx, common.Address{}, "hello", make([]byte, 65))
	assert.ErrorIs(t, err, domain.ErrVerificationInfrastructureUnavailable)
}

func TestCheckChainID(t *testing.T) {
	ctx := context.Background()
	client := mocks.NewMockClientForTest(t)
	client.EXPECT().ChainID(gomock.Any()).Return(big.NewInt(137), nil).Times(2)

	assert.NoError(t, checkChainID(ctx, client, big.NewInt(137)))
	assert.ErrorIs(t, checkChainID(ctx, client, big.NewInt(1)), ErrChainMismatch)
}
