package chain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"

	"sessionkey/internal/crypto"
	"sessionkey/internal/domain"
)

// erc1271ABI describes isValidSignature(bytes32,bytes) returns (bytes4).
const erc1271ABI = `[{"type":"function","name":"isValidSignature","stateMutability":"view",
"inputs":[{"name":"hash","type":"bytes32"},{"name":"signature","type":"bytes"}],
"outputs":[{"name":"magicValue","type":"bytes4"}]}]`

// MagicValue is returned by a compliant wallet for a valid signature.
var MagicValue = [4]byte{0x16, 0x26, 0xba, 0x7e}

var erc1271 = func() abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(erc1271ABI))
	if err != nil {
		panic(err)
	}
	return parsed
}()

// RetryConfig bounds retries of transient RPC failures.
type RetryConfig struct {
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
}

// DefaultRetryConfig is used by NewContractValidator.
var DefaultRetryConfig = RetryConfig{
	MaxRetries:      3,
	InitialInterval: 200 * time.Millisecond,
	MaxInterval:     2 * time.Second,
	MaxElapsedTime:  10 * time.Second,
}

// ContractValidator validates signatures for both plain accounts and smart
// contract wallets against a chain RPC.
type ContractValidator struct {
	client Client
	retry  RetryConfig
	log    *zap.Logger
}

// ContractOption configures a ContractValidator.
type ContractOption func(*ContractValidator)

// WithRetry overrides DefaultRetryConfig.
func WithRetry(rc RetryConfig) ContractOption {
	return func(v *ContractValidator) { v.retry = rc }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) ContractOption {
	return func(v *ContractValidator) { v.log = l }
}

// NewContractValidator returns a validator that queries client.
func NewContractValidator(client Client, opts ...ContractOption) *ContractValidator {
	v := &ContractValidator{client: client, retry: DefaultRetryConfig, log: zap.NewNop()}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// IsValidSignature reports whether sig over the EIP-191 form of message was
// produced by addr.
//
// Steps:
//  1. Fetch the code at addr. No code means an externally owned account,
//     validated by ecrecover.
//  2. Otherwise call isValidSignature(TextHash(message), sig) and compare the
//     result with MagicValue. Reverts and malformed returns are mismatches.
func (v *ContractValidator) IsValidSignature(
	ctx context.Context,
	addr common.Address,
	message string,
	sig []byte,
) (bool, error) {
	var code []byte
	err := v.withRetry(ctx, func() error {
		var err error
		code, err = v.client.CodeAt(ctx, addr, nil)
		return err
	})
	if err != nil {
		return false, v.unavailable(err, "code lookup", addr)
	}
	if len(code) == 0 {
		return recovers(addr, message, sig), nil
	}

	var hash [32]byte
	copy(hash[:], crypto.TextHash(message))
	input, err := erc1271.Pack("isValidSignature", hash, sig)
	if err != nil {
		return false, fmt.Errorf("pack isValidSignature: %w", err)
	}

	var out []byte
	reverted := false
	err = v.withRetry(ctx, func() error {
		var err error
		out, err = v.client.CallContract(ctx, ethereum.CallMsg{To: &addr, Data: input}, nil)
		if isExecutionError(err) {
			reverted = true
			return nil
		}
		return err
	})
	if err != nil {
		return false, v.unavailable(err, "isValidSignature call", addr)
	}
	if reverted {
		v.log.Debug("isValidSignature reverted", zap.String("address", addr.Hex()))
		return false, nil
	}
	return isMagic(out), nil
}

func (v *ContractValidator) withRetry(ctx context.Context, op func() error) error {
	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = v.retry.InitialInterval
	expBackoff.MaxInterval = v.retry.MaxInterval
	expBackoff.MaxElapsedTime = v.retry.MaxElapsedTime

	return backoff.Retry(func() error {
		err := op()
		if err != nil && ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		return err
	}, backoff.WithContext(backoff.WithMaxRetries(expBackoff, v.retry.MaxRetries), ctx))
}

func (v *ContractValidator) unavailable(err error, op string, addr common.Address) error {
	v.log.Warn("signature validation rpc failed",
		zap.String("op", op),
		zap.String("address", addr.Hex()),
		zap.Error(err),
	)
	return fmt.Errorf("%s: %w: %w", op, domain.ErrVerificationInfrastructureUnavailable, err)
}

// isExecutionError reports whether err came back from the node as a JSON-RPC
// error (revert, invalid opcode) rather than a transport failure.
func isExecutionError(err error) bool {
	if err == nil {
		return false
	}
	var rpcErr rpc.Error
	return errors.As(err, &rpcErr)
}

func isMagic(out []byte) bool {
	vals, err := erc1271.Unpack("isValidSignature", out)
	if err != nil || len(vals) != 1 {
		return false
	}
	got, ok := vals[0].([4]byte)
	return ok && bytes.Equal(got[:], MagicValue[:])
}

var _ domain.SignatureValidator = (*ContractValidator)(nil)
