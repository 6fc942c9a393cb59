package chain

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"sessionkey/internal/crypto"
	"sessionkey/internal/domain"
)

// RecoverValidator checks EIP-191 signatures by local public key recovery.
// It never fails with an error: malformed signatures are mismatches.
type RecoverValidator struct{}

// NewRecoverValidator returns an ecrecover-only validator.
func NewRecoverValidator() RecoverValidator { return RecoverValidator{} }

// IsValidSignature reports whether sig over message recovers to addr.
func (RecoverValidator) IsValidSignature(
	_ context.Context,
	addr common.Address,
	message string,
	sig []byte,
) (bool, error) {
	return recovers(addr, message, sig), nil
}

func recovers(addr common.Address, message string, sig []byte) bool {
	got, _, err := crypto.RecoverText(message, sig)
	return err == nil && got == addr
}

var _ domain.SignatureValidator = RecoverValidator{}
