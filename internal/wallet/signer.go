package wallet

import (
	"context"
	"crypto/ecdsa"
	"errors"

	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"sessionkey/internal/crypto"
	"sessionkey/internal/domain"
)

// ErrDeclined is returned when the holder of the primary key refuses to sign.
var ErrDeclined = errors.New("wallet: signature request declined")

// PrivateKeySigner signs with a key held in memory.
type PrivateKeySigner struct {
	key  *ecdsa.PrivateKey
	addr common.Address
}

// NewPrivateKeySigner wraps key.
func NewPrivateKeySigner(key *ecdsa.PrivateKey) *PrivateKeySigner {
	return &PrivateKeySigner{key: key, addr: ethcrypto.PubkeyToAddress(key.PublicKey)}
}

// GeneratePrivateKeySigner returns a signer over a fresh random key.
func GeneratePrivateKeySigner() (*PrivateKeySigner, error) {
	key, err := ethcrypto.GenerateKey()
	if err != nil {
		return nil, err
	}
	return NewPrivateKeySigner(key), nil
}

// Address returns the signer's address.
func (s *PrivateKeySigner) Address() common.Address { return s.addr }

// SignMessage returns an EIP-191 personal_sign signature over text.
func (s *PrivateKeySigner) SignMessage(ctx context.Context, text string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return crypto.SignText(s.key, text)
}

var _ domain.PrimarySigner = (*PrivateKeySigner)(nil)
