package wallet

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"sessionkey/internal/domain"
)

// KeystoreSigner signs with an account from an encrypted go-ethereum keystore
// directory. The key is decrypted for each signature and not retained.
type KeystoreSigner struct {
	ks         *keystore.KeyStore
	account    accounts.Account
	passphrase string
}

// Scrypt cost for newly created accounts.
var (
	scryptN = keystore.StandardScryptN
	scryptP = keystore.StandardScryptP
)

func openKeystore(dir string) *keystore.KeyStore {
	return keystore.NewKeyStore(dir, scryptN, scryptP)
}

// NewKeystoreAccount creates a new account in dir sealed with passphrase.
func NewKeystoreAccount(dir, passphrase string) (common.Address, error) {
	acct, err := openKeystore(dir).NewAccount(passphrase)
	if err != nil {
		return common.Address{}, fmt.Errorf("create keystore account: %w", err)
	}
	return acct.Address, nil
}

// OpenKeystoreSigner finds address in the keystore at dir. The passphrase is
// checked once up front so a wrong one fails here rather than mid-handshake.
func OpenKeystoreSigner(dir string, address common.Address, passphrase string) (*KeystoreSigner, error) {
	ks := openKeystore(dir)
	acct, err := ks.Find(accounts.Account{Address: address})
	if err != nil {
		return nil, fmt.Errorf("keystore account %s: %w", address.Hex(), err)
	}
	s := &KeystoreSigner{ks: ks, account: acct, passphrase: passphrase}
	if _, err := s.sign("sessionkey keystore check"); err != nil {
		return nil, err
	}
	return s, nil
}

// Address returns the account address.
func (s *KeystoreSigner) Address() common.Address { return s.account.Address }

// SignMessage returns an EIP-191 personal_sign signature over text with V as 27/28.
func (s *KeystoreSigner) SignMessage(ctx context.Context, text string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.sign(text)
}

func (s *KeystoreSigner) sign(text string) ([]byte, error) {
	sig, err := s.ks.SignHashWithPassphrase(s.account, s.passphrase, accounts.TextHash([]byte(text)))
	if err != nil {
		return nil, fmt.Errorf("keystore sign: %w", err)
	}
	sig[ethcrypto.RecoveryIDOffset] += 27
	return sig, nil
}

var _ domain.PrimarySigner = (*KeystoreSigner)(nil)
