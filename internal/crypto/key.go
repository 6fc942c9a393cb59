package crypto

import (
	"crypto/ecdsa"
	"crypto/rand"
	"fmt"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"sessionkey/internal/domain"
)

// maxKeyAttempts bounds rejection sampling; a random 32-byte value is outside
// the secp256k1 scalar range with probability ~2^-128.
const maxKeyAttempts = 8

// GenerateSessionKey returns 32 bytes from the system CSPRNG that form a valid
// secp256k1 private key.
func GenerateSessionKey() (domain.SessionKeyMaterial, error) {
	var material domain.SessionKeyMaterial
	for i := 0; i < maxKeyAttempts; i++ {
		if _, err := rand.Read(material[:]); err != nil {
			return domain.SessionKeyMaterial{}, err
		}
		if _, err := ethcrypto.ToECDSA(material.Slice()); err == nil {
			return material, nil
		}
	}
	Wipe(material[:])
	return domain.SessionKeyMaterial{}, fmt.Errorf("generate session key: %w", domain.ErrInvalidKeyMaterial)
}

// PrivateKey parses material as a secp256k1 private key.
func PrivateKey(material domain.SessionKeyMaterial) (*ecdsa.PrivateKey, error) {
	priv, err := ethcrypto.ToECDSA(material.Slice())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidKeyMaterial, err)
	}
	return priv, nil
}

// DeriveIdentity computes the public key and address for material.
func DeriveIdentity(material domain.SessionKeyMaterial) (domain.SessionIdentity, error) {
	priv, err := PrivateKey(material)
	if err != nil {
		return domain.SessionIdentity{}, err
	}
	return domain.SessionIdentity{
		PublicKey: ethcrypto.FromECDSAPub(&priv.PublicKey),
		Address:   ethcrypto.PubkeyToAddress(priv.PublicKey),
	}, nil
}
