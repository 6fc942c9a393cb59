package crypto

import (
	"crypto/ecdsa"
	"errors"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// SignatureLength is the size of an R || S || V signature.
const SignatureLength = ethcrypto.SignatureLength

var (
	// ErrSignatureLength is returned for signatures that are not 65 bytes.
	ErrSignatureLength = errors.New("crypto: signature must be 65 bytes")

	// ErrSignatureRecoveryID is returned when V is not one of 0, 1, 27, 28.
	ErrSignatureRecoveryID = errors.New("crypto: invalid signature recovery id")
)

// TextHash returns the EIP-191 personal_sign digest of msg:
// keccak256("\x19Ethereum Signed Message:\n" + len(msg) + msg).
func TextHash(msg string) []byte {
	return accounts.TextHash([]byte(msg))
}

// SignText signs the EIP-191 digest of msg with priv. V is returned as 27/28.
func SignText(priv *ecdsa.PrivateKey, msg string) ([]byte, error) {
	sig, err := ethcrypto.Sign(TextHash(msg), priv)
	if err != nil {
		return nil, err
	}
	sig[ethcrypto.RecoveryIDOffset] += 27
	return sig, nil
}

// RecoverText recovers the address and uncompressed public key that signed
// the EIP-191 digest of msg.
func RecoverText(msg string, sig []byte) (common.Address, []byte, error) {
	normalized, err := normalizeSignature(sig)
	if err != nil {
		return common.Address{}, nil, err
	}
	pub, err := ethcrypto.SigToPub(TextHash(msg), normalized)
	if err != nil {
		return common.Address{}, nil, err
	}
	return ethcrypto.PubkeyToAddress(*pub), ethcrypto.FromECDSAPub(pub), nil
}

// normalizeSignature copies sig and maps V from 27/28 to 0/1.
func normalizeSignature(sig []byte) ([]byte, error) {
	if len(sig) != SignatureLength {
		return nil, ErrSignatureLength
	}
	out := make([]byte, SignatureLength)
	copy(out, sig)
	v := out[ethcrypto.RecoveryIDOffset]
	switch {
	case v == 27 || v == 28:
		out[ethcrypto.RecoveryIDOffset] = v - 27
	case v == 0 || v == 1:
	default:
		return nil, ErrSignatureRecoveryID
	}
	return out, nil
}
