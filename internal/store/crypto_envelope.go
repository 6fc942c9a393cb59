package store

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"
)

const (
	// The current supported version of the sealed blob format.
	sealedFormatVersion = 1

	sealedSaltSize = 16
)

var (
	// Returned when the passphrase is incorrect or the ciphertext has been modified / corrupted.
	errWrongPassphrase = errors.New("wrong passphrase or corrupted sealed value")

	// Returned when a blob asks for KDF costs beyond what seal ever writes.
	errScryptParams = errors.New("sealed value has out-of-range scrypt parameters")
)

// scryptParams are the KDF cost parameters recorded in every blob.
type scryptParams struct {
	N, R, P int
}

// Tunables for scrypt key derivation.
func scryptParamsDefault() scryptParams { return scryptParams{N: 1 << 15, R: 8, P: 1} }

// within reports whether p costs no more than limit in any dimension.
func (p scryptParams) within(limit scryptParams) bool {
	return p.N > 1 && p.N <= limit.N &&
		p.R > 0 && p.R <= limit.R &&
		p.P > 0 && p.P <= limit.P
}

// sealedBlob is the JSON structure handed to the inner store.
type sealedBlob struct {
	V      int    `json:"v"`
	Salt   []byte `json:"salt"`
	N      int    `json:"scrypt_N"`
	R      int    `json:"scrypt_r"`
	P      int    `json:"scrypt_p"`
	Cipher []byte `json:"cipher"`
}

// seal derives a key from passphrase and encrypts raw. The store key is bound
// as associated data so a blob cannot be moved to another slot.
func seal(passphrase string, raw, ad []byte, params scryptParams) ([]byte, error) {
	salt := make([]byte, sealedSaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	aead, err := newAEAD(passphrase, salt, params)
	if err != nil {
		return nil, err
	}
	// Zero nonce; the per-blob random salt yields a fresh key every time.
	nonce := make([]byte, chacha20poly1305.NonceSize)
	ct := aead.Seal(nil, nonce, raw, append(append([]byte(nil), salt...), ad...))

	return json.Marshal(sealedBlob{
		V:      sealedFormatVersion,
		Salt:   salt,
		N:      params.N,
		R:      params.R,
		P:      params.P,
		Cipher: ct,
	})
}

// open reverses seal.
func open(passphrase string, b, ad []byte) ([]byte, error) {
	var bl sealedBlob
	if err := json.Unmarshal(b, &bl); err != nil {
		return nil, err
	}
	if bl.V > sealedFormatVersion {
		return nil, fmt.Errorf("unsupported sealed format version %d", bl.V)
	}
	if len(bl.Salt) != sealedSaltSize {
		return nil, errWrongPassphrase
	}
	params := scryptParams{N: bl.N, R: bl.R, P: bl.P}
	if !params.within(scryptParamsDefault()) {
		return nil, errScryptParams
	}
	aead, err := newAEAD(passphrase, bl.Salt, params)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, chacha20poly1305.NonceSize)
	pt, err := aead.Open(nil, nonce, bl.Cipher, append(append([]byte(nil), bl.Salt...), ad...))
	if err != nil {
		return nil, errWrongPassphrase
	}
	return pt, nil
}

func newAEAD(passphrase string, salt []byte, p scryptParams) (cipher.AEAD, error) {
	key, err := scrypt.Key([]byte(passphrase), salt, p.N, p.R, p.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	return chacha20poly1305.New(key)
}
