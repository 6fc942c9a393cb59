package crypto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sessionkey/internal/crypto"
	"sessionkey/internal/domain"
)

func TestGenerateSessionKey_ValidAndDistinct(t *testing.T) {
	a, err := crypto.GenerateSessionKey()
	require.NoError(t, err)
	b, err := crypto.GenerateSessionKey()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	_, err = crypto.PrivateKey(a)
	assert.NoError(t, err)
}

func TestSignText_RecoverText(t *testing.T) {
	material, err := crypto.GenerateSessionKey()
	require.NoError(t, err)
	priv, err := crypto.PrivateKey(material)
	require.NoError(t, err)
	id, err := crypto.DeriveIdentity(material)
	require.NoError(t, err)

	sig, err := crypto.SignText(priv, "Play rock. Nonce: 0")
	require.NoError(t, err)
	require.Len(t, sig, crypto.SignatureLength)
	assert.Contains(t, []byte{27, 28}, sig[64])

	addr, pub, err := crypto.RecoverText("Play rock. Nonce: 0", sig)
	require.NoError(t, err)
	assert.Equal(t, id.Address, addr)
	assert.Equal(t, id.PublicKey, pub)

	// Recovery on a different message yields a different signer.
	other, _, err := crypto.RecoverText("Play rock. Nonce: 1", sig)
	require.NoError(t, err)
	assert.NotEqual(t, id.Address, other)
}

func TestRecoverText_AcceptsRawRecoveryID(t *testing.T) {
	material, err := crypto.GenerateSessionKey()
	require.NoError(t, err)
	priv, err := crypto.PrivateKey(material)
	require.NoError(t, err)

	sig, err := crypto.SignText(priv, "hello")
	require.NoError(t, err)
	raw := append([]byte(nil), sig...)
	raw[64] -= 27

	a, _, err := crypto.RecoverText("hello", sig)
	require.NoError(t, err)
	b, _, err := crypto.RecoverText("hello", raw)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Contains(t, []byte{27, 28}, sig[64], "input must not be mutated")
}

func TestRecoverText_Malformed(t *testing.T) {
	_, _, err := crypto.RecoverText("hello", make([]byte, 64))
	assert.ErrorIs(t, err, crypto.ErrSignatureLength)

	bad := make([]byte, 65)
	bad[64] = 5
	_, _, err = crypto.RecoverText("hello", bad)
	assert.ErrorIs(t, err, crypto.ErrSignatureRecoveryID)
}

func TestTextHash_PersonalSignPrefix(t *testing.T) {
	// keccak256("\x19Ethereum Signed Message:\n5hello")
	assert.Equal(t,
		"0x50b2c43fd39106bafbba0da34fc430e1f91e3c96ea2acee2bc34119f92b37750",
		crypto.Hex(crypto.TextHash("hello")),
	)
}

func TestFingerprint_Stable(t *testing.T) {
	a := crypto.Fingerprint([]byte{1, 2, 3})
	assert.Len(t, a, 20)
	assert.Equal(t, a, crypto.Fingerprint([]byte{1, 2, 3}))
	assert.NotEqual(t, a, crypto.Fingerprint([]byte{1, 2, 4}))
}

func TestWipeMaterial(t *testing.T) {
	m := domain.SessionKeyMaterial{1, 2, 3}
	crypto.WipeMaterial(&m)
	assert.True(t, m.IsZero())
}

func TestFromHex(t *testing.T) {
	b, err := crypto.FromHex("0x0102")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, b)

	_, err = crypto.FromHex("0102")
	assert.Error(t, err)
}
