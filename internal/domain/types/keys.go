package types

import "fmt"

// SessionKeyMaterialSize is the length of the session secret in bytes.
const SessionKeyMaterialSize = 32

// SessionKeyMaterial is the session private key: a secp256k1 scalar.
type SessionKeyMaterial [SessionKeyMaterialSize]byte

// Slice returns the key as a []byte.
func (k SessionKeyMaterial) Slice() []byte { return k[:] }

// IsZero reports whether the material is all zero bytes.
func (k SessionKeyMaterial) IsZero() bool { return k == SessionKeyMaterial{} }

// String hides the secret from accidental formatting.
func (k SessionKeyMaterial) String() string { return "SessionKeyMaterial(redacted)" }

// GoString hides the secret from %#v.
func (k SessionKeyMaterial) GoString() string { return k.String() }

// SessionKeyMaterialFromBytes copies b into a SessionKeyMaterial.
func SessionKeyMaterialFromBytes(b []byte) (SessionKeyMaterial, error) {
	var out SessionKeyMaterial
	if len(b) != SessionKeyMaterialSize {
		return out, fmt.Errorf("session key material: want %d bytes, got %d", SessionKeyMaterialSize, len(b))
	}
	copy(out[:], b)
	return out, nil
}
