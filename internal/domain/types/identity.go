package types

import (
	"bytes"

	"github.com/ethereum/go-ethereum/common"
)

// SessionIdentity is the public side of the session key.
type SessionIdentity struct {
	PublicKey []byte         `json:"public_key"` // 65-byte uncompressed secp256k1 point
	Address   common.Address `json:"address"`
}

// String returns the checksummed address; this is the form embedded in the
// authorization message.
func (s SessionIdentity) String() string { return s.Address.Hex() }

// Equal reports whether both identities carry the same key and address.
func (s SessionIdentity) Equal(o SessionIdentity) bool {
	return s.Address == o.Address && bytes.Equal(s.PublicKey, o.PublicKey)
}

// IsZero reports whether the identity is unset.
func (s SessionIdentity) IsZero() bool {
	return s.Address == (common.Address{}) && len(s.PublicKey) == 0
}
