package types

import "github.com/ethereum/go-ethereum/common"

// PrimaryIdentity is the address of the already-authenticated primary wallet.
type PrimaryIdentity = common.Address

// Fingerprint is a short identifier for public keys presented to users.
type Fingerprint string

// String returns the string form of the fingerprint.
func (f Fingerprint) String() string { return string(f) }

// StoreKey names a slot in a durable key-value store.
type StoreKey string

// String returns the string form of the key.
func (k StoreKey) String() string { return string(k) }

// SessionKeySlot is the only store key used by the session key core.
const SessionKeySlot StoreKey = "session_private_key"
