package interfaces

import (
	"context"

	domaintypes "sessionkey/internal/domain/types"
)

// KeyValueStore is the durable, device-local slot the session key lives in.
// Get reports ok=false for an absent key; err is reserved for I/O failures.
//
// SetIfAbsent writes value only when key holds nothing, atomically with respect
// to every other writer of the same backend, including other processes. It
// returns whatever the slot holds afterwards: value when this call created it,
// the earlier value otherwise.
type KeyValueStore interface {
	Get(ctx context.Context, key domaintypes.StoreKey) (value []byte, ok bool, err error)
	Set(ctx context.Context, key domaintypes.StoreKey, value []byte) error
	SetIfAbsent(ctx context.Context, key domaintypes.StoreKey, value []byte) (stored []byte, err error)
}
