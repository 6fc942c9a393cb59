// Package keymaterial loads or creates the device's session private key.
//
// The material lives in a single slot of a domain.KeyValueStore. The first
// successful LoadOrCreate caches it for the rest of the process; later calls
// never touch the store and never overwrite existing material.
package keymaterial
