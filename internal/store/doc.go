// Package store provides durable key-value backends for the session key slot.
//
// Every backend implements domain.KeyValueStore. Get reports an absent key as
// ok=false; any I/O or driver failure is returned wrapped with
// domain.ErrStorageUnavailable so callers can match it with errors.Is.
//
// The package includes:
//   - FileStore, one file per key under the configured home directory
//   - MemoryStore, process-local and non-durable (tests, ephemeral sessions)
//   - PostgresStore, a single table keyed by slot name (pgx)
//   - SecretsStore, AWS Secrets Manager binary secrets
//   - SealedStore, a wrapper that encrypts values with a passphrase
//     (scrypt + ChaCha20-Poly1305) before handing them to another store
package store
