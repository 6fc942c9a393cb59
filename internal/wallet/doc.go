// Package wallet provides primary signers for the authorization handshake:
// an in-memory private key, an encrypted go-ethereum keystore account, and a
// wrapper that asks a human to confirm each signature.
package wallet
