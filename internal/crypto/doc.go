// Package crypto exposes the minimal primitives used by the session key core.
//
// Contents
//
//   - Session key generation and validation as secp256k1 scalars
//     (GenerateSessionKey, PrivateKey, DeriveIdentity)
//   - EIP-191 personal_sign hashing, signing and signer recovery
//     (TextHash, SignText, RecoverText)
//   - Best-effort memory wiping for sensitive byte slices (Wipe)
//   - Short public-key fingerprints for display/logging (Fingerprint)
//
// # Notes
//
// Signatures are 65 bytes (R || S || V). SignText emits V as 27/28, the form
// wallets return from personal_sign; RecoverText accepts both 0/1 and 27/28.
// Recovery is a pure local computation and never touches the network.
package crypto
