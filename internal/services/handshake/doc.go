// Package handshake implements the delegation from a primary identity to a
// session identity.
//
// Each session identity moves through Unrequested, Pending, and then Verified
// or Rejected. Request asks the primary signer to sign the canonical
// authorization message and may block on a human; Verify rebuilds the same
// message and checks the signature through a domain.SignatureValidator.
package handshake
