package domain

import "errors"

// Error taxonomy for the session key core. Routine cryptographic mismatches
// are not errors; they surface as false results or RejectReason values.
var (
	// ErrStorageUnavailable is returned when the durable store cannot be read
	// or written. No session identity can be derived without it.
	ErrStorageUnavailable = errors.New("sessionkey: storage unavailable")

	// ErrInvalidKeyMaterial is returned when stored or supplied key material is
	// malformed. The caller must regenerate the material.
	ErrInvalidKeyMaterial = errors.New("sessionkey: invalid key material")

	// ErrHandshakeAlreadyPending is returned when an authorization request is
	// already outstanding for the same session identity.
	ErrHandshakeAlreadyPending = errors.New("sessionkey: authorization handshake already pending")

	// ErrVerificationInfrastructureUnavailable is returned when the chain or
	// crypto context needed to evaluate a primary signature cannot be reached.
	ErrVerificationInfrastructureUnavailable = errors.New("sessionkey: verification infrastructure unavailable")

	// ErrSigningUnavailable is returned when the session key cannot sign. The
	// nonce still advances.
	ErrSigningUnavailable = errors.New("sessionkey: signing unavailable")
)
