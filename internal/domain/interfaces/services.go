package interfaces

import (
	"context"

	domaintypes "sessionkey/internal/domain/types"
)

// KeyMaterialService loads or lazily creates the device's session key material.
type KeyMaterialService interface {
	LoadOrCreate(ctx context.Context) (domaintypes.SessionKeyMaterial, error)
}

// IdentityService derives the public session identity from key material.
type IdentityService interface {
	Derive(material domaintypes.SessionKeyMaterial) (domaintypes.SessionIdentity, error)
	Fingerprint(identity domaintypes.SessionIdentity) domaintypes.Fingerprint
}

// HandshakeService runs the delegation from a primary identity to a session identity.
type HandshakeService interface {
	Request(
		ctx context.Context,
		signer PrimarySigner,
		session domaintypes.SessionIdentity,
	) (domaintypes.AuthorizationSignature, error)
	Verify(
		ctx context.Context,
		primary domaintypes.PrimaryIdentity,
		session domaintypes.SessionIdentity,
		signature domaintypes.AuthorizationSignature,
	) (bool, error)
	State(session domaintypes.SessionIdentity) domaintypes.HandshakeState
}
