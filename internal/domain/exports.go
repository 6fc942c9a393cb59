package domain

import (
	interfaces "sessionkey/internal/domain/interfaces"
	types "sessionkey/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	PrimaryIdentity        = types.PrimaryIdentity
	Fingerprint            = types.Fingerprint
	StoreKey               = types.StoreKey
	SessionKeyMaterial     = types.SessionKeyMaterial
	SessionIdentity        = types.SessionIdentity
	AuthorizationMessage   = types.AuthorizationMessage
	AuthorizationSignature = types.AuthorizationSignature
	AuthorizationRecord    = types.AuthorizationRecord
	HandshakeState         = types.HandshakeState
	ActionNonce            = types.ActionNonce
	ActionPayload          = types.ActionPayload
	ActionMessage          = types.ActionMessage
	ActionSignature        = types.ActionSignature
	SignedAction           = types.SignedAction
	RejectReason           = types.RejectReason
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	KeyValueStore      = interfaces.KeyValueStore
	PrimarySigner      = interfaces.PrimarySigner
	SignatureValidator = interfaces.SignatureValidator
	KeyMaterialService = interfaces.KeyMaterialService
	IdentityService    = interfaces.IdentityService
	HandshakeService   = interfaces.HandshakeService
)

// Re-exported constants.
const (
	SessionKeySlot         = types.SessionKeySlot
	SessionKeyMaterialSize = types.SessionKeyMaterialSize

	HandshakeUnrequested = types.HandshakeUnrequested
	HandshakePending     = types.HandshakePending
	HandshakeVerified    = types.HandshakeVerified
	HandshakeRejected    = types.HandshakeRejected

	RejectNotAuthorized     = types.RejectNotAuthorized
	RejectSignatureMismatch = types.RejectSignatureMismatch
	RejectNonceMismatch     = types.RejectNonceMismatch
	RejectReplayedNonce     = types.RejectReplayedNonce
)

// Re-exported constructors.
var (
	SessionKeyMaterialFromBytes = types.SessionKeyMaterialFromBytes
	NewAuthorizationMessage     = types.NewAuthorizationMessage
	NewActionMessage            = types.NewActionMessage
	ErrMalformedActionMessage   = types.ErrMalformedActionMessage
)
