package types

import (
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// AuthorizationMessagePrefix precedes the session identity in the delegation message.
const AuthorizationMessagePrefix = "Authorize session key: "

// AuthorizationMessage is the text the primary identity signs to delegate to a session key.
type AuthorizationMessage string

// String returns the message text.
func (m AuthorizationMessage) String() string { return string(m) }

// NewAuthorizationMessage renders the canonical delegation message for session.
// Signer and verifier must both build it through this function.
func NewAuthorizationMessage(session SessionIdentity) AuthorizationMessage {
	return AuthorizationMessage(AuthorizationMessagePrefix + session.String())
}

// AuthorizationSignature is the primary identity's signature over an AuthorizationMessage.
type AuthorizationSignature []byte

// String returns the 0x-prefixed hex form.
func (s AuthorizationSignature) String() string { return hexutil.Encode(s) }

// HandshakeState is the per-session-identity delegation state.
type HandshakeState int

const (
	HandshakeUnrequested HandshakeState = iota
	HandshakePending
	HandshakeVerified
	HandshakeRejected
)

// String returns a human-readable name for the state.
func (s HandshakeState) String() string {
	switch s {
	case HandshakeUnrequested:
		return "unrequested"
	case HandshakePending:
		return "pending"
	case HandshakeVerified:
		return "verified"
	case HandshakeRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// AuthorizationRecord captures one delegation from a primary identity to a session identity.
// Verified is set only after the signature was independently validated against Primary.
type AuthorizationRecord struct {
	Primary     PrimaryIdentity        `json:"primary"`
	Session     SessionIdentity        `json:"session"`
	Message     AuthorizationMessage   `json:"message"`
	Signature   AuthorizationSignature `json:"signature"`
	Verified    bool                   `json:"verified"`
	RequestedAt time.Time              `json:"requested_at"`
	VerifiedAt  time.Time              `json:"verified_at,omitempty"`
}
