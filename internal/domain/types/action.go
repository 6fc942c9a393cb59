package types

import (
	"errors"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ActionNonceSeparator joins the payload and the nonce in an ActionMessage.
const ActionNonceSeparator = ". Nonce: "

// ActionNonce scopes one signed action within a session. It starts at 0 and
// only ever moves forward.
type ActionNonce uint64

// String returns the decimal form of the nonce.
func (n ActionNonce) String() string { return strconv.FormatUint(uint64(n), 10) }

// Next returns the nonce that follows n.
func (n ActionNonce) Next() ActionNonce { return n + 1 }

// ActionPayload is an opaque, externally supplied action descriptor (e.g. a move name).
type ActionPayload string

// String returns the payload text.
func (p ActionPayload) String() string { return string(p) }

// ActionMessage is the text the session key signs for one action.
type ActionMessage string

// String returns the message text.
func (m ActionMessage) String() string { return string(m) }

// NewActionMessage renders the canonical action message.
func NewActionMessage(payload ActionPayload, nonce ActionNonce) ActionMessage {
	return ActionMessage(string(payload) + ActionNonceSeparator + nonce.String())
}

// ErrMalformedActionMessage is returned when a message does not end in a nonce suffix.
var ErrMalformedActionMessage = errors.New("action message: missing or malformed nonce suffix")

// Parse splits the message back into payload and nonce. The last separator
// wins so payloads may themselves contain the separator text.
func (m ActionMessage) Parse() (ActionPayload, ActionNonce, error) {
	s := string(m)
	i := strings.LastIndex(s, ActionNonceSeparator)
	if i < 0 {
		return "", 0, ErrMalformedActionMessage
	}
	digits := s[i+len(ActionNonceSeparator):]
	if digits == "" || strings.TrimLeft(digits, "0123456789") != "" {
		return "", 0, ErrMalformedActionMessage
	}
	// Reject leading zeros so every nonce has exactly one textual form.
	if len(digits) > 1 && digits[0] == '0' {
		return "", 0, ErrMalformedActionMessage
	}
	n, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return "", 0, ErrMalformedActionMessage
	}
	return ActionPayload(s[:i]), ActionNonce(n), nil
}

// ActionSignature is the session key's signature over an ActionMessage.
type ActionSignature []byte

// String returns the 0x-prefixed hex form.
func (s ActionSignature) String() string { return hexutil.Encode(s) }

// SignedAction bundles one signing attempt's output.
type SignedAction struct {
	Payload   ActionPayload   `json:"payload"`
	Nonce     ActionNonce     `json:"nonce"`
	Message   ActionMessage   `json:"message"`
	Signature ActionSignature `json:"signature"`
}

// RejectReason explains a routine rejection. It is a value, not an error.
type RejectReason string

const (
	RejectNotAuthorized     RejectReason = "not_authorized"
	RejectSignatureMismatch RejectReason = "signature_mismatch"

	// Verifier-level detail. AuthorizationState reports both as a signature mismatch.
	RejectNonceMismatch RejectReason = "nonce_mismatch"
	RejectReplayedNonce RejectReason = "replayed_nonce"
)

// String returns the reason code.
func (r RejectReason) String() string { return string(r) }
