package authorization

import (
	"time"

	"github.com/google/uuid"

	"sessionkey/internal/domain"
)

// EventKind identifies a notification.
type EventKind int

const (
	EventPending EventKind = iota + 1
	EventAuthorized
	EventRejected
	EventActionAccepted
	EventActionRejected
)

func (k EventKind) String() string {
	switch k {
	case EventPending:
		return "pending"
	case EventAuthorized:
		return "authorized"
	case EventRejected:
		return "rejected"
	case EventActionAccepted:
		return "action_accepted"
	case EventActionRejected:
		return "action_rejected"
	default:
		return "unknown"
	}
}

// Event is delivered to subscribers on every state transition and action.
type Event struct {
	Kind      EventKind
	SessionID uuid.UUID
	At        time.Time

	// Action events.
	Payload domain.ActionPayload
	Nonce   domain.ActionNonce
	Reason  domain.RejectReason

	// Set on EventRejected and on action rejections caused by a signing fault.
	Err error
}

// subscriberBuffer is the per-subscriber queue length. Events beyond it are
// dropped for that subscriber.
const subscriberBuffer = 32
