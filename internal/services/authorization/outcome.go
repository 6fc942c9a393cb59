package authorization

import (
	"fmt"

	"sessionkey/internal/domain"
)

// ActionOutcome is the result of SubmitAction. Its zero value is a
// NotAuthorized rejection; accepted outcomes can only be produced inside this
// package.
type ActionOutcome struct {
	accepted bool
	nonce    domain.ActionNonce
	reason   domain.RejectReason
	payload  domain.ActionPayload
}

func accepted(payload domain.ActionPayload, nonce domain.ActionNonce) ActionOutcome {
	return ActionOutcome{accepted: true, nonce: nonce, payload: payload}
}

func rejected(payload domain.ActionPayload, nonce domain.ActionNonce, reason domain.RejectReason) ActionOutcome {
	return ActionOutcome{nonce: nonce, reason: reason, payload: payload}
}

// Accepted reports whether the action was signed, verified and matched its nonce.
func (o ActionOutcome) Accepted() bool { return o.accepted }

// Nonce returns the nonce the action was signed with. NotAuthorized
// rejections consume no nonce and report 0.
func (o ActionOutcome) Nonce() domain.ActionNonce { return o.nonce }

// Reason returns why the action was rejected; empty when accepted.
func (o ActionOutcome) Reason() domain.RejectReason {
	if !o.accepted && o.reason == "" {
		return domain.RejectNotAuthorized
	}
	return o.reason
}

// Payload echoes the submitted payload.
func (o ActionOutcome) Payload() domain.ActionPayload { return o.payload }

func (o ActionOutcome) String() string {
	if o.accepted {
		return fmt.Sprintf("accepted(%s, nonce=%s)", o.payload, o.nonce)
	}
	return fmt.Sprintf("rejected(%s, %s, nonce=%s)", o.payload, o.Reason(), o.nonce)
}
