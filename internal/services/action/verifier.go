package action

import (
	"sync"

	"sessionkey/internal/crypto"
	"sessionkey/internal/domain"
)

// Verification is the result of checking an action signature. Exactly one of
// Identity (when Verified) or Reason (otherwise) is meaningful. Nonce is only
// meaningful when HasNonce is set.
type Verification struct {
	Verified bool
	Identity domain.SessionIdentity
	Nonce    domain.ActionNonce
	HasNonce bool
	Reason   domain.RejectReason
}

func verified(id domain.SessionIdentity) Verification {
	return Verification{Verified: true, Identity: id}
}

func mismatch(reason domain.RejectReason) Verification {
	return Verification{Reason: reason}
}

func (v Verification) withNonce(n domain.ActionNonce) Verification {
	v.Nonce, v.HasNonce = n, true
	return v
}

// Verify recovers the signer of message and compares it with expected.
// Malformed signatures are mismatches. A message without a well-formed nonce
// suffix can still verify; HasNonce is false then.
func Verify(
	message domain.ActionMessage,
	signature domain.ActionSignature,
	expected domain.SessionIdentity,
) Verification {
	addr, pub, err := crypto.RecoverText(message.String(), signature)
	if err != nil || addr != expected.Address {
		return mismatch(domain.RejectSignatureMismatch)
	}
	v := verified(domain.SessionIdentity{PublicKey: pub, Address: addr})
	if _, n, err := message.Parse(); err == nil {
		v = v.withNonce(n)
	}
	return v
}

// VerifyNonce is Verify plus a check that the nonce embedded in message is
// expectedNonce. A valid signature over the wrong nonce is rejected.
func VerifyNonce(
	message domain.ActionMessage,
	signature domain.ActionSignature,
	expected domain.SessionIdentity,
	expectedNonce domain.ActionNonce,
) Verification {
	v := Verify(message, signature, expected)
	if !v.Verified {
		return v
	}
	if !v.HasNonce {
		return mismatch(domain.RejectNonceMismatch)
	}
	if v.Nonce != expectedNonce {
		return mismatch(domain.RejectNonceMismatch).withNonce(v.Nonce)
	}
	return v
}

// ReplayGuard verifies a stream of actions from one session key on the
// receiving side. It accepts any nonce at or above the next expected one and
// then moves past it, so gaps are allowed but reuse is not.
type ReplayGuard struct {
	expected domain.SessionIdentity

	mu   sync.Mutex
	next domain.ActionNonce
}

// NewReplayGuard returns a guard for actions signed by expected.
func NewReplayGuard(expected domain.SessionIdentity) *ReplayGuard {
	return &ReplayGuard{expected: expected}
}

// Check verifies one action. Only actions with a valid signature move the
// guard forward.
func (g *ReplayGuard) Check(message domain.ActionMessage, signature domain.ActionSignature) Verification {
	v := Verify(message, signature, g.expected)
	if !v.Verified {
		return v
	}
	if !v.HasNonce {
		return mismatch(domain.RejectNonceMismatch)
	}
	n := v.Nonce

	g.mu.Lock()
	defer g.mu.Unlock()
	if n < g.next {
		return mismatch(domain.RejectReplayedNonce).withNonce(n)
	}
	g.next = n.Next()
	return v
}

// Next returns the lowest nonce the guard will still accept.
func (g *ReplayGuard) Next() domain.ActionNonce {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.next
}
