package action

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"sessionkey/internal/crypto"
	"sessionkey/internal/domain"
)

// Sign builds the action message for payload at nonce and signs it with the
// session key. next is always nonce+1, including when signing fails with
// domain.ErrSigningUnavailable.
func Sign(
	material domain.SessionKeyMaterial,
	payload domain.ActionPayload,
	nonce domain.ActionNonce,
) (msg domain.ActionMessage, sig domain.ActionSignature, next domain.ActionNonce, err error) {
	msg = domain.NewActionMessage(payload, nonce)
	next = nonce.Next()

	priv, err := crypto.PrivateKey(material)
	if err != nil {
		return msg, nil, next, fmt.Errorf("%w: %w", domain.ErrSigningUnavailable, err)
	}
	raw, err := crypto.SignText(priv, msg.String())
	if err != nil {
		return msg, nil, next, fmt.Errorf("%w: %w", domain.ErrSigningUnavailable, err)
	}
	return msg, domain.ActionSignature(raw), next, nil
}

// Signer owns the nonce counter for one session. It is safe for concurrent
// use; each call observes a distinct nonce.
type Signer struct {
	material domain.SessionKeyMaterial
	log      *zap.Logger

	mu   sync.Mutex
	next domain.ActionNonce
}

// SignerOption configures a Signer.
type SignerOption func(*Signer)

// WithSignerLogger sets the logger.
func WithSignerLogger(l *zap.Logger) SignerOption {
	return func(s *Signer) { s.log = l }
}

// NewSigner returns a signer that issues nonces starting at 0.
func NewSigner(material domain.SessionKeyMaterial, opts ...SignerOption) *Signer {
	s := &Signer{material: material, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sign signs payload with the next nonce. The returned SignedAction carries
// the nonce and message even when err is non-nil.
func (s *Signer) Sign(payload domain.ActionPayload) (domain.SignedAction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	nonce := s.next
	msg, sig, next, err := Sign(s.material, payload, nonce)
	s.next = next

	out := domain.SignedAction{Payload: payload, Nonce: nonce, Message: msg, Signature: sig}
	if err != nil {
		s.log.Error("action signing failed", zap.Stringer("nonce", nonce), zap.Error(err))
		return out, err
	}
	s.log.Debug("action signed", zap.Stringer("nonce", nonce))
	return out, nil
}

// Next returns the nonce the following Sign call will use.
func (s *Signer) Next() domain.ActionNonce {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next
}
