package authorization

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sessionkey/internal/crypto"
	"sessionkey/internal/domain"
	"sessionkey/internal/services/action"
)

// Status is the externally visible authorization state.
type Status int

const (
	Unauthenticated Status = iota
	Pending
	Authorized
)

func (s Status) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case Pending:
		return "pending"
	case Authorized:
		return "authorized"
	default:
		return "unknown"
	}
}

// Handshaker runs the delegation handshake for a session identity.
type Handshaker interface {
	Authorize(
		ctx context.Context,
		signer domain.PrimarySigner,
		session domain.SessionIdentity,
	) (domain.AuthorizationRecord, error)
}

// State is the authorization state machine for one session key.
type State struct {
	id        uuid.UUID
	session   domain.SessionIdentity
	handshake Handshaker
	signer    *action.Signer
	log       *zap.Logger
	now       func() time.Time

	mu      sync.Mutex
	status  Status
	record  domain.AuthorizationRecord
	lastErr error

	subMu sync.Mutex
	subs  map[chan Event]struct{}
}

// Option configures a State.
type Option func(*State)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *State) { s.log = l }
}

// WithClock overrides time.Now for event timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *State) { s.now = now }
}

// New returns an Unauthenticated state for the session key material.
func New(material domain.SessionKeyMaterial, hs Handshaker, opts ...Option) (*State, error) {
	session, err := crypto.DeriveIdentity(material)
	if err != nil {
		return nil, err
	}
	s := &State{
		id:        uuid.New(),
		session:   session,
		handshake: hs,
		log:       zap.NewNop(),
		now:       time.Now,
		subs:      make(map[chan Event]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(zap.String("session_id", s.id.String()))
	s.signer = action.NewSigner(material, action.WithSignerLogger(s.log))
	return s, nil
}

// ID returns the session's unique identifier.
func (s *State) ID() uuid.UUID { return s.id }

// Session returns the session identity.
func (s *State) Session() domain.SessionIdentity { return s.session }

// Status returns the current status.
func (s *State) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// IsAuthorized reports whether the delegation has been verified.
func (s *State) IsAuthorized() bool { return s.Status() == Authorized }

// Record returns the verified authorization record, if any.
func (s *State) Record() (domain.AuthorizationRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record, s.status == Authorized
}

// LastError returns the error of the last failed authorization attempt.
func (s *State) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// NextNonce returns the nonce the next SubmitAction will sign with.
func (s *State) NextNonce() domain.ActionNonce { return s.signer.Next() }

// Authorize asks signer to delegate to this session key and verifies the
// result. The state is Pending for the duration of the call.
//
// A mismatch returns the unverified record with a nil error and leaves the
// state Unauthenticated. Handshake faults are returned as errors and also
// leave the state Unauthenticated. Calling Authorize when already Authorized
// returns the existing record.
func (s *State) Authorize(ctx context.Context, signer domain.PrimarySigner) (domain.AuthorizationRecord, error) {
	s.mu.Lock()
	switch s.status {
	case Authorized:
		rec := s.record
		s.mu.Unlock()
		return rec, nil
	case Pending:
		s.mu.Unlock()
		return domain.AuthorizationRecord{}, domain.ErrHandshakeAlreadyPending
	}
	s.status = Pending
	s.mu.Unlock()

	s.log.Info("authorization pending", zap.String("primary", signer.Address().Hex()))
	s.publish(Event{Kind: EventPending})

	rec, err := s.handshake.Authorize(ctx, signer, s.session)

	s.mu.Lock()
	if err != nil || !rec.Verified {
		s.status = Unauthenticated
		s.lastErr = err
		s.mu.Unlock()
		s.log.Warn("authorization rejected", zap.Error(err))
		s.publish(Event{Kind: EventRejected, Err: err})
		return rec, err
	}
	s.status = Authorized
	s.record = rec
	s.lastErr = nil
	s.mu.Unlock()

	s.log.Info("session authorized", zap.String("primary", rec.Primary.Hex()))
	s.publish(Event{Kind: EventAuthorized})
	return rec, nil
}

// SubmitAction signs payload with the next nonce and verifies it.
//
// The outcome is accepted only when the session is authorized, the signature
// recovers to the session identity, and the embedded nonce equals the nonce
// just issued. Calls are serialized so no two observe the same nonce.
func (s *State) SubmitAction(payload domain.ActionPayload) ActionOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != Authorized {
		out := rejected(payload, 0, domain.RejectNotAuthorized)
		s.publishOutcome(out, nil)
		return out
	}

	signed, err := s.signer.Sign(payload)
	if err != nil {
		out := rejected(payload, signed.Nonce, domain.RejectSignatureMismatch)
		s.publishOutcome(out, err)
		return out
	}

	v := action.VerifyNonce(signed.Message, signed.Signature, s.session, signed.Nonce)
	if !v.Verified {
		s.log.Warn("action verification failed",
			zap.Stringer("nonce", signed.Nonce),
			zap.Stringer("reason", v.Reason),
		)
		out := rejected(payload, signed.Nonce, domain.RejectSignatureMismatch)
		s.publishOutcome(out, nil)
		return out
	}

	out := accepted(payload, signed.Nonce)
	s.publishOutcome(out, nil)
	return out
}

// Subscribe returns a channel of events and a function that unsubscribes and
// closes it. Slow subscribers miss events rather than block the session.
func (s *State) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)
	s.subMu.Lock()
	s.subs[ch] = struct{}{}
	s.subMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, ch)
			s.subMu.Unlock()
			close(ch)
		})
	}
}

func (s *State) publishOutcome(out ActionOutcome, err error) {
	ev := Event{Payload: out.payload, Nonce: out.nonce, Reason: out.reason, Err: err}
	if out.accepted {
		ev.Kind = EventActionAccepted
	} else {
		ev.Kind = EventActionRejected
	}
	s.publish(ev)
}

func (s *State) publish(ev Event) {
	ev.SessionID = s.id
	ev.At = s.now()

	s.subMu.Lock()
	defer s.subMu.Unlock()
	for ch := range s.subs {
		select {
		case ch <- ev:
		default:
			s.log.Warn("dropping event for slow subscriber", zap.Stringer("kind", ev.Kind))
		}
	}
}
