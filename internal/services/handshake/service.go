package handshake

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"sessionkey/internal/domain"
)

// ErrSignatureDeclined is returned by Request when the primary signer fails or
// refuses to sign. The session moves to Rejected.
var ErrSignatureDeclined = errors.New("handshake: primary signer did not sign")

// Service tracks handshake state per session identity.
type Service struct {
	validator domain.SignatureValidator
	log       *zap.Logger
	now       func() time.Time

	mu       sync.Mutex
	states   map[common.Address]domain.HandshakeState
	inflight map[common.Address]struct{}
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithClock overrides time.Now for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New returns a handshake service that validates primary signatures with v.
func New(v domain.SignatureValidator, opts ...Option) *Service {
	s := &Service{
		validator: v,
		log:       zap.NewNop(),
		now:       time.Now,
		states:    make(map[common.Address]domain.HandshakeState),
		inflight:  make(map[common.Address]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Request asks signer to sign the authorization message for session.
//
// Only one request per session identity may be outstanding; a concurrent call
// fails with domain.ErrHandshakeAlreadyPending. If ctx ends first the session
// returns to Unrequested and ctx.Err() is returned. A signer failure moves the
// session to Rejected. On success the session stays Pending until Verify.
func (s *Service) Request(
	ctx context.Context,
	signer domain.PrimarySigner,
	session domain.SessionIdentity,
) (domain.AuthorizationSignature, error) {
	key := session.Address

	s.mu.Lock()
	if _, busy := s.inflight[key]; busy {
		s.mu.Unlock()
		return nil, domain.ErrHandshakeAlreadyPending
	}
	s.inflight[key] = struct{}{}
	s.states[key] = domain.HandshakePending
	s.mu.Unlock()

	msg := domain.NewAuthorizationMessage(session)
	s.log.Info("requesting session key authorization",
		zap.String("session", session.String()),
		zap.String("primary", signer.Address().Hex()),
	)

	type result struct {
		sig []byte
		err error
	}
	done := make(chan result, 1)
	go func() {
		sig, err := signer.SignMessage(ctx, msg.String())
		done <- result{sig: sig, err: err}
	}()

	select {
	case <-ctx.Done():
		s.finish(key, domain.HandshakeUnrequested)
		s.log.Info("authorization request cancelled", zap.String("session", session.String()))
		return nil, ctx.Err()
	case r := <-done:
		if r.err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				s.finish(key, domain.HandshakeUnrequested)
				return nil, ctxErr
			}
			s.finish(key, domain.HandshakeRejected)
			s.log.Warn("primary signer declined", zap.String("session", session.String()), zap.Error(r.err))
			return nil, fmt.Errorf("%w: %w", ErrSignatureDeclined, r.err)
		}
		s.finish(key, domain.HandshakePending)
		return domain.AuthorizationSignature(r.sig), nil
	}
}

// Verify reports whether signature is primary's signature over the
// authorization message for session.
//
// A mismatch or malformed signature is (false, nil) and moves the session to
// Rejected. When the validator cannot reach its chain context the result is
// (false, domain.ErrVerificationInfrastructureUnavailable) and the state is
// left unchanged so the caller may retry.
func (s *Service) Verify(
	ctx context.Context,
	primary domain.PrimaryIdentity,
	session domain.SessionIdentity,
	signature domain.AuthorizationSignature,
) (bool, error) {
	msg := domain.NewAuthorizationMessage(session)

	ok, err := s.validator.IsValidSignature(ctx, primary, msg.String(), signature)
	if err != nil {
		s.log.Warn("authorization verification unavailable",
			zap.String("session", session.String()),
			zap.Error(err),
		)
		if errors.Is(err, domain.ErrVerificationInfrastructureUnavailable) {
			return false, err
		}
		return false, fmt.Errorf("%w: %w", domain.ErrVerificationInfrastructureUnavailable, err)
	}

	state := domain.HandshakeRejected
	if ok {
		state = domain.HandshakeVerified
	}
	s.mu.Lock()
	s.states[session.Address] = state
	s.mu.Unlock()

	s.log.Info("authorization verified",
		zap.String("session", session.String()),
		zap.String("primary", primary.Hex()),
		zap.Bool("valid", ok),
	)
	return ok, nil
}

// State returns the handshake state of session.
func (s *Service) State(session domain.SessionIdentity) domain.HandshakeState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states[session.Address]
}

// Authorize runs Request followed by Verify against signer.Address().
// The returned record is populated as far as the handshake got.
func (s *Service) Authorize(
	ctx context.Context,
	signer domain.PrimarySigner,
	session domain.SessionIdentity,
) (domain.AuthorizationRecord, error) {
	rec := domain.AuthorizationRecord{
		Primary:     signer.Address(),
		Session:     session,
		Message:     domain.NewAuthorizationMessage(session),
		RequestedAt: s.now(),
	}

	sig, err := s.Request(ctx, signer, session)
	if err != nil {
		return rec, err
	}
	rec.Signature = sig

	ok, err := s.Verify(ctx, rec.Primary, session, sig)
	if err != nil {
		return rec, err
	}
	if ok {
		rec.Verified = true
		rec.VerifiedAt = s.now()
	}
	return rec, nil
}

func (s *Service) finish(key common.Address, state domain.HandshakeState) {
	s.mu.Lock()
	delete(s.inflight, key)
	s.states[key] = state
	s.mu.Unlock()
}

// Compile-time assertion that Service implements domain.HandshakeService.
var _ domain.HandshakeService = (*Service)(nil)
