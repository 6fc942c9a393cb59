package authorization_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sessionkey/internal/chain"
	"sessionkey/internal/crypto"
	"sessionkey/internal/domain"
	"sessionkey/internal/services/authorization"
	"sessionkey/internal/services/handshake"
	"sessionkey/internal/wallet"
)

// stubHandshake returns a fixed result and can block until released.
type stubHandshake struct {
	rec     domain.AuthorizationRecord
	err     error
	entered chan struct{}
	release chan struct{}
}

func (h *stubHandshake) Authorize(
	_ context.Context,
	signer domain.PrimarySigner,
	session domain.SessionIdentity,
) (domain.AuthorizationRecord, error) {
	if h.entered != nil {
		close(h.entered)
		<-h.release
	}
	rec := h.rec
	rec.Primary = signer.Address()
	rec.Session = session
	return rec, h.err
}

func newAuthorized(t *testing.T) (*authorization.State, domain.SessionIdentity) {
	t.Helper()
	material, err := crypto.GenerateSessionKey()
	require.NoError(t, err)
	primary, err := wallet.GeneratePrivateKeySigner()
	require.NoError(t, err)

	st, err := authorization.New(material, handshake.New(chain.NewRecoverValidator()))
	require.NoError(t, err)

	rec, err := st.Authorize(context.Background(), primary)
	require.NoError(t, err)
	require.True(t, rec.Verified)
	return st, st.Session()
}

func TestSubmitAction_AcceptedSequence(t *testing.T) {
	st, _ := newAuthorized(t)
	require.True(t, st.IsAuthorized())

	first := st.SubmitAction("rock")
	assert.True(t, first.Accepted())
	assert.Equal(t, domain.ActionNonce(0), first.Nonce())
	assert.Equal(t, domain.ActionPayload("rock"), first.Payload())

	second := st.SubmitAction("rock")
	assert.True(t, second.Accepted())
	assert.Equal(t, domain.ActionNonce(1), second.Nonce())
	assert.Equal(t, domain.ActionNonce(2), st.NextNonce())
}

func TestSubmitAction_NotAuthorized(t *testing.T) {
	material, err := crypto.GenerateSessionKey()
	require.NoError(t, err)
	st, err := authorization.New(material, handshake.New(chain.NewRecoverValidator()))
	require.NoError(t, err)

	out := st.SubmitAction("rock")
	assert.False(t, out.Accepted())
	assert.Equal(t, domain.RejectNotAuthorized, out.Reason())
	assert.Equal(t, domain.ActionNonce(0), st.NextNonce(), "no nonce is consumed without authorization")
}

func TestAuthorize_MismatchStaysUnauthenticated(t *testing.T) {
	material, err := crypto.GenerateSessionKey()
	require.NoError(t, err)
	primary, err := wallet.GeneratePrivateKeySigner()
	require.NoError(t, err)

	st, err := authorization.New(material, &stubHandshake{rec: domain.AuthorizationRecord{Verified: false}})
	require.NoError(t, err)
	events, cancel := st.Subscribe()
	defer cancel()

	rec, err := st.Authorize(context.Background(), primary)
	require.NoError(t, err)
	assert.False(t, rec.Verified)
	assert.Equal(t, authorization.Unauthenticated, st.Status())
	_, ok := st.Record()
	assert.False(t, ok)

	assert.Equal(t, authorization.EventPending, (<-events).Kind)
	assert.Equal(t, authorization.EventRejected, (<-events).Kind)
}

func TestAuthorize_HandshakeErrorAllowsRetry(t *testing.T) {
	material, err := crypto.GenerateSessionKey()
	require.NoError(t, err)
	primary, err := wallet.GeneratePrivateKeySigner()
	require.NoError(t, err)

	hs := &stubHandshake{err: domain.ErrVerificationInfrastructureUnavailable}
	st, err := authorization.New(material, hs)
	require.NoError(t, err)

	_, err = st.Authorize(context.Background(), primary)
	assert.ErrorIs(t, err, domain.ErrVerificationInfrastructureUnavailable)
	assert.ErrorIs(t, st.LastError(), domain.ErrVerificationInfrastructureUnavailable)
	assert.Equal(t, authorization.Unauthenticated, st.Status())

	hs.err = nil
	hs.rec.Verified = true
	_, err = st.Authorize(context.Background(), primary)
	require.NoError(t, err)
	assert.True(t, st.IsAuthorized())
	assert.NoError(t, st.LastError())
}

func TestAuthorize_PendingBlocksSecondCall(t *testing.T) {
	material, err := crypto.GenerateSessionKey()
	require.NoError(t, err)
	primary, err := wallet.GeneratePrivateKeySigner()
	require.NoError(t, err)

	hs := &stubHandshake{
		rec:     domain.AuthorizationRecord{Verified: true},
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	st, err := authorization.New(material, hs)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := st.Authorize(context.Background(), primary)
		done <- err
	}()
	<-hs.entered

	assert.Equal(t, authorization.Pending, st.Status())
	assert.False(t, st.IsAuthorized())
	assert.Equal(t, domain.RejectNotAuthorized, st.SubmitAction("rock").Reason())

	_, err = st.Authorize(context.Background(), primary)
	assert.ErrorIs(t, err, domain.ErrHandshakeAlreadyPending)

	close(hs.release)
	require.NoError(t, <-done)
	assert.True(t, st.IsAuthorized())

	rec, ok := st.Record()
	require.True(t, ok)
	assert.Equal(t, primary.Address(), rec.Primary)
}

func TestSubmitAction_ConcurrentNoncesUnique(t *testing.T) {
	st, _ := newAuthorized(t)

	const n = 16
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[domain.ActionNonce]bool)
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out := st.SubmitAction("paper")
			assert.True(t, out.Accepted())
			mu.Lock()
			assert.False(t, seen[out.Nonce()], "nonce %s issued twice", out.Nonce())
			seen[out.Nonce()] = true
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Len(t, seen, n)
}

func TestSubscribe_ActionEvents(t *testing.T) {
	st, _ := newAuthorized(t)
	events, cancel := st.Subscribe()

	st.SubmitAction("scissors")
	ev := <-events
	assert.Equal(t, authorization.EventActionAccepted, ev.Kind)
	assert.Equal(t, domain.ActionPayload("scissors"), ev.Payload)
	assert.Equal(t, domain.ActionNonce(0), ev.Nonce)
	assert.Equal(t, st.ID(), ev.SessionID)

	cancel()
	cancel()
	_, open := <-events
	assert.False(t, open)
}

func TestNew_InvalidMaterial(t *testing.T) {
	_, err := authorization.New(domain.SessionKeyMaterial{}, &stubHandshake{})
	assert.True(t, errors.Is(err, domain.ErrInvalidKeyMaterial))
}

func TestActionOutcome_ZeroValueIsRejection(t *testing.T) {
	var out authorization.ActionOutcome
	assert.False(t, out.Accepted())
	assert.Equal(t, domain.RejectNotAuthorized, out.Reason())
	assert.Contains(t, out.String(), string(domain.RejectNotAuthorized))
}
