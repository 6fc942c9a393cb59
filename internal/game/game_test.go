package game_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sessionkey/internal/chain"
	"sessionkey/internal/crypto"
	"sessionkey/internal/domain"
	"sessionkey/internal/game"
	"sessionkey/internal/services/authorization"
	"sessionkey/internal/services/handshake"
	"sessionkey/internal/wallet"
)

func TestWinner(t *testing.T) {
	tests := []struct {
		player, bot game.Choice
		want        game.Result
	}{
		{game.Rock, game.Rock, game.Draw},
		{game.Rock, game.Scissors, game.Player},
		{game.Scissors, game.Paper, game.Player},
		{game.Paper, game.Rock, game.Player},
		{game.Rock, game.Paper, game.Bot},
		{game.Paper, game.Scissors, game.Bot},
		{game.Scissors, game.Rock, game.Bot},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, game.Winner(tc.player, tc.bot), "%s vs %s", tc.player, tc.bot)
	}
}

func TestParseChoice(t *testing.T) {
	c, err := game.ParseChoice(" Paper ")
	require.NoError(t, err)
	assert.Equal(t, game.Paper, c)

	_, err = game.ParseChoice("lizard")
	assert.Error(t, err)
}

func newSession(t *testing.T) *authorization.State {
	t.Helper()
	material, err := crypto.GenerateSessionKey()
	require.NoError(t, err)
	st, err := authorization.New(material, handshake.New(chain.NewRecoverValidator()))
	require.NoError(t, err)
	return st
}

func TestPlay_OnlyScoresAcceptedMoves(t *testing.T) {
	st := newSession(t)
	g := game.New(st, game.WithBot(func() game.Choice { return game.Scissors }))

	r := g.Play(game.Rock)
	assert.False(t, r.Outcome.Accepted())
	assert.Equal(t, domain.RejectNotAuthorized, r.Outcome.Reason())
	assert.Empty(t, r.Result)

	primary, err := wallet.GeneratePrivateKeySigner()
	require.NoError(t, err)
	_, err = st.Authorize(context.Background(), primary)
	require.NoError(t, err)

	r = g.Play(game.Rock)
	require.True(t, r.Outcome.Accepted())
	assert.Equal(t, domain.ActionPayload("Play rock"), r.Outcome.Payload())
	assert.Equal(t, domain.ActionNonce(0), r.Outcome.Nonce())
	assert.Equal(t, game.Scissors, r.Bot)
	assert.Equal(t, game.Player, r.Result)

	r = g.Play(game.Paper)
	assert.Equal(t, domain.ActionNonce(1), r.Outcome.Nonce())
	assert.Equal(t, game.Bot, r.Result)
}
