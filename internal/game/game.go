// Package game is a rock/paper/scissors consumer of authorized session actions.
// A round is only scored when the move was accepted by the session.
package game

import (
	"fmt"
	"math/rand"
	"strings"

	"sessionkey/internal/domain"
	"sessionkey/internal/services/authorization"
)

// Choice is a move.
type Choice string

const (
	Rock     Choice = "rock"
	Paper    Choice = "paper"
	Scissors Choice = "scissors"
)

// Choices lists every move in display order.
var Choices = []Choice{Rock, Paper, Scissors}

// ParseChoice accepts a move name, case-insensitively.
func ParseChoice(s string) (Choice, error) {
	c := Choice(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Choices {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown move %q (want rock, paper or scissors)", s)
}

// Payload is the action descriptor signed for this move.
func (c Choice) Payload() domain.ActionPayload { return domain.ActionPayload("Play " + string(c)) }

// Result of a round.
type Result string

const (
	Draw   Result = "draw"
	Player Result = "player"
	Bot    Result = "bot"
)

var beats = map[Choice]Choice{Rock: Scissors, Scissors: Paper, Paper: Rock}

// Winner scores player against bot.
func Winner(player, bot Choice) Result {
	switch {
	case player == bot:
		return Draw
	case beats[player] == bot:
		return Player
	default:
		return Bot
	}
}

// Submitter is the gate every move goes through.
type Submitter interface {
	SubmitAction(payload domain.ActionPayload) authorization.ActionOutcome
}

// Round is one played move. Bot and Result are empty when the move was rejected.
type Round struct {
	Player  Choice
	Bot     Choice
	Result  Result
	Outcome authorization.ActionOutcome
}

// Game plays rounds against a random bot.
type Game struct {
	session Submitter
	pick    func() Choice
}

// Option configures a Game.
type Option func(*Game)

// WithBot replaces the random bot.
func WithBot(pick func() Choice) Option {
	return func(g *Game) { g.pick = pick }
}

// New returns a game that submits moves through session.
func New(session Submitter, opts ...Option) *Game {
	g := &Game{
		session: session,
		pick:    func() Choice { return Choices[rand.Intn(len(Choices))] },
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Play submits c and scores it if the session accepted the move.
func (g *Game) Play(c Choice) Round {
	r := Round{Player: c, Outcome: g.session.SubmitAction(c.Payload())}
	if !r.Outcome.Accepted() {
		return r
	}
	r.Bot = g.pick()
	r.Result = Winner(c, r.Bot)
	return r
}
