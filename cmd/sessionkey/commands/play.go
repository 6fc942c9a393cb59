package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"sessionkey/internal/game"
	"sessionkey/internal/services/authorization"
)

// play authorizes the session key once, then signs every move with it.
func playCmd() *cobra.Command {
	var confirm bool
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play rock/paper/scissors with session-signed moves",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := appCtx.NewState(ctx)
			if err != nil {
				return err
			}
			events, unsubscribe := st.Subscribe()
			defer unsubscribe()
			go printEvents(events)

			signer, err := primarySigner(confirm)
			if err != nil {
				return err
			}
			fmt.Printf("Session %s (%s)\n", st.ID(), st.Session())
			if _, err := st.Authorize(ctx, signer); err != nil {
				return err
			}
			if !st.IsAuthorized() {
				return fmt.Errorf("session key was not authorized; run play again to retry")
			}

			g := game.New(st)
			for {
				fmt.Printf("Your move (%s, or quit): ", choicesList())
				line, err := readLine(ctx)
				if errors.Is(err, io.EOF) || line == "quit" || line == "q" {
					return nil
				}
				if err != nil {
					return err
				}
				choice, err := game.ParseChoice(line)
				if err != nil {
					fmt.Println(err)
					continue
				}

				r := g.Play(choice)
				if !r.Outcome.Accepted() {
					fmt.Printf("Move rejected: %s (nonce %s)\n", r.Outcome.Reason(), r.Outcome.Nonce())
					continue
				}
				fmt.Printf("You: %s  Bot: %s  -> %s (nonce %s)\n", r.Player, r.Bot, describe(r.Result), r.Outcome.Nonce())
			}
		},
	}
	cmd.Flags().BoolVar(&confirm, "confirm", true, "prompt before the primary wallet signs")
	return cmd
}

func printEvents(events <-chan authorization.Event) {
	for ev := range events {
		switch ev.Kind {
		case authorization.EventPending:
			fmt.Println("[waiting for primary wallet confirmation]")
		case authorization.EventAuthorized:
			fmt.Println("[session key authorized]")
		case authorization.EventRejected:
			if ev.Err != nil {
				fmt.Printf("[authorization rejected: %v]\n", ev.Err)
			} else {
				fmt.Println("[authorization rejected: signature did not verify]")
			}
		}
	}
}

func choicesList() string {
	names := make([]string, len(game.Choices))
	for i, c := range game.Choices {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

func describe(r game.Result) string {
	switch r {
	case game.Player:
		return "you win"
	case game.Bot:
		return "bot wins"
	default:
		return "draw"
	}
}
