package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// authorizeCmd runs the delegation handshake between the configured primary
// wallet and the device session key and prints the resulting record.
func authorizeCmd() *cobra.Command {
	var (
		confirm bool
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "authorize",
		Short: "Ask the primary wallet to authorize the session key",
		RunE: func(cmd *cobra.Command, args []string) error {
			signer, err := primarySigner(confirm)
			if err != nil {
				return err
			}
			_, session, err := appCtx.Session(cmd.Context())
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			fmt.Println("Waiting for primary wallet confirmation...")
			rec, err := appCtx.Handshake.Authorize(ctx, signer, session)
			if err != nil {
				return fmt.Errorf("authorizing %s: %w", session, err)
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(rec); err != nil {
				return err
			}
			if !rec.Verified {
				return fmt.Errorf("primary signature did not verify; authorization rejected")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&confirm, "confirm", true, "prompt before the primary wallet signs")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "give up waiting for the primary wallet after this long")
	return cmd
}
