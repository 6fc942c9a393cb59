package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"sessionkey/internal/domain"
	"sessionkey/internal/services/action"
)

// sign-action <payload> --nonce N: sign one action with the session key.
func signActionCmd() *cobra.Command {
	var nonce uint64
	cmd := &cobra.Command{
		Use:   "sign-action <payload>",
		Short: "Sign an action message with the session key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			material, _, err := appCtx.Session(cmd.Context())
			if err != nil {
				return err
			}
			msg, sig, next, err := action.Sign(material, domain.ActionPayload(args[0]), domain.ActionNonce(nonce))
			fmt.Printf("Message:    %s\n", msg)
			fmt.Printf("Next nonce: %s\n", next)
			if err != nil {
				return err
			}
			fmt.Printf("Signature:  %s\n", sig)
			return nil
		},
	}
	cmd.Flags().Uint64Var(&nonce, "nonce", 0, "action nonce")
	return cmd
}
