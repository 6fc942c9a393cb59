package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"sessionkey/internal/crypto"
	"sessionkey/internal/domain"
	"sessionkey/internal/services/action"
)

// verify-action <message> <signature>: recover the signer and compare it to
// the session identity, optionally also checking the nonce.
func verifyActionCmd() *cobra.Command {
	var (
		sessionAddr string
		nonce       uint64
	)
	cmd := &cobra.Command{
		Use:   "verify-action <message> <signature>",
		Short: "Verify an action signature against a session identity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sig, err := crypto.FromHex(args[1])
			if err != nil {
				return fmt.Errorf("signature: %w", err)
			}
			session, err := sessionFromFlag(cmd, sessionAddr)
			if err != nil {
				return err
			}

			msg := domain.ActionMessage(args[0])
			var v action.Verification
			if cmd.Flags().Changed("nonce") {
				v = action.VerifyNonce(msg, domain.ActionSignature(sig), session, domain.ActionNonce(nonce))
			} else {
				v = action.Verify(msg, domain.ActionSignature(sig), session)
			}

			nonceText := "no nonce"
			if v.HasNonce {
				nonceText = "nonce " + v.Nonce.String()
			}
			if v.Verified {
				fmt.Printf("verified: signer %s, %s\n", v.Identity, nonceText)
				return nil
			}
			fmt.Printf("rejected: %s (%s)\n", v.Reason, nonceText)
			return nil
		},
	}
	cmd.Flags().StringVar(&sessionAddr, "session", "", "expected session address (default: this device's session key)")
	cmd.Flags().Uint64Var(&nonce, "nonce", 0, "expected nonce; checked only when set")
	return cmd
}
