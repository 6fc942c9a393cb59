package commands

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"sessionkey/internal/crypto"
	"sessionkey/internal/domain"
)

func verifyAuthorizationCmd() *cobra.Command {
	var sessionAddr string
	cmd := &cobra.Command{
		Use:   "verify-authorization <primary-address> <signature>",
		Short: "Verify a primary signature over the delegation message",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !common.IsHexAddress(args[0]) {
				return fmt.Errorf("invalid primary address %q", args[0])
			}
			primary := common.HexToAddress(args[0])
			sig, err := crypto.FromHex(args[1])
			if err != nil {
				return fmt.Errorf("signature: %w", err)
			}

			session, err := sessionFromFlag(cmd, sessionAddr)
			if err != nil {
				return err
			}

			ok, err := appCtx.Handshake.Verify(cmd.Context(), primary, session, domain.AuthorizationSignature(sig))
			if err != nil {
				return err
			}
			fmt.Printf("Message:  %s\n", domain.NewAuthorizationMessage(session))
			if ok {
				fmt.Println("Result:   verified")
			} else {
				fmt.Println("Result:   rejected")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&sessionAddr, "session", "", "session address (default: this device's session key)")
	return cmd
}

// sessionFromFlag returns the identity named by addr, or the local one.
func sessionFromFlag(cmd *cobra.Command, addr string) (domain.SessionIdentity, error) {
	if addr == "" {
		_, id, err := appCtx.Session(cmd.Context())
		return id, err
	}
	if !common.IsHexAddress(addr) {
		return domain.SessionIdentity{}, fmt.Errorf("invalid session address %q", addr)
	}
	return domain.SessionIdentity{Address: common.HexToAddress(addr)}, nil
}
