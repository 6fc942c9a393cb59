package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"sessionkey/internal/crypto"
)

func identityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "identity",
		Short: "Print the session identity and fingerprint",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, id, err := appCtx.Session(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Address:     %s\n", id)
			fmt.Printf("Public key:  %s\n", crypto.Hex(id.PublicKey))
			fmt.Printf("Fingerprint: %s\n", appCtx.IDs.Fingerprint(id))
			return nil
		},
	}
}
