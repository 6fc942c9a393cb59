package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the session key if absent and print its identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, id, err := appCtx.Session(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Session key ready.\nAddress:     %s\nFingerprint: %s\n", id, appCtx.IDs.Fingerprint(id))
			return nil
		},
	}
}
