package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"sessionkey/internal/wallet"
)

func primaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "primary",
		Short: "Manage the local primary wallet used for demos",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "new",
		Short: "Create a primary account in the keystore (--primary-keystore)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.PrimaryKeystore == "" {
				return fmt.Errorf("keystore dir required (--primary-keystore or PRIMARY_KEYSTORE)")
			}
			if cfg.PrimaryPassword == "" {
				return fmt.Errorf("PRIMARY_PASSWORD must be set")
			}
			addr, err := wallet.NewKeystoreAccount(cfg.PrimaryKeystore, cfg.PrimaryPassword)
			if err != nil {
				return err
			}
			fmt.Printf("Primary account created: %s\n", addr.Hex())
			return nil
		},
	})
	return cmd
}
