package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sessionkey/internal/app"
	"sessionkey/internal/logger"
)

var (
	cfg    app.Config
	appCtx *app.App

	flagHome            string
	flagStore           string
	flagPassphrase      string
	flagRPC             string
	flagLogLevel        string
	flagPrimaryKeystore string
	flagPrimaryAddress  string
)

func Execute() error {
	root := &cobra.Command{
		Use:           "sessionkey",
		Short:         "Session key delegation and signed actions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = app.LoadConfig()
			if err != nil {
				return err
			}
			applyFlags(cmd)
			if err := cfg.Normalize(); err != nil {
				return err
			}
			if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
				return err
			}

			logger.InitLoggerWithConfig(logger.Config{
				Level:       cfg.LogLevel,
				Stage:       cfg.Stage,
				EnableJSON:  cfg.Stage == logger.StageProduction,
				EnableColor: cfg.Stage != logger.StageProduction,
			})

			appCtx, err = app.New(cmd.Context(), cfg, logger.Log)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if appCtx != nil {
				appCtx.Close()
			}
			_ = logger.Sync()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flagHome, "home", "", "state dir (default ~/.sessionkey, env SESSIONKEY_HOME)")
	pf.StringVar(&flagStore, "store", "", "key store: file|postgres|secretsmanager|memory (env SESSIONKEY_STORE)")
	pf.StringVarP(&flagPassphrase, "passphrase", "p", "", "passphrase sealing the session key at rest")
	pf.StringVar(&flagRPC, "rpc", "", "chain RPC URL for smart-wallet signatures (env ETH_RPC_URL)")
	pf.StringVar(&flagLogLevel, "log-level", "", "debug|info|warn|error (env LOG_LEVEL)")
	pf.StringVar(&flagPrimaryKeystore, "primary-keystore", "", "keystore dir of the primary account")
	pf.StringVar(&flagPrimaryAddress, "primary-address", "", "primary account address")

	root.AddCommand(
		initCmd(),
		identityCmd(),
		primaryCmd(),
		authorizeCmd(),
		verifyAuthorizationCmd(),
		signActionCmd(),
		verifyActionCmd(),
		playCmd(),
	)

	err := root.ExecuteContext(context.Background())
	if err != nil {
		logger.Log.Debug("command failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	return err
}

// applyFlags lets explicitly set flags override environment configuration.
func applyFlags(cmd *cobra.Command) {
	set := func(name string, dst *string, val string) {
		if cmd.Flags().Changed(name) {
			*dst = val
		}
	}
	set("home", &cfg.Home, flagHome)
	set("passphrase", &cfg.Passphrase, flagPassphrase)
	set("rpc", &cfg.RPCURL, flagRPC)
	set("log-level", &cfg.LogLevel, flagLogLevel)
	set("primary-keystore", &cfg.PrimaryKeystore, flagPrimaryKeystore)
	set("primary-address", &cfg.PrimaryAddress, flagPrimaryAddress)
	if cmd.Flags().Changed("store") {
		cfg.Store = app.StoreKind(flagStore)
	}
}
