package app

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
)

// StoreKind selects the durable key-value backend.
type StoreKind string

const (
	StoreFile           StoreKind = "file"
	StorePostgres       StoreKind = "postgres"
	StoreSecretsManager StoreKind = "secretsmanager"
	StoreMemory         StoreKind = "memory"
)

// Environment variables read by LoadConfig.
const (
	EnvHome            = "SESSIONKEY_HOME"
	EnvStore           = "SESSIONKEY_STORE"
	EnvPassphrase      = "SESSIONKEY_PASSPHRASE"
	EnvDatabaseURL     = "DATABASE_URL"
	EnvSecretID        = "SESSIONKEY_SECRET_ID"
	EnvRPCURL          = "ETH_RPC_URL"
	EnvChainID         = "ETH_CHAIN_ID"
	EnvLogLevel        = "LOG_LEVEL"
	EnvStage           = "STAGE"
	EnvPrimaryKeystore = "PRIMARY_KEYSTORE"
	EnvPrimaryAddress  = "PRIMARY_ADDRESS"
	EnvPrimaryPassword = "PRIMARY_PASSWORD"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home       string    // local state directory, e.g. $HOME/.sessionkey
	Store      StoreKind // key-value backend for the session key slot
	Passphrase string    // optional; seals the session key at rest

	DatabaseURL string // postgres store
	SecretID    string // secretsmanager store: secret name prefix

	RPCURL  string   // optional chain RPC for EIP-1271 primary wallets
	ChainID *big.Int // optional expected chain id of RPCURL

	LogLevel string
	Stage    string

	PrimaryKeystore string // keystore directory holding the primary account
	PrimaryAddress  string
	PrimaryPassword string
}

var (
	ErrUnknownStore   = errors.New("config: unknown store kind")
	ErrMissingSetting = errors.New("config: missing required setting")
)

// LoadConfig reads Config from the environment, loading a .env file first
// when one exists.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		Home:            os.Getenv(EnvHome),
		Store:           StoreKind(strings.ToLower(getEnvWithDefault(EnvStore, string(StoreFile)))),
		Passphrase:      os.Getenv(EnvPassphrase),
		DatabaseURL:     os.Getenv(EnvDatabaseURL),
		SecretID:        getEnvWithDefault(EnvSecretID, "sessionkey"),
		RPCURL:          os.Getenv(EnvRPCURL),
		LogLevel:        getEnvWithDefault(EnvLogLevel, "info"),
		Stage:           getEnvWithDefault(EnvStage, "dev"),
		PrimaryKeystore: os.Getenv(EnvPrimaryKeystore),
		PrimaryAddress:  os.Getenv(EnvPrimaryAddress),
		PrimaryPassword: os.Getenv(EnvPrimaryPassword),
	}
	if raw := os.Getenv(EnvChainID); raw != "" {
		id, ok := new(big.Int).SetString(raw, 0)
		if !ok {
			return Config{}, fmt.Errorf("%s: not an integer: %q", EnvChainID, raw)
		}
		cfg.ChainID = id
	}
	return cfg, nil
}

// Normalize fills the default home directory.
func (c *Config) Normalize() error {
	if c.Home != "" {
		return nil
	}
	dir, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	c.Home = filepath.Join(dir, ".sessionkey")
	return nil
}

// Validate checks that the selected backends have what they need.
func (c Config) Validate() error {
	switch c.Store {
	case StoreFile, StoreMemory:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("%w: %s for store %q", ErrMissingSetting, EnvDatabaseURL, c.Store)
		}
	case StoreSecretsManager:
		if c.SecretID == "" {
			return fmt.Errorf("%w: %s for store %q", ErrMissingSetting, EnvSecretID, c.Store)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStore, c.Store)
	}
	if c.PrimaryAddress != "" && !common.IsHexAddress(c.PrimaryAddress) {
		return fmt.Errorf("%s: not an address: %q", EnvPrimaryAddress, c.PrimaryAddress)
	}
	return nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
