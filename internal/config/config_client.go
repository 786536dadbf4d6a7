package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ClientConfig holds settings for the vault CLI client. Values come from
// VAULT_* environment variables and may be overridden by command flags.
type ClientConfig struct {
	// ServerURL is the base URL of the vault HTTP API.
	ServerURL string `env:"VAULT_SERVER_URL" envDefault:"http://localhost:8080"`
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration `env:"VAULT_REQUEST_TIMEOUT" envDefault:"1m"`
	// TokenFile is where the session token is persisted between commands.
	TokenFile string `env:"VAULT_TOKEN_FILE"`
}

// GetClientConfig loads and validates the CLI client configuration.
// TokenFile defaults to $HOME/.file-vault/token.
func GetClientConfig() (*ClientConfig, error) {
	cfg := &ClientConfig{}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}

	if cfg.TokenFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("%w: resolving home dir: %w", ErrInvalidClientConfigs, err)
		}
		cfg.TokenFile = filepath.Join(home, ".file-vault", "token")
	}

	return cfg, cfg.validate()
}

// Validate re-checks the config after command flags were applied.
func (cfg *ClientConfig) Validate() error {
	return cfg.validate()
}
