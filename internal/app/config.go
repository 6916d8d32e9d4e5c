// Package app holds the tool's configuration: NetSuite connection settings,
// simulator targeting, and where the pasted access token is kept.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/user"
	"path/filepath"

	"github.com/go-playground/validator/v10"

	"github.com/fieldpay/nsdebug/internal/tokenstore"
)

// LogFormat represents the logging output format.
type LogFormat string

const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
)

// TokenStorageType represents the storage backends for the saved access token.
type TokenStorageType string

const (
	TokenStorageTypeFile    TokenStorageType = "file"
	TokenStorageTypeEnv     TokenStorageType = "env"
	TokenStorageTypeKeyring TokenStorageType = "keyring"
)

// Default configuration values. The NetSuite defaults are the sample values
// from the original setup notes; authurl warns when they are still in place.
const (
	DefaultConfigLogFormat   = LogFormatText
	DefaultConfigAccountID   = "1234567"
	DefaultConfigClientID    = "your_client_id_here"
	DefaultConfigRedirectURI = "fieldpay://callback"
	DefaultConfigScope       = "restlets rest_webservices"
	DefaultConfigDevice      = "iPhone 16"
	DefaultConfigBundleID    = "Fieldpay.fieldpay"
	DefaultConfigProcess     = "fieldpay"
	DefaultConfigTokenStore  = TokenStorageTypeFile

	// KeyringService namespaces the saved token in the OS keyring.
	KeyringService = "nsdebug-netsuite-token"
)

// NetSuiteConfig holds the OAuth application settings under test.
type NetSuiteConfig struct {
	AccountID    string `json:"account_id" validate:"required"`
	ClientID     string `json:"client_id" validate:"required"`
	ClientSecret string `json:"client_secret,omitempty"`
	RedirectURI  string `json:"redirect_uri" validate:"required"`
	Scope        string `json:"scope" validate:"required"`
}

// SimulatorConfig identifies the simulator and app being debugged.
type SimulatorConfig struct {
	Device   string `json:"device" validate:"required"`
	BundleID string `json:"bundle_id" validate:"required"`
	Process  string `json:"process" validate:"required"`
}

// TokenConfig describes where the pasted NetSuite access token is stored
// between runs.
type TokenConfig struct {
	Storage TokenStorageType `json:"storage" validate:"required,oneof=file env keyring"`

	// Storage-specific settings (mutually exclusive based on Storage type)
	File        string `json:"file,omitempty"`         // For file storage: path to token file
	EnvKey      string `json:"env_key,omitempty"`      // For env storage: environment variable name
	KeyringUser string `json:"keyring_user,omitempty"` // For keyring storage: user identifier
}

// NewTokenStore creates a TokenStore from the token storage configuration.
func (t *TokenConfig) NewTokenStore() (tokenstore.TokenStore, error) {
	switch t.Storage {
	case TokenStorageTypeFile:
		return tokenstore.NewFileStore(t.File)
	case TokenStorageTypeEnv:
		return tokenstore.NewEnvStore(t.EnvKey)
	case TokenStorageTypeKeyring:
		return tokenstore.NewKeyringStore(KeyringService, t.KeyringUser)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", t.Storage)
	}
}

// Config holds the tool's configuration.
type Config struct {
	// LogLevel for logging output (defaults to Info if unset).
	LogLevel  slog.Level      `json:"log_level"`
	LogFormat LogFormat       `json:"log_format" validate:"oneof=text json"`
	NetSuite  NetSuiteConfig  `json:"netsuite"`
	Simulator SimulatorConfig `json:"simulator"`
	Token     TokenConfig     `json:"token"`
}

// Default creates a new Config with default values applied.
func Default() (*Config, error) {
	cfg := &Config{}
	if err := cfg.ApplyDefaults(); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}
	return cfg, nil
}

// ApplyDefaults fills unset config fields with the sample/debug defaults.
func (c *Config) ApplyDefaults() error {
	if c.LogFormat == "" {
		c.LogFormat = DefaultConfigLogFormat
	}
	if c.NetSuite.AccountID == "" {
		c.NetSuite.AccountID = DefaultConfigAccountID
	}
	if c.NetSuite.ClientID == "" {
		c.NetSuite.ClientID = DefaultConfigClientID
	}
	if c.NetSuite.RedirectURI == "" {
		c.NetSuite.RedirectURI = DefaultConfigRedirectURI
	}
	if c.NetSuite.Scope == "" {
		c.NetSuite.Scope = DefaultConfigScope
	}
	if c.Simulator.Device == "" {
		c.Simulator.Device = DefaultConfigDevice
	}
	if c.Simulator.BundleID == "" {
		c.Simulator.BundleID = DefaultConfigBundleID
	}
	if c.Simulator.Process == "" {
		c.Simulator.Process = DefaultConfigProcess
	}
	if c.Token.Storage == "" {
		c.Token.Storage = DefaultConfigTokenStore
	}

	// Dynamic defaults based on storage type
	switch c.Token.Storage {
	case TokenStorageTypeFile:
		if c.Token.File == "" {
			configDir, err := os.UserConfigDir()
			if err != nil {
				return fmt.Errorf("token.file required (auto-detect failed: %w)", err)
			}
			c.Token.File = filepath.Join(configDir, "nsdebug", "token")
		}
	case TokenStorageTypeKeyring:
		if c.Token.KeyringUser == "" {
			currentUser, err := user.Current()
			if err != nil {
				return fmt.Errorf("token.keyring_user required (auto-detect failed: %w)", err)
			}
			c.Token.KeyringUser = currentUser.Username
		}
	case TokenStorageTypeEnv:
		// env_key must be explicitly configured (no sensible default)
	}

	return nil
}

// Validate validates the configuration using struct tags and enum values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	switch c.Token.Storage {
	case TokenStorageTypeFile:
		if c.Token.File == "" {
			return errors.New("file path required for file storage")
		}
	case TokenStorageTypeEnv:
		if c.Token.EnvKey == "" {
			return errors.New("env_key required for env storage")
		}
	case TokenStorageTypeKeyring:
		if c.Token.KeyringUser == "" {
			return errors.New("keyring_user required for keyring storage")
		}
	}

	return nil
}
