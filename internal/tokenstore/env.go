package tokenstore

import (
	"context"
	"fmt"
	"os"
)

// EnvStore reads the token from an environment variable. Useful when the
// token is exported by some outer tooling; `token set` cannot target it.
type EnvStore struct {
	envKey string
}

// Compile-time check to ensure EnvStore implements TokenStore
var _ TokenStore = (*EnvStore)(nil)

// NewEnvStore creates an EnvStore for the given environment variable.
// Returns an error if the variable name is empty or not set.
func NewEnvStore(envKey string) (*EnvStore, error) {
	if envKey == "" {
		return nil, fmt.Errorf("environment key cannot be empty")
	}

	if _, exists := os.LookupEnv(envKey); !exists {
		return nil, fmt.Errorf("environment variable %s not set", envKey)
	}

	return &EnvStore{envKey: envKey}, nil
}

// Read returns the token from the environment variable.
func (e *EnvStore) Read(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	token := os.Getenv(e.envKey)
	if token == "" {
		return "", fmt.Errorf("environment variable %s is empty", e.envKey)
	}
	return token, nil
}

// Write is not supported; environment variables are read-only here.
func (e *EnvStore) Write(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return fmt.Errorf("environment variable storage is read-only")
}

// Source returns the environment variable name.
func (e *EnvStore) Source() string {
	return "environment variable " + e.envKey
}
