package tokenstore

import "context"

// TokenStore reads and writes the saved access token.
type TokenStore interface {
	// Read returns the saved token. Returns an error if the token is
	// missing or empty.
	Read(ctx context.Context) (string, error)

	// Write persists the token, overwriting any previous value. Returns an
	// error for read-only backends.
	Write(ctx context.Context, token string) error

	// Source describes where the token lives, for display purposes.
	Source() string
}
