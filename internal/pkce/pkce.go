// Package pkce implements the Proof Key for Code Exchange pieces of the
// OAuth 2.0 authorization flow (RFC 7636): code verifier generation, S256
// code challenge derivation, and challenge verification.
//
// NetSuite only accepts the S256 challenge method, so the plain method is
// intentionally not implemented.
package pkce

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// verifierCharset is the unreserved character set allowed in code verifiers.
// https://datatracker.ietf.org/doc/html/rfc7636#section-4.1
const verifierCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789-._~"

// verifierLength is the generated verifier length. RFC 7636 allows 43..128.
const verifierLength = 64

// NewVerifier generates a random PKCE code verifier.
func NewVerifier() (string, error) {
	buf := make([]byte, verifierLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("reading random bytes: %w", err)
	}
	for i := range buf {
		buf[i] = verifierCharset[int(buf[i])%len(verifierCharset)]
	}
	return string(buf), nil
}

// ValidateVerifier checks that a verifier satisfies the RFC 7636 length and
// character set requirements.
func ValidateVerifier(verifier string) error {
	if len(verifier) < 43 || len(verifier) > 128 {
		return fmt.Errorf("verifier length %d outside allowed range 43..128", len(verifier))
	}
	for i := range len(verifier) {
		if !strings.ContainsRune(verifierCharset, rune(verifier[i])) {
			return fmt.Errorf("verifier contains disallowed character %q at position %d", verifier[i], i)
		}
	}
	return nil
}

// ChallengeS256 derives the S256 code challenge for a verifier:
// base64url (no padding) of the SHA-256 digest.
func ChallengeS256(verifier string) string {
	sum := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// VerifyS256 reports whether challenge is the S256 challenge of verifier.
// Comparison is constant-time.
func VerifyS256(verifier, challenge string) bool {
	if verifier == "" || challenge == "" {
		return false
	}
	derived := ChallengeS256(verifier)
	return subtle.ConstantTimeCompare([]byte(derived), []byte(challenge)) == 1
}

// NewState generates a random state token for CSRF protection of the
// authorization request.
func NewState() string {
	return uuid.NewString()
}
