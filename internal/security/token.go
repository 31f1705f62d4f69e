// Package security holds the small primitives shared by the auth flows:
// random tokens, password hashing and input sanitising.
package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

// TokenBytes is the amount of entropy behind every session, CSRF, remember and reset token.
const TokenBytes = 32

// GenerateToken returns n random bytes encoded as lowercase hex.
func GenerateToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// TokensEqual compares two secrets in constant time. Empty values never match.
func TokensEqual(expected, candidate string) bool {
	if expected == "" || candidate == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(candidate)) == 1
}
