package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

// tokenBytes gives 256 bits of entropy, enough to make edit tokens
// unguessable by construction.
const tokenBytes = 32

// NewEditToken generates the capability string that authorizes all posting
// mutations. Generated once at creation, never rotated.
func NewEditToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate edit token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// SecureCompare compares two tokens in constant time.
func SecureCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
