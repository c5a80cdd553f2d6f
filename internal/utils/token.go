package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// NewSecureToken returns 32 bytes of cryptographically secure randomness
// hex-encoded (64 characters). It is the unguessable public identifier for
// a contract signing link.
func NewSecureToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
