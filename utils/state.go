package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// GenerateStateToken returns a URL-safe random token used as the OAuth
// state parameter, with 256 bits of entropy.
func GenerateStateToken() (string, error) {
	const numBytes = 32 // 256 bits
	buf := make([]byte, numBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate state token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
