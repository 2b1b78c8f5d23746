package util

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// resetTokenBytes is the amount of randomness behind a reset token.
const resetTokenBytes = 32

// GenerateResetToken creates a cryptographically secure URL-safe random token.
func GenerateResetToken() (string, error) {
	bytes := make([]byte, resetTokenBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}
