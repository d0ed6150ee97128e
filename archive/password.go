package archive

import (
	"crypto/rand"
	"errors"
	"fmt"
)

// ErrWeakPassword is returned by ValidatePassword.
var ErrWeakPassword = errors.New("password must be at least 8 characters")

// MinPasswordLength is the shortest bundle password accepted.
const MinPasswordLength = 8

// GeneratePassword returns a random alphanumeric password so it can be
// pasted into any unzip tool. Length is clamped to [8, 128].
func GeneratePassword(length int) (string, error) {
	length = max(MinPasswordLength, min(length, 128))

	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	randomBytes := make([]byte, length)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	password := make([]byte, length)
	for i, b := range randomBytes {
		password[i] = charset[int(b)%len(charset)]
	}
	return string(password), nil
}

// ValidatePassword checks a bundle password before any file is written.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrWeakPassword
	}
	return nil
}
