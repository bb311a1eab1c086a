package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateRandomID returns a random 16-byte (32 hex character) id,
// used as the opaque identity for users and tasks.
func GenerateRandomID() (string, error) {
	bytes := make([]byte, 16)
	_, err := rand.Read(bytes)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
