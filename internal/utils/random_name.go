package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// GenerateRandomFilename returns 16 random hex characters followed by the
// lower-cased extension, which must include its leading dot.
func GenerateRandomFilename(ext string) (string, error) {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	return hex.EncodeToString(bytes) + strings.ToLower(ext), nil
}
