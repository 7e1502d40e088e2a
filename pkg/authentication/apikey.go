// Copyright 2026 ClimaBill Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// apiKeyPrefix makes ClimaBill keys recognizable in secret scanners.
const apiKeyPrefix = "cb_"

// generateAPIKey returns the plaintext key (shown to the caller exactly
// once) and the hash that gets stored.
func generateAPIKey() (plaintext, hash string, err error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("failed to generate API key: %w", err)
	}

	plaintext = apiKeyPrefix + hex.EncodeToString(buf)
	return plaintext, hashAPIKey(plaintext), nil
}

func hashAPIKey(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

func looksLikeAPIKey(raw string) bool {
	return strings.HasPrefix(raw, apiKeyPrefix)
}
