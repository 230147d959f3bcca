package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// RequestID generates a unique ID for tracking a request through the
// worker and webhook pipeline.
func RequestID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "unknown"
	}
	return hex.EncodeToString(b)
}
