package utils

import (
	"crypto/md5"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// MD5Hash generates the MD5 hex digest of input, normalized for use as
// a cache key.
func MD5Hash(input string) string {
	hash := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(input))))
	return hex.EncodeToString(hash[:])
}

// GenerateRandomID generates a short random hex ID.
func GenerateRandomID(length int) string {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to timestamp-based ID
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(bytes)[:length]
}
