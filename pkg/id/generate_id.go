package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// NewID32 returns exactly 32 hex characters (no separators/prefixes).
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// NewHumanCode returns a short display code like "C1736123456789".
// Millisecond resolution keeps collisions unlikely for a single facility;
// the unique index on the column is the backstop.
func NewHumanCode() string {
	return fmt.Sprintf("C%d", time.Now().UnixMilli())
}
