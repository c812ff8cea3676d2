// Package hexid generates random hex identifiers and secrets.
package hexid

import (
	"crypto/rand"
	"encoding/hex"
)

// New returns an 8-character lowercase hex string (4 random bytes),
// suitable for log file names and correlation IDs.
func New() string {
	return random(4)
}

// Secret returns a 48-character lowercase hex string (24 random bytes),
// suitable for webhook shared secrets.
func Secret() string {
	return random(24)
}

func random(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic("hexid: crypto/rand failed: " + err.Error())
	}
	return hex.EncodeToString(b)
}
