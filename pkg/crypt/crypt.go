// Package crypt hashes sensitive values before they are stored. The
// password-reset flow keeps only the digest of its tokens and the
// affiliate click log keeps only the digest of client IPs.
package crypt

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash returns the SHA-256 hex digest of input.
func Hash(input string) string {
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:])
}
