// Package checksum fingerprints vault files so unchanged ones are skipped on
// sync.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
)

// Sum returns the hex-encoded SHA-256 digest of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Equal reports whether data still matches a stored digest.
func Equal(data []byte, sum string) bool {
	return sum != "" && Sum(data) == sum
}
