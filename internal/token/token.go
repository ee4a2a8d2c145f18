// Package token generates opaque confirmation tokens.
package token

import (
	"crypto/rand"
	"math/big"
)

const (
	// Length is the fixed token length in characters.
	Length = 25
	// alphabet is the full alphanumeric set; tokens travel in URLs so the
	// alphabet must stay URL-safe.
	alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// Generate returns a 25-character token drawn uniformly from [A-Za-z0-9].
// Collisions are not checked against the store; with 62^25 possible values
// they are treated as structurally impossible.
func Generate() string {
	b := make([]byte, Length)
	for i := range b {
		idx, err := cryptoRandInt(len(alphabet))
		if err != nil {
			// Fallback (should never happen in practice)
			idx = 0
		}
		b[i] = alphabet[idx]
	}
	return string(b)
}

// cryptoRandInt returns a random integer in [0, max) from crypto/rand.
func cryptoRandInt(max int) (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		return 0, err
	}
	return int(n.Int64()), nil
}
