package utils

import (
	"crypto/rand"
	"math/big"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomCode returns a random uppercase alphanumeric string of the given
// length, suitable for human-readable identifiers.
func RandomCode(length int) string {
	b := make([]byte, length)
	for i := range b {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			panic(err)
		}
		b[i] = codeAlphabet[num.Int64()]
	}
	return string(b)
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T { return &v }
