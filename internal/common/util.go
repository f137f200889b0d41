package common

import (
	"crypto/rand"
	"encoding/hex"
)

// RandomHex returns 2*n hex characters drawn from crypto/rand.
func RandomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// RandomBytes panics if the system random source fails.
func RandomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}

// Wipe zeroes b in place.
func Wipe(b []byte) {
	clear(b)
}
