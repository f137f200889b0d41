// Package cryptox holds the password hashing primitives used by the account
// service. Every hasher salts each password with fresh random bytes and has a
// tunable cost, so stored hashes are expensive to brute-force.
package cryptox

import (
	"errors"
	"strings"
)

// ErrPasswordTooLong is returned by Hash when the algorithm cannot accept the
// plaintext length (bcrypt is limited to 72 bytes).
var ErrPasswordTooLong = errors.New("password too long")

// PasswordHasher hashes plaintext passwords and verifies them against stored
// hashes.
type PasswordHasher interface {
	// Hash returns an encoded, salted hash of plaintext. It fails only when
	// the underlying crypto primitive fails.
	Hash(plaintext string) (string, error)

	// Compare reports whether plaintext matches hash. A mismatch or an
	// unparseable hash yields false, never an error.
	Compare(plaintext, hash string) bool
}

// Algorithm names accepted by NewPasswordHasher.
const (
	AlgorithmBcrypt   = "bcrypt"
	AlgorithmArgon2id = "argon2id"
)

// NewPasswordHasher builds a MultiHasher that hashes with algorithm at the
// given cost and still verifies hashes produced by the other algorithm.
func NewPasswordHasher(algorithm string, cost int) (*MultiHasher, error) {
	bc := NewBcryptHasher(cost)
	ar := NewArgon2Hasher(uint32(cost))

	switch algorithm {
	case AlgorithmBcrypt, "":
		return &MultiHasher{primary: bc, bcrypt: bc, argon2: ar}, nil
	case AlgorithmArgon2id:
		return &MultiHasher{primary: ar, bcrypt: bc, argon2: ar}, nil
	default:
		return nil, errors.New("unsupported password algorithm: " + algorithm)
	}
}

// MultiHasher hashes with one algorithm and compares against any supported
// encoding, picked by the hash prefix.
type MultiHasher struct {
	primary PasswordHasher
	bcrypt  *BcryptHasher
	argon2  *Argon2Hasher
}

func (m *MultiHasher) Hash(plaintext string) (string, error) {
	return m.primary.Hash(plaintext)
}

func (m *MultiHasher) Compare(plaintext, hash string) bool {
	switch {
	case strings.HasPrefix(hash, argon2Prefix):
		return m.argon2.Compare(plaintext, hash)
	case strings.HasPrefix(hash, "$2"):
		return m.bcrypt.Compare(plaintext, hash)
	default:
		return false
	}
}
