package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	argon2Prefix  = "$argon2id$"
	argon2Memory  = 64 * 1024
	argon2Threads = 4
	argon2KeyLen  = 32
	argon2SaltLen = 16
)

// Argon2Hasher hashes passwords with Argon2id and encodes them in the PHC
// string format: $argon2id$v=19$m=65536,t=<time>,p=4$<salt>$<hash>.
type Argon2Hasher struct {
	time uint32
}

// NewArgon2Hasher uses time as the number of passes over memory.
func NewArgon2Hasher(time uint32) *Argon2Hasher {
	if time < 1 {
		time = 1
	}
	return &Argon2Hasher{time: time}
}

func (h *Argon2Hasher) Hash(plaintext string) (string, error) {
	salt := common.RandomBytes(argon2SaltLen)
	password := []byte(plaintext)
	defer common.Wipe(password)

	key := argon2.IDKey(password, salt, h.time, argon2Memory, argon2Threads, argon2KeyLen)

	return fmt.Sprintf("%sv=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2Prefix, argon2.Version, argon2Memory, h.time, argon2Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

func (h *Argon2Hasher) Compare(plaintext, hash string) bool {
	p, salt, key, err := decodeArgon2(hash)
	if err != nil {
		return false
	}
	candidate := argon2.IDKey([]byte(plaintext), salt, p.time, p.memory, p.threads, uint32(len(key)))
	return subtle.ConstantTimeCompare(key, candidate) == 1
}

type argon2Params struct {
	memory  uint32
	time    uint32
	threads uint8
}

func decodeArgon2(hash string) (argon2Params, []byte, []byte, error) {
	var p argon2Params

	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, key
	parts := strings.Split(hash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return p, nil, nil, fmt.Errorf("malformed argon2 hash")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return p, nil, nil, err
	}
	if version != argon2.Version {
		return p, nil, nil, fmt.Errorf("unsupported argon2 version %d", version)
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.time, &p.threads); err != nil {
		return p, nil, nil, err
	}
	if p.time < 1 || p.threads < 1 || p.memory < 8*uint32(p.threads) {
		return p, nil, nil, fmt.Errorf("invalid argon2 parameters m=%d,t=%d,p=%d", p.memory, p.time, p.threads)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return p, nil, nil, err
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return p, nil, nil, err
	}
	if len(key) == 0 {
		return p, nil, nil, fmt.Errorf("empty argon2 key")
	}

	return p, salt, key, nil
}
