// Package argon2id hashes and verifies account passwords in the PHC string
// format: $argon2id$v=19$m=<KiB>,t=<passes>,p=<lanes>$<salt>$<key>.
package argon2id

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

var (
	ErrInvalidHash         = errors.New("password hash is not a PHC argon2id string")
	ErrIncompatibleVersion = errors.New("password hash uses another argon2 version")
)

var b64 = base64.RawStdEncoding.Strict()

// Params are the cost settings of a hash. SaltLength and KeyLength are in bytes.
type Params struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultParams follow the OWASP minimum for argon2id (64 MiB, one pass).
var DefaultParams = Params{
	Memory:      64 * 1024,
	Iterations:  1,
	Parallelism: 4,
	SaltLength:  16,
	KeyLength:   32,
}

// Decoded is a parsed PHC string.
type Decoded struct {
	Params Params
	Salt   []byte
	Key    []byte
}

// Hash derives a key for password with a fresh random salt and returns the
// encoded PHC string stored in users.password_hash.
func (p Params) Hash(password string) (string, error) {
	salt := make([]byte, p.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("reading salt: %w", err)
	}
	return p.encode(password, salt), nil
}

func (p Params) key(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, p.Iterations, p.Memory, p.Parallelism, p.KeyLength)
}

func (p Params) encode(password string, salt []byte) string {
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.Memory, p.Iterations, p.Parallelism,
		b64.EncodeToString(salt), b64.EncodeToString(p.key(password, salt)))
}

// Decode parses an encoded hash. Salt and key lengths are taken from the
// decoded bytes.
func Decode(encoded string) (Decoded, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return Decoded{}, ErrInvalidHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return Decoded{}, errors.Join(ErrInvalidHash, err)
	}
	if version != argon2.Version {
		return Decoded{}, ErrIncompatibleVersion
	}

	var d Decoded
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d",
		&d.Params.Memory, &d.Params.Iterations, &d.Params.Parallelism); err != nil {
		return Decoded{}, errors.Join(ErrInvalidHash, err)
	}

	var err error
	if d.Salt, err = b64.DecodeString(parts[4]); err != nil {
		return Decoded{}, errors.Join(ErrInvalidHash, err)
	}
	if d.Key, err = b64.DecodeString(parts[5]); err != nil {
		return Decoded{}, errors.Join(ErrInvalidHash, err)
	}
	d.Params.SaltLength = uint32(len(d.Salt))
	d.Params.KeyLength = uint32(len(d.Key))
	return d, nil
}

// Verify reports whether password matches encoded, using the cost settings
// stored in the hash. The key comparison runs in constant time.
func Verify(password, encoded string) (bool, error) {
	d, err := Decode(encoded)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare(d.Key, d.Params.key(password, d.Salt)) == 1, nil
}
