package kdf

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"
)

const (
	DefaultIterations = 100_000 // PBKDF2 rounds
	DefaultKeyBits    = 256     // AES-256 key size
	DefaultSaltSize   = 16      // 128-bit salt
)

// Argon2id defaults follow the OWASP recommendation.
const (
	DefaultArgon2Time    uint32 = 1
	DefaultArgon2Memory  uint32 = 64 * 1024 // KiB
	DefaultArgon2Threads uint8  = 4
)

// Deriver turns a secret and a salt into key bytes.
type Deriver interface {
	Derive(secret, salt []byte) ([]byte, error)
	KeyBits() int
}

// Derive runs PBKDF2-HMAC-SHA-256 over secret and salt.
func Derive(secret, salt []byte, iterations, keyBits int) ([]byte, error) {
	if err := validate(salt, keyBits); err != nil {
		return nil, err
	}
	if iterations <= 0 {
		return nil, ErrInvalidIterations
	}
	return pbkdf2.Key(secret, salt, iterations, keyBits/8, sha256.New), nil
}

// PBKDF2 is the default Deriver.
type PBKDF2 struct {
	Iterations int
	Bits       int
}

// NewPBKDF2 returns a PBKDF2 deriver. Zero values fall back to the defaults.
func NewPBKDF2(iterations, keyBits int) PBKDF2 {
	if iterations == 0 {
		iterations = DefaultIterations
	}
	if keyBits == 0 {
		keyBits = DefaultKeyBits
	}
	return PBKDF2{Iterations: iterations, Bits: keyBits}
}

func (p PBKDF2) Derive(secret, salt []byte) ([]byte, error) {
	return Derive(secret, salt, p.Iterations, p.Bits)
}

func (p PBKDF2) KeyBits() int { return p.Bits }

// Argon2id is a memory-hard Deriver for deployments that can afford the memory cost.
type Argon2id struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
	Bits    int
}

// NewArgon2id returns an Argon2id deriver with the default cost parameters.
func NewArgon2id(keyBits int) Argon2id {
	if keyBits == 0 {
		keyBits = DefaultKeyBits
	}
	return Argon2id{
		Time:    DefaultArgon2Time,
		Memory:  DefaultArgon2Memory,
		Threads: DefaultArgon2Threads,
		Bits:    keyBits,
	}
}

func (a Argon2id) Derive(secret, salt []byte) ([]byte, error) {
	if err := validate(salt, a.Bits); err != nil {
		return nil, err
	}
	if a.Time == 0 || a.Memory == 0 || a.Threads == 0 {
		return nil, ErrInvalidIterations
	}
	return argon2.IDKey(secret, salt, a.Time, a.Memory, a.Threads, uint32(a.Bits/8)), nil
}

func (a Argon2id) KeyBits() int { return a.Bits }

// GenerateSalt reads n bytes from the system CSPRNG.
func GenerateSalt(n int) ([]byte, error) {
	return GenerateSaltFrom(rand.Reader, n)
}

// GenerateSaltFrom reads n bytes from r.
func GenerateSaltFrom(r io.Reader, n int) ([]byte, error) {
	if n <= 0 {
		return nil, ErrInvalidSaltSize
	}
	salt := make([]byte, n)
	if _, err := io.ReadFull(r, salt); err != nil {
		return nil, errors.Join(ErrFailedToCreateSalt, err)
	}
	return salt, nil
}

// Wipe zeroes b. Derived keys are wiped as soon as the operation using them returns.
func Wipe(b []byte) {
	clear(b)
}

func validate(salt []byte, keyBits int) error {
	if len(salt) == 0 {
		return ErrEmptySalt
	}
	if keyBits <= 0 || keyBits%8 != 0 {
		return ErrInvalidKeyBits
	}
	return nil
}
