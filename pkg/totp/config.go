package totp

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"fmt"
	"hash"
	"strings"
)

const (
	DefaultDigits    = 6       // Standard 6-digit TOTP codes
	DefaultPeriod    = 30      // 30-second step (RFC 6238 standard)
	DefaultWindow    = 1       // Steps accepted on each side of the current one
	DefaultAlgorithm = AlgSHA1 // HMAC-SHA1 for authenticator app compatibility
)

const (
	MinDigits  = 6
	MaxDigits  = 8
	SecretSize = 20 // 160-bit secret (RFC 4226 recommendation)
)

// Algorithm is the HMAC hash used for code generation.
type Algorithm string

const (
	AlgSHA1   Algorithm = "SHA1"
	AlgSHA256 Algorithm = "SHA256"
	AlgSHA512 Algorithm = "SHA512"
)

// ParseAlgorithm accepts "SHA1", "sha-256" and similar spellings.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(s)), "-", "") {
	case "SHA1":
		return AlgSHA1, nil
	case "SHA256":
		return AlgSHA256, nil
	case "SHA512":
		return AlgSHA512, nil
	default:
		return "", errors.Join(ErrInvalidConfig, fmt.Errorf("unsupported algorithm %q", s))
	}
}

// UnmarshalText lets env and flag parsers decode an Algorithm.
func (a *Algorithm) UnmarshalText(text []byte) error {
	alg, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}
	*a = alg
	return nil
}

func (a Algorithm) hash() func() hash.Hash {
	switch a {
	case AlgSHA256:
		return sha256.New
	case AlgSHA512:
		return sha512.New
	default:
		return sha1.New
	}
}

// Config holds the TOTP parameters. Env tags are relative; the caller
// decides the prefix.
type Config struct {
	Digits    int       `env:"DIGITS" envDefault:"6"`
	Period    int       `env:"PERIOD_SECONDS" envDefault:"30"`
	Window    int       `env:"WINDOW" envDefault:"1"` // 0 accepts the current step only
	Algorithm Algorithm `env:"ALGORITHM" envDefault:"SHA1"`
}

// DefaultConfig returns 6 digits, 30 seconds, window 1, SHA-1.
func DefaultConfig() Config {
	return Config{
		Digits:    DefaultDigits,
		Period:    DefaultPeriod,
		Window:    DefaultWindow,
		Algorithm: DefaultAlgorithm,
	}
}

// GetDefaults returns a copy with defaults applied to zero-valued Digits,
// Period and Algorithm. A zero Window is a valid setting and is kept.
func (c Config) GetDefaults() Config {
	if c.Digits == 0 {
		c.Digits = DefaultDigits
	}
	if c.Period == 0 {
		c.Period = DefaultPeriod
	}
	if c.Algorithm == "" {
		c.Algorithm = DefaultAlgorithm
	}
	return c
}

// Validate checks the parameter ranges.
func (c Config) Validate() error {
	if c.Digits < MinDigits || c.Digits > MaxDigits {
		return errors.Join(ErrInvalidConfig, fmt.Errorf("digits must be between %d and %d", MinDigits, MaxDigits))
	}
	if c.Period <= 0 {
		return errors.Join(ErrInvalidConfig, errors.New("period must be positive"))
	}
	if c.Window < 0 {
		return errors.Join(ErrInvalidConfig, errors.New("window must not be negative"))
	}
	if _, err := ParseAlgorithm(string(c.Algorithm)); err != nil {
		return err
	}
	return nil
}
