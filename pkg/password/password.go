package password

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"io"

	"golang.org/x/text/unicode/norm"

	"github.com/dmitrymomot/sealkit/pkg/envelope"
	"github.com/dmitrymomot/sealkit/pkg/kdf"
)

// SaltSize is the per-hash salt length in bytes.
const SaltSize = kdf.DefaultSaltSize

// Hasher hashes and verifies passwords.
type Hasher struct {
	iterations int
	keyBits    int
	deriver    kdf.Deriver
	normalize  bool
	random     io.Reader
}

type Option func(*Hasher)

// WithIterations sets the PBKDF2 iteration count.
func WithIterations(n int) Option {
	return func(h *Hasher) {
		h.iterations = n
	}
}

// WithKeyBits sets the derived hash size in bits.
func WithKeyBits(bits int) Option {
	return func(h *Hasher) {
		h.keyBits = bits
	}
}

// WithDeriver replaces PBKDF2 with another key derivation function.
func WithDeriver(d kdf.Deriver) Option {
	return func(h *Hasher) {
		if d != nil {
			h.deriver = d
		}
	}
}

// WithNormalization applies Unicode NFKC to passwords before derivation, so
// composed and decomposed forms of the same text hash identically.
// Hashes created with and without normalization are not interchangeable.
func WithNormalization() Option {
	return func(h *Hasher) {
		h.normalize = true
	}
}

// WithRandom sets the salt source. Intended for tests.
func WithRandom(r io.Reader) Option {
	return func(h *Hasher) {
		if r != nil {
			h.random = r
		}
	}
}

// NewHasher creates a Hasher with PBKDF2-HMAC-SHA-256 defaults.
func NewHasher(opts ...Option) *Hasher {
	h := &Hasher{
		iterations: kdf.DefaultIterations,
		keyBits:    kdf.DefaultKeyBits,
		random:     rand.Reader,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.deriver == nil {
		h.deriver = kdf.PBKDF2{Iterations: h.iterations, Bits: h.keyBits}
	}
	return h
}

// Hash returns the "<hex salt>::<hex hash>" form of password.
func (h *Hasher) Hash(password []byte) (string, error) {
	if len(password) == 0 {
		return "", ErrEmptyPassword
	}

	salt, err := kdf.GenerateSaltFrom(h.random, SaltSize)
	if err != nil {
		return "", errors.Join(ErrFailedToHash, err)
	}

	sum, err := h.deriver.Derive(h.prepare(password), salt)
	if err != nil {
		return "", errors.Join(ErrFailedToHash, err)
	}

	return envelope.Encode(salt, sum)
}

// Verify reports whether password matches hashed.
func (h *Hasher) Verify(password []byte, hashed string) bool {
	if len(password) == 0 {
		return false
	}

	salt, want, err := envelope.Decode(hashed)
	if err != nil {
		return false
	}

	got, err := h.deriver.Derive(h.prepare(password), salt)
	if err != nil {
		return false
	}
	defer kdf.Wipe(got)

	return subtle.ConstantTimeCompare(got, want) == 1
}

// HashString is Hash for a string password.
func (h *Hasher) HashString(password string) (string, error) {
	return h.Hash([]byte(password))
}

// VerifyString is Verify for a string password.
func (h *Hasher) VerifyString(password, hashed string) bool {
	return h.Verify([]byte(password), hashed)
}

func (h *Hasher) prepare(password []byte) []byte {
	if !h.normalize {
		return password
	}
	return norm.NFKC.Bytes(password)
}

var defaultHasher = NewHasher()

// Hash hashes password with the default Hasher.
func Hash(password []byte) (string, error) {
	return defaultHasher.Hash(password)
}

// Verify checks password against hashed with the default Hasher.
func Verify(password []byte, hashed string) bool {
	return defaultHasher.Verify(password, hashed)
}
