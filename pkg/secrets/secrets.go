package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"io"

	"github.com/dmitrymomot/sealkit/pkg/envelope"
	"github.com/dmitrymomot/sealkit/pkg/kdf"
)

// SaltSize is the per-message salt length in bytes.
const SaltSize = kdf.DefaultSaltSize

// Cipher is the secret-derived symmetric cipher.
type Cipher struct {
	iterations int
	keyBits    int
	deriver    kdf.Deriver
	random     io.Reader
}

// Option configures a Cipher.
type Option func(*Cipher)

// WithIterations sets the PBKDF2 iteration count.
func WithIterations(n int) Option {
	return func(c *Cipher) {
		c.iterations = n
	}
}

// WithKeyBits sets the AES key size: 128, 192 or 256.
func WithKeyBits(bits int) Option {
	return func(c *Cipher) {
		c.keyBits = bits
	}
}

// WithDeriver replaces PBKDF2 with another key derivation function.
// The deriver's key size must still be a valid AES key size.
func WithDeriver(d kdf.Deriver) Option {
	return func(c *Cipher) {
		if d != nil {
			c.deriver = d
		}
	}
}

// WithRandom sets the source of salts and nonces. Intended for tests.
func WithRandom(r io.Reader) Option {
	return func(c *Cipher) {
		if r != nil {
			c.random = r
		}
	}
}

// New creates a Cipher. Without options it uses 100,000 PBKDF2 iterations and AES-256.
func New(opts ...Option) (*Cipher, error) {
	c := &Cipher{
		iterations: kdf.DefaultIterations,
		keyBits:    kdf.DefaultKeyBits,
		random:     rand.Reader,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.deriver == nil {
		if c.iterations <= 0 {
			return nil, kdf.ErrInvalidIterations
		}
		c.deriver = kdf.NewPBKDF2(c.iterations, c.keyBits)
	}

	switch c.deriver.KeyBits() {
	case 128, 192, 256:
	default:
		return nil, ErrInvalidKeySize
	}

	return c, nil
}

// Encrypt seals plaintext under a key derived from secret and returns the envelope.
func (c *Cipher) Encrypt(plaintext, secret []byte) (string, error) {
	if len(secret) == 0 {
		return "", ErrInvalidSecret
	}

	salt, err := kdf.GenerateSaltFrom(c.random, SaltSize)
	if err != nil {
		return "", errors.Join(ErrEncryptionFailed, err)
	}

	aead, err := c.aead(secret, salt)
	if err != nil {
		return "", errors.Join(ErrEncryptionFailed, err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(c.random, nonce); err != nil {
		return "", errors.Join(ErrEncryptionFailed, err)
	}

	// Payload layout: nonce || ciphertext || tag
	sealed := aead.Seal(nonce, nonce, plaintext, nil)

	return envelope.Encode(salt, sealed)
}

// Decrypt opens an envelope produced by Encrypt.
func (c *Cipher) Decrypt(env string, secret []byte) ([]byte, error) {
	if len(secret) == 0 {
		return nil, ErrInvalidSecret
	}

	salt, payload, err := envelope.Decode(env)
	if err != nil {
		return nil, err
	}

	aead, err := c.aead(secret, salt)
	if err != nil {
		return nil, errors.Join(ErrDecryptionFailed, err)
	}

	nonceSize := aead.NonceSize()
	if len(payload) < nonceSize+aead.Overhead() {
		return nil, ErrMalformedEnvelope
	}
	nonce, ciphertext := payload[:nonceSize], payload[nonceSize:]

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, errors.Join(ErrAuthentication, err)
	}
	if plaintext == nil {
		plaintext = []byte{}
	}

	return plaintext, nil
}

// EncryptString is Encrypt for UTF-8 text.
func (c *Cipher) EncryptString(plaintext, secret string) (string, error) {
	return c.Encrypt([]byte(plaintext), []byte(secret))
}

// DecryptString is Decrypt for UTF-8 text.
func (c *Cipher) DecryptString(env, secret string) (string, error) {
	plaintext, err := c.Decrypt(env, []byte(secret))
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// aead derives the key and builds AES-GCM. The derived key is wiped once the
// block cipher has expanded it.
func (c *Cipher) aead(secret, salt []byte) (cipher.AEAD, error) {
	key, err := c.deriver.Derive(secret, salt)
	if err != nil {
		return nil, err
	}
	defer kdf.Wipe(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

var defaultCipher = mustNew()

func mustNew() *Cipher {
	c, err := New()
	if err != nil {
		panic(err)
	}
	return c
}

// Encrypt seals plaintext with the default Cipher.
func Encrypt(plaintext, secret []byte) (string, error) {
	return defaultCipher.Encrypt(plaintext, secret)
}

// Decrypt opens env with the default Cipher.
func Decrypt(env string, secret []byte) ([]byte, error) {
	return defaultCipher.Decrypt(env, secret)
}
