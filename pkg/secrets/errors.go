package secrets

import (
	"errors"

	"github.com/dmitrymomot/sealkit/pkg/envelope"
)

var (
	// ErrInvalidSecret is returned for an empty secret.
	ErrInvalidSecret = errors.New("invalid secret: must not be empty")
	// ErrInvalidKeySize is returned when the configured key size is not an AES key size.
	ErrInvalidKeySize = errors.New("invalid key size: must be 128, 192 or 256 bits")

	ErrEncryptionFailed = errors.New("encryption failed")
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrAuthentication is returned when the GCM tag does not verify: wrong
	// secret or modified ciphertext.
	ErrAuthentication = errors.New("message authentication failed")

	// ErrMalformedEnvelope is the envelope framing error.
	ErrMalformedEnvelope = envelope.ErrMalformed
)
