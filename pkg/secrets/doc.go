// Package secrets encrypts message content and sensitive fields with a key
// derived from a caller-held secret.
//
// Every call to Encrypt draws a fresh 128-bit salt, derives a 256-bit key
// with PBKDF2-HMAC-SHA-256 (see package kdf) and seals the plaintext with
// AES-GCM under a fresh 96-bit nonce. The result is an envelope string:
//
//	<hex salt>::<hex nonce||ciphertext||tag>
//
// Decrypt re-derives the key from the embedded salt. A wrong secret or any
// modification of the payload fails the GCM tag check and returns
// ErrAuthentication; garbage plaintext is never returned.
//
// # Usage
//
//	c, err := secrets.New()
//	if err != nil {
//	    // handle error
//	}
//
//	env, err := c.Encrypt([]byte("hello"), sharedSecret)
//	if err != nil {
//	    // handle error
//	}
//
//	plain, err := c.Decrypt(env, sharedSecret)
//	switch {
//	case errors.Is(err, secrets.ErrAuthentication):
//	    // wrong secret or tampered message
//	case errors.Is(err, secrets.ErrMalformedEnvelope):
//	    // not an envelope
//	}
//
// Package level Encrypt and Decrypt use a Cipher with default parameters.
//
// # Concurrency
//
// A Cipher holds only immutable configuration and may be shared between
// goroutines. Key custody is the caller's job: secrets are never stored and
// derived keys are wiped before each call returns.
package secrets
