// Package kdf is the key-derivation primitive shared by the cipher, the
// password hasher and anything else that needs key bytes from a secret.
//
// The default function is PBKDF2 with HMAC-SHA-256 (100,000 iterations,
// 256-bit output). Argon2id is available as a memory-hard alternative behind
// the same Deriver interface.
//
// # Usage
//
//	salt, _ := kdf.GenerateSalt(kdf.DefaultSaltSize)
//	key, err := kdf.Derive([]byte("passphrase"), salt, kdf.DefaultIterations, kdf.DefaultKeyBits)
//	if err != nil {
//	    // handle error
//	}
//
// Derivation is deterministic: the same secret, salt, iteration count and key
// size always produce the same key. A zero-length salt is rejected with
// ErrEmptySalt.
package kdf
