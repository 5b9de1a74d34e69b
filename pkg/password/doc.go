// Package password derives salted, verifiable password hashes.
//
// Hash draws a fresh 128-bit salt, derives 256 bits with PBKDF2-HMAC-SHA-256
// (100,000 iterations) and returns "<hex salt>::<hex hash>". Verify
// re-derives with the stored salt and compares in constant time.
//
// Verify is an authorization predicate: every failure (malformed hash,
// derivation error, mismatch) collapses to false.
//
//	h := password.NewHasher()
//	stored, err := h.Hash([]byte("correct horse battery staple"))
//	if err != nil {
//	    // handle error
//	}
//	if !h.Verify([]byte(input), stored) {
//	    // reject login
//	}
package password
