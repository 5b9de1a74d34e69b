// Package totp generates, provisions and verifies Time-based One-Time
// Passwords (RFC 6238) used as a second factor for account verification.
//
// A Service is configured once (digits, period, skew window, HMAC algorithm)
// and is otherwise stateless: every method is a pure function of its inputs
// plus, for GenerateSecret, one read from crypto/rand.
//
// # Enrollment
//
//	svc := totp.Default()
//	secret, _ := svc.GenerateSecret()
//	uri, _ := svc.ProvisioningURI("alice@example.com", "Acme", secret)
//	png, _ := qrcode.Generate(uri) // rendering lives in package qrcode
//
// The caller stores the secret; this package never persists it.
//
// # Verification
//
//	ok, err := svc.VerifyCode(code, secret, time.Now())
//
// Codes from the steps [counter-window, counter+window] are accepted to absorb
// clock skew. There is no replay tracking here: a code stays valid for the
// whole window. Use package otpguard, or equivalent session-layer state, to
// refuse reuse.
//
// # Recovery codes
//
// GenerateRecoveryCodes, HashRecoveryCode, VerifyRecoveryCode and
// MatchRecoveryCode handle single-use backup codes for users who lose their
// authenticator device. Only the SHA-256 digests should be stored.
//
// # Errors
//
// Inspect errors with errors.Is against ErrInvalidSecret,
// ErrInvalidCodeFormat, ErrInvalidConfig and the other package sentinels.
//
// # See Also
//
//   - RFC 4226, HMAC-Based One-Time Password (HOTP) Algorithm
//   - RFC 6238, Time-Based One-Time Password (TOTP) Algorithm
package totp
