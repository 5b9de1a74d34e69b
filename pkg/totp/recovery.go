package totp

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"io"
	"strings"
)

const (
	recoveryCodeBytes = 10 // 80 bits, 16 base32 characters
	recoveryGroupSize = 4
)

// GenerateRecoveryCodes creates single-use backup codes formatted as
// XXXX-XXXX-XXXX-XXXX from the Base32 alphabet.
func GenerateRecoveryCodes(count int) ([]string, error) {
	return generateRecoveryCodes(rand.Reader, count)
}

func generateRecoveryCodes(r io.Reader, count int) ([]string, error) {
	if count < 1 {
		return nil, ErrInvalidRecoveryCodeCount
	}

	codes := make([]string, count)
	buf := make([]byte, recoveryCodeBytes)
	for i := range count {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, errors.Join(ErrFailedToGenerateRecoveryCode, err)
		}
		codes[i] = groupCode(b32.EncodeToString(buf))
	}
	return codes, nil
}

// NormalizeRecoveryCode upper-cases code and drops dashes and whitespace,
// so "abcd-efgh ijkl mnop" and "ABCDEFGHIJKLMNOP" are the same code.
func NormalizeRecoveryCode(code string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', ' ', '\t', '\n', '\r':
			return -1
		}
		if r >= 'a' && r <= 'z' {
			return r - 'a' + 'A'
		}
		return r
	}, code)
}

// HashRecoveryCode returns the hex SHA-256 digest stored in place of the code.
func HashRecoveryCode(code string) string {
	sum := sha256.Sum256([]byte(NormalizeRecoveryCode(code)))
	return hex.EncodeToString(sum[:])
}

// VerifyRecoveryCode compares code against a stored digest in constant time.
func VerifyRecoveryCode(code, hashedCode string) bool {
	if NormalizeRecoveryCode(code) == "" {
		return false
	}
	return subtle.ConstantTimeCompare(
		[]byte(HashRecoveryCode(code)),
		[]byte(strings.ToLower(hashedCode)),
	) == 1
}

// MatchRecoveryCode returns the index of the digest that code matches, so the
// caller can delete it. Every digest is compared.
func MatchRecoveryCode(code string, hashedCodes []string) (int, bool) {
	if NormalizeRecoveryCode(code) == "" {
		return -1, false
	}
	computed := []byte(HashRecoveryCode(code))
	index := -1
	for i, h := range hashedCodes {
		if subtle.ConstantTimeCompare(computed, []byte(strings.ToLower(h))) == 1 && index < 0 {
			index = i
		}
	}
	return index, index >= 0
}

func groupCode(s string) string {
	var b strings.Builder
	b.Grow(len(s) + len(s)/recoveryGroupSize)
	for i := 0; i < len(s); i += recoveryGroupSize {
		if i > 0 {
			b.WriteByte('-')
		}
		b.WriteString(s[i:min(i+recoveryGroupSize, len(s))])
	}
	return b.String()
}
