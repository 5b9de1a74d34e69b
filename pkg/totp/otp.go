package totp

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base32"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// ValidateSecretKeyRegex matches a normalized Base32 secret: A-Z and 2-7, no padding.
	ValidateSecretKeyRegex = regexp.MustCompile("^[A-Z2-7]+$")

	b32 = base32.StdEncoding.WithPadding(base32.NoPadding)
)

// Service generates and verifies time-based one-time passwords.
// It holds only configuration and is safe for concurrent use.
type Service struct {
	cfg    Config
	random io.Reader
}

// Option configures a Service.
type Option func(*Service)

// WithRandom sets the secret source. Intended for tests.
func WithRandom(r io.Reader) Option {
	return func(s *Service) {
		if r != nil {
			s.random = r
		}
	}
}

// New creates a Service. Zero Digits, Period and Algorithm fall back to the defaults.
func New(cfg Config, opts ...Option) (*Service, error) {
	cfg = cfg.GetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	alg, _ := ParseAlgorithm(string(cfg.Algorithm))
	cfg.Algorithm = alg

	s := &Service{cfg: cfg, random: rand.Reader}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Default returns a Service with RFC 6238 defaults and a window of 1.
func Default() *Service {
	s, err := New(DefaultConfig())
	if err != nil {
		panic(err)
	}
	return s
}

// Config returns the effective configuration.
func (s *Service) Config() Config {
	return s.cfg
}

// GenerateSecret returns a new Base32-encoded 160-bit secret.
func (s *Service) GenerateSecret() (string, error) {
	secret := make([]byte, SecretSize)
	if _, err := io.ReadFull(s.random, secret); err != nil {
		return "", errors.Join(ErrFailedToGenerateSecretKey, err)
	}
	return b32.EncodeToString(secret), nil
}

// ProvisioningURI builds the otpauth URI consumed by authenticator apps:
//
//	otpauth://totp/{issuer}:{account}?secret={secret}&issuer={issuer}&digits=6&period=30
//
// The algorithm parameter is appended only for non-SHA-1 configurations.
// See https://github.com/google/google-authenticator/wiki/Key-Uri-Format
func (s *Service) ProvisioningURI(accountName, issuer, secret string) (string, error) {
	if strings.TrimSpace(accountName) == "" {
		return "", ErrMissingAccountName
	}
	if strings.TrimSpace(issuer) == "" {
		return "", ErrMissingIssuer
	}
	normalized, _, err := decodeSecret(secret)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("otpauth://totp/")
	b.WriteString(escapeLabel(issuer))
	b.WriteByte(':')
	b.WriteString(escapeLabel(accountName))
	b.WriteString("?secret=")
	b.WriteString(normalized)
	b.WriteString("&issuer=")
	b.WriteString(url.QueryEscape(issuer))
	b.WriteString("&digits=")
	b.WriteString(strconv.Itoa(s.cfg.Digits))
	b.WriteString("&period=")
	b.WriteString(strconv.Itoa(s.cfg.Period))
	if s.cfg.Algorithm != AlgSHA1 {
		b.WriteString("&algorithm=")
		b.WriteString(string(s.cfg.Algorithm))
	}

	return b.String(), nil
}

// GenerateCode returns the code for the step containing t.
func (s *Service) GenerateCode(secret string, t time.Time) (string, error) {
	_, key, err := decodeSecret(secret)
	if err != nil {
		return "", err
	}
	counter := s.Counter(t)
	if counter < 0 {
		return "", ErrTimeBeforeEpoch
	}
	return s.format(HOTP(key, uint64(counter), s.cfg.Digits, s.cfg.Algorithm)), nil
}

// ValidateSecret reports whether secret is a usable Base32 TOTP secret.
func ValidateSecret(secret string) error {
	_, _, err := decodeSecret(secret)
	return err
}

// VerifyCode checks code against the configured window around t.
func (s *Service) VerifyCode(code, secret string, t time.Time) (bool, error) {
	return s.VerifyCodeWindow(code, secret, t, s.cfg.Window)
}

// VerifyCodeWindow checks code against the steps [counter-window, counter+window].
func (s *Service) VerifyCodeWindow(code, secret string, t time.Time, window int) (bool, error) {
	_, ok, err := s.match(code, secret, t, window)
	return ok, err
}

// Match is VerifyCode that also returns the step counter the code belongs to.
// Replay tracking at the session layer keys on that counter.
func (s *Service) Match(code, secret string, t time.Time) (int64, bool, error) {
	return s.match(code, secret, t, s.cfg.Window)
}

// Counter returns floor(unix(t) / period).
func (s *Service) Counter(t time.Time) int64 {
	unix := t.Unix()
	period := int64(s.cfg.Period)
	counter := unix / period
	if unix < 0 && unix%period != 0 {
		counter--
	}
	return counter
}

func (s *Service) match(code, secret string, t time.Time, window int) (int64, bool, error) {
	if window < 0 {
		return 0, false, errors.Join(ErrInvalidConfig, errors.New("window must not be negative"))
	}
	_, key, err := decodeSecret(secret)
	if err != nil {
		return 0, false, err
	}
	code = strings.TrimSpace(code)
	if !s.validFormat(code) {
		return 0, false, ErrInvalidCodeFormat
	}

	current := s.Counter(t)
	var matched int64
	found := false
	// Every candidate is computed and compared so the result does not depend
	// on which step matched.
	for i := -window; i <= window; i++ {
		counter := current + int64(i)
		if counter < 0 {
			continue
		}
		candidate := s.format(HOTP(key, uint64(counter), s.cfg.Digits, s.cfg.Algorithm))
		if subtle.ConstantTimeCompare([]byte(candidate), []byte(code)) == 1 && !found {
			matched = counter
			found = true
		}
	}

	return matched, found, nil
}

func (s *Service) validFormat(code string) bool {
	if len(code) != s.cfg.Digits {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}

func (s *Service) format(code int) string {
	str := strconv.Itoa(code)
	if pad := s.cfg.Digits - len(str); pad > 0 {
		str = strings.Repeat("0", pad) + str
	}
	return str
}

// HOTP implements the RFC 4226 HMAC-based one-time password with dynamic truncation.
func HOTP(key []byte, counter uint64, digits int, alg Algorithm) int {
	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], counter)

	mac := hmac.New(alg.hash(), key)
	mac.Write(msg[:])
	sum := mac.Sum(nil)

	// Dynamic truncation: low 4 bits of the last byte select the offset
	offset := sum[len(sum)-1] & 0x0f
	code := binary.BigEndian.Uint32(sum[offset:offset+4]) & 0x7fffffff

	return int(uint64(code) % pow10(digits))
}

// pow10 returns 10^n, capped at the first power above any 31-bit code so
// large digit counts keep the whole truncated value.
func pow10(n int) uint64 {
	p := uint64(1)
	for range n {
		p *= 10
		if p > math.MaxUint32 {
			break
		}
	}
	return p
}

// GenerateHOTP is HOTP with HMAC-SHA1.
func GenerateHOTP(key []byte, counter int64, digits int) int {
	return HOTP(key, uint64(counter), digits, AlgSHA1)
}

// NormalizeSecret upper-cases secret and strips spaces and padding, the
// forms in which authenticator apps display secrets.
func NormalizeSecret(secret string) string {
	secret = strings.ToUpper(strings.Join(strings.Fields(secret), ""))
	return strings.TrimRight(secret, "=")
}

func decodeSecret(secret string) (string, []byte, error) {
	normalized := NormalizeSecret(secret)
	if !ValidateSecretKeyRegex.MatchString(normalized) {
		return "", nil, ErrInvalidSecret
	}
	key, err := b32.DecodeString(normalized)
	if err != nil {
		return "", nil, errors.Join(ErrInvalidSecret, err)
	}
	if len(key) == 0 {
		return "", nil, ErrInvalidSecret
	}
	return normalized, key, nil
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(url.PathEscape(s), ":", "%3A")
}

var defaultService = Default()

// GenerateSecretKey returns a new Base32-encoded 160-bit secret.
func GenerateSecretKey() (string, error) {
	return defaultService.GenerateSecret()
}

// ProvisioningURI builds a default-parameter otpauth URI.
func ProvisioningURI(accountName, issuer, secret string) (string, error) {
	return defaultService.ProvisioningURI(accountName, issuer, secret)
}

// GenerateCode returns the 6-digit SHA-1 code for the 30-second step containing t.
func GenerateCode(secret string, t time.Time) (string, error) {
	return defaultService.GenerateCode(secret, t)
}

// VerifyCode checks a 6-digit SHA-1 code with the given window.
func VerifyCode(code, secret string, t time.Time, window int) (bool, error) {
	return defaultService.VerifyCodeWindow(code, secret, t, window)
}
