package sealkit_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sealkit"
	"github.com/dmitrymomot/sealkit/pkg/config"
	"github.com/dmitrymomot/sealkit/pkg/secrets"
	"github.com/dmitrymomot/sealkit/pkg/totp"
)

func testKit(t *testing.T) *sealkit.Kit {
	t.Helper()
	cfg := sealkit.DefaultConfig()
	cfg.Iterations = 1000
	kit, err := sealkit.New(cfg)
	require.NoError(t, err)
	return kit
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		cfg, err := sealkit.LoadConfig(config.WithEnvironment(map[string]string{}))
		require.NoError(t, err)
		assert.Equal(t, sealkit.DefaultConfig(), cfg)
	})

	t.Run("prefixed variables", func(t *testing.T) {
		t.Parallel()
		cfg, err := sealkit.LoadConfig(config.WithEnvironment(map[string]string{
			"SEAL_KDF_ITERATIONS":      "5000",
			"SEAL_KDF_KEY_BITS":        "128",
			"SEAL_TOTP_DIGITS":         "8",
			"SEAL_TOTP_PERIOD_SECONDS": "60",
			"SEAL_TOTP_WINDOW":         "0",
			"SEAL_TOTP_ALGORITHM":      "sha256",
			"SEAL_TOTP_ISSUER":         "Acme",
			"KDF_ITERATIONS":           "1",
		}))
		require.NoError(t, err)
		assert.Equal(t, 5000, cfg.Iterations)
		assert.Equal(t, 128, cfg.KeyBits)
		assert.Equal(t, "Acme", cfg.TOTPIssuer)
		assert.Equal(t, totp.Config{Digits: 8, Period: 60, Window: 0, Algorithm: totp.AlgSHA256}, cfg.TOTP)
	})

	t.Run("bad value", func(t *testing.T) {
		t.Parallel()
		_, err := sealkit.LoadConfig(config.WithEnvironment(map[string]string{
			"SEAL_TOTP_ALGORITHM": "MD5",
		}))
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})
}

func TestNew_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*sealkit.Config)
	}{
		{"zero iterations", func(c *sealkit.Config) { c.Iterations = 0 }},
		{"key bits", func(c *sealkit.Config) { c.KeyBits = 100 }},
		{"zero key bits", func(c *sealkit.Config) { c.KeyBits = 0 }},
		{"digits", func(c *sealkit.Config) { c.TOTP.Digits = 9 }},
		{"negative window", func(c *sealkit.Config) { c.TOTP.Window = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := sealkit.DefaultConfig()
			tt.mutate(&cfg)
			_, err := sealkit.New(cfg)
			assert.ErrorIs(t, err, sealkit.ErrInvalidConfig)
		})
	}
}

func TestKit_Encryption(t *testing.T) {
	t.Parallel()
	kit := testKit(t)

	env, err := kit.Encrypt([]byte("hello"), []byte("s3cret"))
	require.NoError(t, err)
	assert.Len(t, strings.Split(env, "::"), 2)

	plain, err := kit.Decrypt(env, []byte("s3cret"))
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), plain)

	_, err = kit.Decrypt(env, []byte("wrong"))
	assert.ErrorIs(t, err, secrets.ErrAuthentication)
}

func TestKit_Passwords(t *testing.T) {
	t.Parallel()
	kit := testKit(t)

	hashed, err := kit.HashPassword([]byte("correct horse"))
	require.NoError(t, err)
	assert.True(t, kit.VerifyPassword([]byte("correct horse"), hashed))
	assert.False(t, kit.VerifyPassword([]byte("battery staple"), hashed))
}

func TestKit_TOTP(t *testing.T) {
	t.Parallel()
	kit := testKit(t)

	secret, err := kit.GenerateTOTPSecret()
	require.NoError(t, err)

	code, err := kit.GenerateTOTP(secret)
	require.NoError(t, err)
	ok, err := kit.VerifyTOTP(code, secret)
	require.NoError(t, err)
	assert.True(t, ok)

	past, err := kit.TOTP.GenerateCode(secret, time.Now().Add(-5*time.Minute))
	require.NoError(t, err)
	if past != code {
		ok, err = kit.VerifyTOTP(past, secret)
		require.NoError(t, err)
		assert.False(t, ok)
	}

	uri, err := kit.ProvisioningURI("alice@example.com", secret)
	require.NoError(t, err)
	assert.Equal(t,
		"otpauth://totp/sealkit:alice@example.com?secret="+secret+"&issuer=sealkit&digits=6&period=30",
		uri)

	png, err := kit.ProvisioningQR("alice@example.com", secret)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}
