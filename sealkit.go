package sealkit

import (
	"errors"
	"time"

	"github.com/dmitrymomot/sealkit/pkg/config"
	"github.com/dmitrymomot/sealkit/pkg/kdf"
	"github.com/dmitrymomot/sealkit/pkg/password"
	"github.com/dmitrymomot/sealkit/pkg/qrcode"
	"github.com/dmitrymomot/sealkit/pkg/secrets"
	"github.com/dmitrymomot/sealkit/pkg/totp"
)

// EnvPrefix is prepended to every Config env tag.
const EnvPrefix = "SEAL_"

// Config is the shared configuration of the credential primitives.
type Config struct {
	Iterations int         `env:"KDF_ITERATIONS" envDefault:"100000"`
	KeyBits    int         `env:"KDF_KEY_BITS" envDefault:"256"`
	TOTPIssuer string      `env:"TOTP_ISSUER" envDefault:"sealkit"`
	TOTP       totp.Config `envPrefix:"TOTP_"`
}

// DefaultConfig returns the values used when no environment is set.
func DefaultConfig() Config {
	return Config{
		Iterations: kdf.DefaultIterations,
		KeyBits:    kdf.DefaultKeyBits,
		TOTPIssuer: "sealkit",
		TOTP:       totp.DefaultConfig(),
	}
}

// LoadConfig reads Config from SEAL_* environment variables and an optional
// .env file.
func LoadConfig(opts ...config.LoadOption) (Config, error) {
	var cfg Config
	opts = append([]config.LoadOption{config.WithPrefix(EnvPrefix)}, opts...)
	if err := config.Load(&cfg, opts...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Kit holds ready-to-use primitives built from one Config.
type Kit struct {
	cfg    Config
	Cipher *secrets.Cipher
	Hasher *password.Hasher
	TOTP   *totp.Service
}

// New validates cfg and builds the primitives.
func New(cfg Config) (*Kit, error) {
	if cfg.Iterations <= 0 {
		return nil, errors.Join(ErrInvalidConfig, kdf.ErrInvalidIterations)
	}
	switch cfg.KeyBits {
	case 128, 192, 256:
	default:
		return nil, errors.Join(ErrInvalidConfig, secrets.ErrInvalidKeySize)
	}

	cipher, err := secrets.New(
		secrets.WithIterations(cfg.Iterations),
		secrets.WithKeyBits(cfg.KeyBits),
	)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	otp, err := totp.New(cfg.TOTP)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	return &Kit{
		cfg:    cfg,
		Cipher: cipher,
		Hasher: password.NewHasher(
			password.WithIterations(cfg.Iterations),
			password.WithKeyBits(cfg.KeyBits),
		),
		TOTP: otp,
	}, nil
}

// Config returns the configuration the Kit was built from.
func (k *Kit) Config() Config {
	return k.cfg
}

func (k *Kit) Encrypt(plaintext, secret []byte) (string, error) {
	return k.Cipher.Encrypt(plaintext, secret)
}

func (k *Kit) Decrypt(envelope string, secret []byte) ([]byte, error) {
	return k.Cipher.Decrypt(envelope, secret)
}

func (k *Kit) HashPassword(pw []byte) (string, error) {
	return k.Hasher.Hash(pw)
}

func (k *Kit) VerifyPassword(pw []byte, hashed string) bool {
	return k.Hasher.Verify(pw, hashed)
}

func (k *Kit) GenerateTOTPSecret() (string, error) {
	return k.TOTP.GenerateSecret()
}

// ProvisioningURI builds the otpauth:// URI for account under the configured issuer.
func (k *Kit) ProvisioningURI(account, secret string) (string, error) {
	return k.TOTP.ProvisioningURI(account, k.cfg.TOTPIssuer, secret)
}

// ProvisioningQR renders the provisioning URI as a PNG QR code.
func (k *Kit) ProvisioningQR(account, secret string, opts ...qrcode.Option) ([]byte, error) {
	uri, err := k.ProvisioningURI(account, secret)
	if err != nil {
		return nil, err
	}
	return qrcode.Generate(uri, opts...)
}

// GenerateTOTP returns the code for the current time.
func (k *Kit) GenerateTOTP(secret string) (string, error) {
	return k.TOTP.GenerateCode(secret, time.Now())
}

// VerifyTOTP checks code against the current time within the configured window.
func (k *Kit) VerifyTOTP(code, secret string) (bool, error) {
	return k.TOTP.VerifyCode(code, secret, time.Now())
}
