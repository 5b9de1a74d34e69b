package totp

import "errors"

var (
	ErrFailedToGenerateSecretKey    = errors.New("failed to generate TOTP secret key")
	ErrFailedToGenerateRecoveryCode = errors.New("failed to generate recovery code")
	ErrInvalidSecret                = errors.New("invalid secret: must be non-empty base32")
	ErrInvalidCodeFormat            = errors.New("invalid code format")
	ErrMissingAccountName           = errors.New("missing account name")
	ErrMissingIssuer                = errors.New("missing issuer")
	ErrInvalidConfig                = errors.New("invalid TOTP configuration")
	ErrInvalidRecoveryCodeCount     = errors.New("invalid recovery code count, must be greater than 0")
	ErrTimeBeforeEpoch              = errors.New("time is before the Unix epoch")
)
