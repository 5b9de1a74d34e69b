package otpguard

import "errors"

var (
	ErrMissingAccountID = errors.New("missing account id")
	ErrInvalidCode      = errors.New("invalid one-time code")
	ErrCodeReplayed     = errors.New("one-time code already used")
	ErrTooManyAttempts  = errors.New("too many failed verification attempts")
	ErrStoreUnavailable = errors.New("guard store unavailable")
)
