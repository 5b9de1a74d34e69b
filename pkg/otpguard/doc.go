// Package otpguard is the session-layer companion of package totp. It adds
// the two protections the stateless TOTP core deliberately leaves out:
//
//   - replay prevention: once a code for step N is accepted, codes for step N
//     and any earlier step are refused for that account;
//   - attempt limiting: each verification reserves an attempt before the code
//     is checked; once more than MaxAttempts are counted inside AttemptWindow
//     the account is refused until the window expires or the count is reset.
//     A successful verification clears the count.
//
// State lives in a Store. MemoryStore suits a single process; RedisStore
// shares state between instances.
//
//	guard := otpguard.New(otpguard.NewRedisStore(client), totp.Default(),
//	    otpguard.WithLogger(log),
//	)
//	switch err := guard.Verify(ctx, userID, secret, code); {
//	case err == nil:
//	    // second factor accepted
//	case errors.Is(err, otpguard.ErrTooManyAttempts):
//	    // lockout
//	case errors.Is(err, otpguard.ErrCodeReplayed), errors.Is(err, otpguard.ErrInvalidCode):
//	    // reject
//	}
//
// Codes and secrets are never written to logs or to the store; only the
// account id and the step counter are.
package otpguard
