// Package logger builds *slog.Logger instances from functional options and
// injects context values into every record through a handler decorator.
//
// Components that log (the OTP guard, the sealctl CLI) receive a logger built
// here. Cryptographic packages never log: secrets, codes and plaintexts must
// not reach log output, and the attribute helpers in this package only carry
// identifiers and outcomes.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithLevelName(cfg.Level),
//	    logger.WithFormat(logger.FormatText),
//	    logger.WithAttr(logger.Component("otpguard")),
//	    logger.WithContextExtractors(requestIDFromContext),
//	)
//	log.WarnContext(ctx, "code replayed", logger.AccountID(id), logger.Counter(step))
package logger
