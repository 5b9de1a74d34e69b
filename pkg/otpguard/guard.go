package otpguard

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dmitrymomot/sealkit/pkg/logger"
	"github.com/dmitrymomot/sealkit/pkg/totp"
)

// Config holds the attempt limits.
type Config struct {
	MaxAttempts   int           `env:"OTPGUARD_MAX_ATTEMPTS" envDefault:"5"`
	AttemptWindow time.Duration `env:"OTPGUARD_ATTEMPT_WINDOW" envDefault:"15m"`
}

// DefaultConfig allows 5 failures per 15 minutes.
func DefaultConfig() Config {
	return Config{MaxAttempts: 5, AttemptWindow: 15 * time.Minute}
}

// Matcher verifies a code and reports the step it belongs to.
// *totp.Service implements it.
type Matcher interface {
	Match(code, secret string, t time.Time) (int64, bool, error)
	Config() totp.Config
}

// Guard wraps a Matcher with replay prevention and attempt limiting.
type Guard struct {
	store   Store
	matcher Matcher
	cfg     Config
	log     *slog.Logger
	now     func() time.Time
}

type Option func(*Guard)

// WithConfig sets the attempt limits. Non-positive values keep the defaults.
func WithConfig(cfg Config) Option {
	return func(g *Guard) {
		if cfg.MaxAttempts > 0 {
			g.cfg.MaxAttempts = cfg.MaxAttempts
		}
		if cfg.AttemptWindow > 0 {
			g.cfg.AttemptWindow = cfg.AttemptWindow
		}
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(g *Guard) {
		if log != nil {
			g.log = log
		}
	}
}

// WithClock overrides time.Now. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(g *Guard) {
		if now != nil {
			g.now = now
		}
	}
}

// New creates a Guard.
func New(store Store, matcher Matcher, opts ...Option) *Guard {
	g := &Guard{
		store:   store,
		matcher: matcher,
		cfg:     DefaultConfig(),
		log:     logger.Nop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.log = g.log.With(logger.Component("otpguard"))
	return g
}

// Verify accepts code for accountID at most once.
//
// Every call reserves a failed attempt before the code is checked, so
// concurrent guesses cannot all pass the lockout check; a successful
// verification clears the count again.
//
// Errors: ErrTooManyAttempts when the account is locked out, ErrInvalidCode
// for a wrong code, ErrCodeReplayed for a code whose step was already used,
// totp.ErrInvalidSecret for an unusable secret (not counted),
// totp.ErrInvalidCodeFormat from the matcher, and ErrStoreUnavailable for
// storage failures.
func (g *Guard) Verify(ctx context.Context, accountID, secret, code string) error {
	if accountID == "" {
		return ErrMissingAccountID
	}
	// A bad secret is a caller error, not a guess.
	if err := totp.ValidateSecret(secret); err != nil {
		return err
	}
	log := g.log.With(logger.Operation("verify"), logger.AccountID(accountID))

	attempts, err := g.store.IncrementAttempts(ctx, accountID, g.cfg.AttemptWindow)
	if err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	if attempts > int64(g.cfg.MaxAttempts) {
		log.WarnContext(ctx, "verification refused: locked out", logger.Attempts(attempts))
		return ErrTooManyAttempts
	}

	now := g.now()
	counter, ok, err := g.matcher.Match(code, secret, now)
	switch {
	case err != nil:
		log.InfoContext(ctx, "verification failed", logger.Attempts(attempts), logger.Error(err))
		return err
	case !ok:
		log.InfoContext(ctx, "verification failed", logger.Attempts(attempts))
		return ErrInvalidCode
	}

	fresh, err := g.store.MarkUsed(ctx, accountID, counter, g.replayTTL(counter, now))
	if err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	if !fresh {
		log.WarnContext(ctx, "verification refused: code replayed", logger.Counter(counter), logger.Attempts(attempts))
		return ErrCodeReplayed
	}

	if err := g.store.ResetAttempts(ctx, accountID); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	log.DebugContext(ctx, "code accepted", logger.Counter(counter))
	return nil
}

// Attempts returns the failed attempts currently counted for accountID.
func (g *Guard) Attempts(ctx context.Context, accountID string) (int64, error) {
	if accountID == "" {
		return 0, ErrMissingAccountID
	}
	n, err := g.store.Attempts(ctx, accountID)
	if err != nil {
		return 0, errors.Join(ErrStoreUnavailable, err)
	}
	return n, nil
}

// Reset clears the failed attempts of accountID, e.g. after a recovery-code login.
func (g *Guard) Reset(ctx context.Context, accountID string) error {
	if accountID == "" {
		return ErrMissingAccountID
	}
	if err := g.store.ResetAttempts(ctx, accountID); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

// replayTTL keeps the used step until it can no longer fall inside the
// acceptance window: the end of step counter+window.
func (g *Guard) replayTTL(counter int64, now time.Time) time.Duration {
	cfg := g.matcher.Config()
	period := int64(cfg.Period)
	expires := time.Unix((counter+int64(cfg.Window)+1)*period, 0)
	return max(expires.Sub(now), time.Second) + time.Second
}
