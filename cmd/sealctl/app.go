package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/dmitrymomot/sealkit"
	"github.com/dmitrymomot/sealkit/pkg/config"
	"github.com/dmitrymomot/sealkit/pkg/kdf"
	"github.com/dmitrymomot/sealkit/pkg/logger"
	"github.com/dmitrymomot/sealkit/pkg/otpguard"
	"github.com/dmitrymomot/sealkit/pkg/qrcode"
	"github.com/dmitrymomot/sealkit/pkg/redis"
	"github.com/dmitrymomot/sealkit/pkg/totp"
)

const (
	exitOK       = 0
	exitError    = 1
	exitNegative = 2
)

type commandKey struct{}

// commandFromContext adds the running subcommand to every log record.
func commandFromContext(ctx context.Context) (slog.Attr, bool) {
	if name, ok := ctx.Value(commandKey{}).(string); ok && name != "" {
		return slog.String("command", name), true
	}
	return slog.Attr{}, false
}

// errNegative reports a verification that completed and said no.
var errNegative = errors.New("verification failed")

type command struct {
	usage string
	run   func(ctx context.Context, a *app, args []string) error
}

var commands = map[string]command{
	"encrypt":        {"encrypt [-secret-env NAME] [plaintext]", runEncrypt},
	"decrypt":        {"decrypt [-secret-env NAME] [envelope]", runDecrypt},
	"hash":           {"hash [-secret-env NAME]", runHash},
	"verify":         {"verify -hash HASH [-secret-env NAME]", runVerify},
	"totp-secret":    {"totp-secret", runTOTPSecret},
	"totp-uri":       {"totp-uri -account NAME [-issuer NAME] [-secret-env NAME]", runTOTPURI},
	"totp-code":      {"totp-code [-secret-env NAME]", runTOTPCode},
	"totp-verify":    {"totp-verify -code CODE [-secret-env NAME]", runTOTPVerify},
	"totp-guard":     {"totp-guard -account ID -code CODE [-secret-env NAME]", runTOTPGuard},
	"totp-qr":        {"totp-qr -account NAME -out FILE [-size N] [-secret-env NAME]", runTOTPQR},
	"recovery-codes": {"recovery-codes [-n COUNT]", runRecoveryCodes},
}

type app struct {
	kit    *sealkit.Kit
	log    *slog.Logger
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	getenv func(string) string

	// loadOpts are passed to every config.Load call made by commands.
	loadOpts []config.LoadOption
}

func newApp(kit *sealkit.Kit, log *slog.Logger) *app {
	return &app{
		kit:    kit,
		log:    log,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		getenv: os.Getenv,
	}
}

// run dispatches args to a command and maps the outcome to an exit code.
func (a *app) run(ctx context.Context, args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		a.usage()
		if len(args) == 0 {
			return exitError
		}
		return exitOK
	}

	cmd, ok := commands[args[0]]
	if !ok {
		a.log.ErrorContext(ctx, "unknown command", slog.String("command", args[0]))
		a.usage()
		return exitError
	}

	ctx = context.WithValue(ctx, commandKey{}, args[0])
	err := cmd.run(ctx, a, args[1:])
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errNegative):
		a.log.InfoContext(ctx, "verification failed")
		return exitNegative
	case errors.Is(err, flag.ErrHelp):
		return exitOK
	default:
		a.log.ErrorContext(ctx, "command failed", logger.Error(err))
		return exitError
	}
}

func (a *app) usage() {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(a.stderr, "usage: sealctl <command> [flags]")
	fmt.Fprintln(a.stderr)
	for _, name := range names {
		fmt.Fprintln(a.stderr, "  "+commands[name].usage)
	}
}

func (a *app) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

func runEncrypt(_ context.Context, a *app, args []string) error {
	fs := a.flags("encrypt")
	secretEnv := fs.String("secret-env", "", "environment variable holding the secret")
	if err := fs.Parse(args); err != nil {
		return err
	}

	plaintext, err := a.argOrStdin(fs.Args())
	if err != nil {
		return err
	}
	secret, err := a.secretSource(*secretEnv, "Secret")
	if err != nil {
		return err
	}
	defer kdf.Wipe(secret)

	env, err := a.kit.Encrypt([]byte(plaintext), secret)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.stdout, env)
	return err
}

func runDecrypt(_ context.Context, a *app, args []string) error {
	fs := a.flags("decrypt")
	secretEnv := fs.String("secret-env", "", "environment variable holding the secret")
	if err := fs.Parse(args); err != nil {
		return err
	}

	env, err := a.argOrStdin(fs.Args())
	if err != nil {
		return err
	}
	secret, err := a.secretSource(*secretEnv, "Secret")
	if err != nil {
		return err
	}
	defer kdf.Wipe(secret)

	plaintext, err := a.kit.Decrypt(strings.TrimSpace(env), secret)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.stdout, string(plaintext))
	return err
}

func runHash(_ context.Context, a *app, args []string) error {
	fs := a.flags("hash")
	secretEnv := fs.String("secret-env", "", "environment variable holding the password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	pw, err := a.secretSource(*secretEnv, "Password")
	if err != nil {
		return err
	}
	defer kdf.Wipe(pw)

	hashed, err := a.kit.HashPassword(pw)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.stdout, hashed)
	return err
}

func runVerify(_ context.Context, a *app, args []string) error {
	fs := a.flags("verify")
	hashed := fs.String("hash", "", "stored password hash")
	secretEnv := fs.String("secret-env", "", "environment variable holding the password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *hashed == "" {
		return errors.New("-hash is required")
	}

	pw, err := a.secretSource(*secretEnv, "Password")
	if err != nil {
		return err
	}
	defer kdf.Wipe(pw)

	if !a.kit.VerifyPassword(pw, *hashed) {
		return errNegative
	}
	_, err = fmt.Fprintln(a.stdout, "ok")
	return err
}

func runTOTPSecret(_ context.Context, a *app, args []string) error {
	fs := a.flags("totp-secret")
	if err := fs.Parse(args); err != nil {
		return err
	}

	secret, err := a.kit.GenerateTOTPSecret()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.stdout, secret)
	return err
}

func runTOTPURI(_ context.Context, a *app, args []string) error {
	fs := a.flags("totp-uri")
	account := fs.String("account", "", "account name shown in the authenticator")
	issuer := fs.String("issuer", "", "issuer, defaults to SEAL_TOTP_ISSUER")
	secretEnv := fs.String("secret-env", "", "environment variable holding the TOTP secret")
	if err := fs.Parse(args); err != nil {
		return err
	}

	secret, err := a.secretSource(*secretEnv, "TOTP secret")
	if err != nil {
		return err
	}

	var uri string
	if *issuer != "" {
		uri, err = a.kit.TOTP.ProvisioningURI(*account, *issuer, string(secret))
	} else {
		uri, err = a.kit.ProvisioningURI(*account, string(secret))
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.stdout, uri)
	return err
}

func runTOTPCode(_ context.Context, a *app, args []string) error {
	fs := a.flags("totp-code")
	secretEnv := fs.String("secret-env", "", "environment variable holding the TOTP secret")
	if err := fs.Parse(args); err != nil {
		return err
	}

	secret, err := a.secretSource(*secretEnv, "TOTP secret")
	if err != nil {
		return err
	}
	code, err := a.kit.GenerateTOTP(string(secret))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.stdout, code)
	return err
}

func runTOTPVerify(_ context.Context, a *app, args []string) error {
	fs := a.flags("totp-verify")
	code := fs.String("code", "", "code to check")
	secretEnv := fs.String("secret-env", "", "environment variable holding the TOTP secret")
	if err := fs.Parse(args); err != nil {
		return err
	}

	secret, err := a.secretSource(*secretEnv, "TOTP secret")
	if err != nil {
		return err
	}
	ok, err := a.kit.VerifyTOTP(*code, string(secret))
	if err != nil {
		return err
	}
	if !ok {
		return errNegative
	}
	_, err = fmt.Fprintln(a.stdout, "ok")
	return err
}

// runTOTPGuard verifies a code with replay prevention and attempt limiting
// backed by Redis, so state persists across invocations.
func runTOTPGuard(ctx context.Context, a *app, args []string) error {
	fs := a.flags("totp-guard")
	account := fs.String("account", "", "account id the code belongs to")
	code := fs.String("code", "", "code to check")
	secretEnv := fs.String("secret-env", "", "environment variable holding the TOTP secret")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var redisCfg redis.Config
	if err := config.Load(&redisCfg, a.loadOpts...); err != nil {
		return err
	}
	var guardCfg otpguard.Config
	if err := config.Load(&guardCfg, a.loadOpts...); err != nil {
		return err
	}

	secret, err := a.secretSource(*secretEnv, "TOTP secret")
	if err != nil {
		return err
	}

	client, err := redis.Connect(ctx, redisCfg)
	if err != nil {
		return err
	}
	defer client.Close()

	guard := otpguard.New(
		otpguard.NewRedisStore(client, otpguard.WithKeyPrefix(redisCfg.KeyPrefix)),
		a.kit.TOTP,
		otpguard.WithConfig(guardCfg),
		otpguard.WithLogger(a.log),
	)
	err = guard.Verify(ctx, *account, string(secret), *code)
	switch {
	case err == nil:
	case errors.Is(err, otpguard.ErrInvalidCode),
		errors.Is(err, otpguard.ErrCodeReplayed),
		errors.Is(err, otpguard.ErrTooManyAttempts):
		fmt.Fprintln(a.stderr, err)
		return errNegative
	default:
		return err
	}
	_, err = fmt.Fprintln(a.stdout, "ok")
	return err
}

func runTOTPQR(ctx context.Context, a *app, args []string) error {
	fs := a.flags("totp-qr")
	account := fs.String("account", "", "account name shown in the authenticator")
	out := fs.String("out", "", "PNG output file")
	size := fs.Int("size", qrcode.DefaultSize, "image size in pixels")
	secretEnv := fs.String("secret-env", "", "environment variable holding the TOTP secret")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *out == "" {
		return errors.New("-out is required")
	}

	secret, err := a.secretSource(*secretEnv, "TOTP secret")
	if err != nil {
		return err
	}
	png, err := a.kit.ProvisioningQR(*account, string(secret), qrcode.WithSize(*size))
	if err != nil {
		return err
	}
	if err := os.WriteFile(*out, png, 0o600); err != nil {
		return err
	}
	a.log.InfoContext(ctx, "QR code written", slog.String("file", *out))
	return nil
}

func runRecoveryCodes(_ context.Context, a *app, args []string) error {
	fs := a.flags("recovery-codes")
	n := fs.Int("n", 10, "number of codes")
	if err := fs.Parse(args); err != nil {
		return err
	}

	codes, err := totp.GenerateRecoveryCodes(*n)
	if err != nil {
		return err
	}
	// code, then the digest to store
	for _, code := range codes {
		if _, err := fmt.Fprintf(a.stdout, "%s\t%s\n", code, totp.HashRecoveryCode(code)); err != nil {
			return err
		}
	}
	return nil
}
