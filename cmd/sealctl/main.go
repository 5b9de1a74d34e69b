// Command sealctl exposes the sealkit primitives on the command line.
//
// Usage:
//
//	sealctl <command> [flags]
//
// Commands: encrypt, decrypt, hash, verify, totp-secret, totp-uri,
// totp-code, totp-verify, totp-guard, totp-qr, recovery-codes.
//
// Secrets are read from the environment variable named by -secret-env or
// prompted for on the terminal without echo. Configuration is taken from
// SEAL_* and LOG_* environment variables.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/sealkit"
	"github.com/dmitrymomot/sealkit/pkg/config"
	"github.com/dmitrymomot/sealkit/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var logCfg logger.Config
	config.MustLoad(&logCfg)
	log := logger.New(append(logCfg.Options(),
		logger.WithAttr(logger.Component("sealctl")),
		logger.WithContextExtractors(commandFromContext),
	)...)

	cfg, err := sealkit.LoadConfig()
	if err != nil {
		log.ErrorContext(ctx, "failed to load configuration", logger.Error(err))
		os.Exit(exitError)
	}
	kit, err := sealkit.New(cfg)
	if err != nil {
		log.ErrorContext(ctx, "invalid configuration", logger.Error(err))
		os.Exit(exitError)
	}

	a := newApp(kit, log)
	os.Exit(a.run(ctx, os.Args[1:]))
}
