// Package sealkit bundles the credential primitives of the module behind one
// configuration: secret encryption (package secrets), password hashing
// (package password) and time-based one-time passwords (package totp).
//
// Each primitive is usable on its own. Kit wires them from a single Config
// that is loaded from the environment with the SEAL_ prefix:
//
//	cfg, err := sealkit.LoadConfig()
//	if err != nil {
//		return err
//	}
//	kit, err := sealkit.New(cfg)
//	if err != nil {
//		return err
//	}
//
//	env, err := kit.Encrypt([]byte("hello"), []byte("s3cret"))
//	plain, err := kit.Decrypt(env, []byte("s3cret"))
//
//	secret, err := kit.GenerateTOTPSecret()
//	uri, err := kit.ProvisioningURI("alice@example.com", secret)
//	ok, err := kit.VerifyTOTP(code, secret)
//
// Everything in a Kit is stateless and safe for concurrent use. Replay
// prevention and attempt limiting for TOTP live in package otpguard.
package sealkit
