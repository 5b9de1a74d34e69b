// Package redis connects to the Redis server backing the OTP guard's shared
// replay and attempt state.
//
// Connect parses a redis:// URL, pings the server and retries according to
// Config. Healthcheck returns a probe function suitable for readiness checks.
//
//	var cfg redis.Config
//	if err := config.Load(&cfg); err != nil {
//		// handle error
//	}
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		// handle error
//	}
//	store := otpguard.NewRedisStore(client)
package redis
