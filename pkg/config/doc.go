// Package config loads typed configuration from environment variables.
//
// It wraps github.com/caarlos0/env/v11 for struct tag parsing and
// github.com/joho/godotenv for .env files. The default .env file in the
// working directory is read once per process; missing files are ignored.
// Additional files can be requested per call with WithEnvFiles, in which case
// a missing file is an error.
//
// Each (type, prefix) pair is parsed once and cached, so repeated Load calls
// from different components return the same values. Reset clears the cache.
//
// # Usage
//
//	type Config struct {
//		Iterations int `env:"KDF_ITERATIONS" envDefault:"100000"`
//		KeyBits    int `env:"KDF_KEY_BITS" envDefault:"256"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg, config.WithPrefix("SEAL_")); err != nil {
//		// handle error
//	}
//
// Errors wrap ErrParsingConfig or ErrLoadingEnvFile; match with errors.Is.
package config
