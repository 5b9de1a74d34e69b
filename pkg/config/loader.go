package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// configCache stores parsed configuration copies keyed by type and prefix.
type configCache struct {
	mu     sync.RWMutex
	values map[string]any
}

var (
	globalCache = &configCache{values: make(map[string]any)}

	defaultEnvLoaded sync.Once
)

type loadOptions struct {
	prefix   string
	envFiles []string
	noCache  bool
	environ  map[string]string
}

// LoadOption customizes a single Load call.
type LoadOption func(*loadOptions)

// WithPrefix prepends prefix to every env tag, e.g. "SEAL_" turns
// KDF_ITERATIONS into SEAL_KDF_ITERATIONS.
func WithPrefix(prefix string) LoadOption {
	return func(o *loadOptions) {
		o.prefix = prefix
	}
}

// WithEnvFiles loads the given .env files before parsing. Variables already
// present in the process environment win.
func WithEnvFiles(paths ...string) LoadOption {
	return func(o *loadOptions) {
		o.envFiles = append(o.envFiles, paths...)
	}
}

// WithEnvironment parses from the given map instead of the process
// environment. The result is not cached.
func WithEnvironment(environ map[string]string) LoadOption {
	return func(o *loadOptions) {
		o.environ = environ
		o.noCache = true
	}
}

// WithoutCache forces a fresh parse and leaves the cache untouched.
func WithoutCache() LoadOption {
	return func(o *loadOptions) {
		o.noCache = true
	}
}

// Load parses environment variables into v.
//
// Example:
//
//	var cfg sealkit.Config
//	if err := config.Load(&cfg, config.WithPrefix("SEAL_")); err != nil {
//		// handle error
//	}
func Load[T any](v *T, opts ...LoadOption) error {
	if v == nil {
		return ErrNilPointer
	}

	o := loadOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	defaultEnvLoaded.Do(func() {
		// The default .env file is optional
		_ = godotenv.Load()
	})
	if len(o.envFiles) > 0 {
		if err := godotenv.Load(o.envFiles...); err != nil {
			return errors.Join(ErrLoadingEnvFile, err)
		}
	}

	key := cacheKey[T](o.prefix)
	if !o.noCache {
		globalCache.mu.RLock()
		cached, ok := globalCache.values[key]
		globalCache.mu.RUnlock()
		if ok {
			*v = cached.(T)
			return nil
		}
	}

	var parsed T
	envOpts := env.Options{Prefix: o.prefix}
	if o.environ != nil {
		envOpts.Environment = o.environ
	}
	if err := env.ParseWithOptions(&parsed, envOpts); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}

	if !o.noCache {
		globalCache.mu.Lock()
		// A concurrent Load may have stored first; keep that copy so every
		// caller observes the same value.
		if cached, ok := globalCache.values[key]; ok {
			parsed = cached.(T)
		} else {
			globalCache.values[key] = parsed
		}
		globalCache.mu.Unlock()
	}

	*v = parsed
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](v *T, opts ...LoadOption) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// Reset drops every cached configuration.
func Reset() {
	globalCache.mu.Lock()
	globalCache.values = make(map[string]any)
	globalCache.mu.Unlock()
}

func cacheKey[T any](prefix string) string {
	return reflect.TypeFor[T]().String() + "|" + prefix
}
