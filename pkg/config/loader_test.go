package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sealkit/pkg/config"
)

type kdfConfig struct {
	Iterations int `env:"KDF_ITERATIONS" envDefault:"100000"`
	KeyBits    int `env:"KDF_KEY_BITS" envDefault:"256"`
}

type cachedConfig struct {
	Value string `env:"CACHED_VALUE" envDefault:"first"`
}

type requiredConfig struct {
	Required string `env:"REQUIRED_VALUE,required"`
}

type fileConfig struct {
	FromFile string `env:"SEALKIT_FROM_FILE"`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg kdfConfig
	err := config.Load(&cfg, config.WithEnvironment(map[string]string{}))
	require.NoError(t, err)
	assert.Equal(t, 100000, cfg.Iterations)
	assert.Equal(t, 256, cfg.KeyBits)
}

func TestLoad_Prefix(t *testing.T) {
	t.Setenv("SEAL_KDF_ITERATIONS", "5000")
	t.Setenv("KDF_ITERATIONS", "1")

	var cfg kdfConfig
	err := config.Load(&cfg, config.WithPrefix("SEAL_"), config.WithoutCache())
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Iterations)
	assert.Equal(t, 256, cfg.KeyBits)
}

func TestLoad_Environment(t *testing.T) {
	var cfg kdfConfig
	err := config.Load(&cfg, config.WithEnvironment(map[string]string{
		"KDF_ITERATIONS": "42",
		"KDF_KEY_BITS":   "128",
	}))
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.Iterations)
	assert.Equal(t, 128, cfg.KeyBits)
}

func TestLoad_Cached(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	t.Setenv("CACHED_VALUE", "first")
	var first cachedConfig
	require.NoError(t, config.Load(&first))
	assert.Equal(t, "first", first.Value)

	t.Setenv("CACHED_VALUE", "second")
	var second cachedConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "first", second.Value, "cached copy is returned")

	var fresh cachedConfig
	require.NoError(t, config.Load(&fresh, config.WithoutCache()))
	assert.Equal(t, "second", fresh.Value)

	var prefixed cachedConfig
	t.Setenv("APP_CACHED_VALUE", "prefixed")
	require.NoError(t, config.Load(&prefixed, config.WithPrefix("APP_")))
	assert.Equal(t, "prefixed", prefixed.Value, "prefix is part of the cache key")

	config.Reset()
	var reloaded cachedConfig
	require.NoError(t, config.Load(&reloaded))
	assert.Equal(t, "second", reloaded.Value)
}

func TestLoad_MissingRequired(t *testing.T) {
	os.Unsetenv("REQUIRED_VALUE")

	var cfg requiredConfig
	err := config.Load(&cfg, config.WithoutCache())
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestLoad_InvalidValue(t *testing.T) {
	var cfg kdfConfig
	err := config.Load(&cfg, config.WithEnvironment(map[string]string{"KDF_ITERATIONS": "lots"}))
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestLoad_EnvFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("SEALKIT_FROM_FILE=from-file\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("SEALKIT_FROM_FILE") })

	var cfg fileConfig
	require.NoError(t, config.Load(&cfg, config.WithEnvFiles(path), config.WithoutCache()))
	assert.Equal(t, "from-file", cfg.FromFile)

	err := config.Load(&cfg, config.WithEnvFiles(filepath.Join(dir, "missing.env")))
	assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
}

func TestLoad_NilPointer(t *testing.T) {
	var cfg *kdfConfig
	assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
}

func TestMustLoad(t *testing.T) {
	os.Unsetenv("REQUIRED_VALUE")
	assert.Panics(t, func() {
		var cfg requiredConfig
		config.MustLoad(&cfg, config.WithoutCache())
	})
	assert.NotPanics(t, func() {
		var cfg kdfConfig
		config.MustLoad(&cfg, config.WithEnvironment(map[string]string{}))
	})
}
