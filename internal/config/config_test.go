package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nikolayk812/neon-eshop/internal/config"
	"github.com/nikolayk812/neon-eshop/internal/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{
		"ESHOP_HTTP_ADDR",
		"ESHOP_STORAGE_DRIVER",
		"ESHOP_STORAGE_PATH",
		"DATABASE_URL",
		"ESHOP_LOG_LEVEL",
		"ESHOP_LOG_FORMAT",
		"ESHOP_SHUTDOWN_TIMEOUT",
	} {
		t.Setenv(key, "")
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "eshop.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	for _, path := range []string{"", filepath.Join(t.TempDir(), "missing.yaml")} {
		cfg, err := config.Load(path)
		require.NoError(t, err)
		require.NoError(t, cfg.Validate())

		assert.Equal(t, ":8080", cfg.HTTP.Addr)
		assert.Equal(t, 15*time.Second, cfg.GetShutdownTimeout())
		assert.Equal(t, 30*time.Minute, cfg.GetSessionIdle())
		assert.Equal(t, config.DriverLocal, cfg.Storage.Driver)
		assert.Equal(t, "info", cfg.Logging.Level)

		book, err := cfg.PromoBook()
		require.NoError(t, err)
		_, ok := book.Lookup(pricing.HireSami)
		assert.True(t, ok)

		cur, err := cfg.Currency()
		require.NoError(t, err)
		assert.Equal(t, currency.USD, cur)
	}
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)

	path := writeFile(t, `
http:
  addr: ":9000"
  shutdown_timeout: 3s
storage:
  driver: postgres
  database_url: postgres://u:p@localhost:5432/eshop
pricing:
  currency: EUR
  shipping_flat: "4.50"
  tax_rate: "0.2"
  promos:
    - code: welcome10
      kind: fixed
      value: "10"
logging:
  level: debug
  format: console
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ":9000", cfg.HTTP.Addr)
	assert.Equal(t, 3*time.Second, cfg.GetShutdownTimeout())
	assert.Equal(t, config.DriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, "console", cfg.Logging.Format)

	engine, err := cfg.Engine()
	require.NoError(t, err)
	assert.Equal(t, currency.EUR, engine.Currency())

	book, err := cfg.PromoBook()
	require.NoError(t, err)
	assert.Equal(t, 1, book.Len())
	_, ok := book.Lookup("WELCOME10")
	assert.True(t, ok)
	_, ok = book.Lookup(pricing.HireSami)
	assert.False(t, ok)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ESHOP_HTTP_ADDR", ":7070")
	t.Setenv("ESHOP_STORAGE_PATH", "/tmp/carts.db")
	t.Setenv("ESHOP_LOG_LEVEL", "warn")
	t.Setenv("ESHOP_SHUTDOWN_TIMEOUT", "2")

	path := writeFile(t, "http:\n  addr: \":9000\"\n")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.HTTP.Addr)
	assert.Equal(t, "/tmp/carts.db", cfg.Storage.Path)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, 2*time.Second, cfg.GetShutdownTimeout())
}

func TestLoad_MalformedYAML(t *testing.T) {
	clearEnv(t)

	_, err := config.Load(writeFile(t, "http: [unclosed"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name   string
		mutate func(c *config.Config)
	}{
		{name: "unknown driver", mutate: func(c *config.Config) { c.Storage.Driver = "redis" }},
		{name: "postgres without url", mutate: func(c *config.Config) { c.Storage.Driver = config.DriverPostgres }},
		{name: "local without path", mutate: func(c *config.Config) { c.Storage.Path = "" }},
		{name: "unknown level", mutate: func(c *config.Config) { c.Logging.Level = "loud" }},
		{name: "unknown format", mutate: func(c *config.Config) { c.Logging.Format = "xml" }},
		{name: "bad shutdown timeout", mutate: func(c *config.Config) { c.HTTP.ShutdownTimeout = "soon" }},
		{name: "bad currency", mutate: func(c *config.Config) { c.Pricing.Currency = "XX" }},
		{name: "negative shipping", mutate: func(c *config.Config) { c.Pricing.ShippingFlat = "-1" }},
		{name: "negative tax", mutate: func(c *config.Config) { c.Pricing.TaxRate = "-0.1" }},
		{name: "malformed tax", mutate: func(c *config.Config) { c.Pricing.TaxRate = "ten" }},
		{name: "unknown promo kind", mutate: func(c *config.Config) { c.Pricing.Promos[0].Kind = "bogo" }},
		{name: "promo percent above 100", mutate: func(c *config.Config) { c.Pricing.Promos[0].Value = "150" }},
		{
			name: "duplicated promo",
			mutate: func(c *config.Config) {
				c.Pricing.Promos = append(c.Pricing.Promos, config.PromoConfig{Code: "hire_sami", Kind: "fixed", Value: "1"})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			tt.mutate(cfg)

			assert.Error(t, cfg.Validate())
		})
	}
}
