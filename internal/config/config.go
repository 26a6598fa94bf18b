// Package config loads the storefront configuration from a YAML file with
// environment overrides.
package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/nikolayk812/neon-eshop/internal/domain"
	"github.com/nikolayk812/neon-eshop/internal/pricing"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"gopkg.in/yaml.v3"
)

const (
	DriverLocal    = "local"
	DriverPostgres = "postgres"
)

var (
	ValidDrivers    = []string{DriverLocal, DriverPostgres}
	ValidLevels     = []string{"debug", "info", "warn", "error"}
	ValidFormats    = []string{"json", "console"}
	ValidPromoKinds = []string{string(domain.PromoPercent), string(domain.PromoFixed)}
)

type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Storage StorageConfig `yaml:"storage"`
	Pricing PricingConfig `yaml:"pricing"`
	Logging LoggingConfig `yaml:"logging"`
}

type HTTPConfig struct {
	Addr            string `yaml:"addr"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
	// SessionIdle is how long an untouched cart stays in memory.
	SessionIdle string `yaml:"session_idle"`
}

type StorageConfig struct {
	Driver      string `yaml:"driver"`
	Path        string `yaml:"path"`
	DatabaseURL string `yaml:"database_url"`
}

type PricingConfig struct {
	Currency     string        `yaml:"currency"`
	ShippingFlat string        `yaml:"shipping_flat"`
	TaxRate      string        `yaml:"tax_rate"`
	Promos       []PromoConfig `yaml:"promos"`
}

type PromoConfig struct {
	Code  string `yaml:"code"`
	Kind  string `yaml:"kind"`
	Value string `yaml:"value"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Addr:            ":8080",
			ShutdownTimeout: "15s",
			SessionIdle:     "30m",
		},
		Storage: StorageConfig{
			Driver: DriverLocal,
			Path:   "data/eshop.db",
		},
		Pricing: PricingConfig{
			Currency:     "USD",
			ShippingFlat: pricing.DefaultShippingFlat.String(),
			TaxRate:      pricing.DefaultTaxRate.String(),
			Promos: []PromoConfig{
				{Code: pricing.HireSami, Kind: string(domain.PromoPercent), Value: "100"},
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads path on top of the defaults and applies environment overrides.
// An empty path or a missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("os.ReadFile: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("yaml.Unmarshal: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	c.HTTP.Addr = getenv("ESHOP_HTTP_ADDR", c.HTTP.Addr)
	c.Storage.Driver = getenv("ESHOP_STORAGE_DRIVER", c.Storage.Driver)
	c.Storage.Path = getenv("ESHOP_STORAGE_PATH", c.Storage.Path)
	c.Storage.DatabaseURL = getenv("DATABASE_URL", c.Storage.DatabaseURL)
	c.Logging.Level = getenv("ESHOP_LOG_LEVEL", c.Logging.Level)
	c.Logging.Format = getenv("ESHOP_LOG_FORMAT", c.Logging.Format)

	if sec, err := strconv.Atoi(getenv("ESHOP_SHUTDOWN_TIMEOUT", "")); err == nil {
		c.HTTP.ShutdownTimeout = (time.Duration(sec) * time.Second).String()
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func (c *Config) GetShutdownTimeout() time.Duration {
	d, err := time.ParseDuration(c.HTTP.ShutdownTimeout)
	if err != nil {
		return 15 * time.Second
	}
	return d
}

func (c *Config) GetSessionIdle() time.Duration {
	d, err := time.ParseDuration(c.HTTP.SessionIdle)
	if err != nil || d <= 0 {
		return 30 * time.Minute
	}
	return d
}

func (c *Config) Validate() error {
	if !slices.Contains(ValidDrivers, c.Storage.Driver) {
		return fmt.Errorf("invalid storage driver: %s (valid: %v)", c.Storage.Driver, ValidDrivers)
	}
	if c.Storage.Driver == DriverLocal && c.Storage.Path == "" {
		return fmt.Errorf("storage path is empty")
	}
	if c.Storage.Driver == DriverPostgres && c.Storage.DatabaseURL == "" {
		return fmt.Errorf("database url is empty (set DATABASE_URL)")
	}

	if !slices.Contains(ValidLevels, strings.ToLower(c.Logging.Level)) {
		return fmt.Errorf("invalid log level: %s (valid: %v)", c.Logging.Level, ValidLevels)
	}
	if !slices.Contains(ValidFormats, c.Logging.Format) {
		return fmt.Errorf("invalid log format: %s (valid: %v)", c.Logging.Format, ValidFormats)
	}

	if _, err := time.ParseDuration(c.HTTP.ShutdownTimeout); err != nil {
		return fmt.Errorf("shutdown timeout: %w", err)
	}

	if _, err := c.Engine(); err != nil {
		return err
	}
	if _, err := c.PromoBook(); err != nil {
		return err
	}

	return nil
}

func (c *Config) Currency() (currency.Unit, error) {
	cur, err := currency.ParseISO(c.Pricing.Currency)
	if err != nil {
		return currency.Unit{}, fmt.Errorf("currency[%s]: %w", c.Pricing.Currency, err)
	}
	return cur, nil
}

func (c *Config) Engine() (*pricing.Engine, error) {
	cur, err := c.Currency()
	if err != nil {
		return nil, err
	}

	shipping, err := decimal.NewFromString(c.Pricing.ShippingFlat)
	if err != nil {
		return nil, fmt.Errorf("shipping flat[%s]: %w", c.Pricing.ShippingFlat, err)
	}
	if shipping.IsNegative() {
		return nil, fmt.Errorf("shipping flat[%s] is negative", c.Pricing.ShippingFlat)
	}

	taxRate, err := decimal.NewFromString(c.Pricing.TaxRate)
	if err != nil {
		return nil, fmt.Errorf("tax rate[%s]: %w", c.Pricing.TaxRate, err)
	}
	if taxRate.IsNegative() {
		return nil, fmt.Errorf("tax rate[%s] is negative", c.Pricing.TaxRate)
	}

	return pricing.NewEngine(cur, shipping, taxRate), nil
}

func (c *Config) PromoBook() (*pricing.PromoBook, error) {
	rules := make([]domain.PromoRule, 0, len(c.Pricing.Promos))
	for _, p := range c.Pricing.Promos {
		value, err := decimal.NewFromString(p.Value)
		if err != nil {
			return nil, fmt.Errorf("promo[%s] value: %w", p.Code, err)
		}
		if !slices.Contains(ValidPromoKinds, p.Kind) {
			return nil, fmt.Errorf("promo[%s]: invalid kind: %s (valid: %v)", p.Code, p.Kind, ValidPromoKinds)
		}

		rules = append(rules, domain.PromoRule{
			Code:  p.Code,
			Kind:  domain.PromoKind(p.Kind),
			Value: value,
		})
	}

	book, err := pricing.NewPromoBook(rules...)
	if err != nil {
		return nil, fmt.Errorf("pricing.NewPromoBook: %w", err)
	}
	return book, nil
}
