package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Catalog sources.
const (
	CatalogSourceHTTP     = "http"
	CatalogSourcePostgres = "postgres"
	CatalogSourceStatic   = "static"
)

// Cart persistence backends.
const (
	CartBackendMemory   = "memory"
	CartBackendPostgres = "postgres"
	CartBackendRedis    = "redis"
)

type Config struct {
	AppPort string
	AppEnv  string

	DBHost         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBPort         string
	DBMaxOpenConns int

	CatalogSource   string
	CatalogURL      string
	CatalogTimeout  time.Duration
	CatalogCacheTTL time.Duration

	CartBackend string
	RedisURL    string
	CartTTL     time.Duration

	FreeShippingThreshold decimal.Decimal
	ShippingFee           decimal.Decimal

	SecretKey          string
	InternalSecretKey  string
	CORSAllowedOrigins []string
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppPort:       getEnv("APP_PORT", "8080"),
		AppEnv:        getEnv("APP_ENV", "development"),
		DBHost:        os.Getenv("DB_HOST"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		DBPort:        getEnv("DB_PORT", "5432"),
		CatalogSource: strings.ToLower(getEnv("CATALOG_SOURCE", CatalogSourceStatic)),
		CatalogURL:    os.Getenv("CATALOG_URL"),
		CartBackend:   strings.ToLower(getEnv("CART_BACKEND", CartBackendMemory)),
		RedisURL:      getEnv("REDIS_URL", "redis://localhost:6379"),
		SecretKey:     os.Getenv("SECRET_KEY"),

		InternalSecretKey: os.Getenv("INTERNAL_SECRET_KEY"),
	}

	var err error
	if cfg.DBMaxOpenConns, err = getInt("DB_MAX_OPEN_CONNS", 10); err != nil {
		return nil, err
	}
	if cfg.CatalogTimeout, err = getDuration("CATALOG_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.CatalogCacheTTL, err = getDuration("CATALOG_CACHE_TTL", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.CartTTL, err = getDuration("CART_TTL", 7*24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.FreeShippingThreshold, err = getDecimal("FREE_SHIPPING_THRESHOLD", decimal.NewFromInt(500)); err != nil {
		return nil, err
	}
	if cfg.ShippingFee, err = getDecimal("SHIPPING_FEE", decimal.NewFromInt(25)); err != nil {
		return nil, err
	}

	origins := getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load for main packages: any error is fatal.
func LoadConfig() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("Environment variables not loaded properly: %v", err)
	}
	return cfg
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// NeedsDB reports whether any configured component talks to Postgres.
func (c *Config) NeedsDB() bool {
	return c.CatalogSource == CatalogSourcePostgres || c.CartBackend == CartBackendPostgres
}

func (c *Config) validate() error {
	switch c.CatalogSource {
	case CatalogSourceHTTP:
		if c.CatalogURL == "" {
			return fmt.Errorf("CATALOG_URL is required when CATALOG_SOURCE=%s", CatalogSourceHTTP)
		}
	case CatalogSourcePostgres, CatalogSourceStatic:
	default:
		return fmt.Errorf("unknown CATALOG_SOURCE %q", c.CatalogSource)
	}

	switch c.CartBackend {
	case CartBackendMemory, CartBackendPostgres, CartBackendRedis:
	default:
		return fmt.Errorf("unknown CART_BACKEND %q", c.CartBackend)
	}

	if c.NeedsDB() && c.DBHost == "" {
		return fmt.Errorf("DB_HOST is required for postgres-backed components")
	}
	if c.FreeShippingThreshold.IsNegative() || c.ShippingFee.IsNegative() {
		return fmt.Errorf("shipping amounts must not be negative")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getDecimal(key string, fallback decimal.Decimal) (decimal.Decimal, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
