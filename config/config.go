package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Config struct {
	Server   ServerConfig
	Postgres PostgresConfig
	JWT      JWTConfig
	Checkout CheckoutConfig
	Uploads  UploadConfig
}

type ServerConfig struct {
	Port        string
	CORSOrigins []string
}

type PostgresConfig struct {
	URL      string // takes precedence when set
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type JWTConfig struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// CheckoutConfig carries the pricing policy knobs for order creation.
type CheckoutConfig struct {
	ShippingFlatRate decimal.Decimal // charged below the free-shipping threshold
	FreeShippingMin  decimal.Decimal // subtotal at or above this ships free
	StrictStatus     bool            // reject unknown status overrides instead of coercing to pending
	OrderNumberTries int             // re-rolls before giving up on a unique order number
}

type UploadConfig struct {
	Dir string
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			CORSOrigins: splitEnv("CORS_ORIGINS", "*"),
		},
		Postgres: PostgresConfig{
			URL:      os.Getenv("DATABASE_URL"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "marche_db"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:     getEnv("JWT_SECRET", "jwt-secret-string"),
			AccessTTL:  getEnvDuration("JWT_ACCESS_TTL", 24*time.Hour),
			RefreshTTL: getEnvDuration("JWT_REFRESH_TTL", 30*24*time.Hour),
		},
		Checkout: CheckoutConfig{
			ShippingFlatRate: getEnvDecimal("SHIPPING_FLAT_RATE", "5.00"),
			FreeShippingMin:  getEnvDecimal("FREE_SHIPPING_MIN", "50.00"),
			StrictStatus:     getEnvBool("STRICT_ORDER_STATUS", false),
			OrderNumberTries: getEnvInt("ORDER_NUMBER_TRIES", 5),
		},
		Uploads: UploadConfig{
			Dir: getEnv("UPLOAD_DIR", "uploads"),
		},
	}
}

// DSN builds the postgres connection string, preferring DATABASE_URL.
func (p PostgresConfig) DSN() string {
	if p.URL != "" {
		return p.URL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		p.Host, p.User, p.Password, p.DBName, p.Port, p.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getEnvDecimal(key, fallback string) decimal.Decimal {
	v := os.Getenv(key)
	if v == "" {
		v = fallback
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.RequireFromString(fallback)
	}
	return d
}

func splitEnv(key, fallback string) []string {
	v := getEnv(key, fallback)
	parts := strings.Split(v, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
