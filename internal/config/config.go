package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	Database    DatabaseConfig
	Gateway     GatewayConfig
	SMTP        SMTPConfig
	FormRelay   FormRelayConfig
	Pricing     PricingConfig
	Catalog     CatalogConfig
	API         APIConfig
	LogLevel    string
}

// CatalogConfig is the static product catalog: a single-product storefront
// supplies name and unit price through configuration, not a database.
type CatalogConfig struct {
	ProductName string
	UnitPrice   float64
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// GatewayConfig holds hosted payment gateway credentials. KeyID is safe to
// expose to the checkout page; KeySecret signs and verifies callbacks and
// never leaves the server.
type GatewayConfig struct {
	BaseURL   string
	KeyID     string
	KeySecret string
}

type SMTPConfig struct {
	Address  string
	Host     string
	From     string
	Password string
}

// FormRelayConfig is the fallback notification channel used when SMTP
// delivery fails.
type FormRelayConfig struct {
	Endpoint string
	Inbox    string
}

// PricingConfig carries the pricing rules the resolver applies. The rules
// are configuration, the arithmetic is not.
type PricingConfig struct {
	OnlineDiscountPct    int
	ShippingFlat         float64
	TaxFlat              float64
	BaseCurrency         string
	OrderNumberPrefix    string
	DeliveryBusinessDays int
	RequirePostalCode    bool
	RequireState         bool
}

type APIConfig struct {
	SessionTTLMinutes int
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("GATEWAY_BASE_URL", "https://api.razorpay.com")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Database: DatabaseConfig{
			Host:     getEnvOrViper("DB_HOST", "localhost"),
			Port:     getEnvOrViper("DB_PORT", "5432"),
			User:     getEnvOrViper("DB_USER", "postgres"),
			Password: getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrViper("DB_NAME", "checkoutapi"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
		},
		Gateway: GatewayConfig{
			BaseURL:   getEnvOrViper("GATEWAY_BASE_URL", "https://api.razorpay.com"),
			KeyID:     getEnvOrViper("GATEWAY_KEY_ID", ""),
			KeySecret: getEnvOrViper("GATEWAY_KEY_SECRET", ""),
		},
		SMTP: SMTPConfig{
			Address:  getEnvOrViper("SMTP_ADDRESS", ""),
			Host:     getEnvOrViper("SMTP_HOST", ""),
			From:     getEnvOrViper("FROM_EMAIL", ""),
			Password: getEnvOrViper("FROM_EMAIL_PASSWORD", ""),
		},
		FormRelay: FormRelayConfig{
			Endpoint: getEnvOrViper("FORM_RELAY_ENDPOINT", "https://formsubmit.co/ajax"),
			Inbox:    getEnvOrViper("FORM_RELAY_INBOX", ""),
		},
		Pricing: PricingConfig{
			OnlineDiscountPct:    getEnvOrViperInt("ONLINE_DISCOUNT_PCT", 10),
			ShippingFlat:         getEnvOrViperFloat("SHIPPING_FLAT", 0),
			TaxFlat:              getEnvOrViperFloat("TAX_FLAT", 0),
			BaseCurrency:         getEnvOrViper("BASE_CURRENCY", "INR"),
			OrderNumberPrefix:    getEnvOrViper("ORDER_NUMBER_PREFIX", "BYD"),
			DeliveryBusinessDays: getEnvOrViperInt("DELIVERY_BUSINESS_DAYS", 7),
			RequirePostalCode:    getEnvOrViperBool("REQUIRE_POSTAL_CODE", false),
			RequireState:         getEnvOrViperBool("REQUIRE_STATE", false),
		},
		Catalog: CatalogConfig{
			ProductName: getEnvOrViper("PRODUCT_NAME", "Beyond Slim Slimming Oil"),
			UnitPrice:   getEnvOrViperFloat("PRODUCT_UNIT_PRICE", 3990),
		},
		API: APIConfig{
			SessionTTLMinutes: getEnvOrViperInt("SESSION_TTL_MINUTES", 45),
		},
		LogLevel: getEnvOrViper("LOG_LEVEL", "info"),
	}

	// Validate required fields
	if cfg.Gateway.KeyID == "" {
		return nil, fmt.Errorf("GATEWAY_KEY_ID is required")
	}
	if cfg.Gateway.KeySecret == "" {
		return nil, fmt.Errorf("GATEWAY_KEY_SECRET is required")
	}
	if cfg.Pricing.OnlineDiscountPct < 0 || cfg.Pricing.OnlineDiscountPct > 100 {
		return nil, fmt.Errorf("ONLINE_DISCOUNT_PCT must be between 0 and 100")
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}

func getEnvOrViperInt(key string, defaultValue int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	if viper.IsSet(key) {
		return viper.GetInt(key)
	}
	return defaultValue
}

func getEnvOrViperFloat(key string, defaultValue float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	if viper.IsSet(key) {
		return viper.GetFloat64(key)
	}
	return defaultValue
}

func getEnvOrViperBool(key string, defaultValue bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	if viper.IsSet(key) {
		return viper.GetBool(key)
	}
	return defaultValue
}
