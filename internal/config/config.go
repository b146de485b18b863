// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import "time"

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Store    StoreConfig
	Admin    AdminConfig
	Checkout CheckoutConfig
	Logging  LoggingConfig
}

// StoreConfig holds the locations of the flat files backing the shop.
type StoreConfig struct {
	// CatalogPath is the CSV file used for catalog upload/save (default: products.csv)
	CatalogPath string `env:"CATALOG_FILE" default:"products.csv"`

	// AccountsPath is the append-only credentials file (default: accounts.txt)
	AccountsPath string `env:"ACCOUNTS_FILE" envAlt:"CREDENTIALS_FILE" default:"accounts.txt"`

	// OrderLogPath is the append-only order log (default: orders.txt)
	OrderLogPath string `env:"ORDER_LOG_FILE" default:"orders.txt"`

	// OrderLogEnabled controls whether placed orders are appended to OrderLogPath (default: true)
	OrderLogEnabled bool `env:"ORDER_LOG_ENABLED" default:"true"`

	// LockTimeout bounds the wait for the credentials file lock (default: 5s)
	LockTimeout time.Duration `env:"ACCOUNTS_LOCK_TIMEOUT" default:"5s"`
}

// AdminConfig holds the single built-in admin credential pair.
type AdminConfig struct {
	Username string `env:"ADMIN_USERNAME" default:"admin"`
	Password string `env:"ADMIN_PASSWORD" default:"1234"`
}

// CheckoutConfig holds stock bookkeeping settings.
type CheckoutConfig struct {
	// DecrementStock reduces catalog stock for every item checked out (default: true)
	DecrementStock bool `env:"CHECKOUT_DECREMENT_STOCK" default:"true"`

	// ZeroStockPolicy is what happens when stock is already zero: ignore or report (default: ignore)
	ZeroStockPolicy string `env:"CATALOG_ZERO_STOCK_POLICY" default:"ignore"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: warn)
	Level string `env:"LOG_LEVEL" default:"warn"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}
