package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Load reads configuration from environment variables.
// It applies defaults for unset values and validates the result.
func Load() (*Config, error) {
	return LoadFrom(os.Getenv)
}

// LoadFrom is Load with a custom variable source, e.g. a map in tests.
func LoadFrom(getenv func(string) string) (*Config, error) {
	cfg := &Config{}

	if err := loadStruct(reflect.ValueOf(cfg).Elem(), getenv); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// loadStruct recursively populates struct fields from tagged variables.
func loadStruct(v reflect.Value, getenv func(string) string) error {
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldVal := v.Field(i)

		if !fieldVal.CanSet() {
			continue
		}

		if field.Type.Kind() == reflect.Struct {
			if err := loadStruct(fieldVal, getenv); err != nil {
				return err
			}
			continue
		}

		envName := field.Tag.Get("env")
		if envName == "" {
			continue
		}

		// Primary name wins over the alternate
		value := getenv(envName)
		if alt := field.Tag.Get("envAlt"); value == "" && alt != "" {
			value = getenv(alt)
		}

		if value == "" {
			if field.Tag.Get("required") == "true" {
				return fmt.Errorf("required environment variable %s is not set", envName)
			}
			value = field.Tag.Get("default")
		}

		if value == "" {
			continue
		}

		if err := setField(fieldVal, value); err != nil {
			return fmt.Errorf("invalid value for %s=%q: %w", envName, value, err)
		}
	}

	return nil
}

// setField sets a reflect.Value from a string based on its type.
func setField(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int64:
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			d, err := time.ParseDuration(value)
			if err != nil {
				return fmt.Errorf("invalid duration: %w", err)
			}
			field.Set(reflect.ValueOf(d))
			return nil
		}
		i, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer: %w", err)
		}
		field.SetInt(i)

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean: %w", err)
		}
		field.SetBool(b)

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	// Store validation
	if strings.TrimSpace(c.Store.CatalogPath) == "" {
		errs = append(errs, "CATALOG_FILE must not be empty")
	}
	if strings.TrimSpace(c.Store.AccountsPath) == "" {
		errs = append(errs, "ACCOUNTS_FILE must not be empty")
	}
	if c.Store.OrderLogEnabled && strings.TrimSpace(c.Store.OrderLogPath) == "" {
		errs = append(errs, "ORDER_LOG_FILE must not be empty when ORDER_LOG_ENABLED is true")
	}
	if c.Store.LockTimeout <= 0 {
		errs = append(errs, "ACCOUNTS_LOCK_TIMEOUT must be positive")
	}

	// Admin validation
	if c.Admin.Username == "" {
		errs = append(errs, "ADMIN_USERNAME must not be empty")
	}
	if c.Admin.Password == "" {
		errs = append(errs, "ADMIN_PASSWORD must not be empty")
	}

	// Checkout validation
	validPolicies := map[string]bool{"ignore": true, "report": true}
	if !validPolicies[strings.ToLower(c.Checkout.ZeroStockPolicy)] {
		errs = append(errs, fmt.Sprintf("CATALOG_ZERO_STOCK_POLICY (%q) must be one of: ignore, report", c.Checkout.ZeroStockPolicy))
	}

	// Logging validation
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// String returns a safe string representation of the config for logging.
// The admin password is masked.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Config{")
	b.WriteString(fmt.Sprintf("Store: {Catalog: %q, Accounts: %q, OrderLog: %q, OrderLogEnabled: %v}, ",
		c.Store.CatalogPath, c.Store.AccountsPath, c.Store.OrderLogPath, c.Store.OrderLogEnabled))
	b.WriteString(fmt.Sprintf("Admin: {Username: %q, Password: [MASKED]}, ", c.Admin.Username))
	b.WriteString(fmt.Sprintf("Checkout: {DecrementStock: %v, ZeroStockPolicy: %q}, ",
		c.Checkout.DecrementStock, c.Checkout.ZeroStockPolicy))
	b.WriteString(fmt.Sprintf("Logging: {Level: %q, Format: %q}",
		c.Logging.Level, c.Logging.Format))
	b.WriteString("}")
	return b.String()
}
