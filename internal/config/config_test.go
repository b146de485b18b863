package config

import (
	"strings"
	"testing"
	"time"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func validConfig() *Config {
	return &Config{
		Store: StoreConfig{
			CatalogPath:     "products.csv",
			AccountsPath:    "accounts.txt",
			OrderLogPath:    "orders.txt",
			OrderLogEnabled: true,
			LockTimeout:     time.Second,
		},
		Admin:    AdminConfig{Username: "admin", Password: "1234"},
		Checkout: CheckoutConfig{DecrementStock: true, ZeroStockPolicy: "ignore"},
		Logging:  LoggingConfig{Level: "info", Format: "text"},
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := LoadFrom(envMap(nil))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Store.CatalogPath != "products.csv" {
		t.Errorf("Store.CatalogPath = %q, want %q", cfg.Store.CatalogPath, "products.csv")
	}
	if cfg.Store.AccountsPath != "accounts.txt" {
		t.Errorf("Store.AccountsPath = %q, want %q", cfg.Store.AccountsPath, "accounts.txt")
	}
	if cfg.Store.OrderLogPath != "orders.txt" {
		t.Errorf("Store.OrderLogPath = %q, want %q", cfg.Store.OrderLogPath, "orders.txt")
	}
	if !cfg.Store.OrderLogEnabled {
		t.Error("Store.OrderLogEnabled = false, want true")
	}
	if cfg.Store.LockTimeout != 5*time.Second {
		t.Errorf("Store.LockTimeout = %v, want %v", cfg.Store.LockTimeout, 5*time.Second)
	}
	if cfg.Admin.Username != "admin" || cfg.Admin.Password != "1234" {
		t.Errorf("Admin = %q/%q, want admin/1234", cfg.Admin.Username, cfg.Admin.Password)
	}
	if !cfg.Checkout.DecrementStock {
		t.Error("Checkout.DecrementStock = false, want true")
	}
	if cfg.Checkout.ZeroStockPolicy != "ignore" {
		t.Errorf("Checkout.ZeroStockPolicy = %q, want %q", cfg.Checkout.ZeroStockPolicy, "ignore")
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "warn")
	}
}

func TestLoad_OverrideDefaults(t *testing.T) {
	cfg, err := LoadFrom(envMap(map[string]string{
		"CATALOG_FILE":              "/tmp/catalog.csv",
		"ORDER_LOG_ENABLED":         "false",
		"ACCOUNTS_LOCK_TIMEOUT":     "1m30s",
		"CATALOG_ZERO_STOCK_POLICY": "report",
		"LOG_LEVEL":                 "debug",
	}))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Store.CatalogPath != "/tmp/catalog.csv" {
		t.Errorf("Store.CatalogPath = %q, want %q", cfg.Store.CatalogPath, "/tmp/catalog.csv")
	}
	if cfg.Store.OrderLogEnabled {
		t.Error("Store.OrderLogEnabled = true, want false")
	}
	if cfg.Store.LockTimeout != 90*time.Second {
		t.Errorf("Store.LockTimeout = %v, want %v", cfg.Store.LockTimeout, 90*time.Second)
	}
	if cfg.Checkout.ZeroStockPolicy != "report" {
		t.Errorf("Checkout.ZeroStockPolicy = %q, want %q", cfg.Checkout.ZeroStockPolicy, "report")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoad_AltEnvVar(t *testing.T) {
	cfg, err := LoadFrom(envMap(map[string]string{"CREDENTIALS_FILE": "users.txt"}))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Store.AccountsPath != "users.txt" {
		t.Errorf("Store.AccountsPath = %q, want %q", cfg.Store.AccountsPath, "users.txt")
	}
}

func TestLoad_ProcessEnvironment(t *testing.T) {
	t.Setenv("ADMIN_USERNAME", "root")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Admin.Username != "root" {
		t.Errorf("Admin.Username = %q, want %q", cfg.Admin.Username, "root")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"bad bool", map[string]string{"ORDER_LOG_ENABLED": "maybe"}, "ORDER_LOG_ENABLED"},
		{"bad duration", map[string]string{"ACCOUNTS_LOCK_TIMEOUT": "soon"}, "ACCOUNTS_LOCK_TIMEOUT"},
		{"bad policy", map[string]string{"CATALOG_ZERO_STOCK_POLICY": "panic"}, "CATALOG_ZERO_STOCK_POLICY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(envMap(tt.env))
			if err == nil {
				t.Fatal("LoadFrom() expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error should mention %s: %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidate_NonPositiveLockTimeout(t *testing.T) {
	cfg := validConfig()
	cfg.Store.LockTimeout = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error for zero lock timeout")
	}
	if !strings.Contains(err.Error(), "ACCOUNTS_LOCK_TIMEOUT") {
		t.Errorf("error should mention ACCOUNTS_LOCK_TIMEOUT: %v", err)
	}
}

func TestValidate_OrderLogPathOnlyRequiredWhenEnabled(t *testing.T) {
	cfg := validConfig()
	cfg.Store.OrderLogPath = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() expected error for empty order log path")
	}

	cfg.Store.OrderLogEnabled = false
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() unexpected error with order log disabled: %v", err)
	}
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "verbose"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error for invalid log level")
	}
	if !strings.Contains(err.Error(), "LOG_LEVEL") {
		t.Errorf("error should mention LOG_LEVEL: %v", err)
	}
}

func TestValidate_CollectsAllFailures(t *testing.T) {
	cfg := validConfig()
	cfg.Admin.Username = ""
	cfg.Logging.Format = "xml"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error")
	}
	for _, want := range []string{"ADMIN_USERNAME", "LOG_FORMAT"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should mention %s: %v", want, err)
		}
	}
}

func TestConfigString_MasksPassword(t *testing.T) {
	cfg := validConfig()
	cfg.Admin.Password = "hunter2"

	str := cfg.String()
	if strings.Contains(str, "hunter2") {
		t.Error("String() should mask admin password")
	}
	if !strings.Contains(str, "MASKED") {
		t.Error("String() should contain MASKED placeholder")
	}
}
