package config

import (
	"testing"
	"time"
)

// clearEnv blanks every key Load reads so host environment leaks into
// neither defaults nor overrides
func clearEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"BOT_TOKEN", "GEO_API_BASE_URL", "GEO_TIMEOUT_SECONDS",
		"SELF_IP_URL", "SELF_IP_TIMEOUT_SECONDS", "MAP_DIR",
		"OPS_PORT", "LOG_LEVEL", "LOG_PRETTY",
	}
	for _, key := range keys {
		t.Setenv(key, "")
	}
}

// TestLoad_Defaults tests the default configuration values
func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOT_TOKEN", "test-token")

	cfg, err := Load()

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if cfg.BotToken != "test-token" {
		t.Errorf("expected token test-token, got %s", cfg.BotToken)
	}
	if cfg.GeoAPIBaseURL != "http://ip-api.com" {
		t.Errorf("expected default geo API URL, got %s", cfg.GeoAPIBaseURL)
	}
	if cfg.GeoTimeout != 10*time.Second {
		t.Errorf("expected 10s geo timeout, got %v", cfg.GeoTimeout)
	}
	if cfg.SelfIPURL != "https://api.ipify.org?format=json" {
		t.Errorf("expected default self-IP URL, got %s", cfg.SelfIPURL)
	}
	if cfg.SelfIPTimeout != 5*time.Second {
		t.Errorf("expected 5s self-IP timeout, got %v", cfg.SelfIPTimeout)
	}
	if cfg.MapDir != "." {
		t.Errorf("expected default map dir '.', got %s", cfg.MapDir)
	}
	if cfg.OpsPort != "9090" {
		t.Errorf("expected default ops port 9090, got %s", cfg.OpsPort)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level info, got %s", cfg.LogLevel)
	}
}

// TestLoad_MissingToken tests that a missing bot token fails validation
func TestLoad_MissingToken(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()

	if err == nil {
		t.Error("expected validation error for missing BOT_TOKEN, got nil")
	}
	if cfg != nil {
		t.Error("expected nil config on validation failure")
	}
}

// TestLoad_Overrides tests environment variable overrides
func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOT_TOKEN", "tok")
	t.Setenv("GEO_API_BASE_URL", "http://localhost:8081")
	t.Setenv("GEO_TIMEOUT_SECONDS", "3")
	t.Setenv("SELF_IP_TIMEOUT_SECONDS", "1")
	t.Setenv("MAP_DIR", "/tmp/maps")
	t.Setenv("OPS_PORT", "8999")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if cfg.GeoAPIBaseURL != "http://localhost:8081" {
		t.Errorf("expected overridden geo API URL, got %s", cfg.GeoAPIBaseURL)
	}
	if cfg.GeoTimeout != 3*time.Second {
		t.Errorf("expected 3s geo timeout, got %v", cfg.GeoTimeout)
	}
	if cfg.SelfIPTimeout != 1*time.Second {
		t.Errorf("expected 1s self-IP timeout, got %v", cfg.SelfIPTimeout)
	}
	if cfg.MapDir != "/tmp/maps" {
		t.Errorf("expected overridden map dir, got %s", cfg.MapDir)
	}
	if cfg.OpsPort != "8999" {
		t.Errorf("expected overridden ops port, got %s", cfg.OpsPort)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected debug log level, got %s", cfg.LogLevel)
	}
}

// TestLoad_InvalidURL tests that a malformed endpoint fails validation
func TestLoad_InvalidURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOT_TOKEN", "tok")
	t.Setenv("GEO_API_BASE_URL", "not a url")

	if _, err := Load(); err == nil {
		t.Error("expected validation error for malformed URL, got nil")
	}
}

// TestLoad_InvalidInt tests that a non-numeric timeout falls back to the
// default instead of failing
func TestLoad_InvalidInt(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOT_TOKEN", "tok")
	t.Setenv("GEO_TIMEOUT_SECONDS", "ten")

	cfg, err := Load()

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if cfg.GeoTimeout != 10*time.Second {
		t.Errorf("expected fallback 10s geo timeout, got %v", cfg.GeoTimeout)
	}
}
