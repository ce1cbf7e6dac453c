package config

import (
	"os"
	"testing"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set %s: %v", key, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()
	setEnv(t, "FG_SESSION_SECRET", "test-secret-key-32-bytes-long!!!")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DBPath != "./data/ferrogaz.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "./data/ferrogaz.db")
	}
	if cfg.ServerHost != "localhost" {
		t.Errorf("ServerHost = %q, want %q", cfg.ServerHost, "localhost")
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 8080)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q, want %q", cfg.Env, "development")
	}
	if cfg.Site.CompanyName == "" {
		t.Error("Site.CompanyName default should not be empty")
	}
	if cfg.RecaptchaEnabled() {
		t.Error("RecaptchaEnabled() should be false without keys")
	}
	if cfg.AnalyticsEnabled() {
		t.Error("AnalyticsEnabled() should be false without provider URL")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	customSecret := "custom-secret-key-32-bytes-long!"
	setEnv(t, "FG_SESSION_SECRET", customSecret)
	setEnv(t, "FG_DB_PATH", "/custom/path.db")
	setEnv(t, "FG_SERVER_HOST", "0.0.0.0")
	setEnv(t, "FG_SERVER_PORT", "3000")
	setEnv(t, "FG_ENV", "production")
	setEnv(t, "FG_COMPANY_NAME", "Test Gaz A.Ş.")
	setEnv(t, "FG_ANALYTICS_API_URL", "https://analytics.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.SessionSecret != customSecret {
		t.Errorf("SessionSecret = %q, want %q", cfg.SessionSecret, customSecret)
	}
	if cfg.DBPath != "/custom/path.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "/custom/path.db")
	}
	if cfg.ServerPort != 3000 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 3000)
	}
	if cfg.IsDevelopment() {
		t.Error("IsDevelopment() should be false in production")
	}
	if cfg.Site.CompanyName != "Test Gaz A.Ş." {
		t.Errorf("Site.CompanyName = %q, want %q", cfg.Site.CompanyName, "Test Gaz A.Ş.")
	}
	if !cfg.AnalyticsEnabled() {
		t.Error("AnalyticsEnabled() should be true with provider URL")
	}
	if got := cfg.ServerAddr(); got != "0.0.0.0:3000" {
		t.Errorf("ServerAddr() = %q, want %q", got, "0.0.0.0:3000")
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	os.Clearenv()

	if _, err := Load(); err == nil {
		t.Fatal("Load() should fail without FG_SESSION_SECRET")
	}
}

func TestLoad_ShortSecret(t *testing.T) {
	os.Clearenv()
	setEnv(t, "FG_SESSION_SECRET", "too-short")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should reject secrets shorter than 32 bytes")
	}
}

func TestLoad_WeakSecret(t *testing.T) {
	os.Clearenv()
	setEnv(t, "FG_SESSION_SECRET", "change-me-to-32-byte-secret-key!")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should reject known default secrets")
	}
}

func TestHasMinimumEntropy(t *testing.T) {
	tests := []struct {
		secret string
		want   bool
	}{
		{"abcdefghijklmnop", false},
		{"Abcdef123", true},
		{"abc-DEF-123", true},
		{"1234567890", false},
	}

	for _, tt := range tests {
		if got := hasMinimumEntropy(tt.secret); got != tt.want {
			t.Errorf("hasMinimumEntropy(%q) = %v, want %v", tt.secret, got, tt.want)
		}
	}
}
