package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Site holds the site-wide contact settings substituted into default page
// content ({{companyName}}, {{email}}, {{phone}}, {{address}}). Passed
// explicitly to the content registry rather than read from a global.
type Site struct {
	CompanyName string `env:"FG_COMPANY_NAME" envDefault:"FerroGaz Endüstriyel Gazlar"`
	Email       string `env:"FG_CONTACT_EMAIL" envDefault:"info@ferrogaz.com.tr"`
	Phone       string `env:"FG_CONTACT_PHONE" envDefault:"+90 212 555 00 00"`
	Address     string `env:"FG_CONTACT_ADDRESS" envDefault:"Organize Sanayi Bölgesi, İstanbul"`
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"FG_DB_PATH" envDefault:"./data/ferrogaz.db"`
	SessionSecret string `env:"FG_SESSION_SECRET,required"`
	ServerHost    string `env:"FG_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"FG_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"FG_ENV" envDefault:"development"`
	LogLevel      string `env:"FG_LOG_LEVEL" envDefault:"info"`
	UploadsDir    string `env:"FG_UPLOADS_DIR" envDefault:"./uploads"`

	Site Site

	// Cache configuration
	RedisURL     string `env:"FG_REDIS_URL"`                         // Optional Redis URL for distributed caching
	CachePrefix  string `env:"FG_CACHE_PREFIX" envDefault:"fg:"`     // Redis key prefix
	CacheTTL     int    `env:"FG_CACHE_TTL" envDefault:"3600"`       // Default cache TTL in seconds
	CacheMaxSize int    `env:"FG_CACHE_MAX_SIZE" envDefault:"10000"` // Max memory cache entries

	// reCAPTCHA configuration
	RecaptchaSiteKey   string `env:"FG_RECAPTCHA_SITE_KEY"`
	RecaptchaSecretKey string `env:"FG_RECAPTCHA_SECRET_KEY"`

	// Analytics provider configuration
	AnalyticsAPIURL string `env:"FG_ANALYTICS_API_URL"`
	AnalyticsAPIKey string `env:"FG_ANALYTICS_API_KEY"`

	// GeoIP configuration
	GeoIPDBPath string `env:"FG_GEOIP_DB_PATH"` // Path to GeoLite2-Country.mmdb file

	// Legacy import configuration
	LegacyMySQLDSN string `env:"FG_LEGACY_MYSQL_DSN"` // DSN of the old site's database

	// Seeding configuration
	DoSeed bool `env:"FG_DO_SEED" envDefault:"false"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// RecaptchaEnabled returns true if reCAPTCHA is configured.
func (c Config) RecaptchaEnabled() bool {
	return c.RecaptchaSiteKey != "" && c.RecaptchaSecretKey != ""
}

// AnalyticsEnabled returns true if the external analytics provider is configured.
func (c Config) AnalyticsEnabled() bool {
	return c.AnalyticsAPIURL != ""
}

// GeoIPEnabled returns true if GeoIP database is configured.
func (c Config) GeoIPEnabled() bool {
	return c.GeoIPDBPath != ""
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("FG_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("FG_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("FG_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
