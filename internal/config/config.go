// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds the application configuration.
//
// Admin capability and the login email-domain allow-list are configuration,
// never compile-time constants, so deployments can differ without rebuilds.
type Config struct {
	App     AppConfig
	Logger  LoggerConfig
	Data    DataConfig
	Server  ServerConfig
	Auth    AuthConfig
	Catalog CatalogConfig
	Portal  PortalConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// DataConfig holds storage paths for the embedded database and search index.
type DataConfig struct {
	BasePath string
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Name         string
	Port         string        // Server port (default: 8080)
	ReadTimeout  time.Duration // HTTP read timeout (default: 15s)
	WriteTimeout time.Duration // HTTP write timeout (default: 15s)
	IdleTimeout  time.Duration // HTTP idle timeout (default: 60s)
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	// PASETO v4 symmetric key for access tokens (32 bytes).
	// Loaded or generated at startup, not configured directly.
	AccessTokenKey []byte
	// AccessTokenDuration is the token lifetime (e.g., 12h).
	AccessTokenDuration time.Duration
	// AllowedEmailDomains restricts who can log in (e.g., "student.example.edu").
	// Empty means any domain.
	AllowedEmailDomains []string
	// AdminEmails lists accounts with elevated capability.
	AdminEmails []string
}

// CatalogSource describes one delimited-text catalog payload.
type CatalogSource struct {
	Area      string // Subject area label attached to every parsed item
	URL       string // Remote source; takes precedence over Path when set
	Path      string // Local file source, watched for changes
	SkipLines int    // Banner lines before the header row
	Delimiter rune   // 0 means detect from the header row
}

// CatalogConfig holds library catalog configuration.
type CatalogConfig struct {
	Sources []CatalogSource
	// FetchTimeout bounds a single catalog payload download.
	FetchTimeout time.Duration
}

// PortalConfig holds reservation and booking policy.
type PortalConfig struct {
	// HoldDuration is how long an item reservation lasts (default: 480h = 20 days).
	HoldDuration time.Duration
	// MaxActiveReservations caps concurrent active holds per user (default: 3).
	MaxActiveReservations int
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig() (*Config, error) {
	env := flag.String("env", "", "Environment (development, staging, production)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	dataPath := flag.String("data-path", "", "Base path for database and search index storage")
	serverName := flag.String("server-name", "", "Name for the server")
	serverPort := flag.String("port", "", "Server port (default: 8080)")
	readTimeout := flag.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := flag.String("write-timeout", "", "HTTP write timeout (default: 15s)")
	idleTimeout := flag.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")

	accessTokenDuration := flag.String("access-token-duration", "", "Access token lifetime (e.g., 12h)")
	allowedDomains := flag.String("allowed-email-domains", "", "Comma-separated email domains allowed to log in")
	adminEmails := flag.String("admin-emails", "", "Comma-separated admin account emails")

	catalogSources := flag.String("catalog-sources", "", "Comma-separated catalog sources as area=location pairs")
	catalogFetchTimeout := flag.String("catalog-fetch-timeout", "", "Catalog download timeout (default: 10s)")

	holdDuration := flag.String("hold-duration", "", "Reservation hold duration (default: 480h)")
	maxReservations := flag.String("max-reservations", "", "Max concurrent active holds per user (default: 3)")

	envFile := flag.String("env-file", ".env", "Path to .env file")

	flag.Parse()

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(*envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Data: DataConfig{
			BasePath: getConfigValue(*dataPath, "DATA_PATH", ""),
		},
		Server: ServerConfig{
			Name: getConfigValue(*serverName, "SERVER_NAME", "Campus Portal Server"),
			Port: getConfigValue(*serverPort, "SERVER_PORT", "8080"),
		},
		Auth: AuthConfig{
			AllowedEmailDomains: splitList(getConfigValue(*allowedDomains, "ALLOWED_EMAIL_DOMAINS", "")),
			AdminEmails:         splitList(getConfigValue(*adminEmails, "ADMIN_EMAILS", "")),
		},
		Portal: PortalConfig{
			MaxActiveReservations: getIntConfigValue(*maxReservations, "MAX_RESERVATIONS", 3),
		},
	}

	// Parse durations.
	var err error
	if cfg.Auth.AccessTokenDuration, err = parseDurationValue(*accessTokenDuration, "ACCESS_TOKEN_DURATION", "12h"); err != nil {
		return nil, err
	}
	if cfg.Server.ReadTimeout, err = parseDurationValue(*readTimeout, "SERVER_READ_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	if cfg.Server.WriteTimeout, err = parseDurationValue(*writeTimeout, "SERVER_WRITE_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	if cfg.Server.IdleTimeout, err = parseDurationValue(*idleTimeout, "SERVER_IDLE_TIMEOUT", "60s"); err != nil {
		return nil, err
	}
	if cfg.Catalog.FetchTimeout, err = parseDurationValue(*catalogFetchTimeout, "CATALOG_FETCH_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	// 20 days: the fixed hold window for item reservations.
	if cfg.Portal.HoldDuration, err = parseDurationValue(*holdDuration, "HOLD_DURATION", "480h"); err != nil {
		return nil, err
	}

	// Parse catalog sources.
	sources, err := parseCatalogSources(getConfigValue(*catalogSources, "CATALOG_SOURCES", ""))
	if err != nil {
		return nil, fmt.Errorf("invalid catalog sources: %w", err)
	}
	cfg.Catalog.Sources = sources

	if err := cfg.expandDataPath(); err != nil {
		return nil, fmt.Errorf("invalid data path: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	if c.App.Environment == "" {
		return errors.New("ENV is required")
	}

	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Data.BasePath == "" {
		return errors.New("data base path cannot be empty after expansion")
	}

	if c.Portal.MaxActiveReservations < 1 {
		return fmt.Errorf("max reservations must be at least 1, got %d", c.Portal.MaxActiveReservations)
	}

	if c.Portal.HoldDuration <= 0 {
		return fmt.Errorf("hold duration must be positive, got %s", c.Portal.HoldDuration)
	}

	return nil
}

// IsAdmin reports whether the given email has elevated capability.
// Comparison is case-insensitive.
func (c *Config) IsAdmin(email string) bool {
	for _, admin := range c.Auth.AdminEmails {
		if strings.EqualFold(admin, email) {
			return true
		}
	}
	return false
}

// DomainAllowed reports whether the email's domain passes the login allow-list.
// An empty allow-list admits every domain.
func (c *Config) DomainAllowed(email string) bool {
	if len(c.Auth.AllowedEmailDomains) == 0 {
		return true
	}
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return false
	}
	domain := email[at+1:]
	for _, allowed := range c.Auth.AllowedEmailDomains {
		if strings.EqualFold(allowed, domain) {
			return true
		}
	}
	return false
}

// parseCatalogSources parses "area=location" pairs separated by commas.
// A location starting with http:// or https:// is fetched; anything else is a
// local file path watched for changes.
func parseCatalogSources(raw string) ([]CatalogSource, error) {
	if raw == "" {
		return nil, nil
	}

	var sources []CatalogSource
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		area, location, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("expected area=location, got %q", pair)
		}
		src := CatalogSource{Area: strings.TrimSpace(area)}
		location = strings.TrimSpace(location)
		if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
			src.URL = location
		} else {
			src.Path = location
		}
		sources = append(sources, src)
	}
	return sources, nil
}

// expandDataPath expands ~ and makes the path absolute.
func (c *Config) expandDataPath() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	defaultPath := filepath.Join(homeDir, "CampusPortal", "data")

	expanded, err := expandPath(c.Data.BasePath, defaultPath)
	if err != nil {
		return err
	}
	c.Data.BasePath = expanded
	return nil
}

// expandPath expands ~ and makes the path absolute.
// If path is empty and defaultPath is provided, uses the default.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// splitList splits a comma-separated list, trimming whitespace and dropping empties.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

// parseDurationValue resolves a duration with flag > env > default precedence.
func parseDurationValue(flagValue, envKey, defaultValue string) (time.Duration, error) {
	raw := getConfigValue(flagValue, envKey, defaultValue)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", strings.ToLower(envKey), raw, err)
	}
	return d, nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getIntConfigValue returns an int from flag, env var, or default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	var result int
	if _, err := fmt.Sscanf(strValue, "%d", &result); err != nil {
		return defaultValue
	}
	return result
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		value = strings.Trim(value, `"'`)

		// Env vars take precedence over the .env file.
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
