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
type Config struct {
	App     AppConfig
	Logger  LoggerConfig
	Store   StoreConfig
	State   StateConfig
	Offline OfflineConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// StoreConfig holds persistence configuration.
type StoreConfig struct {
	// DataPath is the directory holding the embedded database.
	DataPath string
}

// StateConfig holds application-state tuning knobs.
type StateConfig struct {
	// FlushDelay is the debounce window between a mutation and its
	// persistence (default: 400ms).
	FlushDelay time.Duration
	// NoticeDelay is how long transient notices stay visible (default: 4s).
	NoticeDelay time.Duration
}

// OfflineConfig holds the offline asset cache configuration.
type OfflineConfig struct {
	// CachePath is the directory for cached assets (default: {data}/cache/assets).
	CachePath string
	// LibraryHosts are the third-party asset hosts served stale-while-revalidate.
	LibraryHosts []string
}

// defaultLibraryHosts mirrors the CDN origins the interface loads from.
var defaultLibraryHosts = []string{
	"esm.sh",
	"cdn.tailwindcss.com",
	"fonts.googleapis.com",
	"fonts.gstatic.com",
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig() (*Config, error) {
	// Define command-line flags.
	env := flag.String("env", "", "Environment (development, staging, production)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	dataPath := flag.String("data-path", "", "Base path for persisted data")
	flushDelay := flag.String("flush-delay", "", "Debounce window before state writes (default: 400ms)")
	noticeDelay := flag.String("notice-delay", "", "How long transient notices stay visible (default: 4s)")
	offlineCachePath := flag.String("offline-cache-path", "", "Path for the offline asset cache")
	libraryHosts := flag.String("library-hosts", "", "Comma-separated hosts cached stale-while-revalidate")
	envFile := flag.String("env-file", ".env", "Path to .env file")

	// Parse flags but don't exit on error - we want to handle it gracefully.
	flag.Parse()

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(*envFile)

	// Build config with proper precedence.
	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Store: StoreConfig{
			DataPath: getConfigValue(*dataPath, "DATA_PATH", ""),
		},
		Offline: OfflineConfig{
			CachePath:    getConfigValue(*offlineCachePath, "OFFLINE_CACHE_PATH", ""),
			LibraryHosts: parseHostList(getConfigValue(*libraryHosts, "LIBRARY_HOSTS", "")),
		},
	}

	// Parse state durations.
	flushDelayStr := getConfigValue(*flushDelay, "FLUSH_DELAY", "400ms")
	flushDuration, err := time.ParseDuration(flushDelayStr)
	if err != nil {
		return nil, fmt.Errorf("invalid flush delay %q: %w", flushDelayStr, err)
	}
	cfg.State.FlushDelay = flushDuration

	noticeDelayStr := getConfigValue(*noticeDelay, "NOTICE_DELAY", "4s")
	noticeDuration, err := time.ParseDuration(noticeDelayStr)
	if err != nil {
		return nil, fmt.Errorf("invalid notice delay %q: %w", noticeDelayStr, err)
	}
	cfg.State.NoticeDelay = noticeDuration

	// Expand and validate data path.
	if err := cfg.expandDataPath(); err != nil {
		return nil, fmt.Errorf("invalid data path: %w", err)
	}

	// Expand offline cache path (defaults to {data}/cache/assets).
	if err := cfg.expandOfflineCachePath(); err != nil {
		return nil, fmt.Errorf("invalid offline cache path: %w", err)
	}

	// Validate configuration.
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

	if c.Store.DataPath == "" {
		return errors.New("data path cannot be empty after expansion")
	}

	if c.State.FlushDelay < 0 {
		return errors.New("flush delay cannot be negative")
	}
	if c.State.NoticeDelay <= 0 {
		return errors.New("notice delay must be positive")
	}

	return nil
}

// expandPath expands ~ and makes the path absolute.
// If path is empty and defaultPath is provided, uses the default.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	// Expand tilde.
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	// Make absolute if needed.
	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// expandDataPath expands ~ and makes the path absolute.
func (c *Config) expandDataPath() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	defaultPath := filepath.Join(homeDir, ".local", "share", "osint-terminal")

	expanded, err := expandPath(c.Store.DataPath, defaultPath)
	if err != nil {
		return err
	}
	c.Store.DataPath = expanded
	return nil
}

// expandOfflineCachePath expands ~ and makes the path absolute.
// Defaults to {data}/cache/assets if not specified.
func (c *Config) expandOfflineCachePath() error {
	defaultPath := filepath.Join(c.Store.DataPath, "cache", "assets")

	expanded, err := expandPath(c.Offline.CachePath, defaultPath)
	if err != nil {
		return err
	}
	c.Offline.CachePath = expanded
	return nil
}

// parseHostList splits a comma-separated host list; empty input falls back to
// the shipped CDN hosts.
func parseHostList(value string) []string {
	if value == "" {
		hosts := make([]string, len(defaultLibraryHosts))
		copy(hosts, defaultLibraryHosts)
		return hosts
	}

	parts := strings.Split(value, ",")
	hosts := make([]string, 0, len(parts))
	for _, part := range parts {
		host := strings.TrimSpace(part)
		if host != "" {
			hosts = append(hosts, host)
		}
	}
	return hosts
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	// Priority 1: Command-line flag.
	if flagValue != "" {
		return flagValue
	}

	// Priority 2: Environment variable.
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}

	// Priority 3: Default value.
	return defaultValue
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

		// Skip empty lines and comments.
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=value.
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Remove quotes if present.
		value = strings.Trim(value, `"'`)

		// Only set if not already set (env vars take precedence over .env file).
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
