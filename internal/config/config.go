// Package config provides application configuration management with support
// for environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds the client configuration.
type Config struct {
	App     AppConfig
	Logger  LoggerConfig
	Backend BackendConfig
	Storage StorageConfig
	Search  SearchConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string `validate:"oneof=development staging production"`
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string `validate:"oneof=debug info warn error"`
}

// BackendConfig holds the managed backend connection settings.
type BackendConfig struct {
	BaseURL  string        `validate:"required,url"`
	APIKey   string        `validate:"required"`
	PageSize int           `validate:"gte=5,lte=100"`   // rows per catalog page
	QueryRPS float64       `validate:"gt=0,lte=50"`     // query rate limit
	Timeout  time.Duration `validate:"gte=1s,lte=120s"` // per-request timeout
}

// StorageConfig holds local storage paths.
type StorageConfig struct {
	// DataPath is the base directory for the KV store and download ledger.
	DataPath string `validate:"required"`
	// DownloadsPath is where chapter audio files land (default: {data}/downloads).
	DownloadsPath string `validate:"required"`
	// CachePath is the cover cache directory (default: {data}/cache/covers).
	CachePath string `validate:"required"`
}

// SearchConfig holds search tuning.
type SearchConfig struct {
	Debounce     time.Duration `validate:"gte=50ms,lte=2s"`
	HistoryLimit int           `validate:"gte=1,lte=50"`
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig(flags *Flags) (*Config, error) {
	if flags == nil {
		flags = &Flags{}
	}

	// Load .env file if it exists (silently ignore if not found).
	envFile := flags.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	_ = loadEnvFile(envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(flags.Environment, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(flags.LogLevel, "LOG_LEVEL", "info"),
		},
		Backend: BackendConfig{
			BaseURL:  getConfigValue(flags.BackendURL, "BACKEND_URL", ""),
			APIKey:   getConfigValue(flags.APIKey, "BACKEND_API_KEY", ""),
			PageSize: getIntConfigValue(flags.PageSize, "BACKEND_PAGE_SIZE", 20),
			QueryRPS: getFloatConfigValue(flags.QueryRPS, "BACKEND_QUERY_RPS", 5),
		},
		Storage: StorageConfig{
			DataPath:      getConfigValue(flags.DataPath, "DATA_PATH", ""),
			DownloadsPath: getConfigValue(flags.DownloadsPath, "DOWNLOADS_PATH", ""),
			CachePath:     getConfigValue(flags.CachePath, "CACHE_PATH", ""),
		},
		Search: SearchConfig{
			HistoryLimit: getIntConfigValue(flags.HistoryLimit, "SEARCH_HISTORY_LIMIT", 10),
		},
	}

	timeoutStr := getConfigValue(flags.BackendTimeout, "BACKEND_TIMEOUT", "30s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid backend timeout %q: %w", timeoutStr, err)
	}
	cfg.Backend.Timeout = timeout

	debounceStr := getConfigValue(flags.SearchDebounce, "SEARCH_DEBOUNCE", "300ms")
	debounce, err := time.ParseDuration(debounceStr)
	if err != nil {
		return nil, fmt.Errorf("invalid search debounce %q: %w", debounceStr, err)
	}
	cfg.Search.Debounce = debounce

	if err := cfg.expandStoragePaths(); err != nil {
		return nil, fmt.Errorf("invalid storage path: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Flags carries command-line overrides. Callers own flag registration so
// tests and embedding apps can construct one directly.
type Flags struct {
	Environment    string
	LogLevel       string
	BackendURL     string
	APIKey         string
	PageSize       string
	QueryRPS       string
	BackendTimeout string
	DataPath       string
	DownloadsPath  string
	CachePath      string
	SearchDebounce string
	HistoryLimit   string
	EnvFile        string
}

// Validate checks that all config values are present and in range.
func (c *Config) Validate() error {
	return validator.New(validator.WithRequiredStructEnabled()).Struct(c)
}

// expandStoragePaths expands ~ and makes paths absolute. The downloads and
// cache paths default to subdirectories of the data path.
func (c *Config) expandStoragePaths() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	dataPath, err := expandPath(c.Storage.DataPath, filepath.Join(homeDir, "Shenava"))
	if err != nil {
		return err
	}
	c.Storage.DataPath = dataPath

	downloadsPath, err := expandPath(c.Storage.DownloadsPath, filepath.Join(dataPath, "downloads"))
	if err != nil {
		return err
	}
	c.Storage.DownloadsPath = downloadsPath

	cachePath, err := expandPath(c.Storage.CachePath, filepath.Join(dataPath, "cache", "covers"))
	if err != nil {
		return err
	}
	c.Storage.CachePath = cachePath

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

// getFloatConfigValue returns a float64 from flag, env var, or default.
func getFloatConfigValue(flagValue, envKey string, defaultValue float64) float64 {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	var result float64
	if _, err := fmt.Sscanf(strValue, "%g", &result); err != nil {
		return defaultValue
	}
	return result
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path)
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

		// Real env vars take precedence over the .env file.
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
