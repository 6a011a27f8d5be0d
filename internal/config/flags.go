package config

import "flag"

// ParseFlags registers the standard command-line flags on the default flag
// set and parses them. Flags left at their zero value fall through to
// environment variables and defaults in LoadConfig.
func ParseFlags() *Flags {
	env := flag.String("env", "", "Environment (development, staging, production)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	backendURL := flag.String("backend-url", "", "Managed backend base URL")
	apiKey := flag.String("api-key", "", "Backend project API key")
	pageSize := flag.String("page-size", "", "Rows per catalog page (default: 20)")
	queryRPS := flag.String("query-rps", "", "Backend query rate limit (default: 5)")
	backendTimeout := flag.String("backend-timeout", "", "Backend request timeout (default: 30s)")
	dataPath := flag.String("data-path", "", "Base path for local data")
	downloadsPath := flag.String("downloads-path", "", "Path for downloaded chapter audio")
	cachePath := flag.String("cache-path", "", "Path for the cover cache")
	searchDebounce := flag.String("search-debounce", "", "Search debounce delay (default: 300ms)")
	historyLimit := flag.String("history-limit", "", "Search history size (default: 10)")
	envFile := flag.String("env-file", ".env", "Path to .env file")

	flag.Parse()

	return &Flags{
		Environment:    *env,
		LogLevel:       *logLevel,
		BackendURL:     *backendURL,
		APIKey:         *apiKey,
		PageSize:       *pageSize,
		QueryRPS:       *queryRPS,
		BackendTimeout: *backendTimeout,
		DataPath:       *dataPath,
		DownloadsPath:  *downloadsPath,
		CachePath:      *cachePath,
		SearchDebounce: *searchDebounce,
		HistoryLimit:   *historyLimit,
		EnvFile:        *envFile,
	}
}
