package config

import "strings"

// Config holds runtime configuration for the server.
type Config struct {
	Port         string
	Log          LogConfig
	Store        StoreConfig
	CORSOrigins  []string
	MCPEnabled   bool
	AdminToken   string
	SuggestLimit int
	Metrics      MetricsConfig
}

// LogConfig selects the slog handler and level.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port: envOrDefault(envPort, defaultPort),
		Log: LogConfig{
			Level:  strings.ToLower(envOrDefault(envLogLevel, defaultLogLevel)),
			Format: strings.ToLower(envOrDefault(envLogFormat, defaultLogFormat)),
		},
		Store:        loadStore(),
		CORSOrigins:  listEnvOrDefault(envCORSOrigins, []string{defaultCORSOrigin}),
		MCPEnabled:   boolEnvOrDefault(envMCPEnabled, true),
		AdminToken:   envOrDefault(envAdminToken, ""),
		SuggestLimit: intEnvOrDefault(envSuggestLimit, defaultSuggestLimit),
		Metrics:      loadMetrics(),
	}
}
