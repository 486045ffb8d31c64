package config

import "time"

const (
	envPort         = "PORT"
	envLogLevel     = "LOG_LEVEL"
	envLogFormat    = "LOG_FORMAT"
	envStoreBackend = "STORE_BACKEND"
	envStoreDataDir = "STORE_DATA_DIR"
	envRedisURL     = "REDIS_URL"
	envRedisTTL     = "REDIS_TTL"
	envPostgresDSN  = "POSTGRES_DSN"
	envStoreTimeout = "STORE_TIMEOUT"
	envStoreHealth  = "STORE_HEALTH_INTERVAL"
	envCORSOrigins  = "CORS_ALLOWED_ORIGINS"
	envMCPEnabled   = "MCP_ENABLED"
	envAdminToken   = "ADMIN_TOKEN"
	envSuggestLimit = "SUGGEST_LIMIT"
	envMetricsPort  = "METRICS_PORT"
	envMetricsOn    = "METRICS_ENABLED"
	envOtelEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService  = "OTEL_SERVICE_NAME"
	envOtelInsecure = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort         = "4000"
	defaultLogLevel     = "info"
	defaultLogFormat    = "text"
	defaultStoreBackend = "memory"
	defaultStoreDataDir = "data/sessions"
	defaultRedisURL     = "redis://localhost:6379/0"
	defaultStoreTimeout = 5 * time.Second
	defaultStoreHealth  = 15 * time.Second
	defaultCORSOrigin   = "*"
	defaultSuggestLimit = 8
	defaultMetricsPort  = "9090"
	defaultServiceName  = "squad-planner"
)
