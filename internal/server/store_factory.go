package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/preston-bernstein/squad-planner/internal/config"
	"github.com/preston-bernstein/squad-planner/internal/logging"
	"github.com/preston-bernstein/squad-planner/internal/metrics"
	"github.com/preston-bernstein/squad-planner/internal/store"
)

// connectTimeout bounds the initial ping of networked backends.
const connectTimeout = 10 * time.Second

// storeFactory opens the configured backend and wraps it with metrics.
type storeFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newStoreFactory(logger *slog.Logger, metrics *metrics.Recorder) storeFactory {
	return storeFactory{logger: logger, metrics: metrics}
}

func (f storeFactory) build(ctx context.Context, cfg config.StoreConfig) (store.KV, error) {
	backend := cfg.Backend
	if backend == "" {
		backend = store.BackendMemory
	}
	kv, err := f.open(ctx, backend, cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", backend, err)
	}
	if backend == store.BackendRedis || backend == store.BackendPostgres {
		kv = store.WithRetry(kv, backend, f.logger, 0, 0)
	}
	logging.Info(f.logger, "store ready", logging.FieldBackend, backend)
	return store.Instrument(kv, backend, f.metrics), nil
}

func (f storeFactory) open(ctx context.Context, backend string, cfg config.StoreConfig) (store.KV, error) {
	switch backend {
	case store.BackendMemory:
		return store.NewMemoryStore(), nil
	case store.BackendFile:
		return store.NewFSStore(cfg.DataDir)
	case store.BackendRedis:
		ctx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		return store.NewRedisStore(ctx, cfg.RedisURL, cfg.RedisTTL)
	case store.BackendPostgres:
		if cfg.PostgresDSN == "" {
			return nil, errors.New("POSTGRES_DSN is required")
		}
		ctx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		return store.NewPostgresStore(ctx, cfg.PostgresDSN)
	default:
		return nil, fmt.Errorf("unknown backend %q", backend)
	}
}
