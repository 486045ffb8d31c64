package server

import (
	"context"
	"strings"
	"testing"

	"github.com/preston-bernstein/squad-planner/internal/config"
	"github.com/preston-bernstein/squad-planner/internal/metrics"
	"github.com/preston-bernstein/squad-planner/internal/store"
)

func TestStoreFactoryDefaultsToMemory(t *testing.T) {
	rec := metrics.NewRecorder()
	kv, err := newStoreFactory(nil, rec).build(context.Background(), config.StoreConfig{})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if _, err := kv.Get(context.Background(), store.SessionKey("s", "players")); err == nil {
		t.Fatalf("expected miss on empty store")
	}
	if rec.StoreCalls(store.BackendMemory) != 1 {
		t.Fatalf("expected instrumented memory store, calls=%d", rec.StoreCalls(store.BackendMemory))
	}
}

func TestStoreFactoryOpensFileBackend(t *testing.T) {
	dir := t.TempDir()
	kv, err := newStoreFactory(nil, nil).build(context.Background(), config.StoreConfig{
		Backend: store.BackendFile,
		DataDir: dir,
	})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	fs, ok := kv.(*store.FSStore)
	if !ok || fs.BasePath() != dir {
		t.Fatalf("expected file store rooted at %s, got %T", dir, kv)
	}
}

func TestStoreFactoryRejectsBadConfig(t *testing.T) {
	cases := map[string]config.StoreConfig{
		"unknown":        {Backend: "cassandra"},
		"redis url":      {Backend: store.BackendRedis, RedisURL: "not-a-url"},
		"postgres empty": {Backend: store.BackendPostgres},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := newStoreFactory(nil, nil).build(context.Background(), cfg)
			if err == nil || !strings.Contains(err.Error(), "open "+cfg.Backend+" store") {
				t.Fatalf("expected wrapped open error, got %v", err)
			}
		})
	}
}
