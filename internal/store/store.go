// Package store persists session state as JSON documents behind a small
// key/value interface with memory, file, redis and postgres backends.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when a key has never been written.
var ErrNotFound = errors.New("store: key not found")

// Backend names accepted by configuration.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// KV is the storage contract every backend satisfies. Values are opaque
// JSON documents.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// Document keys within a session.
const (
	docPlayers      = "players"
	docTactics      = "tactics"
	docTeams        = "teams"
	docSelectedTeam = "selectedTeam"
)

var sessionDocs = []string{docPlayers, docTactics, docTeams, docSelectedTeam}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// SessionKey builds the storage key for one document of a session.
func SessionKey(session, doc string) string {
	return "session:" + session + ":" + doc
}

func splitKey(key string) []string {
	return strings.Split(key, ":")
}

// GetJSON loads key and decodes it into out.
func GetJSON(ctx context.Context, kv KV, key string, out any) error {
	data, err := kv.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// SetJSON encodes value and stores it under key.
func SetJSON(ctx context.Context, kv KV, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return kv.Set(ctx, key, data)
}

// SessionDeleter is implemented by backends that can drop a whole session
// in one call.
type SessionDeleter interface {
	DeleteSession(ctx context.Context, session string) error
}

// DeleteSession removes every document belonging to session.
func DeleteSession(ctx context.Context, kv KV, session string) error {
	if d, ok := kv.(SessionDeleter); ok {
		return d.DeleteSession(ctx, session)
	}
	for _, doc := range sessionDocs {
		if err := kv.Delete(ctx, SessionKey(session, doc)); err != nil {
			return err
		}
	}
	return nil
}
