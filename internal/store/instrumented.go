package store

import (
	"context"
	"errors"
	"time"
)

// Recorder receives one observation per store call.
type Recorder interface {
	RecordStoreOperation(backend, op string, dur time.Duration, err error)
}

type instrumented struct {
	next     KV
	backend  string
	recorder Recorder
}

// Instrument wraps kv so every call is timed and reported to rec. A miss
// (ErrNotFound) is reported as a successful operation.
func Instrument(kv KV, backend string, rec Recorder) KV {
	if rec == nil {
		return kv
	}
	return &instrumented{next: kv, backend: backend, recorder: rec}
}

func (s *instrumented) observe(op string, start time.Time, err error) {
	if errors.Is(err, ErrNotFound) {
		err = nil
	}
	s.recorder.RecordStoreOperation(s.backend, op, time.Since(start), err)
}

func (s *instrumented) Get(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	data, err := s.next.Get(ctx, key)
	s.observe("get", start, err)
	return data, err
}

func (s *instrumented) Set(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	err := s.next.Set(ctx, key, value)
	s.observe("set", start, err)
	return err
}

func (s *instrumented) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := s.next.Delete(ctx, key)
	s.observe("delete", start, err)
	return err
}

func (s *instrumented) DeleteSession(ctx context.Context, session string) error {
	start := time.Now()
	err := DeleteSession(ctx, s.next, session)
	s.observe("delete_session", start, err)
	return err
}

func (s *instrumented) Ping(ctx context.Context) error {
	start := time.Now()
	err := s.next.Ping(ctx)
	s.observe("ping", start, err)
	return err
}

func (s *instrumented) Close() error { return s.next.Close() }
