package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/preston-bernstein/squad-planner/internal/http/requestutil"
	"github.com/preston-bernstein/squad-planner/internal/logging"
	"github.com/preston-bernstein/squad-planner/internal/metrics"
	"github.com/preston-bernstein/squad-planner/internal/testutil"
)

func TestLoggingMiddlewareSetsRequestID(t *testing.T) {
	logger, _ := testutil.NewBufferLogger()
	rec := metrics.NewRecorder()
	nextCalled := false

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		if got := RequestIDFromContext(r.Context()); got == "" {
			t.Fatalf("expected request id in context")
		}
		w.WriteHeader(http.StatusTeapot)
	})

	handler := LoggingMiddleware(logger, rec, next)
	rr := testutil.Serve(handler, http.MethodGet, "/api/v1/players", nil)

	if !nextCalled {
		t.Fatalf("expected next handler to be called")
	}
	testutil.AssertStatus(t, rr, http.StatusTeapot)
	if rec.StoreCalls("http") != 0 {
		t.Fatalf("expected store metrics untouched")
	}
}

func TestLoggingMiddlewareKeepsValidIncomingRequestID(t *testing.T) {
	logger, _ := testutil.NewBufferLogger()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := RequestIDFromContext(r.Context()); got != "abc-123" {
			t.Fatalf("expected incoming id, got %q", got)
		}
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rr := testutil.ServeRequest(LoggingMiddleware(logger, nil, next), req)
	if got := rr.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Fatalf("expected echoed request id, got %q", got)
	}
}

func TestLoggingMiddlewareGeneratesRequestIDWhenInvalid(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health?foo=bar", nil)
	req.Header.Set("X-Request-ID", "bad id")
	rr := testutil.ServeRequest(LoggingMiddleware(nil, nil, http.NotFoundHandler()), req)

	got := rr.Header().Get("X-Request-ID")
	if got == "" || got == "bad id" {
		t.Fatalf("expected regenerated request id, got %q", got)
	}
}

func TestLoggingMiddlewareUsesForwardedFor(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tactics", nil)
	req.Header.Set("X-Forwarded-For", "198.51.100.1, 10.0.0.1")
	rr := testutil.ServeRequest(LoggingMiddleware(logger, nil, next), req)

	testutil.AssertStatus(t, rr, http.StatusOK)
	if !strings.Contains(buf.String(), "client_ip=198.51.100.1") {
		t.Fatalf("expected first forwarded address logged, got %s", buf.String())
	}
}

func TestSessionMiddleware(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionFromContext(r.Context())
	})
	handler := Session(next)

	rr := testutil.Serve(handler, http.MethodGet, "/api/v1/players", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	if seen != requestutil.DefaultSession {
		t.Fatalf("expected default session, got %q", seen)
	}

	rr = testutil.ServeJSON(t, handler, http.MethodGet, "/api/v1/players", "club-7", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	if seen != "club-7" {
		t.Fatalf("expected header session, got %q", seen)
	}
}

func TestSessionMiddlewareRejectsMalformedID(t *testing.T) {
	called := false
	handler := LoggingMiddleware(nil, nil, Session(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})))

	rr := testutil.ServeJSON(t, handler, http.MethodGet, "/api/v1/players", "bad/session", nil)
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
	if called {
		t.Fatalf("expected handler not called")
	}
	var body map[string]string
	testutil.DecodeJSON(t, rr, &body)
	if body["error"] != "invalid session id" || body["requestId"] == "" {
		t.Fatalf("unexpected error body %v", body)
	}
}

func TestSessionMiddlewareTagsRequestLogger(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logging.FromContext(r.Context(), nil).Info("inside")
	})
	handler := LoggingMiddleware(logger, nil, Session(next))

	testutil.ServeJSON(t, handler, http.MethodGet, "/api/v1/players", "club-7", nil)
	if !strings.Contains(buf.String(), "session_id=club-7") {
		t.Fatalf("expected session id on request logger, got %s", buf.String())
	}
}

func TestRoutePatternUsesChiRoute(t *testing.T) {
	var got string
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req)
			got = routePattern(req)
		})
	})
	r.Get("/api/v1/players/{id}", func(w http.ResponseWriter, r *http.Request) {})

	testutil.Serve(r, http.MethodGet, "/api/v1/players/abc", nil)
	if got != "/api/v1/players/{id}" {
		t.Fatalf("expected route pattern, got %q", got)
	}

	testutil.Serve(r, http.MethodGet, "/nope", nil)
	if got != unmatchedRoute {
		t.Fatalf("expected unmatched label, got %q", got)
	}
}

func TestRoutePatternWithoutRouter(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	if got := routePattern(req); got != "/health" {
		t.Fatalf("expected raw path without chi context, got %q", got)
	}
}

// Ensure responseWriter defaults status correctly.
func TestResponseWriterDefaultsStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rr}
	if w.status != 0 {
		t.Fatalf("expected zero status before write, got %d", w.status)
	}
	w.WriteHeader(http.StatusAccepted)
	if w.status != http.StatusAccepted {
		t.Fatalf("expected status set to 202, got %d", w.status)
	}
	w.Flush()
	if !rr.Flushed {
		t.Fatalf("expected flush forwarded")
	}
}

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	if got := RequestIDFromContext(ctx); got != "" {
		t.Fatalf("expected empty id, got %s", got)
	}
	ctx = withRequestID(ctx, "abc123")
	if got := RequestIDFromContext(ctx); got != "abc123" {
		t.Fatalf("expected id from context, got %s", got)
	}
	if got := RequestIDFromContext(nil); got != "" {
		t.Fatalf("expected empty id for nil context, got %s", got)
	}
	if got := SessionFromContext(nil); got != requestutil.DefaultSession {
		t.Fatalf("expected default session for nil context, got %s", got)
	}
	if got := SessionFromContext(WithSession(ctx, "s1")); got != "s1" {
		t.Fatalf("expected stored session, got %s", got)
	}
}

func BenchmarkLoggingMiddleware(b *testing.B) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	rec := metrics.NewRecorder()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Microsecond)
		w.WriteHeader(http.StatusOK)
	})

	handler := LoggingMiddleware(logger, rec, Session(next))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/analysis", nil)
		handler.ServeHTTP(rr, req)
	}
}
