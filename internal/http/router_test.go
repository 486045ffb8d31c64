package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/squad-planner/internal/http/handlers"
	"github.com/preston-bernstein/squad-planner/internal/metrics"
	"github.com/preston-bernstein/squad-planner/internal/testutil"
)

func newTestHandler(t *testing.T) (*handlers.Handler, testutil.Services) {
	t.Helper()
	logger, _ := testutil.NewBufferLogger()
	svcs := testutil.NewServices(logger)
	h := handlers.NewHandler(handlers.Services{
		Roster:   svcs.Roster,
		Tactics:  svcs.Tactics,
		Teams:    svcs.Teams,
		Analysis: svcs.Analysis,
		Store:    svcs.Repo,
	}, logger)
	return h, svcs
}

func TestRouterRoutesKnownPaths(t *testing.T) {
	h, _ := newTestHandler(t)
	router := NewRouter(h, Options{})

	cases := map[string]int{
		"/health":                 http.StatusOK,
		"/ready":                  http.StatusOK,
		"/api/v1/players":         http.StatusOK,
		"/api/v1/players/missing": http.StatusNotFound,
		"/api/v1/tactics":         http.StatusOK,
		"/api/v1/formations":      http.StatusOK,
		"/api/v1/analysis":        http.StatusConflict,
		"/api/v1/teams":           http.StatusOK,
		"/api/v1/teams/selected":  http.StatusOK,
	}

	for path, expected := range cases {
		rr := testutil.Serve(router, http.MethodGet, path, nil)
		if rr.Code != expected {
			t.Fatalf("route %s expected status %d, got %d", path, expected, rr.Code)
		}
	}
}

func TestRouterUnknownRouteReturns404(t *testing.T) {
	h, _ := newTestHandler(t)
	router := NewRouter(h, Options{})

	rr := testutil.Serve(router, http.MethodGet, "/does-not-exist", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown route, got %d", rr.Code)
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected request id even on unknown routes")
	}
}

func TestRouterAppliesCORS(t *testing.T) {
	h, _ := newTestHandler(t)
	router := NewRouter(h, Options{CORSOrigins: []string{"http://localhost:5173"}})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/players", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "X-Session-ID")
	rr := testutil.ServeRequest(router, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("expected allowed origin echoed, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	rr = testutil.ServeRequest(router, req)
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected foreign origin refused, got %q", got)
	}
}

func TestRouterMountsOptionalHandlers(t *testing.T) {
	h, svcs := newTestHandler(t)
	svcs.SeedRoster("s1", testutil.SampleSquad())

	mcpCalled := false
	mcp := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mcpCalled = true
		w.WriteHeader(http.StatusAccepted)
	})
	admin := handlers.NewAdminHandler(svcs.Repo, "secret", nil)
	router := NewRouter(h, Options{Admin: admin, MCP: mcp})

	rr := testutil.Serve(router, http.MethodPost, "/mcp", nil)
	testutil.AssertStatus(t, rr, http.StatusAccepted)
	if !mcpCalled {
		t.Fatalf("expected MCP handler mounted")
	}

	req := httptest.NewRequest(http.MethodDelete, "/admin/sessions/s1", nil)
	req.Header.Set("Authorization", "Bearer secret")
	testutil.AssertStatus(t, testutil.ServeRequest(router, req), http.StatusOK)

	list, err := svcs.Repo.Players(context.Background(), "s1")
	if err != nil || len(list) != 0 {
		t.Fatalf("expected session cleared, got %d players err=%v", len(list), err)
	}

	bare := NewRouter(h, Options{})
	testutil.AssertStatus(t, testutil.Serve(bare, http.MethodPost, "/mcp", nil), http.StatusNotFound)
	testutil.AssertStatus(t, testutil.Serve(bare, http.MethodDelete, "/admin/sessions/s1", nil), http.StatusNotFound)
}

func TestRouterRecordsRoutePatterns(t *testing.T) {
	rec, promHandler, shutdown, err := metrics.Setup(context.Background(), metrics.TelemetryConfig{Enabled: true})
	if err != nil {
		t.Fatalf("metrics setup: %v", err)
	}
	defer shutdown(context.Background())

	h, _ := newTestHandler(t)
	router := NewRouter(h, Options{Recorder: rec})
	testutil.Serve(router, http.MethodGet, "/api/v1/players/abc123", nil)

	rr := testutil.Serve(promHandler, http.MethodGet, "/metrics", nil)
	body := rr.Body.String()
	if !strings.Contains(body, `path="/api/v1/players/{id}"`) {
		t.Fatalf("expected route pattern label in scrape output, got:\n%s", body)
	}
	if strings.Contains(body, "abc123") {
		t.Fatalf("expected raw ids kept out of labels")
	}
}

func TestRouterRecoversPanics(t *testing.T) {
	logger, _ := testutil.NewBufferLogger()
	router := NewRouter(handlers.NewHandler(handlers.Services{Store: panicPinger{}}, logger), Options{Logger: logger})

	rr := testutil.Serve(router, http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusInternalServerError)
}

type panicPinger struct{}

func (panicPinger) Ping(context.Context) error { panic("store exploded") }

func TestRouterAPITimeoutLeavesFastRequestsAlone(t *testing.T) {
	h, _ := newTestHandler(t)
	router := NewRouter(h, Options{APITimeout: time.Second})

	rr := testutil.Serve(router, http.MethodGet, "/api/v1/tactics", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
}
