package http

import (
	"log/slog"
	nethttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/preston-bernstein/squad-planner/internal/http/handlers"
	"github.com/preston-bernstein/squad-planner/internal/http/middleware"
	"github.com/preston-bernstein/squad-planner/internal/http/requestutil"
	"github.com/preston-bernstein/squad-planner/internal/metrics"
)

// Options carries the optional pieces of the router.
type Options struct {
	Logger      *slog.Logger
	Recorder    *metrics.Recorder
	CORSOrigins []string
	Admin       *handlers.AdminHandler
	MCP         nethttp.Handler
	// APITimeout bounds each /api/v1 request; zero disables it.
	APITimeout time.Duration
}

// NewRouter registers HTTP routes on a chi mux.
func NewRouter(h *handlers.Handler, opts Options) nethttp.Handler {
	r := chi.NewRouter()

	r.Use(func(next nethttp.Handler) nethttp.Handler {
		return middleware.LoggingMiddleware(opts.Logger, opts.Recorder, next)
	})
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins(opts.CORSOrigins),
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID", requestutil.SessionHeader, "Mcp-Session-Id", "Authorization"},
		ExposedHeaders: []string{"X-Request-ID", "Mcp-Session-Id"},
		MaxAge:         300,
	}))

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session)
		if opts.APITimeout > 0 {
			r.Use(chimiddleware.Timeout(opts.APITimeout))
		}
		h.Routes(r)
	})

	if opts.Admin != nil {
		r.Delete("/admin/sessions/{session}", opts.Admin.ClearSession)
	}
	if opts.MCP != nil {
		r.Handle("/mcp", opts.MCP)
		r.Handle("/mcp/*", opts.MCP)
	}
	return r
}

func corsOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
