package handlers

import (
	"context"
	"log/slog"
	nethttp "net/http"
	"time"

	"github.com/preston-bernstein/squad-planner/internal/app/analysis"
	"github.com/preston-bernstein/squad-planner/internal/app/roster"
	apptactics "github.com/preston-bernstein/squad-planner/internal/app/tactics"
	appteams "github.com/preston-bernstein/squad-planner/internal/app/teams"
	"github.com/preston-bernstein/squad-planner/internal/logging"
	"github.com/preston-bernstein/squad-planner/internal/storewatch"
	"github.com/preston-bernstein/squad-planner/internal/suggest"
)

const readyTimeout = 2 * time.Second

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Services groups the app services the API exposes.
type Services struct {
	Roster   *roster.Service
	Tactics  *apptactics.Service
	Teams    *appteams.Service
	Analysis *analysis.Service
	Suggest  *suggest.Catalog
	Store    Pinger
	// StoreStatus, when set, answers readiness from the background watcher
	// instead of pinging per request.
	StoreStatus func() storewatch.Status
}

// Handler wires HTTP routes to the app services.
type Handler struct {
	roster   *roster.Service
	tactics  *apptactics.Service
	teams    *appteams.Service
	analysis *analysis.Service
	suggest  *suggest.Catalog
	store    Pinger
	statusFn func() storewatch.Status
	logger   *slog.Logger
}

// NewHandler constructs a Handler with defaults.
func NewHandler(svcs Services, logger *slog.Logger) *Handler {
	return &Handler{
		roster:   svcs.Roster,
		tactics:  svcs.Tactics,
		teams:    svcs.Teams,
		analysis: svcs.Analysis,
		suggest:  svcs.Suggest,
		store:    svcs.Store,
		statusFn: svcs.StoreStatus,
		logger:   logger,
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic from the store watcher or a direct ping.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.statusFn != nil {
		status := h.statusFn()
		if !status.IsReady() {
			logging.Warn(loggerFromContext(r, h.logger), "readiness check failed",
				"consecutive_failures", status.ConsecutiveFailures,
				"last_error", status.LastError,
			)
			writeError(w, r, nethttp.StatusServiceUnavailable, "store unavailable", h.logger)
			return
		}
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	if h.store == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()
	if err := h.store.Ping(ctx); err != nil {
		logging.Warn(loggerFromContext(r, h.logger), "readiness check failed", "err", err)
		writeError(w, r, nethttp.StatusServiceUnavailable, "store unavailable", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
}
