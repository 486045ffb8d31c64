package handlers

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/preston-bernstein/squad-planner/internal/http/requestutil"
	"github.com/preston-bernstein/squad-planner/internal/logging"
)

// SessionClearer drops every document stored for a session.
type SessionClearer interface {
	ClearSession(ctx context.Context, session string) error
}

// AdminHandler exposes admin-only endpoints (e.g., wiping a session).
type AdminHandler struct {
	sessions SessionClearer
	token    string
	logger   *slog.Logger
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(sessions SessionClearer, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		sessions: sessions,
		token:    token,
		logger:   logger,
	}
}

// ClearSession deletes the roster, tactics, teams and selection of {session}.
// Guarded by ADMIN_TOKEN; returns 401 if missing/invalid.
func (h *AdminHandler) ClearSession(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(r) {
		logging.Warn(h.logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}
	if h.sessions == nil {
		writeError(w, r, http.StatusServiceUnavailable, "session store not configured", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	session, ok := requestutil.ParseSessionID(chi.URLParam(r, "session"))
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid session id", logger)
		return
	}
	if err := h.sessions.ClearSession(r.Context(), session); err != nil {
		logging.Error(logger, "admin session clear failed", err, slog.String(logging.FieldSessionID, session))
		writeError(w, r, http.StatusInternalServerError, "failed to clear session", logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"session": session,
		"status":  "cleared",
	}, logger)
	logging.Info(logger, "admin session cleared", slog.String(logging.FieldSessionID, session))
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	got := r.Header.Get("Authorization")
	want := "Bearer " + h.token
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
