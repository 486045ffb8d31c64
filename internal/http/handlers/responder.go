package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/squad-planner/internal/app/analysis"
	"github.com/preston-bernstein/squad-planner/internal/app/roster"
	appteams "github.com/preston-bernstein/squad-planner/internal/app/teams"
	"github.com/preston-bernstein/squad-planner/internal/domain/players"
	"github.com/preston-bernstein/squad-planner/internal/domain/tactics"
	"github.com/preston-bernstein/squad-planner/internal/domain/teams"
	"github.com/preston-bernstein/squad-planner/internal/http/middleware"
	"github.com/preston-bernstein/squad-planner/internal/logging"
)

// maxBodyBytes leaves room for team logos sent as data URLs.
const maxBodyBytes = 2 << 20

var errEmptyBody = errors.New("request body is required")

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Error("failed to encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get("X-Request-ID")
	}
	body := map[string]string{"error": message}
	if reqID != "" {
		body["requestId"] = reqID
	}
	writeJSON(w, status, body, logger)
}

// writeServiceError maps domain sentinels to status codes. Anything
// unrecognised is logged and reported as a 500 without leaking details.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logging.Error(loggerFromContext(r, logger), "request failed", err)
		writeError(w, r, status, "internal error", logger)
		return
	}
	writeError(w, r, status, err.Error(), logger)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, players.ErrInvalidPlayer), errors.Is(err, teams.ErrInvalidTeam):
		return http.StatusBadRequest
	case errors.Is(err, roster.ErrPlayerNotFound),
		errors.Is(err, appteams.ErrTeamNotFound),
		errors.Is(err, analysis.ErrUnknownPlayer):
		return http.StatusNotFound
	case errors.Is(err, analysis.ErrNotReady):
		return http.StatusConflict
	case errors.Is(err, tactics.ErrInvalidConfig):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}

func sessionOf(r *http.Request) string {
	return middleware.SessionFromContext(r.Context())
}
