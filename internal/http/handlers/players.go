package handlers

import (
	nethttp "net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/preston-bernstein/squad-planner/internal/app/roster"
	"github.com/preston-bernstein/squad-planner/internal/domain/players"
	"github.com/preston-bernstein/squad-planner/internal/domain/positions"
	"github.com/preston-bernstein/squad-planner/internal/logging"
)

type deltaRequest struct {
	Field     string `json:"field"`
	Attribute string `json:"attribute"`
	Delta     int    `json:"delta"`
}

type cycleRequest struct {
	Direction roster.Direction `json:"direction"`
}

// ListPlayers returns the roster with its summary.
func (h *Handler) ListPlayers(w nethttp.ResponseWriter, r *nethttp.Request) {
	out, err := h.roster.Roster(r.Context(), sessionOf(r))
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, out, h.logger)
}

// CreatePlayer validates and appends a player. The id is always server-assigned.
func (h *Handler) CreatePlayer(w nethttp.ResponseWriter, r *nethttp.Request) {
	var p players.Player
	if err := decodeJSON(w, r, &p); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, err.Error(), h.logger)
		return
	}
	created, err := h.roster.Create(r.Context(), sessionOf(r), p)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	logging.Info(loggerFromContext(r, h.logger), "player created",
		logging.FieldPlayerID, created.ID,
		logging.FieldPosition, created.MainPosition,
	)
	writeJSON(w, nethttp.StatusCreated, created, h.logger)
}

// ClearPlayers empties the roster.
func (h *Handler) ClearPlayers(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := h.roster.Clear(r.Context(), sessionOf(r)); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(nethttp.StatusNoContent)
}

// GetPlayer returns one player.
func (h *Handler) GetPlayer(w nethttp.ResponseWriter, r *nethttp.Request) {
	p, err := h.roster.PlayerByID(r.Context(), sessionOf(r), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, p, h.logger)
}

// ReplacePlayer overwrites a player, keeping its id.
func (h *Handler) ReplacePlayer(w nethttp.ResponseWriter, r *nethttp.Request) {
	var p players.Player
	if err := decodeJSON(w, r, &p); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, err.Error(), h.logger)
		return
	}
	updated, err := h.roster.Replace(r.Context(), sessionOf(r), chi.URLParam(r, "id"), p)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, updated, h.logger)
}

// DeletePlayer removes a player.
func (h *Handler) DeletePlayer(w nethttp.ResponseWriter, r *nethttp.Request) {
	id := chi.URLParam(r, "id")
	if err := h.roster.Delete(r.Context(), sessionOf(r), id); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	logging.Info(loggerFromContext(r, h.logger), "player deleted", logging.FieldPlayerID, id)
	w.WriteHeader(nethttp.StatusNoContent)
}

// AdjustStat applies {field, delta} to goals or assists.
func (h *Handler) AdjustStat(w nethttp.ResponseWriter, r *nethttp.Request) {
	var req deltaRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, err.Error(), h.logger)
		return
	}
	p, err := h.roster.AdjustStat(r.Context(), sessionOf(r), chi.URLParam(r, "id"), req.Field, req.Delta)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, p, h.logger)
}

// AdjustAttribute applies {attribute, delta}, clamped to the attribute scale.
func (h *Handler) AdjustAttribute(w nethttp.ResponseWriter, r *nethttp.Request) {
	var req deltaRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, err.Error(), h.logger)
		return
	}
	p, err := h.roster.AdjustAttribute(r.Context(), sessionOf(r), chi.URLParam(r, "id"), req.Attribute, req.Delta)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, p, h.logger)
}

// CyclePosition moves the main position to the next or previous table entry.
func (h *Handler) CyclePosition(w nethttp.ResponseWriter, r *nethttp.Request) {
	var req cycleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, err.Error(), h.logger)
		return
	}
	dir := roster.Direction(strings.ToLower(string(req.Direction)))
	p, err := h.roster.CyclePosition(r.Context(), sessionOf(r), chi.URLParam(r, "id"), dir)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, p, h.logger)
}

// PlayerRating scores a player at ?position=, or at the main position.
func (h *Handler) PlayerRating(w nethttp.ResponseWriter, r *nethttp.Request) {
	var pos positions.Position
	if raw := r.URL.Query().Get("position"); raw != "" {
		pos = parsePosition(raw)
	}
	rating, err := h.analysis.Rating(r.Context(), sessionOf(r), chi.URLParam(r, "id"), pos)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, rating, h.logger)
}

// parsePosition normalises a position code. Unknown codes are passed through
// upper-cased so the domain reports them.
func parsePosition(raw string) positions.Position {
	if p, ok := positions.Parse(raw); ok {
		return p
	}
	return positions.Position(strings.ToUpper(strings.TrimSpace(raw)))
}
