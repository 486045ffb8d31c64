package handlers

import (
	nethttp "net/http"

	"github.com/go-chi/chi/v5"

	"github.com/preston-bernstein/squad-planner/internal/domain/tactics"
)

type tacticsResponse struct {
	tactics.Tactics
	Valid         bool `json:"valid"`
	OutfieldTotal int  `json:"outfieldTotal"`
}

type prioritiesRequest struct {
	Attributes []string `json:"attributes"`
}

type formationRequest struct {
	Name string `json:"name"`
}

func newTacticsResponse(t tactics.Tactics) tacticsResponse {
	return tacticsResponse{Tactics: t, Valid: t.Complete(), OutfieldTotal: t.OutfieldTotal()}
}

// GetTactics returns the session tactics, defaulting on first access.
func (h *Handler) GetTactics(w nethttp.ResponseWriter, r *nethttp.Request) {
	t, err := h.tactics.Get(r.Context(), sessionOf(r))
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, newTacticsResponse(t), h.logger)
}

// AdjustSlot increments or decrements the starter count at {position}.
func (h *Handler) AdjustSlot(w nethttp.ResponseWriter, r *nethttp.Request) {
	pos := parsePosition(chi.URLParam(r, "position"))
	var (
		t   tactics.Tactics
		err error
	)
	switch chi.URLParam(r, "op") {
	case "increment":
		t, err = h.tactics.Increment(r.Context(), sessionOf(r), pos)
	case "decrement":
		t, err = h.tactics.Decrement(r.Context(), sessionOf(r), pos)
	default:
		writeError(w, r, nethttp.StatusNotFound, "unknown slot operation", h.logger)
		return
	}
	h.writeTactics(w, r, t, err)
}

// SetPriorities replaces the ordered attribute priorities at {position}.
func (h *Handler) SetPriorities(w nethttp.ResponseWriter, r *nethttp.Request) {
	var req prioritiesRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, err.Error(), h.logger)
		return
	}
	pos := parsePosition(chi.URLParam(r, "position"))
	t, err := h.tactics.SetPriorities(r.Context(), sessionOf(r), pos, req.Attributes)
	h.writeTactics(w, r, t, err)
}

// Toggle flips the inverted-foot flag at {position}.
func (h *Handler) Toggle(w nethttp.ResponseWriter, r *nethttp.Request) {
	pos := parsePosition(chi.URLParam(r, "position"))
	t, err := h.tactics.Toggle(r.Context(), sessionOf(r), pos)
	h.writeTactics(w, r, t, err)
}

// ApplyFormation replaces slot counts with a named template.
func (h *Handler) ApplyFormation(w nethttp.ResponseWriter, r *nethttp.Request) {
	var req formationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, err.Error(), h.logger)
		return
	}
	t, err := h.tactics.ApplyFormation(r.Context(), sessionOf(r), req.Name)
	h.writeTactics(w, r, t, err)
}

// Formations lists the formation templates.
func (h *Handler) Formations(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeJSON(w, nethttp.StatusOK, map[string]any{"formations": tactics.Formations()}, h.logger)
}

func (h *Handler) writeTactics(w nethttp.ResponseWriter, r *nethttp.Request, t tactics.Tactics, err error) {
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, newTacticsResponse(t), h.logger)
}
