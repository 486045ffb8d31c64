package handlers

import (
	nethttp "net/http"

	"github.com/go-chi/chi/v5"

	"github.com/preston-bernstein/squad-planner/internal/domain/teams"
	"github.com/preston-bernstein/squad-planner/internal/logging"
)

type selectRequest struct {
	ID string `json:"id"`
}

type selectedResponse struct {
	Team *teams.Team `json:"team"`
}

// ListTeams returns every team in the session.
func (h *Handler) ListTeams(w nethttp.ResponseWriter, r *nethttp.Request) {
	list, err := h.teams.Teams(r.Context(), sessionOf(r))
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]any{"teams": list}, h.logger)
}

// CreateTeam adds a team, selects it and clears the roster.
func (h *Handler) CreateTeam(w nethttp.ResponseWriter, r *nethttp.Request) {
	var t teams.Team
	if err := decodeJSON(w, r, &t); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, err.Error(), h.logger)
		return
	}
	created, err := h.teams.Create(r.Context(), sessionOf(r), t)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	logging.Info(loggerFromContext(r, h.logger), "team created", logging.FieldTeamID, created.ID)
	writeJSON(w, nethttp.StatusCreated, created, h.logger)
}

// DeleteTeam removes a team.
func (h *Handler) DeleteTeam(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := h.teams.Delete(r.Context(), sessionOf(r), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(nethttp.StatusNoContent)
}

// SelectedTeam returns the selected team, or null when none is selected.
func (h *Handler) SelectedTeam(w nethttp.ResponseWriter, r *nethttp.Request) {
	t, ok, err := h.teams.Selected(r.Context(), sessionOf(r))
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	resp := selectedResponse{}
	if ok {
		resp.Team = &t
	}
	writeJSON(w, nethttp.StatusOK, resp, h.logger)
}

// SelectTeam changes the selection; an empty id clears it.
func (h *Handler) SelectTeam(w nethttp.ResponseWriter, r *nethttp.Request) {
	var req selectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, err.Error(), h.logger)
		return
	}
	if err := h.teams.Select(r.Context(), sessionOf(r), req.ID); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	h.SelectedTeam(w, r)
}
