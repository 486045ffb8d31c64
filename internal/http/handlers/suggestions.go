package handlers

import (
	nethttp "net/http"

	"github.com/go-chi/chi/v5"

	"github.com/preston-bernstein/squad-planner/internal/suggest"
)

// Suggestions autocompletes team or country names from ?q=.
func (h *Handler) Suggestions(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.suggest == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "suggestions not configured", h.logger)
		return
	}
	out, ok := h.suggest.Suggest(suggest.Kind(chi.URLParam(r, "kind")), r.URL.Query().Get("q"))
	if !ok {
		writeError(w, r, nethttp.StatusNotFound, "unknown suggestion kind", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]any{"suggestions": out}, h.logger)
}
