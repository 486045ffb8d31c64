package handlers

import nethttp "net/http"

// Analysis computes the Best XI, bench and squad diagnostics. Missing
// prerequisites come back as 409 with the fix in the message.
func (h *Handler) Analysis(w nethttp.ResponseWriter, r *nethttp.Request) {
	report, err := h.analysis.Analyze(r.Context(), sessionOf(r))
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, report, h.logger)
}

// Categories buckets the roster into veterans, aging players and young stars.
func (h *Handler) Categories(w nethttp.ResponseWriter, r *nethttp.Request) {
	cats, err := h.analysis.Categories(r.Context(), sessionOf(r))
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, cats, h.logger)
}
