package handlers

import "github.com/go-chi/chi/v5"

// Routes registers the versioned API on r. Callers mount it under /api/v1.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/players", func(r chi.Router) {
		r.Get("/", h.ListPlayers)
		r.Post("/", h.CreatePlayer)
		r.Delete("/", h.ClearPlayers)
		r.Get("/{id}", h.GetPlayer)
		r.Put("/{id}", h.ReplacePlayer)
		r.Delete("/{id}", h.DeletePlayer)
		r.Post("/{id}/stats", h.AdjustStat)
		r.Post("/{id}/attributes", h.AdjustAttribute)
		r.Post("/{id}/position", h.CyclePosition)
		r.Get("/{id}/rating", h.PlayerRating)
	})

	r.Route("/tactics", func(r chi.Router) {
		r.Get("/", h.GetTactics)
		r.Post("/slots/{position}/{op}", h.AdjustSlot)
		r.Put("/priorities/{position}", h.SetPriorities)
		r.Post("/toggles/{position}", h.Toggle)
		r.Put("/formation", h.ApplyFormation)
	})
	r.Get("/formations", h.Formations)

	r.Get("/analysis", h.Analysis)
	r.Get("/analysis/categories", h.Categories)

	r.Route("/teams", func(r chi.Router) {
		r.Get("/", h.ListTeams)
		r.Post("/", h.CreateTeam)
		r.Get("/selected", h.SelectedTeam)
		r.Put("/selected", h.SelectTeam)
		r.Delete("/{id}", h.DeleteTeam)
	})

	r.Get("/suggestions/{kind}", h.Suggestions)
}
