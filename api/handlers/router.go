package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Router assembles the full API surface.
func (h *Handlers) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/tournaments", func(r chi.Router) {
		r.Post("/preview", h.PreviewTournament)
		r.Post("/teams", h.DetectTeams)
		r.Post("/", h.CommitTournament)
	})

	r.Route("/leaderboard", func(r chi.Router) {
		r.Get("/{basis}", h.GetLeaderboard)
		r.Get("/{basis}/chart.png", h.GetLeaderboardChart)
	})

	r.Route("/recalculation", func(r chi.Router) {
		r.Post("/", h.TriggerRecalculation)
		r.Get("/", h.ListRecalculationRuns)
		r.Get("/{runID}", h.GetRecalculationRun)
	})

	r.Route("/points-tables", func(r chi.Router) {
		r.Get("/", h.ListPointsTables)
		r.Get("/{category}", h.GetPointsTable)
		r.Put("/{category}", h.UpdatePointsTable)
	})

	return r
}
