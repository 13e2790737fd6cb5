package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	leaderboardservice "github.com/mmiles2012/golf-league/app/modules/leaderboard/application"
	sharedtypes "github.com/mmiles2012/golf-league/app/shared/types"
)

func parseBasis(raw string) (sharedtypes.Basis, error) {
	switch strings.ToLower(raw) {
	case "net":
		return sharedtypes.BasisNet, nil
	case "gross":
		return sharedtypes.BasisGross, nil
	}
	return "", fmt.Errorf("unknown leaderboard basis %q, want net or gross", raw)
}

// GetLeaderboard returns the current standings for the net or gross basis.
func (h *Handlers) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	basis, err := parseBasis(chi.URLParam(r, "basis"))
	if err != nil {
		h.badRequest(w, err.Error())
		return
	}

	entries, err := h.leaderboard.GetLeaderboard(r.Context(), basis)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]any{
		"basis":   basis,
		"entries": entries,
	})
}

// GetLeaderboardChart renders the standings as a PNG bar chart.
func (h *Handlers) GetLeaderboardChart(w http.ResponseWriter, r *http.Request) {
	basis, err := parseBasis(chi.URLParam(r, "basis"))
	if err != nil {
		h.badRequest(w, err.Error())
		return
	}

	entries, err := h.leaderboard.GetLeaderboard(r.Context(), basis)
	if err != nil {
		h.respondError(w, err)
		return
	}

	title := fmt.Sprintf("Season Standings (%s)", basis)
	png, err := leaderboardservice.RenderStandingsChart(entries, title)
	if err != nil {
		h.respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
