package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	sharedtypes "github.com/mmiles2012/golf-league/app/shared/types"
)

// ListPointsTables returns every category's current table and version.
func (h *Handlers) ListPointsTables(w http.ResponseWriter, r *http.Request) {
	tables, err := h.pointsConfig.ListTables(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]any{
		"tables": tables,
	})
}

// GetPointsTable returns one category's table.
func (h *Handlers) GetPointsTable(w http.ResponseWriter, r *http.Request) {
	category := sharedtypes.Category(strings.ToLower(chi.URLParam(r, "category")))
	if !category.Valid() {
		h.badRequest(w, fmt.Sprintf("unknown category %q", category))
		return
	}

	table, err := h.pointsConfig.CurrentTable(r.Context(), category)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, table)
}

type updatePointsTableRequest struct {
	Values []float64 `json:"values"`
}

// UpdatePointsTable replaces one category's rank-to-points values. The
// table's version bumps and a points config updated event is published,
// which in turn triggers recalculation.
func (h *Handlers) UpdatePointsTable(w http.ResponseWriter, r *http.Request) {
	category := sharedtypes.Category(strings.ToLower(chi.URLParam(r, "category")))
	if !category.Valid() {
		h.badRequest(w, fmt.Sprintf("unknown category %q", category))
		return
	}

	var req updatePointsTableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.badRequest(w, fmt.Sprintf("decode request body: %v", err))
		return
	}
	if len(req.Values) == 0 {
		h.badRequest(w, "values must not be empty")
		return
	}

	table, err := h.pointsConfig.UpdateTable(r.Context(), category, req.Values)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, table)
}
