package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	sharedtypes "github.com/mmiles2012/golf-league/app/shared/types"
)

type triggerRecalculationRequest struct {
	Reason string `json:"reason"`
}

// TriggerRecalculation queues a full recalculation run and returns its ID
// immediately. A 409 means a run is already pending or executing.
func (h *Handlers) TriggerRecalculation(w http.ResponseWriter, r *http.Request) {
	var req triggerRecalculationRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.badRequest(w, fmt.Sprintf("decode request body: %v", err))
			return
		}
	}
	if req.Reason == "" {
		req.Reason = "manual trigger"
	}

	runID, err := h.recalcQueue.Trigger(r.Context(), req.Reason)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusAccepted, map[string]any{
		"run_id": runID.String(),
	})
}

// GetRecalculationRun returns the audit log entry for one run.
func (h *Handlers) GetRecalculationRun(w http.ResponseWriter, r *http.Request) {
	runID, err := sharedtypes.ParseRunID(chi.URLParam(r, "runID"))
	if err != nil {
		h.badRequest(w, fmt.Sprintf("invalid run id: %v", err))
		return
	}

	entry, err := h.recalcRuns.Status(r.Context(), runID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, entry)
}

// ListRecalculationRuns returns recent runs, newest first.
func (h *Handlers) ListRecalculationRuns(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			h.badRequest(w, fmt.Sprintf("invalid limit %q", raw))
			return
		}
		limit = n
	}

	entries, err := h.recalcRuns.History(r.Context(), limit)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]any{
		"runs": entries,
	})
}
