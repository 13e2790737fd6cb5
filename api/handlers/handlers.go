// Package handlers exposes the league engine over HTTP. Routes are thin:
// they decode uploads and JSON, call the module services, and map domain
// errors onto status codes.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	leaderboardservice "github.com/mmiles2012/golf-league/app/modules/leaderboard/application"
	pointsconfigservice "github.com/mmiles2012/golf-league/app/modules/pointsconfig/application"
	pointsconfigdb "github.com/mmiles2012/golf-league/app/modules/pointsconfig/infrastructure/repositories"
	recalcservice "github.com/mmiles2012/golf-league/app/modules/recalculation/application"
	recalcdomain "github.com/mmiles2012/golf-league/app/modules/recalculation/domain"
	recalcqueue "github.com/mmiles2012/golf-league/app/modules/recalculation/infrastructure/queue"
	scoringservice "github.com/mmiles2012/golf-league/app/modules/scoring/application"
	scoringdomain "github.com/mmiles2012/golf-league/app/modules/scoring/domain"
	scoringdb "github.com/mmiles2012/golf-league/app/modules/scoring/infrastructure/repositories"
	"github.com/mmiles2012/golf-league/internal/observability/attr"
)

// Handlers bundles the services the HTTP surface fronts.
type Handlers struct {
	scoring      scoringservice.Service
	leaderboard  *leaderboardservice.Service
	pointsConfig *pointsconfigservice.Service
	recalcQueue  *recalcqueue.Service
	recalcRuns   *recalcservice.Orchestrator
	logger       *slog.Logger
}

func New(
	scoring scoringservice.Service,
	leaderboard *leaderboardservice.Service,
	pointsConfig *pointsconfigservice.Service,
	recalcQueue *recalcqueue.Service,
	recalcRuns *recalcservice.Orchestrator,
	logger *slog.Logger,
) *Handlers {
	return &Handlers{
		scoring:      scoring,
		leaderboard:  leaderboard,
		pointsConfig: pointsConfig,
		recalcQueue:  recalcQueue,
		recalcRuns:   recalcRuns,
		logger:       logger,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handlers) respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to encode response", attr.Error(err))
	}
}

// respondError maps domain sentinels onto HTTP status codes.
func (h *Handlers) respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, recalcdomain.ErrRunConflict):
		status = http.StatusConflict
	case errors.Is(err, recalcdomain.ErrRunNotFound),
		errors.Is(err, scoringdb.ErrTournamentNotFound),
		errors.Is(err, pointsconfigdb.ErrTableNotFound):
		status = http.StatusNotFound
	case errors.Is(err, scoringdomain.ErrIncompleteScore),
		errors.Is(err, scoringdomain.ErrIncompleteManualPoints),
		errors.Is(err, scoringdomain.ErrUnresolvedTeamEntry):
		status = http.StatusUnprocessableEntity
	}
	h.respondJSON(w, status, errorResponse{Error: err.Error()})
}

func (h *Handlers) badRequest(w http.ResponseWriter, msg string) {
	h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}
