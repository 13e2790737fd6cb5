package scoringservice

import (
	"context"

	scoringdomain "github.com/mmiles2012/golf-league/app/modules/scoring/domain"
	sharedtypes "github.com/mmiles2012/golf-league/app/shared/types"
)

// PointsTableSource provides the current points table for a category. The
// configuration store owns the tables; the scoring core only reads them.
type PointsTableSource interface {
	CurrentTable(ctx context.Context, category sharedtypes.Category) (scoringdomain.PointsTable, error)
}

// PreviewRequest carries caller-supplied, in-memory data only. Previews never
// touch persisted state and are safe to run concurrently with everything.
type PreviewRequest struct {
	Rows           []RawRow
	Mode           sharedtypes.ScoringMode
	Category       sharedtypes.Category
	ScoringType    sharedtypes.ScoringType
	IsManual       bool
	TeamResolution scoringdomain.TeamResolution
}

// PreviewSummary reports the row-level diagnostics of a preview pass.
type PreviewSummary struct {
	RowCount    int                          `json:"row_count"`
	PlayerCount int                          `json:"player_count"`
	RowErrors   []*scoringdomain.FieldError  `json:"row_errors,omitempty"`
	ScoreErrors []string                     `json:"score_errors,omitempty"`
	// PendingTeams is non-empty when detected team entries still need a
	// caller decision; results are withheld until the second call supplies
	// a resolution.
	PendingTeams []scoringdomain.TeamEntry `json:"pending_teams,omitempty"`
}

// PreviewResult is the non-persisted outcome of a preview pass.
type PreviewResult struct {
	Results []scoringdomain.TournamentResult `json:"results"`
	Summary PreviewSummary                   `json:"summary"`
}

// CommitRequest finalizes one tournament. ID doubles as the idempotency key:
// retrying a commit with the same ID returns the already-persisted
// tournament untouched.
type CommitRequest struct {
	ID             sharedtypes.TournamentID
	Name           string
	Date           string
	Category       sharedtypes.Category
	Mode           sharedtypes.ScoringMode
	ScoringType    sharedtypes.ScoringType
	IsManual       bool
	Scores         []scoringdomain.ScoreInput
	TeamResolution scoringdomain.TeamResolution
}

// Service is the scoring module's operation surface.
type Service interface {
	PreviewTournament(ctx context.Context, req PreviewRequest) (PreviewResult, error)
	CommitTournament(ctx context.Context, req CommitRequest) (scoringdomain.Tournament, error)
}
