package scoringdb

import (
	"context"

	scoringdomain "github.com/mmiles2012/golf-league/app/modules/scoring/domain"
	sharedtypes "github.com/mmiles2012/golf-league/app/shared/types"
)

// Repository persists tournaments and their finalized result rows.
type Repository interface {
	// CreateTournamentWithResults persists the tournament header, its score
	// input snapshot, and its result rows in one transaction.
	CreateTournamentWithResults(ctx context.Context, t scoringdomain.Tournament, inputs []scoringdomain.ScoreInput, results []scoringdomain.TournamentResult) error
	GetTournament(ctx context.Context, id sharedtypes.TournamentID) (*scoringdomain.Tournament, error)
	ListTournaments(ctx context.Context, isManual bool) ([]scoringdomain.Tournament, error)
	CountTournaments(ctx context.Context, isManual bool) (int, error)
	GetScoreInputs(ctx context.Context, id sharedtypes.TournamentID) ([]scoringdomain.ScoreInput, error)
	// ReplaceResults atomically swaps a tournament's result rows during
	// recalculation.
	ReplaceResults(ctx context.Context, id sharedtypes.TournamentID, results []scoringdomain.TournamentResult) error
	ListAllResults(ctx context.Context) ([]scoringdomain.TournamentResult, error)
}
