// Package leaderboardservice folds finalized tournament results into ranked
// season standings.
package leaderboardservice

import (
	"context"
	"log/slog"

	leaderboardtypes "github.com/mmiles2012/golf-league/app/modules/leaderboard/domain"
	leaderboarddb "github.com/mmiles2012/golf-league/app/modules/leaderboard/infrastructure/repositories"
	scoringdb "github.com/mmiles2012/golf-league/app/modules/scoring/infrastructure/repositories"
	sharedtypes "github.com/mmiles2012/golf-league/app/shared/types"
	"github.com/mmiles2012/golf-league/internal/observability/attr"
)

// Service computes and stores season standings.
type Service struct {
	results   scoringdb.Repository
	snapshots leaderboarddb.Repository
	logger    *slog.Logger
	bestN     int
}

func NewService(results scoringdb.Repository, snapshots leaderboarddb.Repository, logger *slog.Logger, bestN int) *Service {
	if bestN < 1 {
		bestN = leaderboardtypes.DefaultBestEventCount
	}
	return &Service{
		results:   results,
		snapshots: snapshots,
		logger:    logger,
		bestN:     bestN,
	}
}

// GetLeaderboard folds the season's results for one basis. It always
// recomputes from the result rows rather than trusting a stored snapshot.
func (s *Service) GetLeaderboard(ctx context.Context, basis sharedtypes.Basis) ([]leaderboardtypes.LeaderboardEntry, error) {
	results, err := s.results.ListAllResults(ctx)
	if err != nil {
		return nil, err
	}
	return Aggregate(results, basis, s.bestN), nil
}

// RefreshSnapshots recomputes and stores both bases' standings. Called at the
// end of a recalculation run, after every tournament's rows settled.
func (s *Service) RefreshSnapshots(ctx context.Context) error {
	results, err := s.results.ListAllResults(ctx)
	if err != nil {
		return err
	}
	for _, basis := range []sharedtypes.Basis{sharedtypes.BasisNet, sharedtypes.BasisGross} {
		entries := Aggregate(results, basis, s.bestN)
		if err := s.snapshots.SaveSnapshot(ctx, basis, entries); err != nil {
			return err
		}
		s.logger.InfoContext(ctx, "Leaderboard snapshot refreshed",
			attr.String("basis", string(basis)),
			attr.Int("players", len(entries)),
		)
	}
	return nil
}
