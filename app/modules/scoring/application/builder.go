package scoringservice

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	playerdomain "github.com/mmiles2012/golf-league/app/modules/player/domain"
	scoringdomain "github.com/mmiles2012/golf-league/app/modules/scoring/domain"
	sharedtypes "github.com/mmiles2012/golf-league/app/shared/types"
)

// BuildSpec describes one tournament's finalization pass.
type BuildSpec struct {
	TournamentID sharedtypes.TournamentID
	Category     sharedtypes.Category
	Table        scoringdomain.PointsTable
	ScoringType  sharedtypes.ScoringType
	IsManual     bool
}

// BuildResults composes score resolution, ranking, and player stamping into
// the finalized per-player result rows for one tournament. Team entries must
// already be resolved. Exactly one row is produced per distinct player; when
// a "both" expansion collides with an individual entry the better finish
// wins. Manual tournaments skip the points table entirely and copy the
// supplied points onto each row; a missing value anywhere fails the whole
// build with ErrIncompleteManualPoints.
func BuildResults(ctx context.Context, directory playerdomain.Directory, scores []scoringdomain.ResolvedScore, spec BuildSpec) ([]scoringdomain.TournamentResult, error) {
	if teams := DetectTeamEntries(scores); len(teams) > 0 {
		return nil, fmt.Errorf("%d team entries pending: %w", len(teams), scoringdomain.ErrUnresolvedTeamEntry)
	}

	deduped := dedupeByPlayer(scores)

	var results []scoringdomain.TournamentResult
	if spec.IsManual {
		manual, err := buildManualResults(deduped, spec)
		if err != nil {
			return nil, err
		}
		results = manual
	} else {
		results = buildCalculatedResults(deduped, spec)
	}

	for i := range results {
		id, err := directory.FindPlayerByName(ctx, results[i].PlayerName)
		switch {
		case err == nil:
			results[i].PlayerID = id
		case errors.Is(err, playerdomain.ErrPlayerNotFound):
			created, cerr := directory.CreatePlayer(ctx, results[i].PlayerName, results[i].Handicap)
			if cerr != nil {
				return nil, fmt.Errorf("create player %q: %w", results[i].PlayerName, cerr)
			}
			results[i].PlayerID = created
			results[i].IsNewPlayer = true
		default:
			return nil, fmt.Errorf("lookup player %q: %w", results[i].PlayerName, err)
		}
	}

	return results, nil
}

// dedupeByPlayer keeps one entry per player name, preferring the better
// finishing position when a player appears more than once.
func dedupeByPlayer(scores []scoringdomain.ResolvedScore) []scoringdomain.ResolvedScore {
	best := make(map[string]int, len(scores))
	out := make([]scoringdomain.ResolvedScore, 0, len(scores))
	for _, s := range scores {
		if idx, ok := best[s.PlayerName]; ok {
			if s.Position < out[idx].Position {
				out[idx] = s
			}
			continue
		}
		best[s.PlayerName] = len(out)
		out = append(out, s)
	}
	return out
}

func buildManualResults(scores []scoringdomain.ResolvedScore, spec BuildSpec) ([]scoringdomain.TournamentResult, error) {
	for _, s := range scores {
		if s.ManualPoints == nil || *s.ManualPoints < 0 {
			return nil, fmt.Errorf("player %q: %w", s.PlayerName, scoringdomain.ErrIncompleteManualPoints)
		}
	}
	results := make([]scoringdomain.TournamentResult, 0, len(scores))
	for _, s := range scores {
		results = append(results, scoringdomain.TournamentResult{
			TournamentID:    spec.TournamentID,
			Category:        spec.Category,
			PlayerName:      s.PlayerName,
			Position:        s.Position,
			DisplayPosition: strconv.Itoa(s.Position),
			Gross:           s.Gross,
			Net:             s.Net,
			Handicap:        s.Handicap,
			NetPoints:       *s.ManualPoints,
			GrossPoints:     *s.ManualPoints,
		})
	}
	return results, nil
}

// buildCalculatedResults runs one ranking pass per requested basis and merges
// them into a single row per player. Display position follows the net pass
// when both are requested; gross and net rankings can legitimately disagree.
func buildCalculatedResults(scores []scoringdomain.ResolvedScore, spec BuildSpec) []scoringdomain.TournamentResult {
	byPlayer := make(map[string]*scoringdomain.TournamentResult, len(scores))
	ordered := make([]string, 0, len(scores))

	bases := spec.ScoringType.Bases()
	for passIdx, basis := range bases {
		for _, ranked := range AssignPoints(scores, spec.Table, basis) {
			result, ok := byPlayer[ranked.PlayerName]
			if !ok {
				result = &scoringdomain.TournamentResult{
					TournamentID: spec.TournamentID,
					Category:     spec.Category,
					PlayerName:   ranked.PlayerName,
					Position:     ranked.Position,
					Gross:        ranked.Gross,
					Net:          ranked.Net,
					Handicap:     ranked.Handicap,
				}
				byPlayer[ranked.PlayerName] = result
				ordered = append(ordered, ranked.PlayerName)
			}
			if basis == sharedtypes.BasisGross {
				result.GrossPoints = ranked.Points
			} else {
				result.NetPoints = ranked.Points
			}
			if passIdx == 0 {
				result.DisplayPosition = ranked.DisplayPosition
				result.TiedPosition = ranked.Tied
			}
		}
	}

	results := make([]scoringdomain.TournamentResult, 0, len(ordered))
	for _, name := range ordered {
		results = append(results, *byPlayer[name])
	}
	return results
}
