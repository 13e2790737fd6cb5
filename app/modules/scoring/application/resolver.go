package scoringservice

import (
	"fmt"

	scoringdomain "github.com/mmiles2012/golf-league/app/modules/scoring/domain"
	sharedtypes "github.com/mmiles2012/golf-league/app/shared/types"
)

// ResolveScore computes gross and net for one input according to the scoring
// mode.
//
//   - PreScored: gross and net are copied through unchanged.
//   - Stroke: the raw total is gross; net = gross - handicap, or
//     gross + handicap when the handicap carried a "+" marker.
//   - StrokeNet: the raw total is net; gross = net + handicap, always
//     additive (a course handicap reconstructs gross from net).
//
// Negative and zero handicaps are valid and propagate unchanged.
func ResolveScore(input scoringdomain.ScoreInput, mode sharedtypes.ScoringMode) (scoringdomain.ResolvedScore, error) {
	resolved := scoringdomain.ResolvedScore{
		PlayerName:   input.PlayerName,
		Position:     input.Position,
		Handicap:     input.Handicap,
		ManualPoints: input.ManualPoints,
	}

	switch mode {
	case sharedtypes.ModePreScored:
		resolved.Gross = input.Gross
		resolved.Net = input.Net
		return resolved, nil

	case sharedtypes.ModeStroke:
		if input.RawTotal == nil || input.Handicap == nil {
			return resolved, fmt.Errorf("player %q: %w", input.PlayerName, scoringdomain.ErrIncompleteScore)
		}
		gross := *input.RawTotal
		var net float64
		if input.HandicapPlus {
			net = gross + *input.Handicap
		} else {
			net = gross - *input.Handicap
		}
		resolved.Gross = &gross
		resolved.Net = &net
		return resolved, nil

	case sharedtypes.ModeStrokeNet:
		if input.RawTotal == nil || input.Handicap == nil {
			return resolved, fmt.Errorf("player %q: %w", input.PlayerName, scoringdomain.ErrIncompleteScore)
		}
		net := *input.RawTotal
		gross := net + *input.Handicap
		resolved.Gross = &gross
		resolved.Net = &net
		return resolved, nil

	default:
		return resolved, fmt.Errorf("unknown scoring mode %q", mode)
	}
}

// ResolveScores resolves a batch, collecting per-row failures so one bad row
// does not sink the rest.
func ResolveScores(inputs []scoringdomain.ScoreInput, mode sharedtypes.ScoringMode) ([]scoringdomain.ResolvedScore, []error) {
	resolved := make([]scoringdomain.ResolvedScore, 0, len(inputs))
	var errs []error
	for _, input := range inputs {
		r, err := ResolveScore(input, mode)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		resolved = append(resolved, r)
	}
	return resolved, errs
}
