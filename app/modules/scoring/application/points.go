package scoringservice

import (
	"sort"
	"strconv"

	scoringdomain "github.com/mmiles2012/golf-league/app/modules/scoring/domain"
	sharedtypes "github.com/mmiles2012/golf-league/app/shared/types"
)

// RankedResult is one player's placement in a single ranking pass.
type RankedResult struct {
	scoringdomain.ResolvedScore

	// Rank is the 1-indexed rank the points lookup used: for a tie group,
	// the best rank among the tied players.
	Rank            int
	DisplayPosition string
	Tied            bool
	Points          float64
}

// basisScore returns the sort key for the pass, nil when the score is absent.
func basisScore(s scoringdomain.ResolvedScore, basis sharedtypes.Basis) *float64 {
	if basis == sharedtypes.BasisGross {
		return s.Gross
	}
	return s.Net
}

// AssignPoints ranks the scores ascending by the basis score and pays points
// from the table. Players with an identical key form a tie group: every
// member gets the table value at the group's best rank and a "T"-prefixed
// display position. Players beyond the last tabulated position get zero
// points. Entries missing the basis score sort after all scored entries and
// earn nothing.
//
// Every tied player is paid the best rank's value rather than an average;
// that slightly overpays a table sized for distinct positions, but it is the
// league's observed convention.
func AssignPoints(scores []scoringdomain.ResolvedScore, table scoringdomain.PointsTable, basis sharedtypes.Basis) []RankedResult {
	ordered := make([]scoringdomain.ResolvedScore, len(scores))
	copy(ordered, scores)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := basisScore(ordered[i], basis), basisScore(ordered[j], basis)
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a < *b
		}
	})

	results := make([]RankedResult, 0, len(ordered))
	rank := 1
	for i := 0; i < len(ordered); {
		key := basisScore(ordered[i], basis)

		// A nil key never ties; each unscored entry stands alone.
		groupEnd := i + 1
		if key != nil {
			for groupEnd < len(ordered) {
				next := basisScore(ordered[groupEnd], basis)
				if next == nil || *next != *key {
					break
				}
				groupEnd++
			}
		}

		tied := groupEnd-i > 1
		display := strconv.Itoa(rank)
		if tied {
			display = "T" + display
		}
		points := 0.0
		if key != nil {
			points = table.PointsFor(rank)
		}

		for ; i < groupEnd; i++ {
			results = append(results, RankedResult{
				ResolvedScore:   ordered[i],
				Rank:            rank,
				DisplayPosition: display,
				Tied:            tied,
				Points:          points,
			})
		}
		rank = groupEnd + 1
	}
	return results
}
