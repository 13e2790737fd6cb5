package leaderboardservice

import (
	"sort"

	leaderboardtypes "github.com/mmiles2012/golf-league/app/modules/leaderboard/domain"
	scoringdomain "github.com/mmiles2012/golf-league/app/modules/scoring/domain"
	sharedtypes "github.com/mmiles2012/golf-league/app/shared/types"
)

// Aggregate folds every finalized tournament result for the season into
// ranked standings for one basis. It is a pure function and is re-run in
// full on every request or recalculation; standings are never incrementally
// patched, so stored totals cannot drift from the per-tournament rows.
//
// Each player's OverallPoints is the sum of their best bestN event values;
// the rest remain visible in EventPoints as dropped events. Players tied on
// OverallPoints share a rank and the next distinct rank skips accordingly.
func Aggregate(results []scoringdomain.TournamentResult, basis sharedtypes.Basis, bestN int) []leaderboardtypes.LeaderboardEntry {
	if bestN < 1 {
		bestN = leaderboardtypes.DefaultBestEventCount
	}

	type accumulator struct {
		entry leaderboardtypes.LeaderboardEntry
	}
	byPlayer := make(map[sharedtypes.PlayerID]*accumulator)
	order := make([]sharedtypes.PlayerID, 0)

	for _, r := range results {
		acc, ok := byPlayer[r.PlayerID]
		if !ok {
			acc = &accumulator{entry: leaderboardtypes.LeaderboardEntry{
				PlayerID:       r.PlayerID,
				PlayerName:     r.PlayerName,
				CategoryPoints: make(map[sharedtypes.Category]float64),
			}}
			byPlayer[r.PlayerID] = acc
			order = append(order, r.PlayerID)
		}
		points := r.PointsForBasis(basis)
		acc.entry.EventPoints = append(acc.entry.EventPoints, points)
		acc.entry.CategoryPoints[r.Category] += points
	}

	entries := make([]leaderboardtypes.LeaderboardEntry, 0, len(order))
	for _, id := range order {
		entry := byPlayer[id].entry
		sort.Sort(sort.Reverse(sort.Float64Slice(entry.EventPoints)))

		counted := len(entry.EventPoints)
		if counted > bestN {
			counted = bestN
		}
		total := 0.0
		for _, p := range entry.EventPoints[:counted] {
			total += p
		}
		entry.OverallPoints = total
		entries = append(entries, entry)
	}

	// Name is the determinism tie-break only; ranks still tie on points.
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].OverallPoints != entries[j].OverallPoints {
			return entries[i].OverallPoints > entries[j].OverallPoints
		}
		return entries[i].PlayerName < entries[j].PlayerName
	})

	for i := range entries {
		if i > 0 && entries[i].OverallPoints == entries[i-1].OverallPoints {
			entries[i].Rank = entries[i-1].Rank
			continue
		}
		entries[i].Rank = i + 1
	}
	return entries
}
