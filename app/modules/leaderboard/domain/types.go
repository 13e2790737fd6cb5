// Package leaderboardtypes holds the season standings shapes.
package leaderboardtypes

import (
	sharedtypes "github.com/mmiles2012/golf-league/app/shared/types"
)

// DefaultBestEventCount is how many of a player's best events count toward
// the season total. Overridable via config; 8 is the league's long-standing
// rule.
const DefaultBestEventCount = 8

// LeaderboardEntry is one player's season standing for one basis (net or
// gross). Entries are recomputed wholesale on every aggregation run, never
// patched in place.
type LeaderboardEntry struct {
	PlayerID   sharedtypes.PlayerID `json:"player_id"`
	PlayerName string               `json:"player_name"`
	// CategoryPoints totals every event the player scored in, per tournament
	// category, dropped events included.
	CategoryPoints map[sharedtypes.Category]float64 `json:"category_points"`
	// EventPoints is every event's points, sorted descending. Events beyond
	// the best-N cutoff stay visible here but do not count toward
	// OverallPoints.
	EventPoints   []float64 `json:"event_points"`
	OverallPoints float64   `json:"overall_points"`
	Rank          int       `json:"rank"`
}
