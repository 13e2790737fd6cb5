// Package scoringdomain holds the canonical score records the ingestion
// pipeline produces and the persisted result rows it commits.
package scoringdomain

import (
	"time"

	sharedtypes "github.com/mmiles2012/golf-league/app/shared/types"
)

// ScoreInput is one normalized row from an upload or manual entry. It is
// ephemeral: it lives for the duration of a single preview/commit request or
// a recalculation pass over a tournament's stored inputs.
type ScoreInput struct {
	PlayerName string `json:"player_name"`
	// Position is the 1-based finishing position, falling back to the row's
	// ingestion order when the upload carries no position column.
	Position int      `json:"position"`
	RawTotal *float64 `json:"raw_total,omitempty"`
	Gross    *float64 `json:"gross,omitempty"`
	Net      *float64 `json:"net,omitempty"`
	Handicap *float64 `json:"handicap,omitempty"`
	// HandicapPlus marks a handicap that was entered with a leading "+",
	// meaning it adds to gross instead of subtracting.
	HandicapPlus bool `json:"handicap_plus,omitempty"`
	// ManualPoints carries the caller-supplied points value for manual
	// tournaments; nil otherwise.
	ManualPoints *float64 `json:"manual_points,omitempty"`
}

// ResolvedScore is a ScoreInput with gross/net derived and team entries
// resolved. Immutable once produced; one per player per tournament.
type ResolvedScore struct {
	PlayerID     *sharedtypes.PlayerID `json:"player_id,omitempty"`
	PlayerName   string                `json:"player_name"`
	Position     int                   `json:"position"`
	Gross        *float64              `json:"gross,omitempty"`
	Net          *float64              `json:"net,omitempty"`
	Handicap     *float64              `json:"handicap,omitempty"`
	ManualPoints *float64              `json:"manual_points,omitempty"`
}

// TeamEntry is a multi-player row awaiting an out-of-band decision. It exists
// only between detection and resolution.
type TeamEntry struct {
	// OriginalLabel is the raw player-name field, e.g. "Smith/Jones".
	OriginalLabel string `json:"original_label"`
	// CandidateNames are the separator-split, trimmed tokens in row order.
	CandidateNames []string `json:"candidate_names"`
}

// ResolutionBoth credits every candidate of a team entry with the full
// result.
const ResolutionBoth = "both"

// TeamResolution maps a team's original label to either one candidate name or
// ResolutionBoth.
type TeamResolution map[string]string

// PointsTable maps finishing position to points for one tournament category.
// Read-only to the scoring core; its UpdatedAt is the recalculation trigger.
type PointsTable struct {
	Category  sharedtypes.Category `json:"category"`
	Version   int64                `json:"version"`
	Values    []float64            `json:"values"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// PointsFor returns the points paid at a 1-indexed rank. Ranks beyond the
// table pay zero.
func (t PointsTable) PointsFor(rank int) float64 {
	if rank < 1 || rank > len(t.Values) {
		return 0
	}
	return t.Values[rank-1]
}

// Tournament is the persisted event header. IsManual never changes after
// creation; manual tournaments are permanently excluded from recalculation.
type Tournament struct {
	ID          sharedtypes.TournamentID `json:"id"`
	Name        string                   `json:"name"`
	Date        time.Time                `json:"date"`
	Category    sharedtypes.Category     `json:"category"`
	ScoringMode sharedtypes.ScoringMode  `json:"scoring_mode"`
	ScoringType sharedtypes.ScoringType  `json:"scoring_type"`
	IsManual    bool                     `json:"is_manual"`
}

// TournamentResult is one player's finalized result in one tournament.
// Exactly one row exists per (tournament, player); NetPoints and GrossPoints
// are the values the player earned in the net and gross rankings.
type TournamentResult struct {
	TournamentID sharedtypes.TournamentID `json:"tournament_id"`
	PlayerID     sharedtypes.PlayerID     `json:"player_id"`
	PlayerName   string                   `json:"player_name"`
	// Category is denormalized from the tournament so season aggregation can
	// total per category without a join.
	Category sharedtypes.Category `json:"category"`
	Position int                  `json:"position"`
	// DisplayPosition is the tie-aware position for the tournament's primary
	// ranking, e.g. "3" or "T3".
	DisplayPosition string   `json:"display_position"`
	TiedPosition    bool     `json:"tied_position"`
	Gross           *float64 `json:"gross,omitempty"`
	Net             *float64 `json:"net,omitempty"`
	Handicap        *float64 `json:"handicap,omitempty"`
	NetPoints       float64  `json:"net_points"`
	GrossPoints     float64  `json:"gross_points"`
	IsNewPlayer     bool     `json:"is_new_player"`
}

// PointsForBasis returns the points this result earned in the given ranking.
func (r TournamentResult) PointsForBasis(basis sharedtypes.Basis) float64 {
	if basis == sharedtypes.BasisGross {
		return r.GrossPoints
	}
	return r.NetPoints
}
