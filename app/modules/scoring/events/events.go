// Package scoringevents defines the subjects and payloads the scoring module
// publishes.
package scoringevents

import (
	"time"

	sharedtypes "github.com/mmiles2012/golf-league/app/shared/types"
)

// SubjectTournamentFinalized is published after a tournament commit persists.
const SubjectTournamentFinalized = "league.tournament.finalized"

// TournamentFinalizedPayload announces a newly committed tournament.
type TournamentFinalizedPayload struct {
	TournamentID sharedtypes.TournamentID `json:"tournament_id"`
	Name         string                   `json:"name"`
	Category     sharedtypes.Category     `json:"category"`
	IsManual     bool                     `json:"is_manual"`
	PlayerCount  int                      `json:"player_count"`
	FinalizedAt  time.Time                `json:"finalized_at"`
}
