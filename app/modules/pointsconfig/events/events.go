// Package pointsconfigevents defines the subjects and payloads the points
// configuration module publishes.
package pointsconfigevents

import (
	"time"

	sharedtypes "github.com/mmiles2012/golf-league/app/shared/types"
)

// SubjectPointsConfigUpdated is published after a points table edit persists.
// The recalculation module subscribes to it.
const SubjectPointsConfigUpdated = "league.pointsconfig.updated"

// PointsConfigUpdatedPayload announces a new points-table version.
type PointsConfigUpdatedPayload struct {
	Category  sharedtypes.Category `json:"category"`
	Version   int64                `json:"version"`
	UpdatedAt time.Time            `json:"updated_at"`
}
