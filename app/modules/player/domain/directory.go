// Package playerdomain defines the player-directory contract the scoring
// pipeline resolves names against.
package playerdomain

import (
	"context"
	"errors"

	sharedtypes "github.com/mmiles2012/golf-league/app/shared/types"
)

// ErrPlayerNotFound is returned by FindPlayerByName when no player matches.
var ErrPlayerNotFound = errors.New("player not found")

// Player is a member of the league directory.
type Player struct {
	ID              sharedtypes.PlayerID `json:"id"`
	Name            string               `json:"name"`
	DefaultHandicap *float64             `json:"default_handicap,omitempty"`
}

// Directory looks players up by display name and creates them on first
// appearance.
type Directory interface {
	FindPlayerByName(ctx context.Context, name string) (sharedtypes.PlayerID, error)
	CreatePlayer(ctx context.Context, name string, defaultHandicap *float64) (sharedtypes.PlayerID, error)
}
