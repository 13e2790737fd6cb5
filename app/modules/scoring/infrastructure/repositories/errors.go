package scoringdb

import "errors"

// ErrTournamentNotFound is returned when no tournament matches the given ID.
var ErrTournamentNotFound = errors.New("tournament not found")
