// Package recalcdomain holds the recalculation run's state machine and audit
// log shapes.
package recalcdomain

import (
	"errors"
	"time"

	sharedtypes "github.com/mmiles2012/golf-league/app/shared/types"
)

// ErrRunConflict means a recalculation run is already in progress; new
// triggers are rejected, never run concurrently.
var ErrRunConflict = errors.New("recalculation run already in progress")

// ErrRunNotFound is returned when no run matches the given ID.
var ErrRunNotFound = errors.New("recalculation run not found")

// RunState is the orchestrator's state machine:
// Pending → Running → {Completed, Failed}.
type RunState string

const (
	RunPending   RunState = "pending"
	RunRunning   RunState = "running"
	RunCompleted RunState = "completed"
	RunFailed    RunState = "failed"
)

// RunError is one tournament's failure inside an otherwise-continuing run.
// TournamentID is empty for run-level errors.
type RunError struct {
	TournamentID string `json:"tournament_id,omitempty"`
	Message      string `json:"message"`
}

// LogEntry is the append-only audit record for one run.
type LogEntry struct {
	RunID                sharedtypes.RunID `json:"run_id"`
	State                RunState          `json:"state"`
	Reason               string            `json:"reason,omitempty"`
	StartedAt            time.Time         `json:"started_at"`
	FinishedAt           *time.Time        `json:"finished_at,omitempty"`
	TournamentsProcessed int               `json:"tournaments_processed"`
	// TournamentsSkipped counts the manual tournaments encountered. They are
	// recorded for audit visibility only and never processed.
	TournamentsSkipped int        `json:"tournaments_skipped"`
	Errors             []RunError `json:"errors,omitempty"`
}
