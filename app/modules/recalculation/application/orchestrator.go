// Package recalcservice replays every calculated tournament's stored score
// inputs against the current points tables and swaps in fresh result rows.
package recalcservice

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	playerdomain "github.com/mmiles2012/golf-league/app/modules/player/domain"
	recalcdomain "github.com/mmiles2012/golf-league/app/modules/recalculation/domain"
	recalcdb "github.com/mmiles2012/golf-league/app/modules/recalculation/infrastructure/repositories"
	scoringservice "github.com/mmiles2012/golf-league/app/modules/scoring/application"
	scoringdomain "github.com/mmiles2012/golf-league/app/modules/scoring/domain"
	scoringdb "github.com/mmiles2012/golf-league/app/modules/scoring/infrastructure/repositories"
	sharedtypes "github.com/mmiles2012/golf-league/app/shared/types"
	"github.com/mmiles2012/golf-league/internal/observability/attr"
)

// DefaultConcurrency bounds the tournament worker pool.
const DefaultConcurrency = 4

// SnapshotRefresher is satisfied by the leaderboard service. RefreshSnapshots
// runs once, after every tournament worker has finished.
type SnapshotRefresher interface {
	RefreshSnapshots(ctx context.Context) error
}

// Orchestrator executes recalculation runs. Exactly one run may be active at
// a time; the single-flight guard is the lock row in recalcdb.
type Orchestrator struct {
	runs        recalcdb.Repository
	tournaments scoringdb.Repository
	tables      scoringservice.PointsTableSource
	directory   playerdomain.Directory
	snapshots   SnapshotRefresher
	logger      *slog.Logger
	concurrency int
}

func NewOrchestrator(
	runs recalcdb.Repository,
	tournaments scoringdb.Repository,
	tables scoringservice.PointsTableSource,
	directory playerdomain.Directory,
	snapshots SnapshotRefresher,
	logger *slog.Logger,
	concurrency int,
) *Orchestrator {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Orchestrator{
		runs:        runs,
		tournaments: tournaments,
		tables:      tables,
		directory:   directory,
		snapshots:   snapshots,
		logger:      logger,
		concurrency: concurrency,
	}
}

// Begin records a pending run and claims the single-flight lock. It returns
// ErrRunConflict when another run holds the lock, leaving no trace of the
// rejected trigger.
func (o *Orchestrator) Begin(ctx context.Context, reason string) (sharedtypes.RunID, error) {
	runID := sharedtypes.NewRunID()
	entry := &recalcdomain.LogEntry{
		RunID:     runID,
		State:     recalcdomain.RunPending,
		Reason:    reason,
		StartedAt: time.Now().UTC(),
	}
	if err := o.runs.CreateRun(ctx, entry); err != nil {
		return sharedtypes.RunID{}, fmt.Errorf("recalcservice.Begin: %w", err)
	}

	ok, err := o.runs.AcquireRunLock(ctx, runID)
	if err != nil {
		_ = o.runs.DeleteRun(ctx, runID)
		return sharedtypes.RunID{}, fmt.Errorf("recalcservice.Begin: %w", err)
	}
	if !ok {
		_ = o.runs.DeleteRun(ctx, runID)
		return sharedtypes.RunID{}, recalcdomain.ErrRunConflict
	}
	return runID, nil
}

// Abort discards a run created by Begin that never made it onto the queue,
// releasing the lock so the next trigger can proceed.
func (o *Orchestrator) Abort(ctx context.Context, runID sharedtypes.RunID) {
	if err := o.runs.DeleteRun(ctx, runID); err != nil {
		o.logger.ErrorContext(ctx, "failed to discard aborted run",
			attr.RunID("run_id", runID),
			attr.Error(err),
		)
	}
	o.releaseLock(runID)
}

// Execute replays every non-manual tournament for the run created by Begin.
// Manual tournaments are counted as skipped and never touched. A failing
// tournament is recorded on the run and the rest continue. The leaderboard
// snapshots refresh only after all workers have finished.
func (o *Orchestrator) Execute(ctx context.Context, runID sharedtypes.RunID) error {
	entry, err := o.runs.GetRun(ctx, runID)
	if err != nil {
		o.releaseLock(runID)
		return fmt.Errorf("recalcservice.Execute: %w", err)
	}
	defer o.releaseLock(runID)

	entry.State = recalcdomain.RunRunning
	if err := o.runs.UpdateRun(ctx, entry); err != nil {
		return fmt.Errorf("recalcservice.Execute: %w", err)
	}

	tournaments, err := o.tournaments.ListTournaments(ctx, false)
	if err != nil {
		return o.finish(ctx, entry, recalcdomain.RunFailed, []recalcdomain.RunError{
			{Message: fmt.Sprintf("list tournaments: %v", err)},
		})
	}
	skipped, err := o.tournaments.CountTournaments(ctx, true)
	if err != nil {
		return o.finish(ctx, entry, recalcdomain.RunFailed, []recalcdomain.RunError{
			{Message: fmt.Sprintf("count manual tournaments: %v", err)},
		})
	}
	entry.TournamentsSkipped = skipped

	o.logger.InfoContext(ctx, "recalculation started",
		attr.RunID("run_id", runID),
		attr.Int("tournaments", len(tournaments)),
		attr.Int("skipped_manual", skipped),
	)

	var (
		mu        sync.Mutex
		runErrors []recalcdomain.RunError
		processed int
	)
	jobs := make(chan scoringdomain.Tournament)
	var wg sync.WaitGroup
	for i := 0; i < o.concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range jobs {
				if err := o.replayTournament(ctx, t); err != nil {
					mu.Lock()
					runErrors = append(runErrors, recalcdomain.RunError{
						TournamentID: t.ID.String(),
						Message:      err.Error(),
					})
					mu.Unlock()
					o.logger.ErrorContext(ctx, "tournament recalculation failed",
						attr.RunID("run_id", runID),
						attr.TournamentID("tournament_id", t.ID),
						attr.Error(err),
					)
					continue
				}
				mu.Lock()
				processed++
				mu.Unlock()
			}
		}()
	}

feed:
	for _, t := range tournaments {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- t:
		}
	}
	close(jobs)
	wg.Wait()

	entry.TournamentsProcessed = processed
	if err := ctx.Err(); err != nil {
		runErrors = append(runErrors, recalcdomain.RunError{Message: fmt.Sprintf("run canceled: %v", err)})
		return o.finish(context.WithoutCancel(ctx), entry, recalcdomain.RunFailed, runErrors)
	}

	// Barrier: snapshots rebuild only from fully recalculated results.
	if err := o.snapshots.RefreshSnapshots(ctx); err != nil {
		runErrors = append(runErrors, recalcdomain.RunError{Message: fmt.Sprintf("refresh snapshots: %v", err)})
	}

	return o.finish(ctx, entry, recalcdomain.RunCompleted, runErrors)
}

func (o *Orchestrator) replayTournament(ctx context.Context, t scoringdomain.Tournament) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	inputs, err := o.tournaments.GetScoreInputs(ctx, t.ID)
	if err != nil {
		return fmt.Errorf("load score inputs: %w", err)
	}
	resolved, errs := scoringservice.ResolveScores(inputs, t.ScoringMode)
	if len(errs) > 0 {
		return fmt.Errorf("resolve scores: %w", errs[0])
	}

	table, err := o.tables.CurrentTable(ctx, t.Category)
	if err != nil {
		return fmt.Errorf("load points table: %w", err)
	}

	results, err := scoringservice.BuildResults(ctx, o.directory, resolved, scoringservice.BuildSpec{
		TournamentID: t.ID,
		Category:     t.Category,
		Table:        table,
		ScoringType:  t.ScoringType,
		IsManual:     false,
	})
	if err != nil {
		return fmt.Errorf("build results: %w", err)
	}

	if err := o.tournaments.ReplaceResults(ctx, t.ID, results); err != nil {
		return fmt.Errorf("replace results: %w", err)
	}
	return nil
}

func (o *Orchestrator) finish(ctx context.Context, entry *recalcdomain.LogEntry, state recalcdomain.RunState, runErrors []recalcdomain.RunError) error {
	sort.SliceStable(runErrors, func(i, j int) bool {
		return runErrors[i].TournamentID < runErrors[j].TournamentID
	})
	now := time.Now().UTC()
	entry.State = state
	entry.FinishedAt = &now
	entry.Errors = runErrors

	if err := o.runs.UpdateRun(ctx, entry); err != nil {
		return fmt.Errorf("recalcservice.finish: %w", err)
	}
	o.logger.InfoContext(ctx, "recalculation finished",
		attr.RunID("run_id", entry.RunID),
		attr.String("state", string(state)),
		attr.Int("processed", entry.TournamentsProcessed),
		attr.Int("skipped", entry.TournamentsSkipped),
		attr.Int("errors", len(runErrors)),
	)
	return nil
}

// Status returns the run's current log entry.
func (o *Orchestrator) Status(ctx context.Context, runID sharedtypes.RunID) (*recalcdomain.LogEntry, error) {
	return o.runs.GetRun(ctx, runID)
}

// History lists the most recent runs, newest first.
func (o *Orchestrator) History(ctx context.Context, limit int) ([]recalcdomain.LogEntry, error) {
	return o.runs.ListRuns(ctx, limit)
}

func (o *Orchestrator) releaseLock(runID sharedtypes.RunID) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := o.runs.ReleaseRunLock(ctx, runID); err != nil {
		o.logger.Error("failed to release recalculation lock",
			attr.RunID("run_id", runID),
			attr.Error(err),
		)
	}
}
