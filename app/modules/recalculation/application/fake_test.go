package recalcservice

import (
	"context"
	"sync"

	playerdomain "github.com/mmiles2012/golf-league/app/modules/player/domain"
	recalcdomain "github.com/mmiles2012/golf-league/app/modules/recalculation/domain"
	scoringdomain "github.com/mmiles2012/golf-league/app/modules/scoring/domain"
	sharedtypes "github.com/mmiles2012/golf-league/app/shared/types"
)

// fakeRunRepo is an in-memory run log with a real single-flight lock.
type fakeRunRepo struct {
	mu     sync.Mutex
	runs   map[sharedtypes.RunID]*recalcdomain.LogEntry
	locked bool
	holder sharedtypes.RunID

	AcquireFunc func(ctx context.Context, runID sharedtypes.RunID) (bool, error)
	UpdateFunc  func(ctx context.Context, entry *recalcdomain.LogEntry) error
}

func newFakeRunRepo() *fakeRunRepo {
	return &fakeRunRepo{runs: make(map[sharedtypes.RunID]*recalcdomain.LogEntry)}
}

func (f *fakeRunRepo) CreateRun(_ context.Context, entry *recalcdomain.LogEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *entry
	f.runs[entry.RunID] = &stored
	return nil
}

func (f *fakeRunRepo) UpdateRun(ctx context.Context, entry *recalcdomain.LogEntry) error {
	if f.UpdateFunc != nil {
		return f.UpdateFunc(ctx, entry)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.runs[entry.RunID]; !ok {
		return recalcdomain.ErrRunNotFound
	}
	stored := *entry
	f.runs[entry.RunID] = &stored
	return nil
}

func (f *fakeRunRepo) GetRun(_ context.Context, runID sharedtypes.RunID) (*recalcdomain.LogEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry, ok := f.runs[runID]
	if !ok {
		return nil, recalcdomain.ErrRunNotFound
	}
	copied := *entry
	return &copied, nil
}

func (f *fakeRunRepo) DeleteRun(_ context.Context, runID sharedtypes.RunID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.runs, runID)
	return nil
}

func (f *fakeRunRepo) ListRuns(_ context.Context, limit int) ([]recalcdomain.LogEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []recalcdomain.LogEntry
	for _, e := range f.runs {
		out = append(out, *e)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeRunRepo) AcquireRunLock(ctx context.Context, runID sharedtypes.RunID) (bool, error) {
	if f.AcquireFunc != nil {
		return f.AcquireFunc(ctx, runID)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.locked {
		return false, nil
	}
	f.locked = true
	f.holder = runID
	return true, nil
}

func (f *fakeRunRepo) ReleaseRunLock(_ context.Context, runID sharedtypes.RunID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.locked && f.holder == runID {
		f.locked = false
		f.holder = sharedtypes.RunID{}
	}
	return nil
}

// fakeTournamentRepo serves stored tournaments and records ReplaceResults
// calls.
type fakeTournamentRepo struct {
	mu          sync.Mutex
	tournaments []scoringdomain.Tournament
	inputs      map[sharedtypes.TournamentID][]scoringdomain.ScoreInput
	replaced    map[sharedtypes.TournamentID][]scoringdomain.TournamentResult

	ListFunc        func(ctx context.Context, isManual bool) ([]scoringdomain.Tournament, error)
	GetInputsFunc   func(ctx context.Context, id sharedtypes.TournamentID) ([]scoringdomain.ScoreInput, error)
	ReplaceFunc     func(ctx context.Context, id sharedtypes.TournamentID, results []scoringdomain.TournamentResult) error
	CountManualFunc func(ctx context.Context) (int, error)
}

func newFakeTournamentRepo() *fakeTournamentRepo {
	return &fakeTournamentRepo{
		inputs:   make(map[sharedtypes.TournamentID][]scoringdomain.ScoreInput),
		replaced: make(map[sharedtypes.TournamentID][]scoringdomain.TournamentResult),
	}
}

func (f *fakeTournamentRepo) CreateTournamentWithResults(context.Context, scoringdomain.Tournament, []scoringdomain.ScoreInput, []scoringdomain.TournamentResult) error {
	return nil
}

func (f *fakeTournamentRepo) GetTournament(context.Context, sharedtypes.TournamentID) (*scoringdomain.Tournament, error) {
	return nil, nil
}

func (f *fakeTournamentRepo) ListTournaments(ctx context.Context, isManual bool) ([]scoringdomain.Tournament, error) {
	if f.ListFunc != nil {
		return f.ListFunc(ctx, isManual)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []scoringdomain.Tournament
	for _, t := range f.tournaments {
		if t.IsManual == isManual {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTournamentRepo) CountTournaments(ctx context.Context, isManual bool) (int, error) {
	if isManual && f.CountManualFunc != nil {
		return f.CountManualFunc(ctx)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, t := range f.tournaments {
		if t.IsManual == isManual {
			n++
		}
	}
	return n, nil
}

func (f *fakeTournamentRepo) GetScoreInputs(ctx context.Context, id sharedtypes.TournamentID) ([]scoringdomain.ScoreInput, error) {
	if f.GetInputsFunc != nil {
		return f.GetInputsFunc(ctx, id)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inputs[id], nil
}

func (f *fakeTournamentRepo) ReplaceResults(ctx context.Context, id sharedtypes.TournamentID, results []scoringdomain.TournamentResult) error {
	if f.ReplaceFunc != nil {
		return f.ReplaceFunc(ctx, id, results)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replaced[id] = results
	return nil
}

func (f *fakeTournamentRepo) ListAllResults(context.Context) ([]scoringdomain.TournamentResult, error) {
	return nil, nil
}

// fakeTables serves one fixed table for every category.
type fakeTables struct {
	table scoringdomain.PointsTable

	CurrentFunc func(ctx context.Context, category sharedtypes.Category) (scoringdomain.PointsTable, error)
}

func (f *fakeTables) CurrentTable(ctx context.Context, category sharedtypes.Category) (scoringdomain.PointsTable, error) {
	if f.CurrentFunc != nil {
		return f.CurrentFunc(ctx, category)
	}
	return f.table, nil
}

// fakeDirectory resolves every name to a stable ID.
type fakeDirectory struct {
	mu      sync.Mutex
	players map[string]sharedtypes.PlayerID
	nextID  sharedtypes.PlayerID
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{players: make(map[string]sharedtypes.PlayerID), nextID: 1}
}

func (d *fakeDirectory) FindPlayerByName(_ context.Context, name string) (sharedtypes.PlayerID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if id, ok := d.players[name]; ok {
		return id, nil
	}
	return 0, playerdomain.ErrPlayerNotFound
}

func (d *fakeDirectory) CreatePlayer(_ context.Context, name string, _ *float64) (sharedtypes.PlayerID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	id := d.nextID
	d.nextID++
	d.players[name] = id
	return id, nil
}

// fakeRefresher counts snapshot refreshes.
type fakeRefresher struct {
	mu    sync.Mutex
	calls int

	RefreshFunc func(ctx context.Context) error
}

func (f *fakeRefresher) RefreshSnapshots(ctx context.Context) error {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.RefreshFunc != nil {
		return f.RefreshFunc(ctx)
	}
	return nil
}

func (f *fakeRefresher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}
