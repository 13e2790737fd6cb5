package scoringservice

import (
	"context"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"

	playerdomain "github.com/mmiles2012/golf-league/app/modules/player/domain"
	scoringdomain "github.com/mmiles2012/golf-league/app/modules/scoring/domain"
	scoringdb "github.com/mmiles2012/golf-league/app/modules/scoring/infrastructure/repositories"
	sharedtypes "github.com/mmiles2012/golf-league/app/shared/types"
)

// fakeRepo is a programmable in-memory scoringdb.Repository.
type fakeRepo struct {
	mu          sync.Mutex
	tournaments map[sharedtypes.TournamentID]*scoringdomain.Tournament
	inputs      map[sharedtypes.TournamentID][]scoringdomain.ScoreInput
	results     map[sharedtypes.TournamentID][]scoringdomain.TournamentResult

	CreateFunc func(ctx context.Context, t scoringdomain.Tournament, inputs []scoringdomain.ScoreInput, results []scoringdomain.TournamentResult) error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		tournaments: make(map[sharedtypes.TournamentID]*scoringdomain.Tournament),
		inputs:      make(map[sharedtypes.TournamentID][]scoringdomain.ScoreInput),
		results:     make(map[sharedtypes.TournamentID][]scoringdomain.TournamentResult),
	}
}

func (f *fakeRepo) CreateTournamentWithResults(ctx context.Context, t scoringdomain.Tournament, inputs []scoringdomain.ScoreInput, results []scoringdomain.TournamentResult) error {
	if f.CreateFunc != nil {
		if err := f.CreateFunc(ctx, t, inputs, results); err != nil {
			return err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := t
	f.tournaments[t.ID] = &stored
	f.inputs[t.ID] = inputs
	f.results[t.ID] = results
	return nil
}

func (f *fakeRepo) GetTournament(_ context.Context, id sharedtypes.TournamentID) (*scoringdomain.Tournament, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tournaments[id]
	if !ok {
		return nil, scoringdb.ErrTournamentNotFound
	}
	copied := *t
	return &copied, nil
}

func (f *fakeRepo) ListTournaments(_ context.Context, isManual bool) ([]scoringdomain.Tournament, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []scoringdomain.Tournament
	for _, t := range f.tournaments {
		if t.IsManual == isManual {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeRepo) CountTournaments(_ context.Context, isManual bool) (int, error) {
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

func (f *fakeRepo) GetScoreInputs(_ context.Context, id sharedtypes.TournamentID) ([]scoringdomain.ScoreInput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inputs[id], nil
}

func (f *fakeRepo) ReplaceResults(_ context.Context, id sharedtypes.TournamentID, results []scoringdomain.TournamentResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results[id] = results
	return nil
}

func (f *fakeRepo) ListAllResults(_ context.Context) ([]scoringdomain.TournamentResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []scoringdomain.TournamentResult
	for _, rs := range f.results {
		out = append(out, rs...)
	}
	return out, nil
}

// fakeDirectory is an in-memory player directory that assigns sequential IDs.
type fakeDirectory struct {
	mu      sync.Mutex
	players map[string]sharedtypes.PlayerID
	nextID  sharedtypes.PlayerID

	FindFunc   func(ctx context.Context, name string) (sharedtypes.PlayerID, error)
	CreateFunc func(ctx context.Context, name string, defaultHandicap *float64) (sharedtypes.PlayerID, error)
}

func newFakeDirectory(known ...string) *fakeDirectory {
	d := &fakeDirectory{players: make(map[string]sharedtypes.PlayerID), nextID: 1}
	for _, name := range known {
		d.players[name] = d.nextID
		d.nextID++
	}
	return d
}

func (d *fakeDirectory) FindPlayerByName(ctx context.Context, name string) (sharedtypes.PlayerID, error) {
	if d.FindFunc != nil {
		return d.FindFunc(ctx, name)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if id, ok := d.players[name]; ok {
		return id, nil
	}
	return 0, playerdomain.ErrPlayerNotFound
}

func (d *fakeDirectory) CreatePlayer(ctx context.Context, name string, defaultHandicap *float64) (sharedtypes.PlayerID, error) {
	if d.CreateFunc != nil {
		return d.CreateFunc(ctx, name, defaultHandicap)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	id := d.nextID
	d.nextID++
	d.players[name] = id
	return id, nil
}

// fakeTableSource serves a fixed table per category.
type fakeTableSource struct {
	tables map[sharedtypes.Category]scoringdomain.PointsTable

	CurrentFunc func(ctx context.Context, category sharedtypes.Category) (scoringdomain.PointsTable, error)
}

func (f *fakeTableSource) CurrentTable(ctx context.Context, category sharedtypes.Category) (scoringdomain.PointsTable, error) {
	if f.CurrentFunc != nil {
		return f.CurrentFunc(ctx, category)
	}
	return f.tables[category], nil
}

// fakeEventBus records published messages.
type fakeEventBus struct {
	mu        sync.Mutex
	published map[string][]*message.Message

	PublishFunc func(ctx context.Context, subject string, msg *message.Message) error
}

func newFakeEventBus() *fakeEventBus {
	return &fakeEventBus{published: make(map[string][]*message.Message)}
}

func (f *fakeEventBus) Publish(ctx context.Context, subject string, msg *message.Message) error {
	if f.PublishFunc != nil {
		return f.PublishFunc(ctx, subject, msg)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published[subject] = append(f.published[subject], msg)
	return nil
}

func (f *fakeEventBus) Subscribe(context.Context, string, func(context.Context, *message.Message) error) error {
	return nil
}

func (f *fakeEventBus) Close() error { return nil }
