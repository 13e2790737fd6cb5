package scoringdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	scoringdomain "github.com/mmiles2012/golf-league/app/modules/scoring/domain"
	sharedtypes "github.com/mmiles2012/golf-league/app/shared/types"
)

// Impl implements Repository using bun.
type Impl struct {
	DB *bun.DB
}

var _ Repository = (*Impl)(nil)

func New(db *bun.DB) *Impl {
	return &Impl{DB: db}
}

func (r *Impl) CreateTournamentWithResults(ctx context.Context, t scoringdomain.Tournament, inputs []scoringdomain.ScoreInput, results []scoringdomain.TournamentResult) error {
	return r.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(tournamentModel(t, inputs)).Exec(ctx); err != nil {
			return fmt.Errorf("scoringdb.CreateTournamentWithResults: insert tournament: %w", err)
		}
		if len(results) == 0 {
			return nil
		}
		rows := make([]*TournamentResult, 0, len(results))
		for _, res := range results {
			rows = append(rows, resultModel(res))
		}
		if _, err := tx.NewInsert().Model(&rows).Exec(ctx); err != nil {
			return fmt.Errorf("scoringdb.CreateTournamentWithResults: insert results: %w", err)
		}
		return nil
	})
}

func (r *Impl) GetTournament(ctx context.Context, id sharedtypes.TournamentID) (*scoringdomain.Tournament, error) {
	model := new(Tournament)
	err := r.DB.NewSelect().
		Model(model).
		Where("id = ?", uuid.UUID(id)).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("scoringdb.GetTournament: %w", err)
	}
	t := model.toDomain()
	return &t, nil
}

func (r *Impl) ListTournaments(ctx context.Context, isManual bool) ([]scoringdomain.Tournament, error) {
	var models []Tournament
	err := r.DB.NewSelect().
		Model(&models).
		Where("is_manual = ?", isManual).
		Order("date ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("scoringdb.ListTournaments: %w", err)
	}
	tournaments := make([]scoringdomain.Tournament, 0, len(models))
	for i := range models {
		tournaments = append(tournaments, models[i].toDomain())
	}
	return tournaments, nil
}

func (r *Impl) CountTournaments(ctx context.Context, isManual bool) (int, error) {
	count, err := r.DB.NewSelect().
		Model((*Tournament)(nil)).
		Where("is_manual = ?", isManual).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("scoringdb.CountTournaments: %w", err)
	}
	return count, nil
}

func (r *Impl) GetScoreInputs(ctx context.Context, id sharedtypes.TournamentID) ([]scoringdomain.ScoreInput, error) {
	model := new(Tournament)
	err := r.DB.NewSelect().
		Model(model).
		Column("score_inputs").
		Where("id = ?", uuid.UUID(id)).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("scoringdb.GetScoreInputs: %w", err)
	}
	return model.ScoreInputs, nil
}

func (r *Impl) ReplaceResults(ctx context.Context, id sharedtypes.TournamentID, results []scoringdomain.TournamentResult) error {
	return r.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*TournamentResult)(nil)).
			Where("tournament_id = ?", uuid.UUID(id)).
			Exec(ctx); err != nil {
			return fmt.Errorf("scoringdb.ReplaceResults: delete: %w", err)
		}
		if len(results) == 0 {
			return nil
		}
		rows := make([]*TournamentResult, 0, len(results))
		for _, res := range results {
			rows = append(rows, resultModel(res))
		}
		if _, err := tx.NewInsert().Model(&rows).Exec(ctx); err != nil {
			return fmt.Errorf("scoringdb.ReplaceResults: insert: %w", err)
		}
		return nil
	})
}

func (r *Impl) ListAllResults(ctx context.Context) ([]scoringdomain.TournamentResult, error) {
	var models []TournamentResult
	err := r.DB.NewSelect().
		Model(&models).
		Order("tournament_id ASC", "position ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("scoringdb.ListAllResults: %w", err)
	}
	results := make([]scoringdomain.TournamentResult, 0, len(models))
	for i := range models {
		results = append(results, models[i].toDomain())
	}
	return results, nil
}
