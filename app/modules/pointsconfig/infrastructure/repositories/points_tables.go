// Package pointsconfigdb persists the versioned per-category points tables.
package pointsconfigdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	scoringdomain "github.com/mmiles2012/golf-league/app/modules/scoring/domain"
	sharedtypes "github.com/mmiles2012/golf-league/app/shared/types"
)

// ErrTableNotFound is returned when no points table exists for a category.
var ErrTableNotFound = errors.New("points table not found")

// PointsTable is the persisted table row. Every edit bumps version and
// updated_at; updated_at is the recalculation trigger source.
type PointsTable struct {
	bun.BaseModel `bun:"table:points_tables,alias:pt"`

	Category  string    `bun:"category,pk"`
	Version   int64     `bun:"version,notnull,default:1"`
	Values    []float64 `bun:"values,type:jsonb,notnull"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

func (m *PointsTable) toDomain() scoringdomain.PointsTable {
	return scoringdomain.PointsTable{
		Category:  sharedtypes.Category(m.Category),
		Version:   m.Version,
		Values:    m.Values,
		UpdatedAt: m.UpdatedAt,
	}
}

// Repository reads and edits points tables.
type Repository interface {
	GetTable(ctx context.Context, category sharedtypes.Category) (scoringdomain.PointsTable, error)
	ListTables(ctx context.Context) ([]scoringdomain.PointsTable, error)
	// UpsertTable replaces a category's values, bumping the version, and
	// returns the stored table.
	UpsertTable(ctx context.Context, category sharedtypes.Category, values []float64) (scoringdomain.PointsTable, error)
}

// Impl implements Repository using bun.
type Impl struct {
	DB *bun.DB
}

var _ Repository = (*Impl)(nil)

func New(db *bun.DB) *Impl {
	return &Impl{DB: db}
}

func (r *Impl) GetTable(ctx context.Context, category sharedtypes.Category) (scoringdomain.PointsTable, error) {
	model := new(PointsTable)
	err := r.DB.NewSelect().
		Model(model).
		Where("category = ?", string(category)).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return scoringdomain.PointsTable{}, fmt.Errorf("category %q: %w", category, ErrTableNotFound)
		}
		return scoringdomain.PointsTable{}, fmt.Errorf("pointsconfigdb.GetTable: %w", err)
	}
	return model.toDomain(), nil
}

func (r *Impl) ListTables(ctx context.Context) ([]scoringdomain.PointsTable, error) {
	var models []PointsTable
	err := r.DB.NewSelect().
		Model(&models).
		Order("category ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("pointsconfigdb.ListTables: %w", err)
	}
	tables := make([]scoringdomain.PointsTable, 0, len(models))
	for i := range models {
		tables = append(tables, models[i].toDomain())
	}
	return tables, nil
}

func (r *Impl) UpsertTable(ctx context.Context, category sharedtypes.Category, values []float64) (scoringdomain.PointsTable, error) {
	model := &PointsTable{
		Category:  string(category),
		Version:   1,
		Values:    values,
		UpdatedAt: time.Now().UTC(),
	}
	_, err := r.DB.NewInsert().
		Model(model).
		On("CONFLICT (category) DO UPDATE").
		Set("values = EXCLUDED.values").
		Set("version = pt.version + 1").
		Set("updated_at = EXCLUDED.updated_at").
		Returning("*").
		Exec(ctx)
	if err != nil {
		return scoringdomain.PointsTable{}, fmt.Errorf("pointsconfigdb.UpsertTable: %w", err)
	}
	return model.toDomain(), nil
}
