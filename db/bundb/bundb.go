// Package bundb owns the Postgres connection and hands each module its
// repository over the shared bun.DB.
package bundb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	leaderboarddb "github.com/mmiles2012/golf-league/app/modules/leaderboard/infrastructure/repositories"
	playerdb "github.com/mmiles2012/golf-league/app/modules/player/infrastructure/repositories"
	pointsconfigdb "github.com/mmiles2012/golf-league/app/modules/pointsconfig/infrastructure/repositories"
	recalcdb "github.com/mmiles2012/golf-league/app/modules/recalculation/infrastructure/repositories"
	scoringdb "github.com/mmiles2012/golf-league/app/modules/scoring/infrastructure/repositories"
	"github.com/mmiles2012/golf-league/config"
)

// DBService bundles every module's repository over one connection pool.
type DBService struct {
	ScoringDB      *scoringdb.Impl
	PlayerDB       *playerdb.Impl
	PointsConfigDB *pointsconfigdb.Impl
	LeaderboardDB  *leaderboarddb.Impl
	RecalcDB       *recalcdb.Impl
	db             *bun.DB
}

// GetDB returns the underlying database connection pool.
func (dbService *DBService) GetDB() *bun.DB {
	return dbService.db
}

// NewBunDBService initializes a new DBService with the provided Postgres
// configuration.
func NewBunDBService(ctx context.Context, cfg config.PostgresConfig) (*DBService, error) {
	sqldb, err := pgConn(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := bun.NewDB(sqldb, pgdialect.New())

	return &DBService{
		ScoringDB:      scoringdb.New(db),
		PlayerDB:       playerdb.New(db),
		PointsConfigDB: pointsconfigdb.New(db),
		LeaderboardDB:  leaderboarddb.New(db),
		RecalcDB:       recalcdb.NewRepository(db),
		db:             db,
	}, nil
}

func pgConn(ctx context.Context, dsn string) (*sql.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	if err := sqldb.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return sqldb, nil
}
