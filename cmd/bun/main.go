package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v2"

	leaderboardmigrations "github.com/mmiles2012/golf-league/app/modules/leaderboard/infrastructure/repositories/migrations"
	playermigrations "github.com/mmiles2012/golf-league/app/modules/player/infrastructure/repositories/migrations"
	pointsconfigmigrations "github.com/mmiles2012/golf-league/app/modules/pointsconfig/infrastructure/repositories/migrations"
	recalcmigrations "github.com/mmiles2012/golf-league/app/modules/recalculation/infrastructure/repositories/migrations"
	scoringmigrations "github.com/mmiles2012/golf-league/app/modules/scoring/infrastructure/repositories/migrations"
	"github.com/mmiles2012/golf-league/config"
)

type moduleMigrator struct {
	name     string
	migrator *migrate.Migrator
}

// Ordered so that tables referenced by later modules exist first.
func buildMigrators(db *bun.DB) []moduleMigrator {
	return []moduleMigrator{
		{"player", migrate.NewMigrator(db, playermigrations.Migrations)},
		{"pointsconfig", migrate.NewMigrator(db, pointsconfigmigrations.Migrations)},
		{"scoring", migrate.NewMigrator(db, scoringmigrations.Migrations)},
		{"leaderboard", migrate.NewMigrator(db, leaderboardmigrations.Migrations)},
		{"recalculation", migrate.NewMigrator(db, recalcmigrations.Migrations)},
	}
}

func main() {
	configFile := flag.String("config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	pgdb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.DSN)))
	db := bun.NewDB(pgdb, pgdialect.New())
	defer db.Close()

	migrators := buildMigrators(db)

	cliApp := &cli.App{
		Name:  "bun",
		Usage: "golf-league database migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "module",
				Usage: "restrict to one module (player, pointsconfig, scoring, leaderboard, recalculation)",
			},
		},
		Commands: []*cli.Command{
			migrateCommand(migrators),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// selected filters the ordered migrator list down to the --module flag, or
// returns all of them when the flag is unset.
func selected(c *cli.Context, migrators []moduleMigrator) ([]moduleMigrator, error) {
	want := c.String("module")
	if want == "" {
		return migrators, nil
	}
	for _, m := range migrators {
		if m.name == want {
			return []moduleMigrator{m}, nil
		}
	}
	return nil, fmt.Errorf("unknown module %q", want)
}

func migrateCommand(migrators []moduleMigrator) *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "database migrations",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create migration bookkeeping tables",
				Action: func(c *cli.Context) error {
					ms, err := selected(c, migrators)
					if err != nil {
						return err
					}
					for _, m := range ms {
						if err := m.migrator.Init(c.Context); err != nil {
							return fmt.Errorf("init %s: %w", m.name, err)
						}
						fmt.Printf("%s: migration tables ready\n", m.name)
					}
					return nil
				},
			},
			{
				Name:  "migrate",
				Usage: "apply pending migrations",
				Action: func(c *cli.Context) error {
					ms, err := selected(c, migrators)
					if err != nil {
						return err
					}
					for _, m := range ms {
						group, err := m.migrator.Migrate(c.Context)
						if err != nil {
							return fmt.Errorf("migrate %s: %w", m.name, err)
						}
						if group.IsZero() {
							fmt.Printf("%s: up to date\n", m.name)
							continue
						}
						fmt.Printf("%s: migrated to %s\n", m.name, group)
					}
					return nil
				},
			},
			{
				Name:  "rollback",
				Usage: "roll back the last migration group",
				Action: func(c *cli.Context) error {
					ms, err := selected(c, migrators)
					if err != nil {
						return err
					}
					// Reverse of apply order.
					for i := len(ms) - 1; i >= 0; i-- {
						m := ms[i]
						group, err := m.migrator.Rollback(c.Context)
						if err != nil {
							return fmt.Errorf("rollback %s: %w", m.name, err)
						}
						if group.IsZero() {
							fmt.Printf("%s: nothing to roll back\n", m.name)
							continue
						}
						fmt.Printf("%s: rolled back %s\n", m.name, group)
					}
					return nil
				},
			},
			{
				Name:      "create_go",
				Usage:     "create a Go migration file for one module",
				ArgsUsage: "<module> <name words...>",
				Action: func(c *cli.Context) error {
					moduleName := c.Args().First()
					var target *moduleMigrator
					for i := range migrators {
						if migrators[i].name == moduleName {
							target = &migrators[i]
							break
						}
					}
					if target == nil {
						return fmt.Errorf("unknown module %q", moduleName)
					}

					name := strings.Join(c.Args().Tail(), "_")
					mf, err := target.migrator.CreateGoMigration(c.Context, name)
					if err != nil {
						return err
					}
					fmt.Printf("%s: created %s (%s)\n", moduleName, mf.Name, mf.Path)
					return nil
				},
			},
			{
				Name:  "status",
				Usage: "print migration status per module",
				Action: func(c *cli.Context) error {
					ms, err := selected(c, migrators)
					if err != nil {
						return err
					}
					for _, m := range ms {
						status, err := m.migrator.MigrationsWithStatus(c.Context)
						if err != nil {
							return fmt.Errorf("status %s: %w", m.name, err)
						}
						fmt.Printf("%s:\n  all: %s\n  applied: %s\n  pending: %s\n",
							m.name, status, status.Applied(), status.Unapplied())
					}
					return nil
				},
			},
		},
	}
}
