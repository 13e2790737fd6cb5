// Package pointsconfigservice exposes read and edit operations over the
// versioned points tables. Edits publish a pointsconfig.updated event, which
// is what ultimately drives recalculation.
package pointsconfigservice

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/mmiles2012/golf-league/app/eventbus"
	pointsconfigevents "github.com/mmiles2012/golf-league/app/modules/pointsconfig/events"
	pointsconfigdb "github.com/mmiles2012/golf-league/app/modules/pointsconfig/infrastructure/repositories"
	scoringdomain "github.com/mmiles2012/golf-league/app/modules/scoring/domain"
	sharedtypes "github.com/mmiles2012/golf-league/app/shared/types"
	"github.com/mmiles2012/golf-league/internal/observability/attr"
)

// Service reads and edits points tables.
type Service struct {
	repo     pointsconfigdb.Repository
	eventBus eventbus.EventBus
	logger   *slog.Logger
}

func NewService(repo pointsconfigdb.Repository, eventBus eventbus.EventBus, logger *slog.Logger) *Service {
	return &Service{repo: repo, eventBus: eventBus, logger: logger}
}

// CurrentTable satisfies the scoring module's PointsTableSource.
func (s *Service) CurrentTable(ctx context.Context, category sharedtypes.Category) (scoringdomain.PointsTable, error) {
	return s.repo.GetTable(ctx, category)
}

// ListTables returns every category's current table.
func (s *Service) ListTables(ctx context.Context) ([]scoringdomain.PointsTable, error) {
	return s.repo.ListTables(ctx)
}

// UpdateTable replaces a category's table and announces the new version.
func (s *Service) UpdateTable(ctx context.Context, category sharedtypes.Category, values []float64) (scoringdomain.PointsTable, error) {
	if !category.Valid() {
		return scoringdomain.PointsTable{}, fmt.Errorf("unknown category %q", category)
	}
	if len(values) == 0 {
		return scoringdomain.PointsTable{}, fmt.Errorf("points table for %q must have at least one position", category)
	}
	for i, v := range values {
		if v < 0 {
			return scoringdomain.PointsTable{}, fmt.Errorf("points table for %q: negative value at position %d", category, i+1)
		}
	}

	table, err := s.repo.UpsertTable(ctx, category, values)
	if err != nil {
		return scoringdomain.PointsTable{}, err
	}

	s.logger.InfoContext(ctx, "Points table updated",
		attr.String("category", string(category)),
		attr.Int64("version", table.Version),
		attr.Int("positions", len(values)),
	)

	s.publishUpdated(ctx, table)
	return table, nil
}

func (s *Service) publishUpdated(ctx context.Context, table scoringdomain.PointsTable) {
	if s.eventBus == nil {
		return
	}
	payload, err := json.Marshal(pointsconfigevents.PointsConfigUpdatedPayload{
		Category:  table.Category,
		Version:   table.Version,
		UpdatedAt: table.UpdatedAt,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to marshal points config payload", attr.Error(err))
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := s.eventBus.Publish(ctx, pointsconfigevents.SubjectPointsConfigUpdated, msg); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish points config updated event",
			attr.String("category", string(table.Category)),
			attr.Error(err),
		)
	}
}
