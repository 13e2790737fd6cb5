// Package recalcsubscribers bridges points-table update events into
// recalculation triggers.
package recalcsubscribers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"golang.org/x/time/rate"

	pointsconfigevents "github.com/mmiles2012/golf-league/app/modules/pointsconfig/events"
	recalcdomain "github.com/mmiles2012/golf-league/app/modules/recalculation/domain"
	sharedtypes "github.com/mmiles2012/golf-league/app/shared/types"
	"github.com/mmiles2012/golf-league/internal/observability/attr"
)

// Trigger is satisfied by the recalculation queue service.
type Trigger interface {
	Trigger(ctx context.Context, reason string) (sharedtypes.RunID, error)
}

// EventBus is the subset of the bus the subscriber needs.
type EventBus interface {
	Subscribe(ctx context.Context, subject string, handler func(ctx context.Context, msg *message.Message) error) error
}

// Subscriber listens for points-table updates and kicks off recalculation.
// A burst of table edits collapses into at most one trigger per limiter
// window; when a run is already active the event is acknowledged and the
// next table edit re-triggers.
type Subscriber struct {
	trigger Trigger
	limiter *rate.Limiter
	logger  *slog.Logger
}

func NewSubscriber(trigger Trigger, limiter *rate.Limiter, logger *slog.Logger) *Subscriber {
	return &Subscriber{
		trigger: trigger,
		limiter: limiter,
		logger:  logger,
	}
}

// Register wires the handler onto the bus.
func (s *Subscriber) Register(ctx context.Context, bus EventBus) error {
	if err := bus.Subscribe(ctx, pointsconfigevents.SubjectPointsConfigUpdated, s.handlePointsConfigUpdated); err != nil {
		return fmt.Errorf("recalcsubscribers.Register: %w", err)
	}
	return nil
}

func (s *Subscriber) handlePointsConfigUpdated(ctx context.Context, msg *message.Message) error {
	var payload pointsconfigevents.PointsConfigUpdatedPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		// Unparseable payloads are dropped, not redelivered forever.
		s.logger.ErrorContext(ctx, "invalid points config update payload", attr.Error(err))
		return nil
	}

	if !s.limiter.Allow() {
		s.logger.InfoContext(ctx, "points config update debounced",
			attr.String("category", string(payload.Category)),
			attr.Int64("version", payload.Version),
		)
		return nil
	}

	reason := fmt.Sprintf("points table updated: %s v%d", payload.Category, payload.Version)
	runID, err := s.trigger.Trigger(ctx, reason)
	if err != nil {
		if errors.Is(err, recalcdomain.ErrRunConflict) {
			s.logger.InfoContext(ctx, "recalculation already in progress, skipping trigger",
				attr.String("category", string(payload.Category)),
			)
			return nil
		}
		return fmt.Errorf("trigger recalculation: %w", err)
	}

	s.logger.InfoContext(ctx, "recalculation triggered by points config update",
		attr.RunID("run_id", runID),
		attr.String("category", string(payload.Category)),
		attr.Int64("version", payload.Version),
	)
	return nil
}
