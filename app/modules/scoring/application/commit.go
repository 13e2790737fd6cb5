package scoringservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	scoringdomain "github.com/mmiles2012/golf-league/app/modules/scoring/domain"
	scoringevents "github.com/mmiles2012/golf-league/app/modules/scoring/events"
	scoringdb "github.com/mmiles2012/golf-league/app/modules/scoring/infrastructure/repositories"
	sharedtypes "github.com/mmiles2012/golf-league/app/shared/types"
	"github.com/mmiles2012/golf-league/internal/observability/attr"
)

// CommitTournament finalizes and persists one tournament: resolves the
// committed inputs, applies team decisions, ranks, stamps players, and writes
// everything in a single transaction. The tournament ID is the idempotency
// key; a retry with an ID that already exists returns the stored tournament
// without touching it.
func (s *ScoringService) CommitTournament(ctx context.Context, req CommitRequest) (scoringdomain.Tournament, error) {
	s.logger.InfoContext(ctx, "Committing tournament",
		attr.ExtractCorrelationID(ctx),
		attr.String("name", req.Name),
		attr.String("category", string(req.Category)),
		attr.Bool("is_manual", req.IsManual),
		attr.Int("num_scores", len(req.Scores)),
	)

	return withTelemetry(ctx, s, "CommitTournament", func(ctx context.Context) (scoringdomain.Tournament, error) {
		id := req.ID
		if id == (sharedtypes.TournamentID{}) {
			id = sharedtypes.NewTournamentID()
		} else {
			existing, err := s.repo.GetTournament(ctx, id)
			if err != nil && !errors.Is(err, scoringdb.ErrTournamentNotFound) {
				return scoringdomain.Tournament{}, err
			}
			if existing != nil {
				s.logger.InfoContext(ctx, "Tournament already committed, returning existing",
					attr.TournamentID("tournament_id", id))
				return *existing, nil
			}
		}

		date, err := ParseTournamentDate(req.Date, time.Now())
		if err != nil {
			return scoringdomain.Tournament{}, err
		}
		if !req.Category.Valid() {
			return scoringdomain.Tournament{}, fmt.Errorf("unknown category %q", req.Category)
		}

		// Team decisions are applied to the inputs before anything else so
		// the persisted snapshot is team-free and recalculation can replay
		// it as-is.
		inputs, err := ApplyTeamResolutionToInputs(req.Scores, req.TeamResolution)
		if err != nil {
			return scoringdomain.Tournament{}, err
		}

		resolved, resolveErrs := ResolveScores(inputs, req.Mode)
		if len(resolveErrs) > 0 {
			// Commits are all-or-nothing: previews surface row problems, a
			// commit with unresolved rows is refused outright.
			return scoringdomain.Tournament{}, fmt.Errorf("%d rows failed to resolve: %w", len(resolveErrs), resolveErrs[0])
		}

		spec := BuildSpec{
			TournamentID: id,
			Category:     req.Category,
			ScoringType:  req.ScoringType,
			IsManual:     req.IsManual,
		}
		if !req.IsManual {
			table, err := s.tables.CurrentTable(ctx, req.Category)
			if err != nil {
				return scoringdomain.Tournament{}, err
			}
			spec.Table = table
		}

		results, err := BuildResults(ctx, s.directory, resolved, spec)
		if err != nil {
			return scoringdomain.Tournament{}, err
		}

		tournament := scoringdomain.Tournament{
			ID:          id,
			Name:        req.Name,
			Date:        date,
			Category:    req.Category,
			ScoringMode: req.Mode,
			ScoringType: req.ScoringType,
			IsManual:    req.IsManual,
		}
		if err := s.repo.CreateTournamentWithResults(ctx, tournament, inputs, results); err != nil {
			return scoringdomain.Tournament{}, err
		}

		s.publishFinalized(ctx, tournament, len(results))
		return tournament, nil
	})
}

// publishFinalized announces the commit. Publish failures are logged, not
// surfaced: the tournament is already durably persisted.
func (s *ScoringService) publishFinalized(ctx context.Context, t scoringdomain.Tournament, playerCount int) {
	if s.eventBus == nil {
		return
	}
	payload, err := json.Marshal(scoringevents.TournamentFinalizedPayload{
		TournamentID: t.ID,
		Name:         t.Name,
		Category:     t.Category,
		IsManual:     t.IsManual,
		PlayerCount:  playerCount,
		FinalizedAt:  time.Now().UTC(),
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to marshal finalized payload", attr.Error(err))
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := s.eventBus.Publish(ctx, scoringevents.SubjectTournamentFinalized, msg); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish tournament finalized event",
			attr.TournamentID("tournament_id", t.ID),
			attr.Error(err),
		)
	}
}
