package scoringservice

import (
	"context"

	scoringdomain "github.com/mmiles2012/golf-league/app/modules/scoring/domain"
	"github.com/mmiles2012/golf-league/internal/observability/attr"
)

// PreviewTournament runs the full normalize → resolve → rank pipeline on
// caller-supplied rows without persisting anything. Row-level problems are
// collected into the summary rather than aborting the batch, so the UI can
// show partial results with inline diagnostics. When team entries are
// detected and the request carries no resolution for them, the preview
// returns the pending entries and withholds results; the caller collects a
// decision and calls again.
func (s *ScoringService) PreviewTournament(ctx context.Context, req PreviewRequest) (PreviewResult, error) {
	s.logger.InfoContext(ctx, "Previewing tournament",
		attr.ExtractCorrelationID(ctx),
		attr.Int("num_rows", len(req.Rows)),
		attr.String("category", string(req.Category)),
		attr.String("scoring_mode", string(req.Mode)),
	)

	return withTelemetry(ctx, s, "PreviewTournament", func(ctx context.Context) (PreviewResult, error) {
		result := PreviewResult{Summary: PreviewSummary{RowCount: len(req.Rows)}}

		inputs, rowErrs := NormalizeRows(req.Rows, req.Mode)
		result.Summary.RowErrors = rowErrs

		resolved, scoreErrs := ResolveScores(inputs, req.Mode)
		for _, err := range scoreErrs {
			result.Summary.ScoreErrors = append(result.Summary.ScoreErrors, err.Error())
		}

		pending := pendingTeams(resolved, req.TeamResolution)
		if len(pending) > 0 {
			result.Summary.PendingTeams = pending
			return result, nil
		}

		resolved, err := ApplyTeamResolution(resolved, req.TeamResolution)
		if err != nil {
			return result, err
		}

		spec := BuildSpec{
			Category:    req.Category,
			ScoringType: req.ScoringType,
			IsManual:    req.IsManual,
		}
		deduped := dedupeByPlayer(resolved)
		if req.IsManual {
			results, err := buildManualResults(deduped, spec)
			if err != nil {
				return result, err
			}
			result.Results = results
		} else {
			table, err := s.tables.CurrentTable(ctx, req.Category)
			if err != nil {
				return result, err
			}
			spec.Table = table
			result.Results = buildCalculatedResults(deduped, spec)
		}
		result.Summary.PlayerCount = len(result.Results)
		return result, nil
	})
}

// pendingTeams returns the detected team entries the resolution does not
// cover.
func pendingTeams(scores []scoringdomain.ResolvedScore, resolution scoringdomain.TeamResolution) []scoringdomain.TeamEntry {
	var pending []scoringdomain.TeamEntry
	for _, team := range DetectTeamEntries(scores) {
		if _, ok := resolution[team.OriginalLabel]; !ok {
			pending = append(pending, team)
		}
	}
	return pending
}
