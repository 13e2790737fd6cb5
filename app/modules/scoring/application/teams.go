package scoringservice

import (
	"fmt"
	"strings"

	scoringdomain "github.com/mmiles2012/golf-league/app/modules/scoring/domain"
)

// TeamSeparator splits the candidate names of a multi-player entry.
const TeamSeparator = "/"

// teamCandidates returns the trimmed, non-empty tokens of a team label, or
// nil when the label is not a team entry.
func teamCandidates(label string) []string {
	if !strings.Contains(label, TeamSeparator) {
		return nil
	}
	parts := strings.Split(label, TeamSeparator)
	candidates := make([]string, 0, len(parts))
	for _, p := range parts {
		if name := strings.TrimSpace(p); name != "" {
			candidates = append(candidates, name)
		}
	}
	if len(candidates) < 2 {
		return nil
	}
	return candidates
}

// DetectTeamEntries finds rows whose player name is a multi-player label.
// The caller collects a human decision per entry out-of-band and then calls
// ApplyTeamResolution; there is no in-process wait.
func DetectTeamEntries(scores []scoringdomain.ResolvedScore) []scoringdomain.TeamEntry {
	var teams []scoringdomain.TeamEntry
	seen := make(map[string]bool)
	for _, s := range scores {
		if seen[s.PlayerName] {
			continue
		}
		if candidates := teamCandidates(s.PlayerName); candidates != nil {
			teams = append(teams, scoringdomain.TeamEntry{
				OriginalLabel:  s.PlayerName,
				CandidateNames: candidates,
			})
			seen[s.PlayerName] = true
		}
	}
	return teams
}

// ApplyTeamResolutionToInputs is the input-level twin of
// ApplyTeamResolution, used at commit time so the persisted score-input
// snapshot is already team-free and recalculation can replay it directly.
func ApplyTeamResolutionToInputs(inputs []scoringdomain.ScoreInput, resolution scoringdomain.TeamResolution) ([]scoringdomain.ScoreInput, error) {
	out := make([]scoringdomain.ScoreInput, 0, len(inputs))
	for _, in := range inputs {
		candidates := teamCandidates(in.PlayerName)
		if candidates == nil {
			out = append(out, in)
			continue
		}

		choice, ok := resolution[in.PlayerName]
		if !ok {
			return nil, fmt.Errorf("%q: %w", in.PlayerName, scoringdomain.ErrUnresolvedTeamEntry)
		}

		if choice == scoringdomain.ResolutionBoth {
			for _, name := range candidates {
				expanded := in
				expanded.PlayerName = name
				out = append(out, expanded)
			}
			continue
		}

		valid := false
		for _, name := range candidates {
			if name == choice {
				valid = true
				break
			}
		}
		if !valid {
			return nil, fmt.Errorf("team %q: choice %q is not a candidate", in.PlayerName, choice)
		}
		collapsed := in
		collapsed.PlayerName = choice
		out = append(out, collapsed)
	}
	return out, nil
}

// ApplyTeamResolution replaces team entries per the caller's decisions.
// Resolution "both" expands the entry into one row per candidate, each
// inheriting the team's position, scores, and handicap unchanged. A single
// candidate name collapses the entry onto that player. Every detected team
// must be resolved; otherwise ErrUnresolvedTeamEntry is returned and the
// input is left untouched.
func ApplyTeamResolution(scores []scoringdomain.ResolvedScore, resolution scoringdomain.TeamResolution) ([]scoringdomain.ResolvedScore, error) {
	out := make([]scoringdomain.ResolvedScore, 0, len(scores))
	for _, s := range scores {
		candidates := teamCandidates(s.PlayerName)
		if candidates == nil {
			out = append(out, s)
			continue
		}

		choice, ok := resolution[s.PlayerName]
		if !ok {
			return nil, fmt.Errorf("%q: %w", s.PlayerName, scoringdomain.ErrUnresolvedTeamEntry)
		}

		if choice == scoringdomain.ResolutionBoth {
			for _, name := range candidates {
				expanded := s
				expanded.PlayerName = name
				out = append(out, expanded)
			}
			continue
		}

		valid := false
		for _, name := range candidates {
			if name == choice {
				valid = true
				break
			}
		}
		if !valid {
			return nil, fmt.Errorf("team %q: choice %q is not a candidate", s.PlayerName, choice)
		}
		collapsed := s
		collapsed.PlayerName = choice
		out = append(out, collapsed)
	}
	return out, nil
}
