package scoringservice

import (
	"strconv"
	"strings"

	scoringdomain "github.com/mmiles2012/golf-league/app/modules/scoring/domain"
	sharedtypes "github.com/mmiles2012/golf-league/app/shared/types"
)

// RawRow is one uploaded row as the ingestion layer hands it over: original
// header names mapped to cell text, no column order or naming guaranteed.
type RawRow map[string]string

// fieldAliases is the ordered list of accepted header names for one logical
// field. Matching is case-insensitive and ignores spaces, underscores, and
// hyphens, the same way the spreadsheet parsers match columns.
type fieldAliases []string

var (
	playerAliases   = fieldAliases{"player", "player name", "name", "golfer"}
	positionAliases = fieldAliases{"position", "pos", "place", "finish"}
	handicapAliases = fieldAliases{"handicap", "course handicap", "hcp", "hdcp", "index"}
	totalAliases    = fieldAliases{"total", "raw total", "score", "strokes"}
	grossAliases    = fieldAliases{"gross", "gross score", "gross total"}
	netAliases      = fieldAliases{"net", "net score", "net total"}
	pointsAliases   = fieldAliases{"points", "pts"}
)

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.ReplaceAll(h, " ", "")
	h = strings.ReplaceAll(h, "_", "")
	return strings.ReplaceAll(h, "-", "")
}

// lookup returns the first non-blank value whose header matches an alias,
// walking aliases in priority order.
func (a fieldAliases) lookup(row RawRow) (string, bool) {
	for _, alias := range a {
		want := normalizeHeader(alias)
		for header, value := range row {
			if normalizeHeader(header) != want {
				continue
			}
			if v := strings.TrimSpace(value); v != "" {
				return v, true
			}
		}
	}
	return "", false
}

// NormalizeRow turns one raw row into a canonical ScoreInput. ordinal is the
// row's 1-based ingestion order, used as the position fallback. Failures are
// returned, never panicked, so the caller can keep processing the batch.
func NormalizeRow(row RawRow, ordinal int, mode sharedtypes.ScoringMode) (scoringdomain.ScoreInput, *scoringdomain.FieldError) {
	var input scoringdomain.ScoreInput

	name, ok := playerAliases.lookup(row)
	if !ok {
		return input, scoringdomain.MissingField(ordinal, "player")
	}
	input.PlayerName = name

	if raw, ok := positionAliases.lookup(row); ok {
		pos, err := strconv.Atoi(raw)
		if err != nil || pos < 1 {
			return input, scoringdomain.InvalidValue(ordinal, "position", raw)
		}
		input.Position = pos
	} else {
		input.Position = ordinal
	}

	if raw, ok := handicapAliases.lookup(row); ok {
		// A leading "+" marks a handicap that adds to gross rather than
		// subtracting. Strip it for the parse but keep the marker.
		value := raw
		if strings.HasPrefix(value, "+") {
			input.HandicapPlus = true
			value = strings.TrimPrefix(value, "+")
		}
		h, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return input, scoringdomain.InvalidValue(ordinal, "handicap", raw)
		}
		input.Handicap = &h
	}

	if mode == sharedtypes.ModePreScored {
		if raw, ok := grossAliases.lookup(row); ok {
			g, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return input, scoringdomain.InvalidValue(ordinal, "gross", raw)
			}
			input.Gross = &g
		}
		if raw, ok := netAliases.lookup(row); ok {
			n, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return input, scoringdomain.InvalidValue(ordinal, "net", raw)
			}
			input.Net = &n
		}
	} else {
		if raw, ok := totalAliases.lookup(row); ok {
			t, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return input, scoringdomain.InvalidValue(ordinal, "total", raw)
			}
			input.RawTotal = &t
		}
	}

	if raw, ok := pointsAliases.lookup(row); ok {
		p, err := strconv.ParseFloat(raw, 64)
		if err != nil || p < 0 {
			return input, scoringdomain.InvalidValue(ordinal, "points", raw)
		}
		input.ManualPoints = &p
	}

	return input, nil
}

// NormalizeRows normalizes a whole batch, collecting row errors instead of
// stopping at the first one. Rows that fail are omitted from the output.
func NormalizeRows(rows []RawRow, mode sharedtypes.ScoringMode) ([]scoringdomain.ScoreInput, []*scoringdomain.FieldError) {
	inputs := make([]scoringdomain.ScoreInput, 0, len(rows))
	var rowErrs []*scoringdomain.FieldError
	for i, row := range rows {
		input, ferr := NormalizeRow(row, i+1, mode)
		if ferr != nil {
			rowErrs = append(rowErrs, ferr)
			continue
		}
		inputs = append(inputs, input)
	}
	return inputs, rowErrs
}
