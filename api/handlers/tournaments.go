package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	scoringservice "github.com/mmiles2012/golf-league/app/modules/scoring/application"
	scoringdomain "github.com/mmiles2012/golf-league/app/modules/scoring/domain"
	"github.com/mmiles2012/golf-league/app/modules/scoring/infrastructure/parsers"
	sharedtypes "github.com/mmiles2012/golf-league/app/shared/types"
	"github.com/mmiles2012/golf-league/internal/observability/attr"
)

// 10 MiB is generous for a result sheet.
const maxUploadBytes = 10 << 20

// tournamentForm is the multipart form both preview and commit accept. The
// results file travels in the "file" part; everything else is form values.
type tournamentForm struct {
	ID             string
	Name           string
	Date           string
	Category       sharedtypes.Category
	Mode           sharedtypes.ScoringMode
	ScoringType    sharedtypes.ScoringType
	IsManual       bool
	TeamResolution scoringdomain.TeamResolution
	Rows           []scoringservice.RawRow
}

func (h *Handlers) parseTournamentForm(r *http.Request) (*tournamentForm, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, fmt.Errorf("parse multipart form: %w", err)
	}

	form := &tournamentForm{
		ID:          r.FormValue("id"),
		Name:        r.FormValue("name"),
		Date:        r.FormValue("date"),
		Category:    sharedtypes.Category(strings.ToLower(r.FormValue("category"))),
		Mode:        sharedtypes.ScoringMode(strings.ToLower(r.FormValue("mode"))),
		ScoringType: sharedtypes.ScoringType(strings.ToLower(r.FormValue("scoring_type"))),
		IsManual:    r.FormValue("is_manual") == "true",
	}
	if form.Mode == "" {
		form.Mode = sharedtypes.ModeStroke
	}
	if form.ScoringType == "" {
		form.ScoringType = sharedtypes.ScoringBoth
	}
	if !form.Category.Valid() {
		return nil, fmt.Errorf("unknown category %q", form.Category)
	}
	if !form.Mode.Valid() {
		return nil, fmt.Errorf("unknown scoring mode %q", form.Mode)
	}

	if raw := r.FormValue("team_resolution"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &form.TeamResolution); err != nil {
			return nil, fmt.Errorf("parse team resolution: %w", err)
		}
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("missing results file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		return nil, fmt.Errorf("read results file: %w", err)
	}
	rows, err := parsers.ForFilename(header.Filename).Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", header.Filename, err)
	}
	form.Rows = rows
	return form, nil
}

// PreviewTournament runs the full scoring pass in memory and returns the
// would-be results plus diagnostics. Nothing is persisted.
func (h *Handlers) PreviewTournament(w http.ResponseWriter, r *http.Request) {
	form, err := h.parseTournamentForm(r)
	if err != nil {
		h.badRequest(w, err.Error())
		return
	}

	result, err := h.scoring.PreviewTournament(r.Context(), scoringservice.PreviewRequest{
		Rows:           form.Rows,
		Mode:           form.Mode,
		Category:       form.Category,
		ScoringType:    form.ScoringType,
		IsManual:       form.IsManual,
		TeamResolution: form.TeamResolution,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, result)
}

// CommitTournament finalizes an upload. The optional "id" form value is the
// idempotency key; retries with the same ID return the stored tournament.
func (h *Handlers) CommitTournament(w http.ResponseWriter, r *http.Request) {
	form, err := h.parseTournamentForm(r)
	if err != nil {
		h.badRequest(w, err.Error())
		return
	}
	if form.Name == "" {
		h.badRequest(w, "tournament name is required")
		return
	}

	id := sharedtypes.NewTournamentID()
	if form.ID != "" {
		parsed, err := sharedtypes.ParseTournamentID(form.ID)
		if err != nil {
			h.badRequest(w, fmt.Sprintf("invalid tournament id: %v", err))
			return
		}
		id = parsed
	}

	inputs, rowErrs := scoringservice.NormalizeRows(form.Rows, form.Mode)
	if len(rowErrs) > 0 {
		h.respondJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":      "rows failed validation",
			"row_errors": rowErrs,
		})
		return
	}

	tournament, err := h.scoring.CommitTournament(r.Context(), scoringservice.CommitRequest{
		ID:             id,
		Name:           form.Name,
		Date:           form.Date,
		Category:       form.Category,
		Mode:           form.Mode,
		ScoringType:    form.ScoringType,
		IsManual:       form.IsManual,
		Scores:         inputs,
		TeamResolution: form.TeamResolution,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "tournament committed",
		attr.TournamentID("tournament_id", tournament.ID),
		attr.String("name", tournament.Name),
	)
	h.respondJSON(w, http.StatusCreated, tournament)
}

// DetectTeams reports the team-shaped player names in an upload so the
// caller can ask the user how to score them before committing.
func (h *Handlers) DetectTeams(w http.ResponseWriter, r *http.Request) {
	form, err := h.parseTournamentForm(r)
	if err != nil {
		h.badRequest(w, err.Error())
		return
	}

	inputs, _ := scoringservice.NormalizeRows(form.Rows, form.Mode)
	resolved, _ := scoringservice.ResolveScores(inputs, form.Mode)
	h.respondJSON(w, http.StatusOK, map[string]any{
		"teams": scoringservice.DetectTeamEntries(resolved),
	})
}
