package scoringdb

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	scoringdomain "github.com/mmiles2012/golf-league/app/modules/scoring/domain"
	sharedtypes "github.com/mmiles2012/golf-league/app/shared/types"
)

// Tournament is the persisted tournament header plus the committed score
// inputs, kept as a jsonb snapshot so recalculation can re-drive the pipeline
// from the exact rows the admin committed.
type Tournament struct {
	bun.BaseModel `bun:"table:tournaments,alias:t"`

	ID          uuid.UUID                   `bun:"id,pk,type:uuid"`
	Name        string                      `bun:"name,notnull"`
	Date        time.Time                   `bun:"date,notnull"`
	Category    string                      `bun:"category,notnull"`
	ScoringMode string                      `bun:"scoring_mode,notnull"`
	ScoringType string                      `bun:"scoring_type,notnull"`
	IsManual    bool                        `bun:"is_manual,notnull,default:false"`
	ScoreInputs []scoringdomain.ScoreInput  `bun:"score_inputs,type:jsonb"`
	CreatedAt   time.Time                   `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

func (m *Tournament) toDomain() scoringdomain.Tournament {
	return scoringdomain.Tournament{
		ID:          sharedtypes.TournamentID(m.ID),
		Name:        m.Name,
		Date:        m.Date,
		Category:    sharedtypes.Category(m.Category),
		ScoringMode: sharedtypes.ScoringMode(m.ScoringMode),
		ScoringType: sharedtypes.ScoringType(m.ScoringType),
		IsManual:    m.IsManual,
	}
}

func tournamentModel(t scoringdomain.Tournament, inputs []scoringdomain.ScoreInput) *Tournament {
	return &Tournament{
		ID:          uuid.UUID(t.ID),
		Name:        t.Name,
		Date:        t.Date,
		Category:    string(t.Category),
		ScoringMode: string(t.ScoringMode),
		ScoringType: string(t.ScoringType),
		IsManual:    t.IsManual,
		ScoreInputs: inputs,
	}
}

// TournamentResult is one player's finalized row. The (tournament_id,
// player_id) unique constraint enforces exactly one row per player per
// tournament.
type TournamentResult struct {
	bun.BaseModel `bun:"table:tournament_results,alias:tr"`

	ID              int64     `bun:"id,pk,autoincrement"`
	TournamentID    uuid.UUID `bun:"tournament_id,type:uuid,notnull"`
	PlayerID        int64     `bun:"player_id,notnull"`
	PlayerName      string    `bun:"player_name,notnull"`
	Category        string    `bun:"category,notnull"`
	Position        int       `bun:"position,notnull"`
	DisplayPosition string    `bun:"display_position,notnull"`
	TiedPosition    bool      `bun:"tied_position,notnull,default:false"`
	Gross           *float64  `bun:"gross"`
	Net             *float64  `bun:"net"`
	Handicap        *float64  `bun:"handicap"`
	NetPoints       float64   `bun:"net_points,notnull,default:0"`
	GrossPoints     float64   `bun:"gross_points,notnull,default:0"`
	IsNewPlayer     bool      `bun:"is_new_player,notnull,default:false"`
	CreatedAt       time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

func (m *TournamentResult) toDomain() scoringdomain.TournamentResult {
	return scoringdomain.TournamentResult{
		TournamentID:    sharedtypes.TournamentID(m.TournamentID),
		PlayerID:        sharedtypes.PlayerID(m.PlayerID),
		PlayerName:      m.PlayerName,
		Category:        sharedtypes.Category(m.Category),
		Position:        m.Position,
		DisplayPosition: m.DisplayPosition,
		TiedPosition:    m.TiedPosition,
		Gross:           m.Gross,
		Net:             m.Net,
		Handicap:        m.Handicap,
		NetPoints:       m.NetPoints,
		GrossPoints:     m.GrossPoints,
		IsNewPlayer:     m.IsNewPlayer,
	}
}

func resultModel(r scoringdomain.TournamentResult) *TournamentResult {
	return &TournamentResult{
		TournamentID:    uuid.UUID(r.TournamentID),
		PlayerID:        int64(r.PlayerID),
		PlayerName:      r.PlayerName,
		Category:        string(r.Category),
		Position:        r.Position,
		DisplayPosition: r.DisplayPosition,
		TiedPosition:    r.TiedPosition,
		Gross:           r.Gross,
		Net:             r.Net,
		Handicap:        r.Handicap,
		NetPoints:       r.NetPoints,
		GrossPoints:     r.GrossPoints,
		IsNewPlayer:     r.IsNewPlayer,
	}
}
