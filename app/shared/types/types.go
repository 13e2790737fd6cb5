package sharedtypes

import (
	"database/sql/driver"

	"github.com/google/uuid"
)

// TournamentID uniquely identifies a tournament.
type TournamentID uuid.UUID

func (id TournamentID) String() string {
	return uuid.UUID(id).String()
}

func (id TournamentID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

func (id *TournamentID) UnmarshalText(data []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(data)
}

func (id TournamentID) Value() (driver.Value, error) {
	return uuid.UUID(id).Value()
}

func (id *TournamentID) Scan(src any) error {
	return (*uuid.UUID)(id).Scan(src)
}

// NewTournamentID generates a fresh tournament ID.
func NewTournamentID() TournamentID {
	return TournamentID(uuid.New())
}

// ParseTournamentID parses the string form of a tournament ID.
func ParseTournamentID(s string) (TournamentID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return TournamentID{}, err
	}
	return TournamentID(id), nil
}

// RunID identifies a single recalculation run.
type RunID uuid.UUID

func (id RunID) String() string {
	return uuid.UUID(id).String()
}

func (id RunID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

func (id *RunID) UnmarshalText(data []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(data)
}

func (id RunID) Value() (driver.Value, error) {
	return uuid.UUID(id).Value()
}

func (id *RunID) Scan(src any) error {
	return (*uuid.UUID)(id).Scan(src)
}

// NewRunID generates a fresh run ID.
func NewRunID() RunID {
	return RunID(uuid.New())
}

// ParseRunID parses the string form of a run ID.
func ParseRunID(s string) (RunID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return RunID{}, err
	}
	return RunID(id), nil
}

// PlayerID identifies a player in the directory.
type PlayerID int64

// Category is the tournament category a points table is keyed by.
type Category string

const (
	CategoryMajor  Category = "major"
	CategoryTour   Category = "tour"
	CategoryLeague Category = "league"
	CategorySupr   Category = "supr"
)

// Categories lists every known tournament category.
func Categories() []Category {
	return []Category{CategoryMajor, CategoryTour, CategoryLeague, CategorySupr}
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryMajor, CategoryTour, CategoryLeague, CategorySupr:
		return true
	}
	return false
}

// ScoringMode describes how gross and net scores are obtained from a row.
type ScoringMode string

const (
	// ModeStroke means the raw total is the gross score and net is derived
	// from the handicap.
	ModeStroke ScoringMode = "stroke"
	// ModeStrokeNet means the raw total is the net score and gross is
	// reconstructed by adding the course handicap.
	ModeStrokeNet ScoringMode = "stroke_net"
	// ModePreScored means gross and net are supplied directly.
	ModePreScored ScoringMode = "pre_scored"
)

// Valid reports whether m is a known scoring mode.
func (m ScoringMode) Valid() bool {
	switch m {
	case ModeStroke, ModeStrokeNet, ModePreScored:
		return true
	}
	return false
}

// Basis selects which score a ranking pass is computed over.
type Basis string

const (
	BasisNet   Basis = "net"
	BasisGross Basis = "gross"
)

// ScoringType selects which leaderboard passes a tournament feeds.
type ScoringType string

const (
	ScoringNet   ScoringType = "net"
	ScoringGross ScoringType = "gross"
	ScoringBoth  ScoringType = "both"
)

// Bases returns the ranking passes the scoring type requests.
func (t ScoringType) Bases() []Basis {
	switch t {
	case ScoringNet:
		return []Basis{BasisNet}
	case ScoringGross:
		return []Basis{BasisGross}
	default:
		return []Basis{BasisNet, BasisGross}
	}
}

// Float64Ptr returns a pointer to v. Convenience for optional score fields.
func Float64Ptr(v float64) *float64 { return &v }
