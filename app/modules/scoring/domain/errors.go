package scoringdomain

import (
	"errors"
	"fmt"
)

// Sentinel errors for build-level failures. Row-level problems use FieldError
// so a batch can keep going and report everything at once.
var (
	// ErrIncompleteScore means gross/net derivation was impossible because the
	// raw total or handicap was missing.
	ErrIncompleteScore = errors.New("incomplete score: raw total and handicap are required")

	// ErrIncompleteManualPoints means a manual tournament build had at least
	// one entry without a supplied points value. The build fails atomically.
	ErrIncompleteManualPoints = errors.New("incomplete manual points: every entry needs a non-negative points value")

	// ErrUnresolvedTeamEntry means a detected team entry has no resolution
	// yet. This is an expected intermediate state, not a row defect.
	ErrUnresolvedTeamEntry = errors.New("unresolved team entry")
)

// FieldErrorKind classifies a row-level field problem.
type FieldErrorKind string

const (
	FieldMissing FieldErrorKind = "missing"
	FieldInvalid FieldErrorKind = "invalid"
)

// FieldError reports a single bad or absent field on one input row. Field
// errors are accumulated, never thrown, so previews can show partial results
// with inline diagnostics.
type FieldError struct {
	Row   int            `json:"row"`
	Field string         `json:"field"`
	Kind  FieldErrorKind `json:"kind"`
	Value string         `json:"value,omitempty"`
}

func (e *FieldError) Error() string {
	if e.Kind == FieldMissing {
		return fmt.Sprintf("row %d: missing field %q", e.Row, e.Field)
	}
	return fmt.Sprintf("row %d: invalid value %q for field %q", e.Row, e.Value, e.Field)
}

// MissingField builds a FieldError for an absent or blank required field.
func MissingField(row int, field string) *FieldError {
	return &FieldError{Row: row, Field: field, Kind: FieldMissing}
}

// InvalidValue builds a FieldError for a present but unparseable field.
func InvalidValue(row int, field, value string) *FieldError {
	return &FieldError{Row: row, Field: field, Kind: FieldInvalid, Value: value}
}
