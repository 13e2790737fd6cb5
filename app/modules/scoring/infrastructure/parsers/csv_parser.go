package parsers

import (
	"bytes"
	"encoding/csv"
	"fmt"

	scoringservice "github.com/mmiles2012/golf-league/app/modules/scoring/application"
)

// CSVParser reads comma-separated uploads. Exported scorecards are sometimes
// XLSX files with a .csv name, so a failed CSV parse falls back to the XLSX
// core before giving up.
type CSVParser struct{}

var _ Parser = (*CSVParser)(nil)

func (p *CSVParser) Parse(data []byte) ([]scoringservice.RawRow, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		if raw, xlsxErr := parseXLSXCore(data); xlsxErr == nil {
			return raw, nil
		}
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}

	return rowsToRaw(records)
}
