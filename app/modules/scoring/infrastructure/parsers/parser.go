// Package parsers turns uploaded result sheets into the generic key/value
// rows the row normalizer consumes. Column order and naming are not
// guaranteed; original header names are preserved so the normalizer's alias
// tables can do their job.
package parsers

import (
	"fmt"
	"path/filepath"
	"strings"

	scoringservice "github.com/mmiles2012/golf-league/app/modules/scoring/application"
)

// Parser extracts raw rows from one uploaded file.
type Parser interface {
	Parse(data []byte) ([]scoringservice.RawRow, error)
}

// ForFilename picks a parser from the upload's extension. Unknown extensions
// get the CSV parser, which falls back to XLSX when the content disagrees
// with the name.
func ForFilename(filename string) Parser {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return &XLSXParser{}
	default:
		return &CSVParser{}
	}
}

// rowsToRaw zips a header row with data rows. Blank lines are skipped; short
// rows are padded implicitly by omission.
func rowsToRaw(rows [][]string) ([]scoringservice.RawRow, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet is empty")
	}

	header := rows[0]
	hasHeader := false
	for _, cell := range header {
		if strings.TrimSpace(cell) != "" {
			hasHeader = true
			break
		}
	}
	if !hasHeader {
		return nil, fmt.Errorf("sheet has no header row")
	}

	raw := make([]scoringservice.RawRow, 0, len(rows)-1)
	for _, row := range rows[1:] {
		empty := true
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				empty = false
				break
			}
		}
		if empty {
			continue
		}

		entry := make(scoringservice.RawRow, len(header))
		for i, key := range header {
			key = strings.TrimSpace(key)
			if key == "" || i >= len(row) {
				continue
			}
			entry[key] = strings.TrimSpace(row[i])
		}
		raw = append(raw, entry)
	}
	return raw, nil
}
