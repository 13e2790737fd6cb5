package parsers

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	scoringservice "github.com/mmiles2012/golf-league/app/modules/scoring/application"
)

// XLSXParser reads the first sheet of an Excel workbook.
type XLSXParser struct{}

var _ Parser = (*XLSXParser)(nil)

func (p *XLSXParser) Parse(data []byte) ([]scoringservice.RawRow, error) {
	return parseXLSXCore(data)
}

// parseXLSXCore contains the XLSX logic shared with the CSV parser's
// fallback path for misnamed files.
func parseXLSXCore(data []byte) ([]scoringservice.RawRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("XLSX file has no sheets")
	}

	sheetName := sheets[0]
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}

	return rowsToRaw(rows)
}
