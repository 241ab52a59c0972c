// internal/ingest/xlsx.go
package ingest

import (
	"fmt"
	"io"

	"github.com/lumenfab/kpi-dashboard/internal/table"
	"github.com/xuri/excelize/v2"
)

// ReadXLSX loads the first sheet of an xlsx workbook into a raw table.
// The first row is the header; every later row becomes a data row padded
// to the header width.
func ReadXLSX(r io.Reader) (*table.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.Rows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	defer rows.Close()

	var t *table.Table
	for rows.Next() {
		row, err := rows.Columns()
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		if t == nil {
			t = table.New(row)
			continue
		}
		t.Append(row)
	}
	if err := rows.Error(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	if t == nil {
		return nil, fmt.Errorf("sheet %s is empty", sheets[0])
	}

	return t, nil
}
