// internal/table/table.go
package table

import "strings"

// Table is an immutable in-memory snapshot of one uploaded sheet.
// The engine only ever reads it; a new upload produces a new Table.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// New creates an empty table with the given header.
func New(columns []string) *Table {
	return &Table{Columns: columns}
}

// Append adds one raw row, padding or truncating it to the header width.
func (t *Table) Append(row []string) {
	if len(row) < len(t.Columns) {
		padded := make([]string, len(t.Columns))
		copy(padded, row)
		row = padded
	} else if len(row) > len(t.Columns) {
		row = row[:len(t.Columns)]
	}
	t.Rows = append(t.Rows, row)
}

// ColumnIndex returns the position of a column by its trimmed header name,
// or -1 when the column is absent. Header cells are compared trimmed
// because exported sheets routinely carry trailing spaces.
func (t *Table) ColumnIndex(name string) int {
	for i, col := range t.Columns {
		if strings.TrimSpace(col) == name {
			return i
		}
	}
	return -1
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}
