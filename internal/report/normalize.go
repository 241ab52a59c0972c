// internal/report/normalize.go
package report

import (
	"strconv"
	"strings"
	"time"

	"github.com/lumenfab/kpi-dashboard/internal/table"
	"github.com/shopspring/decimal"
)

// Field is one canonical column a report needs, with the ordered list of
// header spellings under which exported sheets carry it.
type Field struct {
	Name    string
	Aliases []string
}

// columns maps canonical field names to their resolved positions in a
// raw table.
type columns map[string]int

// resolveColumns resolves every field's aliases against the table header
// once, up front. A field none of whose aliases match is a fatal schema
// error for the whole report.
func resolveColumns(report string, t *table.Table, fields []Field) (columns, error) {
	cols := make(columns, len(fields))
	for _, f := range fields {
		idx := -1
		for _, alias := range f.Aliases {
			if i := t.ColumnIndex(alias); i >= 0 {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, &MissingColumnError{Report: report, Field: f.Name, Aliases: f.Aliases}
		}
		cols[f.Name] = idx
	}
	return cols, nil
}

// cell returns the trimmed raw value of a canonical field for one row.
func (c columns) cell(row []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// dateFormats are tried in order. Exports from the ERP and from excelize
// round-tripping both appear in practice.
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"1/2/2006 15:04",
	"1/2/2006",
	"1/2/06 15:04",
	"1/2/06",
	"02-01-2006",
}

// parseDate parses a cell into a date. The second return is false for
// empty or unparsable values; such rows are dropped when the date is
// mandatory for the report.
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, format := range dateFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseNumber parses a quantity or amount. Unparsable or missing values
// become 0 so that a malformed quantity never breaks aggregation.
func parseNumber(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// parseDecimal parses an exact quantity. The PO completion check sums
// these and demands an exact zero, so float rounding must not leak in.
func parseDecimal(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// parseFlag parses boolean-ish cells ("true"/"TRUE"/"1"/"yes").
// Anything else, including empty, is false.
func parseFlag(s string) bool {
	switch strings.ToLower(s) {
	case "true", "1", "yes", "y":
		return true
	}
	return false
}

// cleanKey normalizes a business-key identifier.
func cleanKey(s string, upper bool) string {
	s = strings.TrimSpace(s)
	if upper {
		s = strings.ToUpper(s)
	}
	return s
}
