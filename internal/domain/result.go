// internal/domain/result.go
package domain

// Diagnostics carries per-input counts of rows the normalizer dropped
// for missing keys or unparsable dates. Dropping does not fail the
// computation; the counts let callers observe it.
type Diagnostics struct {
	DroppedRows map[TableKind]int `json:"dropped_rows,omitempty"`
}

// Drop records n dropped rows for one input table.
func (d *Diagnostics) Drop(kind TableKind, n int) {
	if n == 0 {
		return
	}
	if d.DroppedRows == nil {
		d.DroppedRows = make(map[TableKind]int)
	}
	d.DroppedRows[kind] += n
}

// Result is the output envelope of one report computation: a flat
// mapping of named scalar KPIs plus detail and grouped views for
// downstream charting. Detail and Grouped hold report-specific row
// slices and serialize as-is.
type Result struct {
	Report      string             `json:"report"`
	Metrics     map[string]float64 `json:"metrics"`
	Detail      any                `json:"detail,omitempty"`
	Grouped     any                `json:"grouped,omitempty"`
	Diagnostics Diagnostics        `json:"diagnostics"`
}
