// internal/export/excel.go
package export

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/lumenfab/kpi-dashboard/internal/domain"
	"github.com/xuri/excelize/v2"
)

// WriteWorkbook writes one report result to an xlsx workbook: a KPI
// summary sheet plus a sheet per detail/grouped view.
func WriteWorkbook(result *domain.Result, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	const summarySheet = "KPI Summary"
	f.SetSheetName("Sheet1", summarySheet)

	if err := writeSummary(f, summarySheet, result.Metrics); err != nil {
		return err
	}
	if result.Detail != nil {
		if err := writeRows(f, "Detail", result.Detail); err != nil {
			return err
		}
	}
	if result.Grouped != nil {
		// Grouped is either one row slice or a named map of them.
		if views, ok := result.Grouped.(map[string][]domain.StockBucketQty); ok {
			names := make([]string, 0, len(views))
			for name := range views {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				if err := writeRows(f, name, views[name]); err != nil {
					return err
				}
			}
		} else if err := writeRows(f, "Grouped", result.Grouped); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

func writeSummary(f *excelize.File, sheet string, metrics map[string]float64) error {
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	if err := f.SetSheetRow(sheet, "A1", &[]any{"KPI", "Value"}); err != nil {
		return fmt.Errorf("failed to write summary header: %w", err)
	}
	for i, name := range names {
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &[]any{name, metrics[name]}); err != nil {
			return fmt.Errorf("failed to write summary row %s: %w", name, err)
		}
	}
	return nil
}

// writeRows flattens a row-slice view through its JSON form so every
// detail type shares one writer. Column order is the sorted union of
// field names, which keeps repeated exports identical.
func writeRows(f *excelize.File, sheet string, rows any) error {
	payload, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to encode sheet %s: %w", sheet, err)
	}
	var records []map[string]any
	if err := json.Unmarshal(payload, &records); err != nil {
		return fmt.Errorf("failed to decode sheet %s: %w", sheet, err)
	}

	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}
	if len(records) == 0 {
		return nil
	}

	colSet := make(map[string]bool)
	for _, rec := range records {
		for col := range rec {
			colSet[col] = true
		}
	}
	cols := make([]string, 0, len(colSet))
	for col := range colSet {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	header := make([]any, len(cols))
	for i, col := range cols {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header for %s: %w", sheet, err)
	}

	for i, rec := range records {
		row := make([]any, len(cols))
		for j, col := range cols {
			row[j] = rec[col]
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", i, sheet, err)
		}
	}
	return nil
}
