// internal/report/resolve.go
package report

import (
	"time"

	"github.com/lumenfab/kpi-dashboard/internal/table"
	"github.com/shopspring/decimal"
)

// Shared join/lookup plumbing for the purchase and sales reports. All
// lookups built here are plain dictionaries with a documented
// last-write-wins policy on duplicate keys: callers must not rely on
// order-independence for malformed input that repeats a key.

type poRow struct {
	No              string
	Vendor          string
	OrderDate       time.Time
	LastReceivingNo string
}

type poLine struct {
	PONo        string
	ItemNo      string
	Outstanding decimal.Decimal
}

// parsePOs normalizes the purchase order header table. Rows without a PO
// number are dropped; the order date stays zero when unparsable so each
// report can apply its own mandatory-date policy.
func parsePOs(report string, t *table.Table, vendorAliases []string, upper bool) ([]poRow, int, error) {
	cols, err := resolveColumns(report, t, []Field{
		{Name: "po_no", Aliases: []string{"No.", "No", "PO No."}},
		{Name: "vendor", Aliases: vendorAliases},
		{Name: "order_date", Aliases: []string{"Order Date"}},
		{Name: "last_receiving_no", Aliases: []string{"Last Receiving No."}},
	})
	if err != nil {
		return nil, 0, err
	}

	pos := make([]poRow, 0, t.Len())
	dropped := 0
	for _, row := range t.Rows {
		no := cleanKey(cols.cell(row, "po_no"), upper)
		if no == "" {
			dropped++
			continue
		}
		orderDate, _ := parseDate(cols.cell(row, "order_date"))
		pos = append(pos, poRow{
			No:              no,
			Vendor:          cleanKey(cols.cell(row, "vendor"), false),
			OrderDate:       orderDate,
			LastReceivingNo: cleanKey(cols.cell(row, "last_receiving_no"), upper),
		})
	}
	return pos, dropped, nil
}

// parsePOLines normalizes the purchase line table. Outstanding quantity
// is parsed as a decimal because completion demands an exact-zero sum.
func parsePOLines(report string, t *table.Table, upper bool) ([]poLine, int, error) {
	cols, err := resolveColumns(report, t, []Field{
		{Name: "po_no", Aliases: []string{"Document No.", "Document No"}},
		{Name: "item_no", Aliases: []string{"No.", "No", "Item No."}},
		{Name: "outstanding_qty", Aliases: []string{"Outstanding Quantity", "Outstanding Qty"}},
	})
	if err != nil {
		return nil, 0, err
	}

	lines := make([]poLine, 0, t.Len())
	dropped := 0
	for _, row := range t.Rows {
		poNo := cleanKey(cols.cell(row, "po_no"), upper)
		if poNo == "" {
			dropped++
			continue
		}
		lines = append(lines, poLine{
			PONo:        poNo,
			ItemNo:      cleanKey(cols.cell(row, "item_no"), false),
			Outstanding: parseDecimal(cols.cell(row, "outstanding_qty")),
		})
	}
	return lines, dropped, nil
}

// sumOutstandingByPO reduces lines to a per-PO outstanding total.
// Multiple lines per PO sum, they never overwrite.
func sumOutstandingByPO(lines []poLine) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, l := range lines {
		totals[l.PONo] = totals[l.PONo].Add(l.Outstanding)
	}
	return totals
}

// completedPOSet returns the PO numbers whose summed outstanding
// quantity is exactly zero. Any residual, however small or negative,
// excludes the PO.
func completedPOSet(lines []poLine) map[string]bool {
	completed := make(map[string]bool)
	for poNo, total := range sumOutstandingByPO(lines) {
		if total.IsZero() {
			completed[poNo] = true
		}
	}
	return completed
}

// receiptDateIndex maps receipt numbers to their posting dates.
// Receipts without a number or a parsable posting date are skipped, so a
// PO referencing them resolves to "no receipt". Duplicate receipt
// numbers: last write wins.
func receiptDateIndex(report string, t *table.Table, upper bool) (map[string]time.Time, int, error) {
	cols, err := resolveColumns(report, t, []Field{
		{Name: "receipt_no", Aliases: []string{"No.", "No", "Receipt No."}},
		{Name: "posting_date", Aliases: []string{"Posting Date"}},
	})
	if err != nil {
		return nil, 0, err
	}

	index := make(map[string]time.Time, t.Len())
	dropped := 0
	for _, row := range t.Rows {
		no := cleanKey(cols.cell(row, "receipt_no"), upper)
		postingDate, ok := parseDate(cols.cell(row, "posting_date"))
		if no == "" || !ok {
			dropped++
			continue
		}
		index[no] = postingDate
	}
	return index, dropped, nil
}

// latestInvoiceBySO resolves the one-to-many sales invoice relation to a
// single posting date per sales order: the latest invoice wins.
func latestInvoiceBySO(report string, t *table.Table) (map[string]time.Time, int, error) {
	cols, err := resolveColumns(report, t, []Field{
		{Name: "so_no", Aliases: []string{"Order No.", "Order No"}},
		{Name: "posting_date", Aliases: []string{"Posting Date"}},
	})
	if err != nil {
		return nil, 0, err
	}

	latest := make(map[string]time.Time)
	dropped := 0
	for _, row := range t.Rows {
		soNo := cleanKey(cols.cell(row, "so_no"), true)
		postingDate, ok := parseDate(cols.cell(row, "posting_date"))
		if soNo == "" || !ok {
			dropped++
			continue
		}
		if postingDate.After(latest[soNo]) {
			latest[soNo] = postingDate
		}
	}
	return latest, dropped, nil
}

// itemGroupIndex maps item numbers to the value of a classification
// group column from the item master. Last write wins on duplicates.
func itemGroupIndex(report string, t *table.Table, groupAliases []string) (map[string]string, int, error) {
	cols, err := resolveColumns(report, t, []Field{
		{Name: "item_no", Aliases: []string{"No.", "No", "Item No."}},
		{Name: "group", Aliases: groupAliases},
	})
	if err != nil {
		return nil, 0, err
	}

	index := make(map[string]string, t.Len())
	dropped := 0
	for _, row := range t.Rows {
		itemNo := cleanKey(cols.cell(row, "item_no"), false)
		if itemNo == "" {
			dropped++
			continue
		}
		index[itemNo] = cleanKey(cols.cell(row, "group"), false)
	}
	return index, dropped, nil
}

// rmPOSet returns the PO numbers whose lines reference at least one item
// in the raw material set. One matching line is enough.
func rmPOSet(lines []poLine, rmItems map[string]bool) map[string]bool {
	pos := make(map[string]bool)
	for _, l := range lines {
		if rmItems[l.ItemNo] {
			pos[l.PONo] = true
		}
	}
	return pos
}
