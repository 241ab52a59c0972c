package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestCompletedPOSet(t *testing.T) {
	lines := []poLine{
		{PONo: "PO-ZERO", Outstanding: decimal.Zero},
		{PONo: "PO-FRACTIONS", Outstanding: decimal.RequireFromString("0.1")},
		{PONo: "PO-FRACTIONS", Outstanding: decimal.RequireFromString("0.2")},
		{PONo: "PO-FRACTIONS", Outstanding: decimal.RequireFromString("-0.3")},
		{PONo: "PO-RESIDUAL", Outstanding: decimal.RequireFromString("0.0001")},
		{PONo: "PO-NEGATIVE", Outstanding: decimal.RequireFromString("-2")},
	}

	completed := completedPOSet(lines)

	if !completed["PO-ZERO"] {
		t.Error("PO-ZERO should be completed")
	}
	if !completed["PO-FRACTIONS"] {
		t.Error("fractional lines summing to zero should complete the PO")
	}
	if completed["PO-RESIDUAL"] {
		t.Error("a positive residual must not complete the PO")
	}
	if completed["PO-NEGATIVE"] {
		t.Error("a negative residual must not complete the PO")
	}
}

func TestReceiptDateIndexLastWriteWins(t *testing.T) {
	tbl := newTable(receiptColumns(),
		[]string{"R-001", "2025-01-05"},
		[]string{"R-001", "2025-01-08"},
		// Skipped: unparsable posting date.
		[]string{"R-002", "pending"},
		// Skipped: no receipt number.
		[]string{"", "2025-01-09"},
	)

	index, dropped, err := receiptDateIndex("test", tbl, false)
	if err != nil {
		t.Fatalf("receiptDateIndex failed: %v", err)
	}
	if dropped != 2 {
		t.Errorf("dropped = %d, want 2", dropped)
	}
	want := time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC)
	if got := index["R-001"]; !got.Equal(want) {
		t.Errorf("R-001 = %v, want later duplicate %v", got, want)
	}
	if _, ok := index["R-002"]; ok {
		t.Error("R-002 with unparsable date should not be indexed")
	}
}

func TestLatestInvoiceBySO(t *testing.T) {
	tbl := newTable(invoiceColumns(),
		[]string{"SO-001", "2025-01-10"},
		[]string{"so-001", "2025-01-20"},
		[]string{"SO-001", "2025-01-05"},
	)

	latest, dropped, err := latestInvoiceBySO("test", tbl)
	if err != nil {
		t.Fatalf("latestInvoiceBySO failed: %v", err)
	}
	if dropped != 0 {
		t.Errorf("dropped = %d, want 0", dropped)
	}
	// Keys are upper-cased, so all three rows collapse onto one order and
	// the latest posting date wins regardless of row order.
	want := time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)
	if got := latest["SO-001"]; !got.Equal(want) {
		t.Errorf("SO-001 = %v, want %v", got, want)
	}
}
