package report

import (
	"testing"

	"github.com/lumenfab/kpi-dashboard/internal/domain"
)

func TestShortClosureCompute(t *testing.T) {
	sos := newTable(soColumns(),
		// Completely shipped orders stay out of the population.
		[]string{"SO-001", "2025-01-05", "TRUE", "FALSE"},
		[]string{"SO-002", "2025-01-10", "FALSE", "TRUE"},
		[]string{"SO-003", "2025-01-15", "FALSE", "FALSE"},
		[]string{"SO-004", "2025-02-01", "FALSE", "TRUE"},
		[]string{"SO-005", "2025-02-02", "FALSE", "TRUE"},
		// Malformed: no document date.
		[]string{"SO-006", "", "FALSE", "TRUE"},
	)

	result, err := (&shortClosureReport{}).Compute(
		Inputs{domain.TableSalesOrders: sos}, testParams())
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	if got := result.Metrics["Total_Non_Shipped"]; got != 4 {
		t.Errorf("Total_Non_Shipped = %v, want 4", got)
	}
	if got := result.Metrics["Short_Closed"]; got != 3 {
		t.Errorf("Short_Closed = %v, want 3", got)
	}
	if got := result.Metrics["Not_Short_Closed"]; got != 1 {
		t.Errorf("Not_Short_Closed = %v, want 1", got)
	}
	if got := result.Metrics["Short_Closed_Pct"]; got != 75 {
		t.Errorf("Short_Closed_Pct = %v, want 75", got)
	}
	if got := result.Diagnostics.DroppedRows[domain.TableSalesOrders]; got != 1 {
		t.Errorf("dropped rows = %d, want 1", got)
	}

	monthly, ok := result.Grouped.([]domain.ShortClosureMonth)
	if !ok {
		t.Fatalf("Grouped has type %T, want []domain.ShortClosureMonth", result.Grouped)
	}
	want := []domain.ShortClosureMonth{
		{Month: "2025-01", TotalNonShipped: 2, ShortClosedCount: 1, NotShortClosed: 1},
		{Month: "2025-02", TotalNonShipped: 2, ShortClosedCount: 2, NotShortClosed: 0},
	}
	if len(monthly) != len(want) {
		t.Fatalf("monthly has %d entries, want %d", len(monthly), len(want))
	}
	for i := range want {
		if monthly[i] != want[i] {
			t.Errorf("monthly[%d] = %+v, want %+v", i, monthly[i], want[i])
		}
	}
}

func TestShortClosureEmptyPopulation(t *testing.T) {
	sos := newTable(soColumns(),
		[]string{"SO-001", "2025-01-05", "TRUE", "FALSE"},
	)
	result, err := (&shortClosureReport{}).Compute(
		Inputs{domain.TableSalesOrders: sos}, testParams())
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if got := result.Metrics["Short_Closed_Pct"]; got != 0 {
		t.Errorf("Short_Closed_Pct = %v, want 0 when nothing is non-shipped", got)
	}
}
