package report

import (
	"testing"

	"github.com/lumenfab/kpi-dashboard/internal/domain"
)

func TestRMPOSLACompute(t *testing.T) {
	items := newTable([]string{"No.", "Inventory Posting Group"},
		[]string{"ITEM-RM", "RM"},
		[]string{"ITEM-FG", "FG"},
	)
	pos := newTable(poColumns(),
		[]string{"PO-001", "Acme", "2025-01-01", "R-001"},
		// Finished goods only: outside the raw material population.
		[]string{"PO-002", "Acme", "2025-01-01", "R-002"},
		// Mixed lines: one raw material line is enough.
		[]string{"PO-003", "Beta", "2025-01-01", "R-003"},
		// Raw material but still outstanding.
		[]string{"PO-004", "Beta", "2025-01-01", "R-004"},
	)
	lines := newTable(poLineColumns(),
		[]string{"PO-001", "ITEM-RM", "0"},
		[]string{"PO-002", "ITEM-FG", "0"},
		[]string{"PO-003", "ITEM-FG", "0"},
		[]string{"PO-003", "ITEM-RM", "0"},
		[]string{"PO-004", "ITEM-RM", "3"},
	)
	receipts := newTable(receiptColumns(),
		[]string{"R-001", "2025-01-08"},
		[]string{"R-002", "2025-01-08"},
		[]string{"R-003", "2025-01-15"},
		[]string{"R-004", "2025-01-08"},
	)

	result, err := (&rmPOSLAReport{}).Compute(Inputs{
		domain.TableItems:            items,
		domain.TablePurchaseOrders:   pos,
		domain.TablePurchaseReceipts: receipts,
		domain.TablePurchaseLines:    lines,
	}, testParams())
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	if got := result.Metrics["Total_RM_POs"]; got != 2 {
		t.Errorf("Total_RM_POs = %v, want 2", got)
	}
	if got := result.Metrics["On_Time_POs"]; got != 1 {
		t.Errorf("On_Time_POs = %v, want 1", got)
	}
	if got := result.Metrics["Late_POs"]; got != 1 {
		t.Errorf("Late_POs = %v, want 1", got)
	}
	if got := result.Metrics["On_Time_Pct"]; got != 50 {
		t.Errorf("On_Time_Pct = %v, want 50", got)
	}

	details, ok := result.Detail.([]domain.SLADetail)
	if !ok {
		t.Fatalf("Detail has type %T, want []domain.SLADetail", result.Detail)
	}
	if len(details) != 2 {
		t.Fatalf("detail has %d rows, want 2", len(details))
	}
	if details[0].PONo != "PO-001" || details[0].Status != domain.DeliveryOnTime {
		t.Errorf("first detail = %+v, want PO-001 On-Time", details[0])
	}
	if details[1].PONo != "PO-003" || details[1].Status != domain.DeliveryLate {
		t.Errorf("second detail = %+v, want PO-003 Late", details[1])
	}

	monthly, ok := result.Grouped.([]domain.MonthStatusCount)
	if !ok {
		t.Fatalf("Grouped has type %T, want []domain.MonthStatusCount", result.Grouped)
	}
	want := []domain.MonthStatusCount{
		{Month: "2025-01", Status: domain.DeliveryOnTime, Count: 1},
		{Month: "2025-01", Status: domain.DeliveryLate, Count: 1},
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
