package report

import (
	"testing"

	"github.com/lumenfab/kpi-dashboard/internal/domain"
)

func TestOrderDeliveryCompute(t *testing.T) {
	pos := newTable(poColumns(),
		[]string{"PO-001", "Acme", "2025-01-01", "R-001"},
		[]string{"PO-002", "Acme", "2025-01-01", "R-002"},
		// Lower-cased keys in one export must still join.
		[]string{"po-003", "Beta", "2025-01-01", "r-003"},
		// Receiving number matches no posted receipt.
		[]string{"PO-004", "Beta", "2025-01-01", "R-MISSING"},
		// Receipt posted before the order date.
		[]string{"PO-005", "Beta", "2025-01-10", "R-005"},
	)
	lines := newTable(poLineColumns(),
		[]string{"PO-001", "ITEM-1", "10"},
		[]string{"PO-001", "ITEM-2", "2.5"},
		[]string{"PO-004", "ITEM-1", "7"},
	)
	receipts := newTable(receiptColumns(),
		[]string{"R-001", "2025-01-10"},
		[]string{"R-002", "2025-01-20"},
		[]string{"R-003", "2025-01-05"},
		[]string{"R-005", "2025-01-02"},
	)

	result, err := (&orderDeliveryReport{}).Compute(Inputs{
		domain.TablePurchaseOrders:   pos,
		domain.TablePurchaseReceipts: receipts,
		domain.TablePurchaseLines:    lines,
	}, testParams())
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	if got := result.Metrics["Total_POs"]; got != 5 {
		t.Errorf("Total_POs = %v, want 5", got)
	}
	if got := result.Metrics["On_Time"]; got != 2 {
		t.Errorf("On_Time = %v, want 2", got)
	}
	if got := result.Metrics["Delayed"]; got != 1 {
		t.Errorf("Delayed = %v, want 1", got)
	}
	if got := result.Metrics["No_Receipt"]; got != 2 {
		t.Errorf("No_Receipt = %v, want 2", got)
	}
	// The on-time percentage only considers POs with a usable receipt.
	if got := result.Metrics["On_Time_Pct"]; got != 66.67 {
		t.Errorf("On_Time_Pct = %v, want 66.67", got)
	}

	details, ok := result.Detail.([]domain.DeliveryDetail)
	if !ok {
		t.Fatalf("Detail has type %T, want []domain.DeliveryDetail", result.Detail)
	}
	byPO := make(map[string]domain.DeliveryDetail, len(details))
	for _, d := range details {
		byPO[d.PONo] = d
	}

	if got := byPO["PO-001"]; got.Status != domain.DeliveryOnTime || got.DaysDifference != 9 {
		t.Errorf("PO-001 = %q after %d days, want On-Time after 9", got.Status, got.DaysDifference)
	}
	if got := byPO["PO-001"]; got.OutstandingQty != 12.5 {
		t.Errorf("PO-001 outstanding = %v, want 12.5", got.OutstandingQty)
	}
	if got := byPO["PO-002"]; got.Status != domain.DeliveryLate || got.DaysDifference != 19 {
		t.Errorf("PO-002 = %q after %d days, want Late after 19", got.Status, got.DaysDifference)
	}
	if got, ok := byPO["PO-003"]; !ok || got.Status != domain.DeliveryOnTime {
		t.Errorf("PO-003 = %+v, want upper-cased key joined to On-Time", got)
	}
	if got := byPO["PO-004"]; got.Status != domain.DeliveryNoReceipt || !got.ReceiptDate.IsZero() {
		t.Errorf("PO-004 = %+v, want No Receipt with zero receipt date", got)
	}
	if got := byPO["PO-005"]; got.Status != domain.DeliveryNoReceipt || got.DaysDifference != -8 {
		t.Errorf("PO-005 = %q after %d days, want No Receipt after -8", got.Status, got.DaysDifference)
	}

	trend, ok := result.Grouped.([]domain.MonthStatusCount)
	if !ok {
		t.Fatalf("Grouped has type %T, want []domain.MonthStatusCount", result.Grouped)
	}
	// January: 2 on time, 1 late. PO-004 has no receipt month; PO-005's
	// negative difference stays out of the status trend.
	wantTrend := []domain.MonthStatusCount{
		{Month: "2025-01", Status: domain.DeliveryOnTime, Count: 2},
		{Month: "2025-01", Status: domain.DeliveryLate, Count: 1},
	}
	if len(trend) != len(wantTrend) {
		t.Fatalf("trend has %d entries, want %d", len(trend), len(wantTrend))
	}
	for i, want := range wantTrend {
		if trend[i] != want {
			t.Errorf("trend[%d] = %+v, want %+v", i, trend[i], want)
		}
	}
}
