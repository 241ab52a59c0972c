package report

import (
	"testing"

	"github.com/lumenfab/kpi-dashboard/internal/domain"
)

func transferColumns() []string {
	return []string{
		"Document No.", "Transfer-from Code", "Transfer-to Code",
		"Quantity", "Quantity Shipped", "Quantity Received", "Created At",
	}
}

func TestTransfersCompute(t *testing.T) {
	tbl := newTable(transferColumns(),
		// TR-001: two lines, everything received.
		[]string{"TR-001", "LF-A", "LF-B", "60", "60", "60", "2025-01-05"},
		[]string{"TR-001", "LF-A", "LF-B", "40", "40", "40", "2025-01-06"},
		// TR-002: fully shipped, partially received.
		[]string{"TR-002", "LF-A", "LF-C", "100", "100", "40", "2025-01-10"},
		// TR-003: partially shipped.
		[]string{"TR-003", "LF-B", "LF-C", "100", "60", "20", "2025-02-01"},
		// Out of scope: destination is not an in-scope location.
		[]string{"TR-004", "LF-A", "EXT-1", "10", "10", "10", "2025-02-02"},
		// Malformed: no document number.
		[]string{"", "LF-A", "LF-B", "5", "5", "5", "2025-02-03"},
		// Malformed: unparsable created date.
		[]string{"TR-005", "LF-A", "LF-B", "5", "5", "5", "soon"},
	)

	result, err := (&transfersReport{}).Compute(
		Inputs{domain.TableTransferLines: tbl}, testParams())
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	if got := result.Metrics["Total"]; got != 3 {
		t.Errorf("Total = %v, want 3", got)
	}
	if got := result.Metrics["Completed"]; got != 1 {
		t.Errorf("Completed = %v, want 1", got)
	}
	if got := result.Metrics["In_Transit"]; got != 1 {
		t.Errorf("In_Transit = %v, want 1", got)
	}
	if got := result.Metrics["Partially_Shipped"]; got != 1 {
		t.Errorf("Partially_Shipped = %v, want 1", got)
	}
	if got := result.Metrics["Completed_Pct"]; got != 33.33 {
		t.Errorf("Completed_Pct = %v, want 33.33", got)
	}
	if got := result.Diagnostics.DroppedRows[domain.TableTransferLines]; got != 2 {
		t.Errorf("dropped rows = %d, want 2", got)
	}

	docs, ok := result.Detail.([]domain.TransferDoc)
	if !ok {
		t.Fatalf("Detail has type %T, want []domain.TransferDoc", result.Detail)
	}
	if len(docs) != 3 {
		t.Fatalf("detail has %d docs, want 3", len(docs))
	}

	first := docs[0]
	if first.DocumentNo != "TR-001" {
		t.Fatalf("first doc = %q, want TR-001 (sorted)", first.DocumentNo)
	}
	if first.TotalQty != 100 || first.ShippedQty != 100 || first.ReceivedQty != 100 {
		t.Errorf("TR-001 quantities = %v/%v/%v, want 100/100/100",
			first.TotalQty, first.ShippedQty, first.ReceivedQty)
	}
	if first.Status != domain.TransferCompleted {
		t.Errorf("TR-001 status = %q, want Completed", first.Status)
	}
	if first.Month != "2025-01" {
		t.Errorf("TR-001 month = %q, want 2025-01 (earliest line)", first.Month)
	}
	if docs[1].InTransitQty != 60 {
		t.Errorf("TR-002 in-transit qty = %v, want 60", docs[1].InTransitQty)
	}

	trend, ok := result.Grouped.([]domain.MonthStatusCount)
	if !ok {
		t.Fatalf("Grouped has type %T, want []domain.MonthStatusCount", result.Grouped)
	}
	if len(trend) != 3 {
		t.Fatalf("trend has %d entries, want 3", len(trend))
	}
	if trend[0].Month != "2025-01" || trend[0].Status != domain.TransferCompleted || trend[0].Count != 1 {
		t.Errorf("unexpected first trend entry: %+v", trend[0])
	}
}

func TestTransfersComputeIdempotent(t *testing.T) {
	tbl := newTable(transferColumns(),
		[]string{"TR-001", "LF-A", "LF-B", "100", "100", "100", "2025-01-05"},
		[]string{"TR-002", "LF-A", "LF-B", "100", "50", "0", "2025-01-06"},
	)
	in := Inputs{domain.TableTransferLines: tbl}

	first, err := (&transfersReport{}).Compute(in, testParams())
	if err != nil {
		t.Fatalf("first Compute failed: %v", err)
	}
	second, err := (&transfersReport{}).Compute(in, testParams())
	if err != nil {
		t.Fatalf("second Compute failed: %v", err)
	}
	for name, want := range first.Metrics {
		if got := second.Metrics[name]; got != want {
			t.Errorf("metric %s changed between runs: %v then %v", name, want, got)
		}
	}
}

func TestTransfersMissingTable(t *testing.T) {
	_, err := (&transfersReport{}).Compute(Inputs{}, testParams())
	if err == nil {
		t.Fatal("expected MissingTableError")
	}
}
