// internal/report/o2c.go
package report

import (
	"sort"

	"github.com/lumenfab/kpi-dashboard/internal/domain"
)

// o2cCycleReport covers two KPIs over the sales order book: how much of
// it shipped completely, and how long order-to-cash takes for orders
// with at least one posted invoice. The latest invoice per order wins;
// cycles outside the valid window are excluded as data errors, not
// clamped.
type o2cCycleReport struct{}

func (r *o2cCycleReport) Name() string { return "o2c_cycle" }

func (r *o2cCycleReport) Inputs() []domain.TableKind {
	return []domain.TableKind{domain.TableSalesOrders, domain.TableSalesInvoices}
}

func (r *o2cCycleReport) Compute(in Inputs, p Params) (*domain.Result, error) {
	soTable, err := in.Get(r.Name(), domain.TableSalesOrders)
	if err != nil {
		return nil, err
	}
	invTable, err := in.Get(r.Name(), domain.TableSalesInvoices)
	if err != nil {
		return nil, err
	}

	cols, err := resolveColumns(r.Name(), soTable, []Field{
		{Name: "so_no", Aliases: []string{"No.", "No", "Document No."}},
		{Name: "so_date", Aliases: []string{"Document Date"}},
		{Name: "completely_shipped", Aliases: []string{"Completely Shipped"}},
	})
	if err != nil {
		return nil, err
	}

	result := &domain.Result{Report: r.Name(), Metrics: map[string]float64{}}

	latestInvoice, dropped, err := latestInvoiceBySO(r.Name(), invTable)
	if err != nil {
		return nil, err
	}
	result.Diagnostics.Drop(domain.TableSalesInvoices, dropped)

	totalSOs := 0
	shippedSOs := 0
	details := make([]domain.O2CDetail, 0, soTable.Len())
	var cycles []float64
	dropped = 0
	for _, row := range soTable.Rows {
		soNo := cleanKey(cols.cell(row, "so_no"), true)
		soDate, ok := parseDate(cols.cell(row, "so_date"))
		if soNo == "" || !ok {
			dropped++
			continue
		}
		shipped := parseFlag(cols.cell(row, "completely_shipped"))

		totalSOs++
		if shipped {
			shippedSOs++
		}

		// Orders with no invoice keep a missing invoice date and are
		// excluded from cycle statistics, never from the order count.
		invoiceDate, ok := latestInvoice[soNo]
		if !ok {
			continue
		}
		days := daysBetween(soDate, invoiceDate)
		if days < 0 || days > p.O2CMaxValidDays {
			continue
		}

		cycles = append(cycles, float64(days))
		details = append(details, domain.O2CDetail{
			SONo:              soNo,
			SODate:            soDate,
			CompletelyShipped: shipped,
			LatestInvoiceDate: invoiceDate,
			O2CDays:           days,
			Month:             monthKey(soDate),
		})
	}
	result.Diagnostics.Drop(domain.TableSalesOrders, dropped)
	sort.Slice(details, func(i, j int) bool { return details[i].SONo < details[j].SONo })

	result.Metrics["total_sos"] = float64(totalSOs)
	result.Metrics["shipment_pct"] = percent(float64(shippedSOs), float64(totalSOs))
	result.Metrics["avg_cycle"] = mean(cycles)
	result.Metrics["median_cycle"] = median(cycles)
	result.Metrics["p95_cycle"] = percentile(cycles, 95)
	result.Metrics["pct_7"] = shareAtMost(cycles, 7)
	result.Metrics["pct_14"] = shareAtMost(cycles, 14)
	result.Metrics["pct_30"] = shareAtMost(cycles, 30)
	result.Metrics["pct_60"] = shareAtMost(cycles, 60)
	result.Detail = details
	result.Grouped = cycleHistogram(details)

	return result, nil
}

// cycleHistogram buckets valid cycles for the distribution chart.
func cycleHistogram(details []domain.O2CDetail) []domain.CycleBucket {
	buckets := []domain.CycleBucket{
		{Label: "0-7"},
		{Label: "8-14"},
		{Label: "15-30"},
		{Label: "31-60"},
		{Label: "60+"},
	}
	for _, d := range details {
		switch {
		case d.O2CDays <= 7:
			buckets[0].Count++
		case d.O2CDays <= 14:
			buckets[1].Count++
		case d.O2CDays <= 30:
			buckets[2].Count++
		case d.O2CDays <= 60:
			buckets[3].Count++
		default:
			buckets[4].Count++
		}
	}
	return buckets
}
