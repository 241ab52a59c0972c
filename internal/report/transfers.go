// internal/report/transfers.go
package report

import (
	"sort"
	"strings"
	"time"

	"github.com/lumenfab/kpi-dashboard/internal/domain"
)

// transfersReport tracks internal transfer orders between in-scope
// locations and classifies each document as completed, in transit or
// partially shipped.
type transfersReport struct{}

func (r *transfersReport) Name() string { return "transfers" }

func (r *transfersReport) Inputs() []domain.TableKind {
	return []domain.TableKind{domain.TableTransferLines}
}

type transferAgg struct {
	totalQty    float64
	shippedQty  float64
	receivedQty float64
	earliest    time.Time
}

func (r *transfersReport) Compute(in Inputs, p Params) (*domain.Result, error) {
	t, err := in.Get(r.Name(), domain.TableTransferLines)
	if err != nil {
		return nil, err
	}

	cols, err := resolveColumns(r.Name(), t, []Field{
		{Name: "document_no", Aliases: []string{"Document No.", "Document No"}},
		{Name: "from_code", Aliases: []string{"Transfer-from Code"}},
		{Name: "to_code", Aliases: []string{"Transfer-to Code"}},
		{Name: "quantity", Aliases: []string{"Quantity"}},
		{Name: "qty_shipped", Aliases: []string{"Quantity Shipped"}},
		{Name: "qty_received", Aliases: []string{"Quantity Received"}},
		{Name: "created_at", Aliases: []string{"Created At", "Created Date"}},
	})
	if err != nil {
		return nil, err
	}

	result := &domain.Result{Report: r.Name(), Metrics: map[string]float64{}}

	// Sum line quantities per document. Only transfers moving stock
	// between in-scope locations (both codes share the configured
	// prefix) belong to the target population.
	groups := make(map[string]*transferAgg)
	dropped := 0
	for _, row := range t.Rows {
		docNo := cleanKey(cols.cell(row, "document_no"), false)
		createdAt, ok := parseDate(cols.cell(row, "created_at"))
		if docNo == "" || !ok {
			dropped++
			continue
		}

		fromCode := cleanKey(cols.cell(row, "from_code"), false)
		toCode := cleanKey(cols.cell(row, "to_code"), false)
		if !strings.HasPrefix(fromCode, p.LocationPrefix) || !strings.HasPrefix(toCode, p.LocationPrefix) {
			continue
		}

		agg, ok := groups[docNo]
		if !ok {
			agg = &transferAgg{earliest: createdAt}
			groups[docNo] = agg
		}
		agg.totalQty += parseNumber(cols.cell(row, "quantity"))
		agg.shippedQty += parseNumber(cols.cell(row, "qty_shipped"))
		agg.receivedQty += parseNumber(cols.cell(row, "qty_received"))
		if createdAt.Before(agg.earliest) {
			agg.earliest = createdAt
		}
	}
	result.Diagnostics.Drop(domain.TableTransferLines, dropped)

	docs := make([]domain.TransferDoc, 0, len(groups))
	statusCounts := map[string]int{}
	for docNo, agg := range groups {
		status := transferStatus(agg.totalQty, agg.shippedQty, agg.receivedQty)
		statusCounts[status]++
		docs = append(docs, domain.TransferDoc{
			DocumentNo:   docNo,
			TotalQty:     agg.totalQty,
			ShippedQty:   agg.shippedQty,
			ReceivedQty:  agg.receivedQty,
			InTransitQty: agg.shippedQty - agg.receivedQty,
			Status:       status,
			Month:        monthKey(agg.earliest),
		})
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].DocumentNo < docs[j].DocumentNo })

	total := len(docs)
	result.Metrics["Total"] = float64(total)
	result.Metrics["Completed"] = float64(statusCounts[domain.TransferCompleted])
	result.Metrics["In_Transit"] = float64(statusCounts[domain.TransferInTransit])
	result.Metrics["Partially_Shipped"] = float64(statusCounts[domain.TransferPartiallyShipped])
	result.Metrics["Completed_Pct"] = percent(float64(statusCounts[domain.TransferCompleted]), float64(total))
	result.Detail = docs

	// Monthly status trend for the dashboard chart.
	byMonth := make(map[string]map[string]int)
	for _, d := range docs {
		if byMonth[d.Month] == nil {
			byMonth[d.Month] = make(map[string]int)
		}
		byMonth[d.Month][d.Status]++
	}
	var trend []domain.MonthStatusCount
	for _, month := range sortedMonths(byMonth) {
		for _, status := range []string{domain.TransferCompleted, domain.TransferInTransit, domain.TransferPartiallyShipped} {
			if n := byMonth[month][status]; n > 0 {
				trend = append(trend, domain.MonthStatusCount{Month: month, Status: status, Count: n})
			}
		}
	}
	result.Grouped = trend

	return result, nil
}
