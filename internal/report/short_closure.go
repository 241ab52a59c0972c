// internal/report/short_closure.go
package report

import (
	"github.com/lumenfab/kpi-dashboard/internal/domain"
)

// shortClosureReport partitions the sales orders that never shipped
// completely by their stored short-closed flag. The flag is taken at
// face value; nothing is inferred.
type shortClosureReport struct{}

func (r *shortClosureReport) Name() string { return "short_closure" }

func (r *shortClosureReport) Inputs() []domain.TableKind {
	return []domain.TableKind{domain.TableSalesOrders}
}

func (r *shortClosureReport) Compute(in Inputs, p Params) (*domain.Result, error) {
	t, err := in.Get(r.Name(), domain.TableSalesOrders)
	if err != nil {
		return nil, err
	}

	cols, err := resolveColumns(r.Name(), t, []Field{
		{Name: "so_no", Aliases: []string{"No.", "No", "Document No."}},
		{Name: "so_date", Aliases: []string{"Document Date"}},
		{Name: "completely_shipped", Aliases: []string{"Completely Shipped"}},
		{Name: "short_closed", Aliases: []string{"Short Closed"}},
	})
	if err != nil {
		return nil, err
	}

	result := &domain.Result{Report: r.Name(), Metrics: map[string]float64{}}

	type monthAgg struct {
		total       int
		shortClosed int
	}
	byMonth := make(map[string]*monthAgg)
	totalNonShipped := 0
	totalShortClosed := 0
	dropped := 0
	for _, row := range t.Rows {
		soNo := cleanKey(cols.cell(row, "so_no"), true)
		soDate, ok := parseDate(cols.cell(row, "so_date"))
		if soNo == "" || !ok {
			dropped++
			continue
		}
		if parseFlag(cols.cell(row, "completely_shipped")) {
			continue
		}

		month := monthKey(soDate)
		agg, ok := byMonth[month]
		if !ok {
			agg = &monthAgg{}
			byMonth[month] = agg
		}
		agg.total++
		totalNonShipped++
		if parseFlag(cols.cell(row, "short_closed")) {
			agg.shortClosed++
			totalShortClosed++
		}
	}
	result.Diagnostics.Drop(domain.TableSalesOrders, dropped)

	monthly := make([]domain.ShortClosureMonth, 0, len(byMonth))
	for _, month := range sortedMonths(byMonth) {
		agg := byMonth[month]
		monthly = append(monthly, domain.ShortClosureMonth{
			Month:            month,
			TotalNonShipped:  agg.total,
			ShortClosedCount: agg.shortClosed,
			NotShortClosed:   agg.total - agg.shortClosed,
		})
	}

	result.Metrics["Total_Non_Shipped"] = float64(totalNonShipped)
	result.Metrics["Short_Closed"] = float64(totalShortClosed)
	result.Metrics["Not_Short_Closed"] = float64(totalNonShipped - totalShortClosed)
	result.Metrics["Short_Closed_Pct"] = percent(float64(totalShortClosed), float64(totalNonShipped))
	result.Grouped = monthly

	return result, nil
}
