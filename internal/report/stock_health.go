// internal/report/stock_health.go
package report

import (
	"sort"

	"github.com/lumenfab/kpi-dashboard/internal/domain"
)

// stockHealthReport buckets every positive stock position by absolute
// remaining quantity and rolls the buckets up per location and per
// company. The packaging-material subset gets its own summary because
// packaging shortages stop production.
type stockHealthReport struct{}

func (r *stockHealthReport) Name() string { return "stock_health" }

func (r *stockHealthReport) Inputs() []domain.TableKind {
	return []domain.TableKind{domain.TableItems, domain.TableItemLedger}
}

func (r *stockHealthReport) Compute(in Inputs, p Params) (*domain.Result, error) {
	itemTable, err := in.Get(r.Name(), domain.TableItems)
	if err != nil {
		return nil, err
	}
	ledgerTable, err := in.Get(r.Name(), domain.TableItemLedger)
	if err != nil {
		return nil, err
	}

	cols, err := resolveColumns(r.Name(), ledgerTable, []Field{
		{Name: "item_no", Aliases: []string{"Item No.", "Item No"}},
		{Name: "location", Aliases: []string{"Location Code", "Location"}},
		{Name: "remaining_qty", Aliases: []string{"Remaining Quantity", "Remaining Qty"}},
	})
	if err != nil {
		return nil, err
	}

	result := &domain.Result{Report: r.Name(), Metrics: map[string]float64{}}

	productGroups, dropped, err := itemGroupIndex(r.Name(), itemTable, []string{"Gen. Prod. Posting Group", "Product Group"})
	if err != nil {
		return nil, err
	}
	result.Diagnostics.Drop(domain.TableItems, dropped)

	rows := make([]domain.StockHealthRow, 0, ledgerTable.Len())
	dropped = 0
	for _, row := range ledgerTable.Rows {
		itemNo := cleanKey(cols.cell(row, "item_no"), false)
		if itemNo == "" {
			dropped++
			continue
		}
		remaining := parseNumber(cols.cell(row, "remaining_qty"))
		if remaining <= 0 {
			continue
		}

		// Items missing from the master keep an empty product group
		// and still count toward quantity aggregation.
		rows = append(rows, domain.StockHealthRow{
			ItemNo:       itemNo,
			Location:     cleanKey(cols.cell(row, "location"), false),
			RemainingQty: remaining,
			ProductGroup: productGroups[itemNo],
			Bucket:       stockBucket(remaining, p.StockRedMaxQty, p.StockYellowMaxQty),
		})
	}
	result.Diagnostics.Drop(domain.TableItemLedger, dropped)

	type groupKey struct {
		ItemNo   string
		Location string
		Bucket   string
	}
	locationTotals := make(map[groupKey]float64)
	companyTotals := make(map[groupKey]float64)
	bucketCounts := map[string]int{}
	pmBucketCounts := map[string]int{}
	pmBucketQty := map[string]float64{}
	for _, row := range rows {
		locationTotals[groupKey{row.ItemNo, row.Location, row.Bucket}] += row.RemainingQty
		companyTotals[groupKey{ItemNo: row.ItemNo, Bucket: row.Bucket}] += row.RemainingQty
		bucketCounts[row.Bucket]++
		if row.ProductGroup == p.PackagingGroup {
			pmBucketCounts[row.Bucket]++
			pmBucketQty[row.Bucket] += row.RemainingQty
		}
	}

	toView := func(totals map[groupKey]float64) []domain.StockBucketQty {
		view := make([]domain.StockBucketQty, 0, len(totals))
		for key, qty := range totals {
			view = append(view, domain.StockBucketQty{
				ItemNo:   key.ItemNo,
				Location: key.Location,
				Bucket:   key.Bucket,
				TotalQty: qty,
			})
		}
		sort.Slice(view, func(i, j int) bool {
			if view[i].ItemNo != view[j].ItemNo {
				return view[i].ItemNo < view[j].ItemNo
			}
			if view[i].Location != view[j].Location {
				return view[i].Location < view[j].Location
			}
			return view[i].Bucket < view[j].Bucket
		})
		return view
	}

	result.Metrics["Total_Positions"] = float64(len(rows))
	result.Metrics["Red"] = float64(bucketCounts[domain.StockBucketRed])
	result.Metrics["Yellow"] = float64(bucketCounts[domain.StockBucketYellow])
	result.Metrics["Green"] = float64(bucketCounts[domain.StockBucketGreen])
	result.Metrics["PM_Red"] = float64(pmBucketCounts[domain.StockBucketRed])
	result.Metrics["PM_Yellow"] = float64(pmBucketCounts[domain.StockBucketYellow])
	result.Metrics["PM_Green"] = float64(pmBucketCounts[domain.StockBucketGreen])
	result.Metrics["PM_Red_Qty"] = pmBucketQty[domain.StockBucketRed]
	result.Metrics["PM_Yellow_Qty"] = pmBucketQty[domain.StockBucketYellow]
	result.Metrics["PM_Green_Qty"] = pmBucketQty[domain.StockBucketGreen]
	result.Detail = rows
	result.Grouped = map[string][]domain.StockBucketQty{
		"location_view": toView(locationTotals),
		"company_view":  toView(companyTotals),
	}

	return result, nil
}
