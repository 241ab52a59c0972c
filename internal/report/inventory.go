// internal/report/inventory.go
package report

import (
	"sort"
	"time"

	"github.com/lumenfab/kpi-dashboard/internal/domain"
)

// inventoryDormancyReport tiers current stock positions by how long ago
// they last moved outward. The reference date is injected via Params so
// repeated runs over the same snapshot stay reproducible.
type inventoryDormancyReport struct{}

func (r *inventoryDormancyReport) Name() string { return "inventory_dormancy" }

func (r *inventoryDormancyReport) Inputs() []domain.TableKind {
	return []domain.TableKind{domain.TableItemLedger}
}

type stockKey struct {
	ItemNo   string
	Location string
}

type stockAgg struct {
	description string
	category    string
	subcategory string
	onHand      float64
	stockValue  float64
}

func (r *inventoryDormancyReport) Compute(in Inputs, p Params) (*domain.Result, error) {
	t, err := in.Get(r.Name(), domain.TableItemLedger)
	if err != nil {
		return nil, err
	}

	cols, err := resolveColumns(r.Name(), t, []Field{
		{Name: "item_no", Aliases: []string{"Item No.", "Item No"}},
		{Name: "location", Aliases: []string{"Location Code", "Location"}},
		{Name: "posting_date", Aliases: []string{"Posting Date"}},
		{Name: "quantity", Aliases: []string{"Quantity"}},
		{Name: "remaining_qty", Aliases: []string{"Remaining Quantity", "Remaining Qty"}},
		{Name: "cost", Aliases: []string{"Cost Amount (Actual)", "Cost Amount"}},
		{Name: "description", Aliases: []string{"Description"}},
		{Name: "category", Aliases: []string{"Item Category Code"}},
		{Name: "subcategory", Aliases: []string{"Item Subcategory Code"}},
	})
	if err != nil {
		return nil, err
	}

	result := &domain.Result{Report: r.Name(), Metrics: map[string]float64{}}

	// One pass over the ledger builds both sides of the merge: the last
	// outward movement per (item, location), and the current stock
	// position from entries that still have remaining quantity.
	lastOutward := make(map[stockKey]time.Time)
	positions := make(map[stockKey]*stockAgg)
	dropped := 0
	for _, row := range t.Rows {
		itemNo := cleanKey(cols.cell(row, "item_no"), false)
		if itemNo == "" {
			dropped++
			continue
		}
		location := cleanKey(cols.cell(row, "location"), false)
		if location == "" {
			location = "UNKNOWN"
		}
		key := stockKey{ItemNo: itemNo, Location: location}

		quantity := parseNumber(cols.cell(row, "quantity"))
		if quantity < 0 {
			if postingDate, ok := parseDate(cols.cell(row, "posting_date")); ok {
				if postingDate.After(lastOutward[key]) {
					lastOutward[key] = postingDate
				}
			}
		}

		remaining := parseNumber(cols.cell(row, "remaining_qty"))
		if remaining > 0 {
			agg, ok := positions[key]
			if !ok {
				agg = &stockAgg{
					description: cols.cell(row, "description"),
					category:    cleanKey(cols.cell(row, "category"), false),
					subcategory: cleanKey(cols.cell(row, "subcategory"), false),
				}
				positions[key] = agg
			}
			agg.onHand += remaining
			agg.stockValue += parseNumber(cols.cell(row, "cost"))
		}
	}
	result.Diagnostics.Drop(domain.TableItemLedger, dropped)

	items := make([]domain.DormantStock, 0, len(positions))
	var totalValue, slowValue, deadValue float64
	statusCounts := map[string]int{}
	for key, agg := range positions {
		outward, moved := lastOutward[key]
		daysDormant := -1
		if moved {
			daysDormant = daysBetween(outward, p.AsOf)
		}
		status := dormancyStatus(daysDormant, !moved, agg.onHand, p.SlowMovingDays, p.DeadStockDays)

		statusCounts[status]++
		totalValue += agg.stockValue
		switch status {
		case domain.StockSlowMoving:
			slowValue += agg.stockValue
		case domain.StockDead:
			deadValue += agg.stockValue
		}

		items = append(items, domain.DormantStock{
			ItemNo:      key.ItemNo,
			Location:    key.Location,
			Description: agg.description,
			Category:    agg.category,
			Subcategory: agg.subcategory,
			OnHand:      agg.onHand,
			StockValue:  agg.stockValue,
			LastOutward: outward,
			DaysDormant: daysDormant,
			NeverMoved:  !moved,
			Status:      status,
		})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].ItemNo != items[j].ItemNo {
			return items[i].ItemNo < items[j].ItemNo
		}
		return items[i].Location < items[j].Location
	})

	result.Metrics["Total_Items"] = float64(len(items))
	result.Metrics["Active_Items"] = float64(statusCounts[domain.StockActive])
	result.Metrics["Slow_Moving_Items"] = float64(statusCounts[domain.StockSlowMoving])
	result.Metrics["Dead_Items"] = float64(statusCounts[domain.StockDead])
	result.Metrics["Total_Value"] = totalValue
	result.Metrics["Slow_Moving_Value"] = slowValue
	result.Metrics["Dead_Value"] = deadValue
	result.Metrics["Slow_Pct"] = percent(slowValue, totalValue)
	result.Metrics["Dead_Pct"] = percent(deadValue, totalValue)
	result.Detail = items

	return result, nil
}
