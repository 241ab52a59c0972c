// internal/report/rm_sla.go
package report

import (
	"sort"

	"github.com/lumenfab/kpi-dashboard/internal/domain"
)

// rmPOSLAReport measures the vendor SLA over the raw-material purchase
// order population. A PO belongs to that population when at least one of
// its lines references a raw-material item; majority is not required.
type rmPOSLAReport struct{}

func (r *rmPOSLAReport) Name() string { return "rm_po_sla" }

func (r *rmPOSLAReport) Inputs() []domain.TableKind {
	return []domain.TableKind{domain.TableItems, domain.TablePurchaseOrders, domain.TablePurchaseReceipts, domain.TablePurchaseLines}
}

func (r *rmPOSLAReport) Compute(in Inputs, p Params) (*domain.Result, error) {
	itemTable, err := in.Get(r.Name(), domain.TableItems)
	if err != nil {
		return nil, err
	}
	poTable, err := in.Get(r.Name(), domain.TablePurchaseOrders)
	if err != nil {
		return nil, err
	}
	receiptTable, err := in.Get(r.Name(), domain.TablePurchaseReceipts)
	if err != nil {
		return nil, err
	}
	lineTable, err := in.Get(r.Name(), domain.TablePurchaseLines)
	if err != nil {
		return nil, err
	}

	result := &domain.Result{Report: r.Name(), Metrics: map[string]float64{}}

	postingGroups, dropped, err := itemGroupIndex(r.Name(), itemTable, []string{"Inventory Posting Group"})
	if err != nil {
		return nil, err
	}
	result.Diagnostics.Drop(domain.TableItems, dropped)

	rmItems := make(map[string]bool)
	for itemNo, group := range postingGroups {
		if group == p.RawMaterialGroup {
			rmItems[itemNo] = true
		}
	}

	lines, dropped, err := parsePOLines(r.Name(), lineTable, false)
	if err != nil {
		return nil, err
	}
	result.Diagnostics.Drop(domain.TablePurchaseLines, dropped)

	pos, dropped, err := parsePOs(r.Name(), poTable, []string{"Buy-from Vendor Name", "Pay-to Name"}, false)
	if err != nil {
		return nil, err
	}
	result.Diagnostics.Drop(domain.TablePurchaseOrders, dropped)

	receipts, dropped, err := receiptDateIndex(r.Name(), receiptTable, false)
	if err != nil {
		return nil, err
	}
	result.Diagnostics.Drop(domain.TablePurchaseReceipts, dropped)

	rmPOs := rmPOSet(lines, rmItems)
	completed := completedPOSet(lines)

	details := make([]domain.SLADetail, 0, len(pos))
	onTime := 0
	for _, po := range pos {
		if !rmPOs[po.No] || !completed[po.No] || po.OrderDate.IsZero() {
			continue
		}
		receiptDate, ok := receipts[po.LastReceivingNo]
		if !ok {
			continue
		}
		days := daysBetween(po.OrderDate, receiptDate)
		if days < 0 {
			continue
		}

		status := slaStatus(days, p.VendorSLADays)
		if status == domain.DeliveryOnTime {
			onTime++
		}
		details = append(details, domain.SLADetail{
			PONo:         po.No,
			Vendor:       po.Vendor,
			OrderDate:    po.OrderDate,
			ReceiptDate:  receiptDate,
			DeliveryDays: days,
			Status:       status,
			Month:        monthKey(po.OrderDate),
		})
	}
	sort.Slice(details, func(i, j int) bool { return details[i].PONo < details[j].PONo })

	// Month-by-status counts for the stacked monthly chart.
	byMonth := make(map[string]map[string]int)
	for _, d := range details {
		if byMonth[d.Month] == nil {
			byMonth[d.Month] = make(map[string]int)
		}
		byMonth[d.Month][d.Status]++
	}
	var monthly []domain.MonthStatusCount
	for _, month := range sortedMonths(byMonth) {
		for _, status := range []string{domain.DeliveryOnTime, domain.DeliveryLate} {
			if n := byMonth[month][status]; n > 0 {
				monthly = append(monthly, domain.MonthStatusCount{Month: month, Status: status, Count: n})
			}
		}
	}

	total := len(details)
	result.Metrics["Total_RM_POs"] = float64(total)
	result.Metrics["On_Time_POs"] = float64(onTime)
	result.Metrics["Late_POs"] = float64(total - onTime)
	result.Metrics["On_Time_Pct"] = percent(float64(onTime), float64(total))
	result.Detail = details
	result.Grouped = monthly

	return result, nil
}
