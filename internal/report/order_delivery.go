// internal/report/order_delivery.go
package report

import (
	"sort"

	"github.com/lumenfab/kpi-dashboard/internal/domain"
)

// orderDeliveryReport tracks every purchase order against the delivery
// SLA. POs whose last receiving number matches no posted receipt stay in
// the detail under the No Receipt status; the on-time percentage only
// considers POs with a receipt.
type orderDeliveryReport struct{}

func (r *orderDeliveryReport) Name() string { return "order_delivery" }

func (r *orderDeliveryReport) Inputs() []domain.TableKind {
	return []domain.TableKind{domain.TablePurchaseOrders, domain.TablePurchaseReceipts, domain.TablePurchaseLines}
}

func (r *orderDeliveryReport) Compute(in Inputs, p Params) (*domain.Result, error) {
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

	// Document keys are upper-cased here: this report joins three
	// independently exported sheets and casing drifts between them.
	pos, dropped, err := parsePOs(r.Name(), poTable, []string{"Pay-to Name", "Buy-from Vendor Name"}, true)
	if err != nil {
		return nil, err
	}
	result.Diagnostics.Drop(domain.TablePurchaseOrders, dropped)

	lines, dropped, err := parsePOLines(r.Name(), lineTable, true)
	if err != nil {
		return nil, err
	}
	result.Diagnostics.Drop(domain.TablePurchaseLines, dropped)

	receipts, dropped, err := receiptDateIndex(r.Name(), receiptTable, true)
	if err != nil {
		return nil, err
	}
	result.Diagnostics.Drop(domain.TablePurchaseReceipts, dropped)

	outstanding := sumOutstandingByPO(lines)

	details := make([]domain.DeliveryDetail, 0, len(pos))
	onTime, late := 0, 0
	for _, po := range pos {
		detail := domain.DeliveryDetail{
			PONo:            po.No,
			Vendor:          po.Vendor,
			OrderDate:       po.OrderDate,
			LastReceivingNo: po.LastReceivingNo,
			Status:          domain.DeliveryNoReceipt,
		}
		if qty, ok := outstanding[po.No]; ok {
			detail.OutstandingQty, _ = qty.Float64()
		}

		if receiptDate, ok := receipts[po.LastReceivingNo]; ok && !po.OrderDate.IsZero() {
			days := daysBetween(po.OrderDate, receiptDate)
			detail.ReceiptDate = receiptDate
			detail.DaysDifference = days
			detail.Month = monthKey(receiptDate)
			// Negative day differences keep the No Receipt default:
			// a receipt posted before its order date is not evidence
			// of a delivery.
			if days >= 0 {
				detail.Status = slaStatus(days, p.DeliverySLADays)
			}
		}

		switch detail.Status {
		case domain.DeliveryOnTime:
			onTime++
		case domain.DeliveryLate:
			late++
		}
		details = append(details, detail)
	}
	sort.Slice(details, func(i, j int) bool { return details[i].PONo < details[j].PONo })

	considered := onTime + late
	result.Metrics["Total_POs"] = float64(len(details))
	result.Metrics["On_Time"] = float64(onTime)
	result.Metrics["Delayed"] = float64(late)
	result.Metrics["No_Receipt"] = float64(len(details) - considered)
	result.Metrics["On_Time_Pct"] = percent(float64(onTime), float64(considered))
	result.Detail = details

	// Monthly trend over POs with a receipt date.
	byMonth := make(map[string]map[string]int)
	for _, d := range details {
		if d.Month == "" {
			continue
		}
		if byMonth[d.Month] == nil {
			byMonth[d.Month] = make(map[string]int)
		}
		byMonth[d.Month][d.Status]++
	}
	var trend []domain.MonthStatusCount
	for _, month := range sortedMonths(byMonth) {
		for _, status := range []string{domain.DeliveryOnTime, domain.DeliveryLate} {
			if n := byMonth[month][status]; n > 0 {
				trend = append(trend, domain.MonthStatusCount{Month: month, Status: status, Count: n})
			}
		}
	}
	result.Grouped = trend

	return result, nil
}
