// internal/report/vendor_ontime.go
package report

import (
	"sort"

	"github.com/lumenfab/kpi-dashboard/internal/domain"
)

// vendorOnTimeReport measures the on-time delivery rate per vendor over
// completed purchase orders. Only POs with a matched receipt enter the
// population; "no receipt" excludes a PO here, unlike order delivery
// tracking which reports it as its own bucket.
type vendorOnTimeReport struct{}

func (r *vendorOnTimeReport) Name() string { return "vendor_ontime" }

func (r *vendorOnTimeReport) Inputs() []domain.TableKind {
	return []domain.TableKind{domain.TablePurchaseOrders, domain.TablePurchaseReceipts, domain.TablePurchaseLines}
}

func (r *vendorOnTimeReport) Compute(in Inputs, p Params) (*domain.Result, error) {
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

	pos, dropped, err := parsePOs(r.Name(), poTable, []string{"Pay-to Name", "Buy-from Vendor Name"}, false)
	if err != nil {
		return nil, err
	}
	result.Diagnostics.Drop(domain.TablePurchaseOrders, dropped)

	lines, dropped, err := parsePOLines(r.Name(), lineTable, false)
	if err != nil {
		return nil, err
	}
	result.Diagnostics.Drop(domain.TablePurchaseLines, dropped)

	receipts, dropped, err := receiptDateIndex(r.Name(), receiptTable, false)
	if err != nil {
		return nil, err
	}
	result.Diagnostics.Drop(domain.TablePurchaseReceipts, dropped)

	completed := completedPOSet(lines)

	details := make([]domain.SLADetail, 0, len(pos))
	vendorTotals := make(map[string]*domain.VendorKPI)
	onTimeTotal := 0
	for _, po := range pos {
		if !completed[po.No] || po.OrderDate.IsZero() {
			continue
		}
		receiptDate, ok := receipts[po.LastReceivingNo]
		if !ok {
			// A delivery date is mandatory for this metric.
			continue
		}
		deliveryDays := daysBetween(po.OrderDate, receiptDate)
		if deliveryDays < 0 {
			// Receipt posted before the order date is a data error.
			continue
		}

		status := slaStatus(deliveryDays, p.VendorSLADays)
		if status == domain.DeliveryOnTime {
			onTimeTotal++
		}

		kpi, ok := vendorTotals[po.Vendor]
		if !ok {
			kpi = &domain.VendorKPI{Vendor: po.Vendor}
			vendorTotals[po.Vendor] = kpi
		}
		kpi.TotalPOs++
		if status == domain.DeliveryOnTime {
			kpi.OnTimePOs++
		}

		details = append(details, domain.SLADetail{
			PONo:         po.No,
			Vendor:       po.Vendor,
			OrderDate:    po.OrderDate,
			ReceiptDate:  receiptDate,
			DeliveryDays: deliveryDays,
			Status:       status,
			Month:        monthKey(po.OrderDate),
		})
	}

	vendorKPIs := make([]domain.VendorKPI, 0, len(vendorTotals))
	belowTarget := 0
	for _, kpi := range vendorTotals {
		kpi.OnTimePct = percent(float64(kpi.OnTimePOs), float64(kpi.TotalPOs))
		if kpi.OnTimePct < p.VendorTargetPct {
			belowTarget++
		}
		vendorKPIs = append(vendorKPIs, *kpi)
	}
	sort.Slice(vendorKPIs, func(i, j int) bool { return vendorKPIs[i].Vendor < vendorKPIs[j].Vendor })

	result.Metrics["Total_Completed_POs"] = float64(len(details))
	result.Metrics["Overall_On_Time_Pct"] = percent(float64(onTimeTotal), float64(len(details)))
	result.Metrics["Vendors_Below_Target"] = float64(belowTarget)
	result.Detail = details
	result.Grouped = vendorKPIs

	return result, nil
}
