// internal/report/classify.go
package report

import "github.com/lumenfab/kpi-dashboard/internal/domain"

// Classifier rules. Each is a total function over an already-resolved
// record; none of them reads anything but its arguments.

// transferStatus classifies a transfer document from its summed
// quantities. Received catching up to shipped wins over the shipped
// check, so increasing the received quantity never demotes a document.
func transferStatus(totalQty, shippedQty, receivedQty float64) string {
	switch {
	case receivedQty >= shippedQty:
		return domain.TransferCompleted
	case shippedQty >= totalQty:
		return domain.TransferInTransit
	default:
		return domain.TransferPartiallyShipped
	}
}

// dormancyStatus tiers an (item, location) stock position by days since
// its last outward movement. On-hand stock with no outward history at
// all is dead, not active: it has never moved.
func dormancyStatus(daysDormant int, neverMoved bool, onHand float64, slowDays, deadDays int) string {
	if neverMoved {
		if onHand > 0 {
			return domain.StockDead
		}
		return domain.StockActive
	}
	switch {
	case daysDormant > deadDays:
		return domain.StockDead
	case daysDormant > slowDays:
		return domain.StockSlowMoving
	default:
		return domain.StockActive
	}
}

// slaStatus labels delivery days against an SLA threshold. Callers must
// exclude negative delivery days before classification.
func slaStatus(deliveryDays, slaDays int) string {
	if deliveryDays <= slaDays {
		return domain.DeliveryOnTime
	}
	return domain.DeliveryLate
}

// stockBucket assigns the absolute-cutoff stock health bucket.
func stockBucket(qty, redMax, yellowMax float64) string {
	switch {
	case qty <= redMax:
		return domain.StockBucketRed
	case qty <= yellowMax:
		return domain.StockBucketYellow
	default:
		return domain.StockBucketGreen
	}
}
