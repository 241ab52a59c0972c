// internal/domain/status.go
package domain

// Transfer document status, evaluated per document after summing the
// quantities of all its lines.
const (
	TransferCompleted        = "Completed"
	TransferInTransit        = "In Transit"
	TransferPartiallyShipped = "Partially Shipped"
)

// Inventory dormancy tiers.
const (
	StockActive     = "Active"
	StockSlowMoving = "Slow-Moving"
	StockDead       = "Dead"
)

// Purchase delivery status against an SLA threshold.
const (
	DeliveryOnTime    = "On-Time"
	DeliveryLate      = "Late"
	DeliveryNoReceipt = "No Receipt"
)

// Stock health buckets, absolute quantity cutoffs.
const (
	StockBucketRed    = "RED"
	StockBucketYellow = "YELLOW"
	StockBucketGreen  = "GREEN"
)

// Short closure outcome for sales orders that were never fully shipped.
const (
	ShortClosed    = "Short_Closed"
	NotShortClosed = "Not_Short_Closed"
)
