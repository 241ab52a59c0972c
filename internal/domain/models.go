// internal/domain/models.go
package domain

import "time"

// TransferDoc is one transfer document after its lines have been summed.
type TransferDoc struct {
	DocumentNo   string  `json:"document_no"`
	TotalQty     float64 `json:"total_qty"`
	ShippedQty   float64 `json:"shipped_qty"`
	ReceivedQty  float64 `json:"received_qty"`
	InTransitQty float64 `json:"in_transit_qty"`
	Status       string  `json:"status"`
	Month        string  `json:"month"`
}

// DormantStock is one (item, location) pair with current on-hand stock
// and its dormancy classification. DaysDormant is -1 for stock that has
// never moved outward.
type DormantStock struct {
	ItemNo      string    `json:"item_no"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Subcategory string    `json:"subcategory"`
	OnHand      float64   `json:"on_hand"`
	StockValue  float64   `json:"stock_value"`
	LastOutward time.Time `json:"last_outward,omitempty"`
	DaysDormant int       `json:"days_dormant"`
	NeverMoved  bool      `json:"never_moved"`
	Status      string    `json:"status"`
}

// VendorKPI aggregates completed purchase orders per vendor.
type VendorKPI struct {
	Vendor    string  `json:"vendor"`
	TotalPOs  int     `json:"total_pos"`
	OnTimePOs int     `json:"on_time_pos"`
	OnTimePct float64 `json:"on_time_pct"`
}

// DeliveryDetail is one purchase order row in the order delivery
// tracking report. ReceiptDate is zero when the PO's last receiving
// number matched no posted receipt; such rows carry the No Receipt
// status instead of being dropped.
type DeliveryDetail struct {
	PONo            string    `json:"po_no"`
	Vendor          string    `json:"vendor"`
	OrderDate       time.Time `json:"order_date"`
	LastReceivingNo string    `json:"last_receiving_no"`
	ReceiptDate     time.Time `json:"receipt_date,omitempty"`
	OutstandingQty  float64   `json:"outstanding_qty"`
	DaysDifference  int       `json:"days_difference"`
	Status          string    `json:"status"`
	Month           string    `json:"month"`
}

// SLADetail is one completed purchase order measured against an SLA.
type SLADetail struct {
	PONo         string    `json:"po_no"`
	Vendor       string    `json:"vendor"`
	OrderDate    time.Time `json:"order_date"`
	ReceiptDate  time.Time `json:"receipt_date"`
	DeliveryDays int       `json:"delivery_days"`
	Status       string    `json:"status"`
	Month        string    `json:"month"`
}

// BucketShare is one pre-assigned vendor performance bucket with its
// share of all scored vendors.
type BucketShare struct {
	Bucket      string  `json:"bucket"`
	VendorCount int     `json:"vendor_count"`
	Percentage  float64 `json:"percentage"`
}

// O2CDetail is one sales order with a matched invoice inside the valid
// order-to-cash window.
type O2CDetail struct {
	SONo              string    `json:"so_no"`
	SODate            time.Time `json:"so_date"`
	CompletelyShipped bool      `json:"completely_shipped"`
	LatestInvoiceDate time.Time `json:"latest_invoice_date"`
	O2CDays           int       `json:"o2c_days"`
	Month             string    `json:"month"`
}

// CycleBucket is one bar of the O2C cycle-time histogram.
type CycleBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// MonthStatusCount is a generic (month, status) grouped count used by the
// RM SLA and order delivery trend views.
type MonthStatusCount struct {
	Month  string `json:"month"`
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// ShortClosureMonth is one calendar month of non-shipped sales orders
// split by their short-closed flag.
type ShortClosureMonth struct {
	Month            string `json:"month"`
	TotalNonShipped  int    `json:"total_non_shipped"`
	ShortClosedCount int    `json:"short_closed"`
	NotShortClosed   int    `json:"not_short_closed"`
}

// StockHealthRow is one ledger entry with positive remaining quantity,
// classified into a stock bucket. ProductGroup is empty when the item
// master has no matching item.
type StockHealthRow struct {
	ItemNo       string  `json:"item_no"`
	Location     string  `json:"location"`
	RemainingQty float64 `json:"remaining_qty"`
	ProductGroup string  `json:"product_group"`
	Bucket       string  `json:"bucket"`
}

// StockBucketQty is a grouped stock total. Location is empty for the
// company-level view.
type StockBucketQty struct {
	ItemNo   string  `json:"item_no"`
	Location string  `json:"location,omitempty"`
	Bucket   string  `json:"bucket"`
	TotalQty float64 `json:"total_qty"`
}

// MetricSnapshot is one persisted scalar KPI from a report run.
type MetricSnapshot struct {
	ID         int64     `json:"id" db:"id"`
	Report     string    `json:"report" db:"report"`
	Metric     string    `json:"metric" db:"metric"`
	Value      float64   `json:"value" db:"value"`
	ComputedAt time.Time `json:"computed_at" db:"computed_at"`
}
