// internal/domain/tables.go
package domain

// TableKind identifies one of the uploaded operational sheets the engine
// can consume. Upload handlers and the cache key on these values.
type TableKind string

const (
	TableTransferLines     TableKind = "transfer_lines"
	TableItemLedger        TableKind = "item_ledger"
	TablePurchaseOrders    TableKind = "purchase_orders"
	TablePurchaseReceipts  TableKind = "purchase_receipts"
	TablePurchaseLines     TableKind = "purchase_lines"
	TableSalesOrders       TableKind = "sales_orders"
	TableSalesInvoices     TableKind = "sales_invoices"
	TableItems             TableKind = "items"
	TableVendorPerformance TableKind = "vendor_performance"
)

// AllTableKinds lists every accepted upload kind.
var AllTableKinds = []TableKind{
	TableTransferLines,
	TableItemLedger,
	TablePurchaseOrders,
	TablePurchaseReceipts,
	TablePurchaseLines,
	TableSalesOrders,
	TableSalesInvoices,
	TableItems,
	TableVendorPerformance,
}

// ParseTableKind validates an upload kind from a request path.
func ParseTableKind(s string) (TableKind, bool) {
	for _, k := range AllTableKinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}
