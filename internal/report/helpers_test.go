package report

import (
	"time"

	"github.com/lumenfab/kpi-dashboard/internal/config"
	"github.com/lumenfab/kpi-dashboard/internal/table"
)

func newTable(columns []string, rows ...[]string) *table.Table {
	t := table.New(columns)
	for _, row := range rows {
		t.Append(row)
	}
	return t
}

func testParams() Params {
	return Params{
		ReportConfig: config.ReportConfig{
			VendorSLADays:     10,
			DeliverySLADays:   15,
			SlowMovingDays:    60,
			DeadStockDays:     365,
			StockRedMaxQty:    50000,
			StockYellowMaxQty: 200000,
			O2CMaxValidDays:   365,
			LocationPrefix:    "LF-",
			RawMaterialGroup:  "RM",
			PackagingGroup:    "PM",
			VendorTargetPct:   95,
		},
		AsOf: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}
