package report

import (
	"testing"

	"github.com/lumenfab/kpi-dashboard/internal/domain"
)

func TestTransferStatus(t *testing.T) {
	tests := []struct {
		name     string
		total    float64
		shipped  float64
		received float64
		want     string
	}{
		{"fully_received", 100, 100, 100, domain.TransferCompleted},
		{"fully_shipped_not_received", 100, 100, 40, domain.TransferInTransit},
		{"partially_shipped", 100, 60, 20, domain.TransferPartiallyShipped},
		{"nothing_shipped", 100, 0, 0, domain.TransferPartiallyShipped},
		{"over_received", 100, 80, 90, domain.TransferCompleted},
		{"received_equals_shipped_under_total", 100, 60, 60, domain.TransferCompleted},
		{"zero_document", 0, 0, 0, domain.TransferCompleted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := transferStatus(tt.total, tt.shipped, tt.received)
			if got != tt.want {
				t.Errorf("transferStatus(%v, %v, %v) = %q, want %q",
					tt.total, tt.shipped, tt.received, got, tt.want)
			}
		})
	}
}

func TestDormancyStatus(t *testing.T) {
	const slowDays, deadDays = 60, 365

	tests := []struct {
		name       string
		days       int
		neverMoved bool
		onHand     float64
		want       string
	}{
		{"recent_movement", 10, false, 100, domain.StockActive},
		{"exactly_slow_threshold", 60, false, 100, domain.StockActive},
		{"just_past_slow_threshold", 61, false, 100, domain.StockSlowMoving},
		{"exactly_dead_threshold", 365, false, 100, domain.StockSlowMoving},
		{"just_past_dead_threshold", 366, false, 100, domain.StockDead},
		{"never_moved_with_stock", -1, true, 50, domain.StockDead},
		{"never_moved_no_stock", -1, true, 0, domain.StockActive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dormancyStatus(tt.days, tt.neverMoved, tt.onHand, slowDays, deadDays)
			if got != tt.want {
				t.Errorf("dormancyStatus(%d, %v, %v) = %q, want %q",
					tt.days, tt.neverMoved, tt.onHand, got, tt.want)
			}
		})
	}
}

func TestSLAStatus(t *testing.T) {
	tests := []struct {
		name string
		days int
		sla  int
		want string
	}{
		{"well_within_sla", 3, 10, domain.DeliveryOnTime},
		{"exactly_on_sla", 10, 10, domain.DeliveryOnTime},
		{"one_day_late", 11, 10, domain.DeliveryLate},
		{"same_day_delivery", 0, 10, domain.DeliveryOnTime},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slaStatus(tt.days, tt.sla)
			if got != tt.want {
				t.Errorf("slaStatus(%d, %d) = %q, want %q", tt.days, tt.sla, got, tt.want)
			}
		})
	}
}

func TestStockBucket(t *testing.T) {
	const redMax, yellowMax = 50000.0, 200000.0

	tests := []struct {
		name string
		qty  float64
		want string
	}{
		{"small_qty", 100, domain.StockBucketRed},
		{"exactly_red_max", 50000, domain.StockBucketRed},
		{"just_past_red_max", 50001, domain.StockBucketYellow},
		{"exactly_yellow_max", 200000, domain.StockBucketYellow},
		{"just_past_yellow_max", 200001, domain.StockBucketGreen},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stockBucket(tt.qty, redMax, yellowMax)
			if got != tt.want {
				t.Errorf("stockBucket(%v) = %q, want %q", tt.qty, got, tt.want)
			}
		})
	}
}
