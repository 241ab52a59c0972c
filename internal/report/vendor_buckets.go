// internal/report/vendor_buckets.go
package report

import (
	"sort"

	"github.com/lumenfab/kpi-dashboard/internal/domain"
)

// vendorBucketsReport summarizes pre-assigned vendor performance
// buckets. The bucket labels are consumed as-is; this report only
// counts and shares, it never scores.
type vendorBucketsReport struct{}

func (r *vendorBucketsReport) Name() string { return "vendor_buckets" }

func (r *vendorBucketsReport) Inputs() []domain.TableKind {
	return []domain.TableKind{domain.TableVendorPerformance}
}

func (r *vendorBucketsReport) Compute(in Inputs, p Params) (*domain.Result, error) {
	t, err := in.Get(r.Name(), domain.TableVendorPerformance)
	if err != nil {
		return nil, err
	}

	cols, err := resolveColumns(r.Name(), t, []Field{
		{Name: "vendor", Aliases: []string{"Vendor Name", "Vendor"}},
		{Name: "bucket", Aliases: []string{"Performance Bucket", "Bucket"}},
	})
	if err != nil {
		return nil, err
	}

	result := &domain.Result{Report: r.Name(), Metrics: map[string]float64{}}

	counts := make(map[string]int)
	dropped := 0
	total := 0
	for _, row := range t.Rows {
		vendor := cleanKey(cols.cell(row, "vendor"), false)
		bucket := cleanKey(cols.cell(row, "bucket"), false)
		if vendor == "" || bucket == "" {
			dropped++
			continue
		}
		counts[bucket]++
		total++
	}
	result.Diagnostics.Drop(domain.TableVendorPerformance, dropped)

	shares := make([]domain.BucketShare, 0, len(counts))
	for bucket, count := range counts {
		shares = append(shares, domain.BucketShare{
			Bucket:      bucket,
			VendorCount: count,
			Percentage:  percent(float64(count), float64(total)),
		})
	}
	// Largest bucket first, ties broken by label for determinism.
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].VendorCount != shares[j].VendorCount {
			return shares[i].VendorCount > shares[j].VendorCount
		}
		return shares[i].Bucket < shares[j].Bucket
	})

	result.Metrics["Total_Vendors"] = float64(total)
	result.Grouped = shares

	return result, nil
}
