// internal/report/report.go
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/lumenfab/kpi-dashboard/internal/config"
	"github.com/lumenfab/kpi-dashboard/internal/domain"
	"github.com/lumenfab/kpi-dashboard/internal/table"
)

// Inputs holds the table snapshots a report computes from, keyed by
// upload kind. The engine treats every table as a read-only value
// snapshot taken at call time.
type Inputs map[domain.TableKind]*table.Table

// Get returns one required input table or a MissingTableError.
func (in Inputs) Get(report string, kind domain.TableKind) (*table.Table, error) {
	t, ok := in[kind]
	if !ok || t == nil {
		return nil, &MissingTableError{Report: report, Kind: kind}
	}
	return t, nil
}

// Params carries the classification constants plus the injectable
// reference date used by dormancy math. Passing AsOf explicitly keeps
// repeated runs over the same snapshot bit-identical.
type Params struct {
	config.ReportConfig
	AsOf time.Time
}

// Report is one KPI report computation. Implementations are pure: no
// I/O, no clock access, no shared state between invocations.
type Report interface {
	// Name returns the unique identifier of this report
	Name() string

	// Inputs returns the table kinds this report requires
	Inputs() []domain.TableKind

	// Compute derives the report's metrics and views from the given
	// table snapshots
	Compute(in Inputs, p Params) (*domain.Result, error)
}

// MissingColumnError is the fatal schema error: a required column could
// not be resolved under any of its accepted header spellings.
type MissingColumnError struct {
	Report  string
	Field   string
	Aliases []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("report %s: required column %q not found (accepted headers: %s)",
		e.Report, e.Field, strings.Join(e.Aliases, ", "))
}

// MissingTableError signals that a report was invoked without one of its
// required input tables.
type MissingTableError struct {
	Report string
	Kind   domain.TableKind
}

func (e *MissingTableError) Error() string {
	return fmt.Sprintf("report %s: input table %q has not been uploaded", e.Report, e.Kind)
}

var registry = []Report{
	&transfersReport{},
	&inventoryDormancyReport{},
	&vendorOnTimeReport{},
	&orderDeliveryReport{},
	&vendorBucketsReport{},
	&o2cCycleReport{},
	&rmPOSLAReport{},
	&shortClosureReport{},
	&stockHealthReport{},
}

// All returns every registered report in a stable order.
func All() []Report {
	out := make([]Report, len(registry))
	copy(out, registry)
	return out
}

// ByName looks up a registered report.
func ByName(name string) (Report, bool) {
	for _, r := range registry {
		if r.Name() == name {
			return r, true
		}
	}
	return nil, false
}
