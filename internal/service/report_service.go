// internal/service/report_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lumenfab/kpi-dashboard/internal/cache"
	"github.com/lumenfab/kpi-dashboard/internal/config"
	"github.com/lumenfab/kpi-dashboard/internal/domain"
	"github.com/lumenfab/kpi-dashboard/internal/ingest"
	"github.com/lumenfab/kpi-dashboard/internal/report"
	"github.com/lumenfab/kpi-dashboard/internal/repository/postgres"
	"github.com/lumenfab/kpi-dashboard/internal/table"
	"github.com/lumenfab/kpi-dashboard/pkg/logger"
)

// ReportService glues the upload cache, the pure KPI engine and the
// optional snapshot history together. Every computation fetches value
// snapshots from the store once and hands them to the engine; nothing
// is read mid-computation.
type ReportService struct {
	tables    cache.TableStore
	snapshots *postgres.SnapshotRepository
	reportCfg config.ReportConfig
}

func NewReportService(tables cache.TableStore, snapshots *postgres.SnapshotRepository, reportCfg config.ReportConfig) *ReportService {
	return &ReportService{
		tables:    tables,
		snapshots: snapshots,
		reportCfg: reportCfg,
	}
}

// IngestUpload parses an uploaded workbook or CSV and replaces the
// cached snapshot for its table kind.
func (s *ReportService) IngestUpload(ctx context.Context, kind domain.TableKind, filename string, r io.Reader) (int, error) {
	var (
		t   *table.Table
		err error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		t, err = ingest.ReadXLSX(r)
	case ".csv":
		t, err = ingest.ReadCSV(r)
	default:
		return 0, fmt.Errorf("unsupported upload %s: expected .xlsx or .csv", filename)
	}
	if err != nil {
		return 0, err
	}

	if err := s.tables.Set(ctx, kind, t); err != nil {
		return 0, err
	}
	logger.Log.Info().
		Str("kind", string(kind)).
		Str("file", filename).
		Int("rows", t.Len()).
		Msg("table snapshot replaced")
	return t.Len(), nil
}

// AvailableTables lists the table kinds currently held in the cache.
func (s *ReportService) AvailableTables(ctx context.Context) ([]domain.TableKind, error) {
	return s.tables.Kinds(ctx)
}

// Compute runs one report against the current snapshots.
func (s *ReportService) Compute(ctx context.Context, name string, asOf time.Time) (*domain.Result, error) {
	r, ok := report.ByName(name)
	if !ok {
		return nil, fmt.Errorf("unknown report %q", name)
	}

	inputs, err := s.collectInputs(ctx, r)
	if err != nil {
		return nil, err
	}

	result, err := r.Compute(inputs, s.params(asOf))
	if err != nil {
		return nil, err
	}

	s.saveSnapshots(ctx, result)
	return result, nil
}

// ComputeAll runs every report whose inputs are present, in parallel.
// The engine is pure, so concurrent runs cannot interfere.
func (s *ReportService) ComputeAll(ctx context.Context, asOf time.Time) (map[string]*domain.Result, error) {
	params := s.params(asOf)

	results := make(map[string]*domain.Result)
	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	for _, r := range report.All() {
		inputs, err := s.collectInputs(ctx, r)
		if err != nil {
			var missing *report.MissingTableError
			if errors.As(err, &missing) {
				// Not every sheet has been uploaded yet; skip.
				continue
			}
			return nil, err
		}

		g.Go(func() error {
			result, err := r.Compute(inputs, params)
			if err != nil {
				return fmt.Errorf("report %s: %w", r.Name(), err)
			}
			mu.Lock()
			results[r.Name()] = result
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, result := range results {
		s.saveSnapshots(ctx, result)
	}
	return results, nil
}

// History returns persisted KPI snapshots for one report.
func (s *ReportService) History(ctx context.Context, name, metric string, limit int) ([]domain.MetricSnapshot, error) {
	if s.snapshots == nil {
		return nil, fmt.Errorf("snapshot history is not enabled")
	}
	if _, ok := report.ByName(name); !ok {
		return nil, fmt.Errorf("unknown report %q", name)
	}
	return s.snapshots.History(ctx, name, metric, limit)
}

func (s *ReportService) params(asOf time.Time) report.Params {
	return report.Params{ReportConfig: s.reportCfg, AsOf: asOf}
}

func (s *ReportService) collectInputs(ctx context.Context, r report.Report) (report.Inputs, error) {
	inputs := make(report.Inputs, len(r.Inputs()))
	for _, kind := range r.Inputs() {
		t, ok, err := s.tables.Get(ctx, kind)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &report.MissingTableError{Report: r.Name(), Kind: kind}
		}
		inputs[kind] = t
	}
	return inputs, nil
}

// saveSnapshots writes the run's metrics to history. Failures are
// logged, not surfaced: a dashboard request must not fail because the
// history database was down.
func (s *ReportService) saveSnapshots(ctx context.Context, result *domain.Result) {
	if s.snapshots == nil {
		return
	}
	if err := s.snapshots.SaveRun(ctx, result, time.Now().UTC()); err != nil {
		logger.Log.Error().Err(err).Str("report", result.Report).Msg("failed to persist metric snapshots")
	}
}
