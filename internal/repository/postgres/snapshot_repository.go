// internal/repository/postgres/snapshot_repository.go
package postgres

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/lumenfab/kpi-dashboard/internal/domain"
)

// SnapshotRepository persists the scalar KPIs of each report run so the
// dashboard can chart them over time. The engine itself never touches
// this; the service layer writes after a successful computation.
type SnapshotRepository struct {
	db *DB
}

func NewSnapshotRepository(db *DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

const createSnapshotTable = `
CREATE TABLE IF NOT EXISTS metric_snapshots (
	id          BIGSERIAL PRIMARY KEY,
	report      TEXT             NOT NULL,
	metric      TEXT             NOT NULL,
	value       DOUBLE PRECISION NOT NULL,
	computed_at TIMESTAMPTZ      NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_metric_snapshots_report
	ON metric_snapshots (report, metric, computed_at);
`

// Migrate creates the snapshot table when missing.
func (r *SnapshotRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createSnapshotTable); err != nil {
		return fmt.Errorf("failed to create metric_snapshots table: %w", err)
	}
	return nil
}

// SaveRun stores every metric of one report run under a single
// computed-at timestamp.
func (r *SnapshotRepository) SaveRun(ctx context.Context, result *domain.Result, computedAt time.Time) error {
	if err := r.db.Acquire(ctx); err != nil {
		return err
	}
	defer r.db.Release()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Stable insert order keeps runs reproducible in the history table.
	metrics := make([]string, 0, len(result.Metrics))
	for metric := range result.Metrics {
		metrics = append(metrics, metric)
	}
	sort.Strings(metrics)

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO metric_snapshots (report, metric, value, computed_at) VALUES ($1, $2, $3, $4)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, metric := range metrics {
		if _, err := stmt.ExecContext(ctx, result.Report, metric, result.Metrics[metric], computedAt); err != nil {
			return fmt.Errorf("failed to insert snapshot %s/%s: %w", result.Report, metric, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshots: %w", err)
	}
	return nil
}

// History returns the stored snapshots for one report, newest first,
// optionally restricted to a single metric.
func (r *SnapshotRepository) History(ctx context.Context, report, metric string, limit int) ([]domain.MetricSnapshot, error) {
	if err := r.db.Acquire(ctx); err != nil {
		return nil, err
	}
	defer r.db.Release()

	if limit <= 0 {
		limit = 100
	}

	var snapshots []domain.MetricSnapshot
	var err error
	if metric != "" {
		err = r.db.SelectContext(ctx, &snapshots,
			`SELECT id, report, metric, value, computed_at
			 FROM metric_snapshots
			 WHERE report = $1 AND metric = $2
			 ORDER BY computed_at DESC, metric ASC
			 LIMIT $3`, report, metric, limit)
	} else {
		err = r.db.SelectContext(ctx, &snapshots,
			`SELECT id, report, metric, value, computed_at
			 FROM metric_snapshots
			 WHERE report = $1
			 ORDER BY computed_at DESC, metric ASC
			 LIMIT $2`, report, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots for %s: %w", report, err)
	}
	return snapshots, nil
}
