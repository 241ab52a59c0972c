package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/lumenfab/kpi-dashboard/internal/cache"
	"github.com/lumenfab/kpi-dashboard/internal/config"
	"github.com/lumenfab/kpi-dashboard/internal/domain"
	"github.com/lumenfab/kpi-dashboard/internal/export"
	"github.com/lumenfab/kpi-dashboard/internal/ingest"
	"github.com/lumenfab/kpi-dashboard/internal/report"
	"github.com/lumenfab/kpi-dashboard/internal/repository/postgres"
	"github.com/lumenfab/kpi-dashboard/internal/service"
)

func newDataDirFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "data-dir",
		Usage:   "Directory containing table exports, one <kind>.xlsx or <kind>.csv per table",
		Value:   "./data",
		EnvVars: []string{"REPORT_DATA_DIR"},
	}
}

func newAsOfFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "as-of",
		Usage: "Reference date for age calculations (YYYY-MM-DD, default today)",
	}
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "report",
		Usage: "Compute KPI reports from spreadsheet exports",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List available reports and the tables each one needs",
				Action: listReports,
			},
			{
				Name:  "run",
				Usage: "Compute reports and write one xlsx workbook per report",
				Flags: []cli.Flag{
					newDataDirFlag(),
					newAsOfFlag(),
					&cli.StringFlag{
						Name:  "report",
						Usage: "Compute a single report by name (default: all with inputs present)",
					},
					&cli.StringFlag{
						Name:    "out-dir",
						Usage:   "Directory to write workbooks to",
						Value:   "./out",
						EnvVars: []string{"REPORT_OUT_DIR"},
					},
					&cli.StringFlag{
						Name:    "db-url",
						Usage:   "Persist metric snapshots to this history database",
						EnvVars: []string{"DATABASE_URL"},
					},
				},
				Action: runReports,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func listReports(c *cli.Context) error {
	for _, r := range report.All() {
		fmt.Printf("%-20s inputs:", r.Name())
		for _, kind := range r.Inputs() {
			fmt.Printf(" %s", kind)
		}
		fmt.Println()
	}
	return nil
}

func runReports(c *cli.Context) error {
	cfg := config.Load()

	asOf, err := parseAsOf(c.String("as-of"))
	if err != nil {
		return err
	}

	ctx := context.Background()
	tables, loaded, err := loadTables(ctx, c.String("data-dir"))
	if err != nil {
		return err
	}
	if loaded == 0 {
		return fmt.Errorf("no table files found in %s", c.String("data-dir"))
	}

	var snapshots *postgres.SnapshotRepository
	if dbURL := c.String("db-url"); dbURL != "" {
		db, err := postgres.NewDBFromURL(dbURL)
		if err != nil {
			return fmt.Errorf("failed to connect to history database: %w", err)
		}
		defer db.Close()

		snapshots = postgres.NewSnapshotRepository(db)
		if err := snapshots.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to migrate snapshot schema: %w", err)
		}
	}

	svc := service.NewReportService(tables, snapshots, cfg.Reports)

	results := make(map[string]*domain.Result)
	if name := c.String("report"); name != "" {
		result, err := svc.Compute(ctx, name, asOf)
		if err != nil {
			return err
		}
		results[name] = result
	} else {
		results, err = svc.ComputeAll(ctx, asOf)
		if err != nil {
			return err
		}
	}

	outDir := c.String("out-dir")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	for name, result := range results {
		path := filepath.Join(outDir, name+".xlsx")
		if err := export.WriteWorkbook(result, path); err != nil {
			return err
		}
		log.Printf("wrote %s (%d metrics)", path, len(result.Metrics))
	}

	log.Printf("computed %d report(s)", len(results))
	return nil
}

func parseAsOf(value string) (time.Time, error) {
	if value == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	asOf, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid as-of date %q (expected YYYY-MM-DD): %w", value, err)
	}
	return asOf, nil
}

// loadTables reads every <kind>.xlsx or <kind>.csv present in dataDir
// into a process-local store. Missing kinds are fine: reports whose
// inputs are absent are simply skipped.
func loadTables(ctx context.Context, dataDir string) (cache.TableStore, int, error) {
	tables := cache.NewMemoryTableStore()
	loaded := 0
	for _, kind := range domain.AllTableKinds {
		path, ok := findTableFile(dataDir, kind)
		if !ok {
			continue
		}
		t, err := ingest.ReadFile(path)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to load %s: %w", path, err)
		}
		if err := tables.Set(ctx, kind, t); err != nil {
			return nil, 0, err
		}
		log.Printf("loaded %s: %d rows", path, t.Len())
		loaded++
	}
	return tables, loaded, nil
}

func findTableFile(dataDir string, kind domain.TableKind) (string, bool) {
	for _, ext := range []string{".xlsx", ".csv"} {
		path := filepath.Join(dataDir, string(kind)+ext)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}
