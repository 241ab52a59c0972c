// internal/ingest/csv.go
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lumenfab/kpi-dashboard/internal/table"
)

// ReadCSV loads a CSV export into a raw table. The first record is the
// header. Short records are tolerated; they get padded at normalization.
func ReadCSV(r io.Reader) (*table.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	t := table.New(header)

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading record: %w", err)
		}
		t.Append(record)
	}

	return t, nil
}

// ReadFile dispatches on the file extension.
func ReadFile(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return ReadXLSX(f)
	case ".csv":
		return ReadCSV(f)
	default:
		return nil, fmt.Errorf("unsupported file extension for %s (xlsx or csv)", path)
	}
}
