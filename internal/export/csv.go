package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"betfast-props-scraper/internal/observability"
)

// CSVWriter writes the table to a fixed path, replacing whatever the
// previous run left there.
type CSVWriter struct {
	path   string
	logger *observability.Logger
}

func NewCSVWriter(path string, logger *observability.Logger) *CSVWriter {
	return &CSVWriter{path: path, logger: logger}
}

// Write creates the file and writes the header record followed by one
// record per row. An empty row set still produces the header-only file.
func (w *CSVWriter) Write(headers []string, rows [][]string) error {
	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("create %s: %w", w.path, err)
	}

	cw := csv.NewWriter(f)
	if err := cw.Write(headers); err != nil {
		_ = f.Close()
		return fmt.Errorf("write header to %s: %w", w.path, err)
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			_ = f.Close()
			return fmt.Errorf("write row to %s: %w", w.path, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("flush %s: %w", w.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", w.path, err)
	}

	w.logger.Info("csv written", "path", w.path, "rows", len(rows))
	return nil
}
