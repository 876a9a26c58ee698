package report

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/rxtech-lab/argo-monthly/internal/monthly"
	"github.com/rxtech-lab/argo-monthly/pkg/errors"
)

// CSVWriter writes the report summary as a CSV table, one line per row:
// window, field, bar count, mean. The mean cell is empty for a month
// without data.
type CSVWriter struct {
	outputPath string
	file       *os.File
	csv        *csv.Writer
}

// NewCSVWriter creates a CSVWriter targeting the given file path.
func NewCSVWriter(outputPath string) RowWriter {
	return &CSVWriter{
		outputPath: outputPath,
	}
}

// Initialize creates the output file and writes the header line.
func (w *CSVWriter) Initialize() error {
	file, err := os.Create(w.outputPath)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeWriteFailed, err, "failed to create %s", w.outputPath)
	}

	w.file = file
	w.csv = csv.NewWriter(file)

	if err := w.csv.Write([]string{"window", "field", "bars", "mean"}); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to write CSV header", err)
	}

	return nil
}

// Write appends one summary line.
func (w *CSVWriter) Write(row monthly.Row) error {
	if w.csv == nil {
		return errors.New(errors.ErrCodeWriteFailed, "csv writer not initialized")
	}

	mean := ""
	if row.Mean.IsSome() {
		mean = strconv.FormatFloat(row.Mean.Unwrap(), 'f', -1, 64)
	}

	record := []string{
		row.Window.String(),
		string(row.Request.Field),
		strconv.Itoa(len(row.Bars)),
		mean,
	}

	if err := w.csv.Write(record); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to write CSV record", err)
	}

	return nil
}

// Finalize flushes buffered records to the file.
func (w *CSVWriter) Finalize() (string, error) {
	if w.csv == nil {
		return "", errors.New(errors.ErrCodeWriteFailed, "csv writer not initialized")
	}

	w.csv.Flush()

	if err := w.csv.Error(); err != nil {
		return "", errors.Wrap(errors.ErrCodeFinalizeFailed, "failed to flush CSV report", err)
	}

	return w.outputPath, nil
}

// Close closes the output file.
func (w *CSVWriter) Close() error {
	if w.file == nil {
		return nil
	}

	err := w.file.Close()
	w.file = nil
	w.csv = nil

	if err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to close CSV file", err)
	}

	return nil
}

// GetOutputPath returns the configured output file path.
func (w *CSVWriter) GetOutputPath() string {
	return w.outputPath
}
