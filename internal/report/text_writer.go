package report

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/rxtech-lab/argo-monthly/internal/monthly"
	"github.com/rxtech-lab/argo-monthly/pkg/errors"
)

// TextWriter renders report rows as a human-readable text report:
// per row a header, one line per bar, then the mean label line.
type TextWriter struct {
	out        io.Writer
	buf        *bufio.Writer
	outputPath string
}

// NewTextWriter creates a TextWriter targeting the given io.Writer.
// outputPath is informational only, e.g. "-" for stdout.
func NewTextWriter(out io.Writer, outputPath string) RowWriter {
	return &TextWriter{
		out:        out,
		outputPath: outputPath,
	}
}

// Initialize sets up the buffered output.
func (w *TextWriter) Initialize() error {
	if w.out == nil {
		return errors.New(errors.ErrCodeWriteFailed, "text writer has no output")
	}

	w.buf = bufio.NewWriter(w.out)

	return nil
}

// Write renders one report row.
func (w *TextWriter) Write(row monthly.Row) error {
	if w.buf == nil {
		return errors.New(errors.ErrCodeWriteFailed, "text writer not initialized")
	}

	fmt.Fprintf(w.buf, "=== %s %s (%d bars) ===\n", row.Window.Label(), row.Request.Field, len(row.Bars))

	for _, bar := range row.Bars {
		fmt.Fprintf(w.buf, "%s  open=%s high=%s low=%s close=%s volume=%d\n",
			bar.Time.Format("2006-01-02"),
			formatValue(bar.Open), formatValue(bar.High), formatValue(bar.Low), formatValue(bar.Close),
			bar.Volume)
	}

	fmt.Fprintln(w.buf, MeanLabel(row))

	if err := w.buf.Flush(); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to write text report", err)
	}

	return nil
}

// Finalize flushes any buffered output.
func (w *TextWriter) Finalize() (string, error) {
	if w.buf == nil {
		return "", errors.New(errors.ErrCodeWriteFailed, "text writer not initialized")
	}

	if err := w.buf.Flush(); err != nil {
		return "", errors.Wrap(errors.ErrCodeFinalizeFailed, "failed to flush text report", err)
	}

	return w.outputPath, nil
}

// Close releases the writer. The underlying io.Writer is owned by the
// caller and stays open.
func (w *TextWriter) Close() error {
	w.buf = nil

	return nil
}

// GetOutputPath returns the configured output path.
func (w *TextWriter) GetOutputPath() string {
	return w.outputPath
}

// MeanLabel renders the row's summary line, e.g.
// "February 1992 Mean Open Price: 46" or "March 2020 Mean Volume: no data".
func MeanLabel(row monthly.Row) string {
	label := fmt.Sprintf("%s Mean %s", row.Window.Label(), row.Request.Field.Title())
	if row.Request.Field.IsPrice() {
		label += " Price"
	}

	if row.Mean.IsNone() {
		return label + ": no data"
	}

	return label + ": " + formatValue(row.Mean.Unwrap())
}

// formatValue renders a float without trailing zero noise.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
