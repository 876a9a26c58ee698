// Package render draws report rows into an XLSX workbook, one sheet and
// line chart per (month, field) window plus a summary sheet.
package render

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/rxtech-lab/argo-monthly/internal/monthly"
	"github.com/rxtech-lab/argo-monthly/internal/report"
	"github.com/rxtech-lab/argo-monthly/pkg/errors"
)

const summarySheet = "Summary"

// WorkbookWriter implements report.RowWriter on top of an excelize
// workbook. Every written row becomes its own sheet holding the bar
// table and an embedded line chart of the requested field over the
// month; the Summary sheet collects one line per row.
type WorkbookWriter struct {
	outputPath string
	file       *excelize.File
	summaryRow int
}

// NewWorkbookWriter creates a WorkbookWriter targeting the given .xlsx path.
func NewWorkbookWriter(outputPath string) report.RowWriter {
	return &WorkbookWriter{
		outputPath: outputPath,
	}
}

// Initialize creates the workbook and its Summary sheet.
func (w *WorkbookWriter) Initialize() error {
	w.file = excelize.NewFile()

	if err := w.file.SetSheetName("Sheet1", summarySheet); err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, "failed to create summary sheet", err)
	}

	headers := []string{"Window", "Field", "Bars", "Mean"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return errors.Wrap(errors.ErrCodeRenderFailed, "failed to address summary header", err)
		}

		if err := w.file.SetCellValue(summarySheet, cell, h); err != nil {
			return errors.Wrap(errors.ErrCodeRenderFailed, "failed to write summary header", err)
		}
	}

	w.summaryRow = 2

	return nil
}

// Write adds the row's sheet and appends its summary line.
func (w *WorkbookWriter) Write(row monthly.Row) error {
	if w.file == nil {
		return errors.New(errors.ErrCodeRenderFailed, "workbook writer not initialized")
	}

	sheet := SheetName(row)
	if _, err := w.file.NewSheet(sheet); err != nil {
		return errors.Wrapf(errors.ErrCodeRenderFailed, err, "failed to create sheet %q", sheet)
	}

	if err := w.writeBars(sheet, row); err != nil {
		return err
	}

	if len(row.Bars) > 0 {
		if err := w.addChart(sheet, row); err != nil {
			return err
		}
	}

	return w.writeSummaryLine(row)
}

// writeBars fills the sheet's date/value table. An empty window gets a
// "no data" note instead of a table.
func (w *WorkbookWriter) writeBars(sheet string, row monthly.Row) error {
	if len(row.Bars) == 0 {
		if err := w.file.SetCellValue(sheet, "A1", fmt.Sprintf("%s: no data", row.Window.Label())); err != nil {
			return errors.Wrap(errors.ErrCodeRenderFailed, "failed to write no-data note", err)
		}

		return nil
	}

	if err := w.file.SetCellValue(sheet, "A1", "Date"); err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, "failed to write table header", err)
	}

	if err := w.file.SetCellValue(sheet, "B1", row.Request.Field.Title()); err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, "failed to write table header", err)
	}

	for i, bar := range row.Bars {
		value, err := bar.Value(row.Request.Field)
		if err != nil {
			return err
		}

		line := i + 2
		if err := w.file.SetCellValue(sheet, fmt.Sprintf("A%d", line), bar.Time.Format("2006-01-02")); err != nil {
			return errors.Wrap(errors.ErrCodeRenderFailed, "failed to write bar date", err)
		}

		if err := w.file.SetCellValue(sheet, fmt.Sprintf("B%d", line), value); err != nil {
			return errors.Wrap(errors.ErrCodeRenderFailed, "failed to write bar value", err)
		}
	}

	return nil
}

// addChart embeds the line chart next to the table. X is the date
// column, Y the field column.
func (w *WorkbookWriter) addChart(sheet string, row monthly.Row) error {
	last := len(row.Bars) + 1
	field := row.Request.Field.Title()

	chart := &excelize.Chart{
		Type: excelize.Line,
		Series: []excelize.ChartSeries{
			{
				Name:       fmt.Sprintf("'%s'!$B$1", sheet),
				Categories: fmt.Sprintf("'%s'!$A$2:$A$%d", sheet, last),
				Values:     fmt.Sprintf("'%s'!$B$2:$B$%d", sheet, last),
			},
		},
		Title: []excelize.RichTextRun{
			{Text: fmt.Sprintf("%s %s", row.Window.Label(), field)},
		},
		XAxis: excelize.ChartAxis{
			Title: []excelize.RichTextRun{{Text: "Date"}},
		},
		YAxis: excelize.ChartAxis{
			Title: []excelize.RichTextRun{{Text: field}},
		},
	}

	if err := w.file.AddChart(sheet, "D2", chart); err != nil {
		return errors.Wrapf(errors.ErrCodeRenderFailed, err, "failed to add chart to sheet %q", sheet)
	}

	return nil
}

func (w *WorkbookWriter) writeSummaryLine(row monthly.Row) error {
	values := []any{row.Window.String(), string(row.Request.Field), len(row.Bars)}
	if row.Mean.IsSome() {
		values = append(values, row.Mean.Unwrap())
	}

	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, w.summaryRow)
		if err != nil {
			return errors.Wrap(errors.ErrCodeRenderFailed, "failed to address summary cell", err)
		}

		if err := w.file.SetCellValue(summarySheet, cell, v); err != nil {
			return errors.Wrap(errors.ErrCodeRenderFailed, "failed to write summary cell", err)
		}
	}

	w.summaryRow++

	return nil
}

// Finalize saves the workbook to disk.
func (w *WorkbookWriter) Finalize() (string, error) {
	if w.file == nil {
		return "", errors.New(errors.ErrCodeRenderFailed, "workbook writer not initialized")
	}

	if err := w.file.SaveAs(w.outputPath); err != nil {
		return "", errors.Wrapf(errors.ErrCodeFinalizeFailed, err, "failed to save workbook %s", w.outputPath)
	}

	return w.outputPath, nil
}

// Close releases the workbook resources.
func (w *WorkbookWriter) Close() error {
	if w.file == nil {
		return nil
	}

	err := w.file.Close()
	w.file = nil

	if err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, "failed to close workbook", err)
	}

	return nil
}

// GetOutputPath returns the configured output file path.
func (w *WorkbookWriter) GetOutputPath() string {
	return w.outputPath
}

// SheetName names the sheet of one report row, e.g. "1992-02 open".
// Windows and fields both stay well under the 31-character sheet limit.
func SheetName(row monthly.Row) string {
	return fmt.Sprintf("%s %s", row.Window.String(), row.Request.Field)
}
