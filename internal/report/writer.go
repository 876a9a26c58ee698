// Package report delivers computed monthly rows to output sinks.
package report

import (
	"github.com/rxtech-lab/argo-monthly/internal/monthly"
)

// RowWriter defines the interface for writing report rows to a destination.
type RowWriter interface {
	// Initialize sets up the writer, potentially creating files.
	Initialize() error
	// Write delivers a single report row.
	Write(row monthly.Row) error
	// Finalize completes the writing process (e.g., flushes buffers, exports files).
	Finalize() (outputPath string, err error)
	// Close releases any resources held by the writer.
	Close() error
	// GetOutputPath returns the configured output file path.
	GetOutputPath() string
}
