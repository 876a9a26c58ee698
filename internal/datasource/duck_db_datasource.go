package datasource

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/moznion/go-optional"
	"go.uber.org/zap"

	"github.com/rxtech-lab/argo-monthly/internal/logger"
	"github.com/rxtech-lab/argo-monthly/internal/types"
	"github.com/rxtech-lab/argo-monthly/pkg/errors"
)

type DuckDBDataSource struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

// NewDataSource creates a new DuckDB data source instance with the specified
// database path. An empty path opens an in-memory database, which is the
// usual mode: Initialize() then maps an input file into it as a view.
// Returns a DataSource interface and any error encountered during creation.
func NewDataSource(path string, logger *logger.Logger) (DataSource, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, err
	}

	// Set DuckDB-specific optimizations
	_, err = db.Exec(`
		SET memory_limit='8GB';
		SET threads=4;
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to set DuckDB optimizations: %w", err)
	}

	return &DuckDBDataSource{
		db:     db,
		logger: logger,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}, nil
}

// Initialize implements DataSource. The file extension picks the DuckDB
// reader: .csv goes through read_csv_auto, .parquet through read_parquet.
// Columns are normalized into a daily_bars view with dates cast to
// timestamps, so every query downstream sees one schema.
func (d *DuckDBDataSource) Initialize(path string) error {
	if d.db == nil {
		return errors.New(errors.ErrCodeDataSourceUnavailable, "data source is closed")
	}

	d.logger.Debug("Initializing DuckDB data source", zap.String("path", path))

	var reader string

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		reader = "read_csv_auto"
	case ".parquet":
		reader = "read_parquet"
	default:
		return errors.Newf(errors.ErrCodeInvalidParameter, "unsupported input extension %q, expected .csv or .parquet", filepath.Ext(path))
	}

	if _, err := os.Stat(path); err != nil {
		return errors.Wrapf(errors.ErrCodeDataNotFound, err, "input file %s is not readable", path)
	}

	// First drop the view if it exists
	_, err := d.db.Exec(`DROP VIEW IF EXISTS daily_bars;`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to drop existing view", err)
	}

	// Create a view over the input file - using raw SQL as Squirrel doesn't
	// support CREATE VIEW. Casts keep the bar schema stable regardless of
	// the column types the reader sniffs.
	query := fmt.Sprintf(`
		CREATE VIEW daily_bars AS
		SELECT
			CAST(date AS TIMESTAMP) AS bar_date,
			CAST(open AS DOUBLE) AS open,
			CAST(high AS DOUBLE) AS high,
			CAST(low AS DOUBLE) AS low,
			CAST(close AS DOUBLE) AS close,
			CAST(volume AS BIGINT) AS volume
		FROM %s('%s');
	`, reader, path)

	_, err = d.db.Exec(query)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeDataNotFound, err, "failed to open input file %s", path)
	}

	return nil
}

// Count implements DataSource.
func (d *DuckDBDataSource) Count(start optional.Option[time.Time], end optional.Option[time.Time]) (int, error) {
	if d.db == nil {
		return 0, errors.New(errors.ErrCodeDataSourceUnavailable, "data source is closed")
	}

	var count int

	query := "SELECT COUNT(*) FROM daily_bars"

	var params []interface{}

	paramCount := 0

	if start.IsSome() {
		paramCount++
		if paramCount == 1 {
			query += " WHERE"
		} else {
			query += " AND"
		}

		query += fmt.Sprintf(" bar_date >= $%d", paramCount)

		params = append(params, start.Unwrap())
	}

	if end.IsSome() {
		paramCount++
		if paramCount == 1 {
			query += " WHERE"
		} else {
			query += " AND"
		}

		query += fmt.Sprintf(" bar_date < $%d", paramCount)

		params = append(params, end.Unwrap())
	}

	var row *sql.Row
	if len(params) > 0 {
		row = d.db.QueryRow(query, params...)
	} else {
		row = d.db.QueryRow(query)
	}

	err := row.Scan(&count)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to count bars", err)
	}

	return count, nil
}

// ReadAll implements DataSource with batch processing.
func (d *DuckDBDataSource) ReadAll(start optional.Option[time.Time], end optional.Option[time.Time]) func(yield func(types.DailyBar, error) bool) {
	const batchSize = 1000

	return func(yield func(types.DailyBar, error) bool) {
		if d.db == nil {
			yield(types.DailyBar{}, errors.New(errors.ErrCodeDataSourceUnavailable, "data source is closed"))

			return
		}

		d.logger.Debug("Reading all bars from DuckDB with batch processing")

		query := `
			SELECT bar_date, open, high, low, close, volume
			FROM daily_bars
		`

		// Add date range conditions if provided
		var conditions []string

		var params []interface{}

		paramCount := 0

		if start.IsSome() {
			paramCount++
			conditions = append(conditions, fmt.Sprintf("bar_date >= $%d", paramCount))
			params = append(params, start.Unwrap())
		}

		if end.IsSome() {
			paramCount++
			conditions = append(conditions, fmt.Sprintf("bar_date < $%d", paramCount))
			params = append(params, end.Unwrap())
		}

		if len(conditions) > 0 {
			query += " WHERE " + strings.Join(conditions, " AND ")
		}

		query += " ORDER BY bar_date ASC"

		// Use a prepared statement for better performance
		stmt, err := d.db.Prepare(query)
		if err != nil {
			yield(types.DailyBar{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to prepare query", err))

			return
		}
		defer stmt.Close()

		var rows *sql.Rows
		if len(params) > 0 {
			rows, err = stmt.Query(params...)
		} else {
			rows, err = stmt.Query()
		}

		if err != nil {
			yield(types.DailyBar{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query bars", err))

			return
		}

		defer rows.Close()

		// Process rows in batches
		batch := make([]types.DailyBar, 0, batchSize)

		for rows.Next() {
			bar, err := scanBar(rows)
			if err != nil {
				yield(types.DailyBar{}, err)

				return
			}

			batch = append(batch, bar)

			// Process batch when it reaches the batch size
			if len(batch) >= batchSize {
				for _, bar := range batch {
					if !yield(bar, nil) {
						return
					}
				}

				batch = batch[:0] // Reset slice while keeping capacity
			}
		}

		// Process remaining rows
		for _, bar := range batch {
			if !yield(bar, nil) {
				return
			}
		}
	}
}

// GetRange implements DataSource. The end bound is exclusive, so a calendar
// month is exactly GetRange(window.Start(), window.End()).
func (d *DuckDBDataSource) GetRange(start time.Time, end time.Time) ([]types.DailyBar, error) {
	if d.db == nil {
		return nil, errors.New(errors.ErrCodeDataSourceUnavailable, "data source is closed")
	}

	query, args, err := d.sq.
		Select("bar_date", "open", "high", "low", "close", "volume").
		From("daily_bars").
		Where(squirrel.And{
			squirrel.GtOrEq{"bar_date": start},
			squirrel.Lt{"bar_date": end},
		}).
		OrderBy("bar_date ASC").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	// Use prepared statement for better performance
	stmt, err := d.db.Prepare(query)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to prepare query", err)
	}
	defer stmt.Close()

	rows, err := stmt.Query(args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query bars", err)
	}
	defer rows.Close()

	result := make([]types.DailyBar, 0, 32)

	for rows.Next() {
		bar, err := scanBar(rows)
		if err != nil {
			return nil, err
		}

		result = append(result, bar)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating rows", err)
	}

	return result, nil
}

// Close implements DataSource.
func (d *DuckDBDataSource) Close() error {
	if d.db != nil {
		err := d.db.Close()
		d.db = nil

		return err
	}

	return nil
}

// scanBar reads one daily_bars row. Timestamps come back in UTC, so bar
// dates are UTC midnights.
func scanBar(rows *sql.Rows) (types.DailyBar, error) {
	var (
		barDate                time.Time
		open, high, low, close float64
		volume                 int64
	)

	err := rows.Scan(&barDate, &open, &high, &low, &close, &volume)
	if err != nil {
		return types.DailyBar{}, errors.Wrap(errors.ErrCodeParseFailed, "failed to scan row", err)
	}

	return types.DailyBar{
		Time:   barDate.UTC(),
		Open:   open,
		High:   high,
		Low:    low,
		Close:  close,
		Volume: volume,
	}, nil
}
