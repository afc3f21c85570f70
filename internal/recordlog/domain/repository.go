package domain

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	ErrSchemaMismatch = errors.New("row_schema_mismatch")
	ErrEmptyAppend    = errors.New("empty_append")
	ErrNotFound       = errors.New("record_not_found")
)

// Log is the storage contract of the append-only record log. Append is
// all-or-nothing; the three read shapes mirror the query surface the store
// exposes (latest row per key, grouped sum, validity window).
type Log interface {
	// Append writes rows to the table inside one transaction. Every row must
	// carry exactly the table's payload columns; extra or missing columns fail
	// the whole batch with ErrSchemaMismatch.
	Append(ctx context.Context, db *gorm.DB, table Table, rows []Row) error

	// All loads the entire table history in append order.
	All(ctx context.Context, db *gorm.DB, table Table) ([]Row, error)

	// Latest returns one row per identity key: the row with the greatest
	// timestamp (ties broken by the greatest append ordinal), excluding keys
	// whose newest row is tagged delete.
	Latest(ctx context.Context, db *gorm.DB, table Table) ([]Row, error)

	// GroupedSum sums sumColumn over the raw table history, one row per
	// distinct combination of groupBy values, ordered by the sum descending.
	// The summed value is returned under the "sum_<sumColumn>" key.
	GroupedSum(ctx context.Context, db *gorm.DB, table Table, groupBy []string, sumColumn string) ([]Row, error)

	// ValidAt filters the latest state of the table to rows whose
	// [startColumn, endColumn] date range contains date, inclusive on both
	// bounds. date is in DateFormat.
	ValidAt(ctx context.Context, db *gorm.DB, table Table, startColumn, endColumn, date string) ([]Row, error)
}
