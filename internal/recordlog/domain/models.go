// Package domain contains the vocabulary of the append-only record log.
package domain

import (
	"time"

	"github.com/samber/lo"
)

// Status tags every appended row. A row is never rewritten; inserts, updates
// and deletes are all realized as fresh appends carrying one of these tags.
type Status string

const (
	StatusInsert Status = "I"
	StatusUpdate Status = "U"
	StatusDelete Status = "D"
)

// Wire formats for date and timestamp columns. Both sort lexicographically in
// chronological order, which keeps range predicates portable across dialects.
const (
	DateFormat      = "2006-01-02"
	TimestampFormat = "2006-01-02 15:04:05.000000"
)

// Kind is the semantic type of a column in a table descriptor.
type Kind string

const (
	KindText      Kind = "text"
	KindNumber    Kind = "number"
	KindInteger   Kind = "integer"
	KindDate      Kind = "date"
	KindTimestamp Kind = "timestamp"
	KindStatus    Kind = "status"
)

// Reserved column names present on every table.
const (
	ColumnSeq       = "seq"
	ColumnTimestamp = "timestamp"
	ColumnStatus    = "status"
)

// Column is one (name, kind) pair of a table schema.
type Column struct {
	Name string
	Kind Kind
}

// Table is a static schema descriptor for one logical table. Columns is the
// full ordered payload column list including timestamp and status; the
// autoincrement seq ordinal is implicit and owned by the storage layer.
type Table struct {
	Name       string
	IDColumn   string
	NameColumn string
	Columns    []Column
}

// ColumnNames returns the ordered payload column names.
func (t Table) ColumnNames() []string {
	return lo.Map(t.Columns, func(c Column, _ int) string { return c.Name })
}

// HasColumn reports whether the schema carries the named payload column.
func (t Table) HasColumn(name string) bool {
	return lo.ContainsBy(t.Columns, func(c Column) bool { return c.Name == name })
}

// Row is one record as written to or read from a table. Keys are payload
// column names; the storage layer strips seq and bookkeeping columns added by
// queries before handing rows back.
type Row map[string]any

// Status returns the row's status tag.
func (r Row) Status() Status {
	s, _ := r[ColumnStatus].(string)
	return Status(s)
}

// String returns the named column as a string, or "" when absent.
func (r Row) String(column string) string {
	s, _ := r[column].(string)
	return s
}

// Float returns the named column as a float64, tolerating the integer types
// SQL drivers hand back for numeric columns.
func (r Row) Float(column string) float64 {
	switch v := r[column].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int64:
		return float64(v)
	case int:
		return float64(v)
	}
	return 0
}

// Int returns the named column as an int64.
func (r Row) Int(column string) int64 {
	switch v := r[column].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}

// Time parses the named timestamp column in the wire format.
func (r Row) Time(column string) (time.Time, error) {
	return time.Parse(TimestampFormat, r.String(column))
}

// Date parses the named date column in the wire format.
func (r Row) Date(column string) (time.Time, error) {
	return time.Parse(DateFormat, r.String(column))
}
