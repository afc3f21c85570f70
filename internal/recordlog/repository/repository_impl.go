// Package repository implements the record log over a gorm-managed database.
package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/medexy/sandelia/internal/recordlog/domain"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

type log struct{}

func Provide() domain.Log {
	return &log{}
}

func (l *log) Append(ctx context.Context, db *gorm.DB, table domain.Table, rows []domain.Row) error {
	if len(rows) == 0 {
		return domain.ErrEmptyAppend
	}

	columns := table.ColumnNames()
	for _, row := range rows {
		if err := checkSchema(table, columns, row); err != nil {
			return err
		}
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(columns)), ",")
	insert := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table.Name,
		strings.Join(columns, ", "),
		placeholders,
	)

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, row := range rows {
			args := lo.Map(columns, func(c string, _ int) any { return row[c] })
			if err := tx.Exec(insert, args...).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func checkSchema(table domain.Table, columns []string, row domain.Row) error {
	for _, c := range columns {
		if _, ok := row[c]; !ok {
			return fmt.Errorf("%w: table %s missing column %s", domain.ErrSchemaMismatch, table.Name, c)
		}
	}
	if len(row) != len(columns) {
		extra, _ := lo.Difference(lo.Keys(row), columns)
		return fmt.Errorf("%w: table %s unknown columns %v", domain.ErrSchemaMismatch, table.Name, extra)
	}
	return nil
}

func (l *log) All(ctx context.Context, db *gorm.DB, table domain.Table) ([]domain.Row, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s ORDER BY %s",
		strings.Join(table.ColumnNames(), ", "),
		table.Name,
		domain.ColumnSeq,
	)
	return scanRows(ctx, db, query)
}

// latestCTE ranks every row within its identity partition. Newest timestamp
// first; equal timestamps fall back to the append ordinal, so the most
// recently appended row wins deterministically.
func latestCTE(table domain.Table) string {
	return fmt.Sprintf(`
		WITH ranked AS (
			SELECT tbl.*, ROW_NUMBER() OVER (
				PARTITION BY %s
				ORDER BY %s DESC, %s DESC
			) AS row_num
			FROM %s AS tbl
		)`,
		table.IDColumn,
		domain.ColumnTimestamp,
		domain.ColumnSeq,
		table.Name,
	)
}

func (l *log) Latest(ctx context.Context, db *gorm.DB, table domain.Table) ([]domain.Row, error) {
	query := fmt.Sprintf(`%s
		SELECT %s FROM ranked
		WHERE row_num = 1 AND %s != ?
		ORDER BY %s`,
		latestCTE(table),
		strings.Join(table.ColumnNames(), ", "),
		domain.ColumnStatus,
		table.IDColumn,
	)
	return scanRows(ctx, db, query, string(domain.StatusDelete))
}

func (l *log) GroupedSum(ctx context.Context, db *gorm.DB, table domain.Table, groupBy []string, sumColumn string) ([]domain.Row, error) {
	group := strings.Join(groupBy, ", ")
	alias := "sum_" + sumColumn
	query := fmt.Sprintf(`
		SELECT %s, SUM(%s) AS %s
		FROM %s
		GROUP BY %s
		ORDER BY %s DESC`,
		group, sumColumn, alias,
		table.Name,
		group,
		alias,
	)
	return scanRows(ctx, db, query)
}

func (l *log) ValidAt(ctx context.Context, db *gorm.DB, table domain.Table, startColumn, endColumn, date string) ([]domain.Row, error) {
	query := fmt.Sprintf(`%s
		SELECT %s FROM ranked
		WHERE row_num = 1 AND %s != ?
		AND %s <= ? AND %s >= ?
		ORDER BY %s`,
		latestCTE(table),
		strings.Join(table.ColumnNames(), ", "),
		domain.ColumnStatus,
		startColumn, endColumn,
		table.IDColumn,
	)
	return scanRows(ctx, db, query, string(domain.StatusDelete), date, date)
}

func scanRows(ctx context.Context, db *gorm.DB, query string, args ...any) ([]domain.Row, error) {
	var raw []map[string]any
	if err := db.WithContext(ctx).Raw(query, args...).Scan(&raw).Error; err != nil {
		return nil, err
	}
	rows := make([]domain.Row, 0, len(raw))
	for _, m := range raw {
		row := domain.Row{}
		for k, v := range m {
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			row[k] = v
		}
		rows = append(rows, row)
	}
	return rows, nil
}
