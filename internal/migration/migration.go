// Package migration bootstraps the record log tables from their static
// descriptors. There are no versioned migration files: the append-only tables
// never change shape in place, they are created once per descriptor.
package migration

import (
	"fmt"
	"strings"

	"github.com/medexy/sandelia/internal/entity"
	recorddomain "github.com/medexy/sandelia/internal/recordlog/domain"
	"gorm.io/gorm"
)

// EnsureTables creates every record log table that does not exist yet.
func EnsureTables(conn *gorm.DB) error {
	dialect := conn.Dialector.Name()
	for _, table := range entity.Tables() {
		ddl, err := createTableDDL(table, dialect)
		if err != nil {
			return err
		}
		if err := conn.Exec(ddl).Error; err != nil {
			return fmt.Errorf("create table %s: %w", table.Name, err)
		}
	}
	return nil
}

func createTableDDL(table recorddomain.Table, dialect string) (string, error) {
	seq, err := seqColumnDDL(dialect)
	if err != nil {
		return "", err
	}

	defs := []string{recorddomain.ColumnSeq + " " + seq}
	for _, col := range table.Columns {
		defs = append(defs, col.Name+" "+columnType(col.Kind, dialect))
	}

	return fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)",
		table.Name,
		strings.Join(defs, ",\n\t"),
	), nil
}

func seqColumnDDL(dialect string) (string, error) {
	switch dialect {
	case "sqlite":
		return "INTEGER PRIMARY KEY AUTOINCREMENT", nil
	case "postgres":
		return "BIGSERIAL PRIMARY KEY", nil
	case "mysql":
		return "BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY", nil
	default:
		return "", fmt.Errorf("unsupported dialect %s", dialect)
	}
}

func columnType(kind recorddomain.Kind, dialect string) string {
	switch kind {
	case recorddomain.KindNumber:
		if dialect == "sqlite" {
			return "REAL"
		}
		return "DOUBLE PRECISION"
	case recorddomain.KindInteger:
		return "BIGINT"
	default:
		// text, date, timestamp and status all travel as text on the wire.
		if dialect == "mysql" {
			return "VARCHAR(255)"
		}
		return "TEXT"
	}
}
