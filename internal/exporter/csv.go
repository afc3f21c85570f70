package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	recorddomain "github.com/medexy/sandelia/internal/recordlog/domain"
)

// Separator is the column separator of the CSV interchange format.
const Separator = ';'

// Filename names a current-state download: {table_name}_{YYYY-MM-DD}.csv.
func Filename(table recorddomain.Table, exportDate time.Time) string {
	return fmt.Sprintf("%s_%s.csv", table.Name, exportDate.Format(recorddomain.DateFormat))
}

// WriteCSV writes rows as ;-separated UTF-8 CSV in schema column order.
// A header line is written when header is set; appends to an existing file
// go without one.
func WriteCSV(w io.Writer, table recorddomain.Table, rows []recorddomain.Row, header bool) error {
	cw := csv.NewWriter(w)
	cw.Comma = Separator

	columns := table.ColumnNames()
	if header {
		if err := cw.Write(columns); err != nil {
			return err
		}
	}

	record := make([]string, len(columns))
	for _, row := range rows {
		for i, c := range columns {
			record[i] = formatValue(row[c])
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatValue(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(value), 'f', -1, 32)
	case int64:
		return strconv.FormatInt(value, 10)
	case int:
		return strconv.Itoa(value)
	case bool:
		return strconv.FormatBool(value)
	default:
		return fmt.Sprint(value)
	}
}
