package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/inferloop/tabsynth/pkg/models"
)

// SQLExporter writes a CREATE TABLE statement followed by one INSERT per
// record. Column types are inferred from the first non-nil value in each
// column; strings are single-quote escaped and nil renders as NULL.
type SQLExporter struct {
	TableName string
}

// Format returns the format tag.
func (e *SQLExporter) Format() string { return FormatSQL }

// Export writes the dataset to w.
func (e *SQLExporter) Export(w io.Writer, dataset *models.Dataset) error {
	table := e.TableName
	if table == "" {
		table = "synthetic_data"
	}

	columns := make([]string, len(dataset.FieldOrder))
	for i, field := range dataset.FieldOrder {
		columns[i] = fmt.Sprintf("    %s %s", field, inferSQLType(dataset.Column(field)))
	}
	if _, err := fmt.Fprintf(w, "CREATE TABLE %s (\n%s\n);\n\n", table, strings.Join(columns, ",\n")); err != nil {
		return err
	}

	values := make([]string, len(dataset.FieldOrder))
	for _, record := range dataset.Records {
		for i, field := range dataset.FieldOrder {
			values[i] = sqlLiteral(record[field])
		}
		if _, err := fmt.Fprintf(w, "INSERT INTO %s (%s) VALUES (%s);\n",
			table, strings.Join(dataset.FieldOrder, ", "), strings.Join(values, ", ")); err != nil {
			return err
		}
	}
	return nil
}

// inferSQLType maps the first non-nil value of a column to a SQL type,
// defaulting to TEXT for all-null columns.
func inferSQLType(column []interface{}) string {
	for _, value := range column {
		switch value.(type) {
		case nil:
			continue
		case int:
			return "INTEGER"
		case float64:
			return "REAL"
		case bool:
			return "BOOLEAN"
		case time.Time:
			return "TIMESTAMP"
		default:
			return "TEXT"
		}
	}
	return "TEXT"
}

func sqlLiteral(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "NULL"
	case string:
		return "'" + strings.ReplaceAll(v, "'", "''") + "'"
	case time.Time:
		return "'" + formatValue(v) + "'"
	case bool, int, float64:
		return formatValue(v)
	default:
		return "'" + strings.ReplaceAll(fmt.Sprintf("%v", v), "'", "''") + "'"
	}
}
