package export

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/inferloop/tabsynth/pkg/models"
)

// PostgresSink loads a dataset directly into a PostgreSQL table instead of
// producing a file. The table is created if missing, typed by column
// inference like the SQL script exporter.
type PostgresSink struct {
	logger *logrus.Logger
	db     *sql.DB
}

// NewPostgresSink opens a connection pool for the given connection string.
func NewPostgresSink(connStr string, logger *logrus.Logger) (*PostgresSink, error) {
	if logger == nil {
		logger = logrus.New()
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	return &PostgresSink{logger: logger, db: db}, nil
}

// Close releases the connection pool.
func (s *PostgresSink) Close() error {
	return s.db.Close()
}

// Store creates the table when missing and inserts every record inside one
// transaction.
func (s *PostgresSink) Store(ctx context.Context, dataset *models.Dataset, table string) error {
	if table == "" {
		table = "synthetic_data"
	}

	columns := make([]string, len(dataset.FieldOrder))
	placeholders := make([]string, len(dataset.FieldOrder))
	for i, field := range dataset.FieldOrder {
		columns[i] = fmt.Sprintf("%s %s", field, pgType(dataset.Column(field)))
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	createStmt := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", table, strings.Join(columns, ", "))
	if _, err := s.db.ExecContext(ctx, createStmt); err != nil {
		return fmt.Errorf("failed to create table %s: %w", table, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	insertStmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(dataset.FieldOrder, ", "), strings.Join(placeholders, ", "))
	stmt, err := tx.PrepareContext(ctx, insertStmt)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	args := make([]interface{}, len(dataset.FieldOrder))
	for _, record := range dataset.Records {
		for i, field := range dataset.FieldOrder {
			args[i] = record[field]
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("failed to insert record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"table":   table,
		"records": len(dataset.Records),
	}).Info("dataset stored in postgres")
	return nil
}

func pgType(column []interface{}) string {
	switch inferSQLType(column) {
	case "REAL":
		return "DOUBLE PRECISION"
	case "TIMESTAMP":
		return "TIMESTAMPTZ"
	default:
		return inferSQLType(column)
	}
}
