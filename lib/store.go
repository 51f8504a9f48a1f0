package lib

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/pkg/errors"
)

// Recorder receives the outcome of every build.
type Recorder interface {
	Record(ctx context.Context, result Result) error
}

// Store records build outcomes in a Postgres table.
type Store struct {
	db    *sql.DB
	table string
}

// OpenStore connects to the database described by connectionString and makes
// sure table exists.
func OpenStore(ctx context.Context, connectionString string, table string) (*Store, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, errors.Wrap(err, "opening build store")
	}

	s, err := NewStore(ctx, db, table)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewStore uses an already open database.
func NewStore(ctx context.Context, db *sql.DB, table string) (*Store, error) {
	s := &Store{db: db, table: table}
	if err := s.requireBuildsTable(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func createTableSQL(table string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id SERIAL PRIMARY KEY,
	file TEXT NOT NULL,
	left_operand BIGINT,
	operator TEXT,
	right_operand BIGINT,
	error_kind TEXT,
	error_message TEXT,
	built_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
)`, pq.QuoteIdentifier(table))
}

func insertSQL(table string) string {
	return fmt.Sprintf(
		"INSERT INTO %s (file, left_operand, operator, right_operand, error_kind, error_message) VALUES ($1, $2, $3, $4, $5, $6)",
		pq.QuoteIdentifier(table))
}

func (s *Store) requireBuildsTable(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, createTableSQL(s.table))
	return errors.Wrapf(err, "creating table %s", s.table)
}

// Record implements Recorder.
func (s *Store) Record(ctx context.Context, result Result) error {
	_, err := s.db.ExecContext(ctx, insertSQL(s.table), recordArgs(result)...)
	return errors.Wrapf(err, "recording build of %s", result.File)
}

// recordArgs lines up with the placeholders in insertSQL.
func recordArgs(result Result) []interface{} {
	var (
		left, right        sql.NullInt64
		operator           sql.NullString
		errKind, errString sql.NullString
	)

	if expr := result.Expression; expr != nil {
		left = operandValue(expr.Left)
		right = operandValue(expr.Right)
		operator = sql.NullString{String: expr.Operator.String(), Valid: true}
	}

	if result.Err != nil {
		errString = sql.NullString{String: result.Err.Error(), Valid: true}
		if syntaxErr, ok := AsSyntaxError(result.Err); ok {
			errKind = sql.NullString{String: syntaxErr.Kind.String(), Valid: true}
		}
	}

	return []interface{}{result.File, left, operator, right, errKind, errString}
}

func operandValue(o Operand) sql.NullInt64 {
	if n, ok := o.(NumberLiteral); ok {
		return sql.NullInt64{Int64: n.Value, Valid: true}
	}
	return sql.NullInt64{}
}
