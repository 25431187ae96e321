package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/SilvertipSoftware/factorygirl/pkg/factory"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	_ "modernc.org/sqlite"             // pure go sqlite driver
)

// Dialect selects placeholder style and id retrieval for the SQL store.
type Dialect int

const (
	// SQLite uses ? placeholders and LastInsertId.
	SQLite Dialect = iota
	// Postgres uses $n placeholders and RETURNING id.
	Postgres
)

func (d Dialect) String() string {
	switch d {
	case SQLite:
		return "sqlite"
	case Postgres:
		return "postgres"
	default:
		return fmt.Sprintf("dialect(%d)", int(d))
	}
}

// SQL persists rows with one INSERT per save into the row's table. Columns
// are the row's fields; the table must already exist.
type SQL struct {
	db      *sql.DB
	dialect Dialect
}

// NewSQL wraps an open database.
func NewSQL(db *sql.DB, dialect Dialect) *SQL {
	return &SQL{db: db, dialect: dialect}
}

// OpenSQLite opens a sqlite database. Use ":memory:" or "file::memory:"
// style DSNs for throwaway test databases.
func OpenSQLite(ctx context.Context, dsn string) (*SQL, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// An in-memory database lives and dies with its connection
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return NewSQL(db, SQLite), nil
}

// OpenPostgres opens a postgres database through pgx.
func OpenPostgres(ctx context.Context, dsn string) (*SQL, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return NewSQL(db, Postgres), nil
}

// DB returns the underlying database.
func (s *SQL) DB() *sql.DB { return s.db }

// Dialect returns the store's dialect.
func (s *SQL) Dialect() Dialect { return s.dialect }

// Close closes the underlying database.
func (s *SQL) Close() error { return s.db.Close() }

// Save inserts the row and assigns the generated id.
func (s *SQL) Save(ctx context.Context, m factory.Model) error {
	row, err := asRow(m)
	if err != nil {
		return err
	}
	clearErrors(m)

	fields := row.Fields()
	if id := row.ID(); id != nil {
		fields["id"] = id
	}
	query, args := s.insert(TableName(row), fields)

	var id any
	switch s.dialect {
	case Postgres:
		var n int64
		if err := s.db.QueryRowContext(ctx, query+" RETURNING id", args...).Scan(&n); err != nil {
			recordError(m, err)
			return fmt.Errorf("insert %s: %w", TableName(row), err)
		}
		id = n
	default:
		res, err := s.db.ExecContext(ctx, query, args...)
		if err != nil {
			recordError(m, err)
			return fmt.Errorf("insert %s: %w", TableName(row), err)
		}
		n, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("insert %s: last insert id: %w", TableName(row), err)
		}
		id = n
	}

	if row.ID() == nil {
		row.SetID(id)
	}
	return nil
}

func (s *SQL) insert(table string, fields map[string]any) (string, []any) {
	if len(fields) == 0 {
		return fmt.Sprintf("INSERT INTO %s DEFAULT VALUES", quoteIdent(table)), nil
	}

	cols := make([]string, 0, len(fields))
	for k := range fields {
		cols = append(cols, k)
	}
	sort.Strings(cols)

	quoted := make([]string, len(cols))
	marks := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, c := range cols {
		quoted[i] = quoteIdent(c)
		marks[i] = s.placeholder(i + 1)
		args[i] = fields[c]
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(table), strings.Join(quoted, ", "), strings.Join(marks, ", ")), args
}

func (s *SQL) placeholder(n int) string {
	if s.dialect == Postgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
