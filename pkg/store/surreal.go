package store

import (
	"context"
	"fmt"

	"github.com/SilvertipSoftware/factorygirl/internal/database"
	"github.com/SilvertipSoftware/factorygirl/pkg/factory"
)

// SurrealConfig holds SurrealDB connection settings.
type SurrealConfig = database.Config

// Surreal persists rows as SurrealDB records. Ids are record ids of the form
// "table:key".
type Surreal struct {
	db database.Database
}

// NewSurreal wraps a connected database.
func NewSurreal(db database.Database) *Surreal {
	return &Surreal{db: db}
}

// OpenSurreal connects to SurrealDB.
func OpenSurreal(ctx context.Context, cfg SurrealConfig) (*Surreal, error) {
	db := database.NewSurrealDB(cfg)
	if err := db.Connect(ctx); err != nil {
		return nil, err
	}
	return NewSurreal(db), nil
}

// Close closes the connection.
func (s *Surreal) Close() error { return s.db.Close() }

// Save creates a record in the row's table and assigns its record id.
func (s *Surreal) Save(ctx context.Context, m factory.Model) error {
	row, err := asRow(m)
	if err != nil {
		return err
	}
	clearErrors(m)

	table := TableName(row)
	vars := map[string]interface{}{
		"table":   table,
		"content": row.Fields(),
	}
	query := `CREATE type::table($table) CONTENT $content`
	if id := row.ID(); id != nil {
		vars["key"] = id
		query = `CREATE type::record($table, $key) CONTENT $content`
	}

	rec, err := s.db.QueryOne(ctx, query, vars)
	if err != nil {
		recordError(m, err)
		return fmt.Errorf("create %s: %w", table, err)
	}

	created, ok := rec.(map[string]interface{})
	if !ok {
		return fmt.Errorf("create %s: unexpected result %T", table, rec)
	}
	id := database.RecordID(created["id"])
	if id == "" {
		return fmt.Errorf("create %s: result has no id", table)
	}
	row.SetID(id)
	return nil
}
