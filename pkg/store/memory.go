package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/SilvertipSoftware/factorygirl/pkg/factory"
)

// Memory keeps saved rows in process, assigning auto-increment int64 ids
// per table.
type Memory struct {
	mu     sync.Mutex
	nextID map[string]int64
	tables map[string][]map[string]any
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		nextID: make(map[string]int64),
		tables: make(map[string][]map[string]any),
	}
}

// Save stores a copy of the model's fields and assigns its id. A model
// that already carries an id keeps it.
func (s *Memory) Save(_ context.Context, m factory.Model) error {
	row, err := asRow(m)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	table := TableName(row)
	id := row.ID()
	if id == nil {
		s.nextID[table]++
		id = s.nextID[table]
	} else if n, ok := id.(int64); ok && n > s.nextID[table] {
		s.nextID[table] = n
	}

	data := row.Fields()
	data["id"] = id
	s.tables[table] = append(s.tables[table], data)
	row.SetID(id)
	return nil
}

// Rows returns copies of the rows saved to table, in save order.
func (s *Memory) Rows(table string) []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]map[string]any, 0, len(s.tables[table]))
	for _, r := range s.tables[table] {
		out = append(out, copyRow(r))
	}
	return out
}

// Count returns the number of rows saved to table.
func (s *Memory) Count(table string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tables[table])
}

// Find returns the row with the given id from table.
func (s *Memory) Find(table string, id any) (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.tables[table] {
		if r["id"] == id {
			return copyRow(r), nil
		}
	}
	return nil, fmt.Errorf("%s %v: %w", table, id, ErrNotFound)
}

func copyRow(r map[string]any) map[string]any {
	c := make(map[string]any, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}
