package helpers

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/SilvertipSoftware/factorygirl/pkg/factory"
	"github.com/SilvertipSoftware/factorygirl/pkg/store"
)

// Ctx returns a context with a reasonable timeout for test operations.
func Ctx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// ============================================================================
// Build Helpers
// ============================================================================

// MustBuild builds a model and fails the test on error.
func MustBuild(t *testing.T, f *factory.Factory, name string, overrides factory.Overrides) *factory.Record {
	t.Helper()
	m, err := f.Build(Ctx(t), name, overrides)
	if err != nil {
		t.Fatalf("helpers: build %s failed: %v", name, err)
	}
	return asRecord(t, m)
}

// MustCreate creates a model and fails the test on error.
func MustCreate(t *testing.T, f *factory.Factory, name string, overrides factory.Overrides) *factory.Record {
	t.Helper()
	m, err := f.Create(Ctx(t), name, overrides)
	if err != nil {
		t.Fatalf("helpers: create %s failed: %v", name, err)
	}
	return asRecord(t, m)
}

func asRecord(t *testing.T, m factory.Model) *factory.Record {
	t.Helper()
	rec, ok := m.(*factory.Record)
	if !ok {
		t.Fatalf("helpers: expected *factory.Record, got %T", m)
	}
	return rec
}

// ============================================================================
// Assertion Helpers
// ============================================================================

// AssertFields checks that rec holds exactly the expected fields, id excluded.
func AssertFields(t *testing.T, rec *factory.Record, expected map[string]any) {
	t.Helper()
	if diff := cmp.Diff(expected, rec.Fields()); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
}

// AssertKeys checks that rec's fields were assigned in the expected order.
func AssertKeys(t *testing.T, rec *factory.Record, expected ...string) {
	t.Helper()
	if diff := cmp.Diff(expected, rec.Keys()); diff != "" {
		t.Errorf("key order mismatch (-want +got):\n%s", diff)
	}
}

// AssertSaved checks that the memory store holds a row for rec whose fields
// match rec's.
func AssertSaved(t *testing.T, s *store.Memory, rec *factory.Record) {
	t.Helper()
	if rec.ID() == nil {
		t.Fatalf("expected %s to have an id", rec.Class())
	}
	row, err := s.Find(store.TableName(rec), rec.ID())
	if err != nil {
		t.Fatalf("expected saved row: %v", err)
	}
	want := rec.Fields()
	want["id"] = rec.ID()
	if diff := cmp.Diff(want, row); diff != "" {
		t.Errorf("saved row mismatch (-want +got):\n%s", diff)
	}
}

// AssertCount checks the number of rows saved to table.
func AssertCount(t *testing.T, s *store.Memory, table string, expected int) {
	t.Helper()
	if got := s.Count(table); got != expected {
		t.Errorf("expected %d rows in %s, got %d", expected, table, got)
	}
}
