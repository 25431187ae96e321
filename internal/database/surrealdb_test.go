package database

import (
	"context"
	"errors"
	"testing"

	"github.com/surrealdb/surrealdb.go/pkg/models"
)

func TestFirstRecord_UnwrapsEnvelope(t *testing.T) {
	results := []interface{}{
		map[string]interface{}{
			"status": "OK",
			"result": []interface{}{
				map[string]interface{}{"id": "users:1"},
				map[string]interface{}{"id": "users:2"},
			},
		},
	}

	rec, err := FirstRecord(results)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	row, ok := rec.(map[string]interface{})
	if !ok || row["id"] != "users:1" {
		t.Errorf("expected first record, got %v", rec)
	}
}

func TestFirstRecord_EmptyResults(t *testing.T) {
	if _, err := FirstRecord(nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for no statements, got %v", err)
	}

	empty := []interface{}{map[string]interface{}{"status": "OK", "result": []interface{}{}}}
	if _, err := FirstRecord(empty); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for empty result, got %v", err)
	}
}

func TestFirstRecord_ScalarResult(t *testing.T) {
	results := []interface{}{map[string]interface{}{"status": "OK", "result": "2.1.0"}}

	rec, err := FirstRecord(results)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec != "2.1.0" {
		t.Errorf("expected scalar result, got %v", rec)
	}
}

func TestFirstRecord_NotAnEnvelope(t *testing.T) {
	rec, err := FirstRecord([]interface{}{"raw"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec != "raw" {
		t.Errorf("expected raw value, got %v", rec)
	}
}

func TestRecordID(t *testing.T) {
	rid := models.NewRecordID("users", "abc")

	tests := []struct {
		name string
		in   interface{}
		want string
	}{
		{"nil", nil, ""},
		{"string", "users:abc", "users:abc"},
		{"record id", rid, rid.String()},
		{"record id pointer", &rid, rid.String()},
		{"tb map", map[string]interface{}{"tb": "users", "id": "abc"}, "users:abc"},
		{"unrecognized", 42, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RecordID(tt.in); got != tt.want {
				t.Errorf("RecordID(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSurrealDB_NotConnected(t *testing.T) {
	db := NewSurrealDB(Config{Host: "localhost", Port: "8000"})
	ctx := context.Background()

	if err := db.Ping(ctx); !errors.Is(err, ErrConnection) {
		t.Errorf("expected ErrConnection from Ping, got %v", err)
	}
	if _, err := db.Query(ctx, "INFO FOR DB", nil); !errors.Is(err, ErrConnection) {
		t.Errorf("expected ErrConnection from Query, got %v", err)
	}
	if err := db.Close(); err != nil {
		t.Errorf("expected Close on unconnected db to succeed, got %v", err)
	}
}
