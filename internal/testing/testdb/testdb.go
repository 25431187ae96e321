package testdb

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/SilvertipSoftware/factorygirl/internal/database"
	"github.com/SilvertipSoftware/factorygirl/pkg/store"
)

// Schema creates the tables used by the shared fixtures in sqlite.
var Schema = []string{
	`CREATE TABLE users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT,
		email TEXT UNIQUE,
		password_hash TEXT,
		token TEXT,
		role TEXT,
		username TEXT
	)`,
	`CREATE TABLE posts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT,
		status TEXT,
		author_id INTEGER REFERENCES users(id)
	)`,
	`CREATE TABLE comments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		body TEXT,
		post_id INTEGER REFERENCES posts(id),
		author_id INTEGER REFERENCES users(id)
	)`,
}

// NewSQLite opens a private in-memory sqlite store and runs ddl against it,
// or Schema when ddl is empty. The store is closed when the test ends.
func NewSQLite(t *testing.T, ddl ...string) *store.SQL {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s, err := store.OpenSQLite(ctx, ":memory:")
	if err != nil {
		t.Fatalf("testdb: failed to open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	if len(ddl) == 0 {
		ddl = Schema
	}
	for i, stmt := range ddl {
		if _, err := s.DB().ExecContext(ctx, stmt); err != nil {
			t.Fatalf("testdb: schema statement %d failed: %v", i+1, err)
		}
	}
	return s
}

// TestDB is an isolated SurrealDB namespace.
type TestDB struct {
	DB        database.Database
	Store     *store.Surreal
	Namespace string
	Database  string
	t         *testing.T
}

// getTestConfig returns database config from the environment. ok is false
// when TEST_DB_HOST is unset.
func getTestConfig() (database.Config, bool) {
	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		return database.Config{}, false
	}

	return database.Config{
		Host:     host,
		Port:     envOr("TEST_DB_PORT", "8000"),
		User:     envOr("TEST_DB_USER", "root"),
		Password: envOr("TEST_DB_PASSWORD", "root"),
	}, true
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// uniqueNamespace generates a namespace no other test run will use
func uniqueNamespace() string {
	return "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// NewSurreal connects to the SurrealDB named by TEST_DB_HOST in a fresh
// namespace. The test is skipped when TEST_DB_HOST is unset or the server
// cannot be reached. The namespace is removed when the test ends.
func NewSurreal(t *testing.T) *TestDB {
	t.Helper()

	cfg, ok := getTestConfig()
	if !ok {
		t.Skip("testdb: TEST_DB_HOST not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg.Namespace = uniqueNamespace()
	cfg.Database = "test"

	db := database.NewSurrealDB(cfg)
	if err := db.Connect(ctx); err != nil {
		t.Skipf("testdb: surrealdb unavailable: %v", err)
	}

	tdb := &TestDB{
		DB:        db,
		Store:     store.NewSurreal(db),
		Namespace: cfg.Namespace,
		Database:  cfg.Database,
		t:         t,
	}
	t.Cleanup(tdb.Close)
	return tdb
}

// Close removes the namespace and closes the connection.
func (tdb *TestDB) Close() {
	if tdb.DB == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	query := fmt.Sprintf("REMOVE NAMESPACE %s", tdb.Namespace)
	_ = tdb.DB.Execute(ctx, query, nil) // Ignore errors on cleanup

	_ = tdb.DB.Close()
	tdb.DB = nil
}

// Ctx returns a context with a reasonable timeout for test operations.
func (tdb *TestDB) Ctx() context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	tdb.t.Cleanup(cancel)
	return ctx
}

// MustQuery executes a query and returns results, failing the test on error.
func (tdb *TestDB) MustQuery(query string, vars map[string]interface{}) []interface{} {
	tdb.t.Helper()
	results, err := tdb.DB.Query(tdb.Ctx(), query, vars)
	if err != nil {
		tdb.t.Fatalf("testdb: query failed: %v\nQuery: %s", err, query)
	}
	return results
}

// MustSelectOne returns the record with the given "table:key" id.
func (tdb *TestDB) MustSelectOne(id string) map[string]interface{} {
	tdb.t.Helper()
	rec, err := tdb.DB.QueryOne(tdb.Ctx(), "SELECT * FROM type::thing($id)", map[string]interface{}{"id": id})
	if err != nil {
		tdb.t.Fatalf("testdb: select %s failed: %v", id, err)
	}
	row, ok := rec.(map[string]interface{})
	if !ok {
		tdb.t.Fatalf("testdb: select %s returned %T", id, rec)
	}
	return row
}
