// Package testdb provides throwaway databases for store tests.
//
// # SQLite
//
// NewSQLite opens a private in-memory database with the fixture schema:
//
//	func TestSomething(t *testing.T) {
//	    s := testdb.NewSQLite(t)
//	    f := fixtures.New(factory.WithStore(s))
//	}
//
// # SurrealDB
//
// NewSurreal connects to the server named by TEST_DB_HOST (plus
// TEST_DB_PORT, TEST_DB_USER and TEST_DB_PASSWORD) and skips the test when
// it is not configured or not reachable:
//
//	tdb := testdb.NewSurreal(t)
//	f := fixtures.New(factory.WithStore(tdb.Store))
//
// # Isolation
//
// Each SurrealDB TestDB gets its own namespace, removed on cleanup. Each
// sqlite store is its own in-memory database.
package testdb
