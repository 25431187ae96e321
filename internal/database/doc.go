// Package database provides SurrealDB connectivity for factory stores.
//
// # Connection Management
//
//	db := database.NewSurrealDB(database.Config{
//	    Host:      "localhost",
//	    Port:      "8000",
//	    Namespace: "factories",
//	    Database:  "test",
//	    User:      "root",
//	    Password:  "root",
//	})
//	if err := db.Connect(ctx); err != nil {
//	    return err
//	}
//	defer db.Close()
//
// # Query Helpers
//
//   - Query: Execute query returning one entry per statement
//   - QueryOne: Execute query expecting a single record
//   - Execute: Execute query with no return value
//   - RecordID: Normalize a record id returned by SurrealDB to "table:id"
//
// # Error Handling
//
// Standard errors are defined for common failure cases:
//   - ErrNotFound: Record does not exist
//   - ErrConnection: Database connection issues
//   - ErrQuery: Query execution failures
//
// Use errors.Is() to check error types:
//
//	if errors.Is(err, database.ErrConnection) {
//	    t.Skip("surrealdb not available")
//	}
package database
