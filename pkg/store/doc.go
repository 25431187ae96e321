// Package store provides persistence backends for factory.Create.
//
// Every store implements factory.Store and persists models that implement
// Row, such as *factory.Record.
//
// # Backends
//
//   - Memory: in-process rows with auto-increment ids, for unit tests
//   - SQL: one INSERT per save, over sqlite (modernc) or postgres (pgx)
//   - Surreal: one CREATE per save over SurrealDB
//   - Validating: checks models with validator tags or per-class rules
//     before delegating to another store
//
// # Usage
//
//	db, err := store.OpenSQLite(ctx, ":memory:")
//	f := factory.New(factory.WithStore(db))
//
// Tables are named after the model class in snake_case plural form
// ("BlogPost" is stored in "blog_posts") unless the model implements Tabler.
package store
