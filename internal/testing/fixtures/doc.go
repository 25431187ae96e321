// Package fixtures provides a shared set of factory definitions for tests.
//
// The definitions model a small blog: users, admins, posts and comments,
// with posts and comments creating their associated rows on demand.
//
// # Factory Setup
//
// Create a factory backed by any store:
//
//	f := fixtures.New(factory.WithStore(store.NewMemory()))
//
// # Creating Test Data
//
//	user, err := f.Create(ctx, "user", nil)
//	post, err := f.Create(ctx, "post", factory.Attrs{"status": "published"})
//	comment, err := f.Create(ctx, "comment", nil) // also creates a post and two users
//
// # Unique Values
//
// Emails and post titles come from sequences:
//
//	user1, _ := f.Build(ctx, "user", nil) // user1@test.local
//	user2, _ := f.Build(ctx, "user", nil) // user2@test.local
//
// Every user's password_hash is a bcrypt hash of Password.
package fixtures
