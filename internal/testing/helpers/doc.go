// Package helpers provides common assertions for factory tests.
//
// Build and create helpers fail the test instead of returning errors:
//
//	user := helpers.MustCreate(t, f, "user", nil)
//	helpers.AssertSaved(t, mem, user)
//	helpers.AssertCount(t, mem, "users", 1)
//
// Field comparisons are reported as go-cmp diffs.
package helpers
