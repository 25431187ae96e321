package fixtures

import (
	"github.com/SilvertipSoftware/factorygirl/pkg/factory"
)

// Password is the plain text password every fixture user is hashed from.
const Password = "testpass123"

// New returns a factory with the fixture definitions registered. Pass
// factory.WithStore to make Create work.
func New(opts ...factory.Option) *factory.Factory {
	f := factory.New(opts...)
	Define(f)
	return f
}

// Define registers the fixture sequences and factories on f:
//
//	user      User    name, email (sequence), password_hash, token
//	admin     User    user + role "admin", username copied from email
//	base_post Post    status "draft"
//	post      Post    base_post + title, author (associated user)
//	comment   Comment body, post (associated post), author (associated user)
func Define(f *factory.Factory) {
	f.Sequence("email", factory.Format("user%d@test.local"))
	f.Sequence("title", factory.Format("Post %d"))

	// ============================================================================
	// User Fixtures
	// ============================================================================

	f.Define("user", func(*factory.Factory) (*factory.Attributes, error) {
		return factory.Fields(
			"name", "Test User",
			"email", factory.Seq("email"),
			"password_hash", factory.BcryptHash(Password),
			"token", factory.UUID(),
		), nil
	}, nil)

	f.Define("admin", func(*factory.Factory) (*factory.Attributes, error) {
		return factory.Fields(
			"role", "admin",
			"username", factory.From("email"),
		), nil
	}, factory.Parent("user"))

	// ============================================================================
	// Post Fixtures
	// ============================================================================

	f.Define("base_post", factory.Static(factory.Fields("status", "draft")), factory.Class("Post"))

	f.Define("post", func(f *factory.Factory) (*factory.Attributes, error) {
		return factory.Fields(
			"title", factory.Seq("title"),
			"author", f.Associate("user"),
		), nil
	}, factory.Parent("base_post"))

	f.Define("comment", func(f *factory.Factory) (*factory.Attributes, error) {
		return factory.Fields(
			"body", "Nice post",
			"post", f.Associate(),
			"author", f.Associate("user"),
		), nil
	}, nil)
}
