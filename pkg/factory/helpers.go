package factory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UUID returns a deferred value producing a fresh random UUID string.
func UUID() DeferredFunc {
	return func(context.Context, *Attributes, *Factory) (any, error) {
		return uuid.NewString(), nil
	}
}

// BcryptHash returns a deferred value hashing plain with bcrypt at minimum
// cost, for models that store password hashes.
func BcryptHash(plain string) DeferredFunc {
	return func(context.Context, *Attributes, *Factory) (any, error) {
		hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		return string(hash), nil
	}
}

// From returns a deferred value copying another attribute's current value,
// e.g. From("email") for a username defaulting to the email.
func From(key string) DeferredFunc {
	return func(_ context.Context, attrs *Attributes, _ *Factory) (any, error) {
		v, _ := attrs.Value(key)
		return v, nil
	}
}
