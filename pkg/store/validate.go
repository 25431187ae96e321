package store

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/SilvertipSoftware/factorygirl/pkg/factory"
)

// ErrInvalid is matched by every ValidationError.
var ErrInvalid = errors.New("model failed validation")

// ValidationError lists the failed checks of one model.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalid, strings.Join(e.Messages, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalid }

// Validating checks models before handing them to another store. Struct
// models are validated with their `validate` tags; rows are validated
// against the rules registered for their class.
type Validating struct {
	next     factory.Store
	validate *validator.Validate
	rules    map[string]map[string]interface{}
}

// NewValidating wraps next.
func NewValidating(next factory.Store) *Validating {
	return &Validating{
		next:     next,
		validate: validator.New(),
		rules:    make(map[string]map[string]interface{}),
	}
}

// Rules registers validator tags per field for rows of class, e.g.
// Rules("User", map[string]string{"email": "required,email"}).
func (v *Validating) Rules(class string, rules map[string]string) *Validating {
	r := make(map[string]interface{}, len(rules))
	for field, tag := range rules {
		r[field] = tag
	}
	v.rules[class] = r
	return v
}

// Validator exposes the validator for custom tag registration.
func (v *Validating) Validator() *validator.Validate { return v.validate }

// Save validates m and, if it passes, saves it with the wrapped store.
// Failed checks are also added to models that collect errors.
func (v *Validating) Save(ctx context.Context, m factory.Model) error {
	clearErrors(m)
	msgs := v.check(ctx, m)
	if len(msgs) > 0 {
		if c, ok := m.(errorCollector); ok {
			for _, msg := range msgs {
				c.AddError(msg)
			}
		}
		return &ValidationError{Messages: msgs}
	}
	return v.next.Save(ctx, m)
}

func (v *Validating) check(ctx context.Context, m factory.Model) []string {
	if row, ok := m.(Row); ok {
		if rules, ok := v.rules[row.Class()]; ok {
			return mapMessages(v.validate.ValidateMapCtx(ctx, row.Fields(), rules))
		}
	}

	rv := reflect.ValueOf(m)
	if rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}
	err := v.validate.StructCtx(ctx, m)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
	}
	return msgs
}

func mapMessages(errs map[string]interface{}) []string {
	msgs := make([]string, 0, len(errs))
	for field, e := range errs {
		var verrs validator.ValidationErrors
		if err, ok := e.(error); ok && errors.As(err, &verrs) {
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed on %s", field, fe.Tag()))
			}
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s: %v", field, e))
	}
	sort.Strings(msgs)
	return msgs
}
