package store

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/SilvertipSoftware/factorygirl/pkg/factory"
)

var (
	// ErrUnsupportedModel is returned when a store cannot read a model's class
	// or fields.
	ErrUnsupportedModel = errors.New("model does not expose its class and fields")

	// ErrNotFound is returned by lookups for rows that were never saved.
	ErrNotFound = errors.New("row not found")
)

// Row is a model a store can persist. *factory.Record implements it.
type Row interface {
	factory.Model
	Class() string
	Fields() map[string]any
	SetID(id any)
}

// Tabler overrides the table a row is stored in.
type Tabler interface {
	Table() string
}

// errorCollector is implemented by models that keep validation messages.
type errorCollector interface {
	AddError(msg string)
}

// errorResetter is implemented by models whose messages can be cleared
// before another save attempt.
type errorResetter interface {
	ClearErrors()
}

func asRow(m factory.Model) (Row, error) {
	row, ok := m.(Row)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedModel, m)
	}
	return row, nil
}

// TableName returns the table a row is stored in: Table() when the row
// implements Tabler, otherwise the snake_case plural of its class.
func TableName(row Row) string {
	if t, ok := row.(Tabler); ok {
		return t.Table()
	}
	return pluralize(snakeCase(row.Class()))
}

func snakeCase(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && runes[i-1] != '_' && (unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func pluralize(s string) string {
	switch {
	case s == "":
		return s
	case strings.HasSuffix(s, "s"), strings.HasSuffix(s, "x"),
		strings.HasSuffix(s, "ch"), strings.HasSuffix(s, "sh"):
		return s + "es"
	case strings.HasSuffix(s, "y") && len(s) > 1 && !strings.ContainsRune("aeiou", rune(s[len(s)-2])):
		return s[:len(s)-1] + "ies"
	default:
		return s + "s"
	}
}

func clearErrors(m factory.Model) {
	if c, ok := m.(errorResetter); ok {
		c.ClearErrors()
	}
}

func recordError(m factory.Model, err error) {
	if c, ok := m.(errorCollector); ok {
		c.AddError(err.Error())
	}
}
