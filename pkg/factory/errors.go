package factory

import (
	"errors"
	"fmt"
	"strings"
)

// ===== Registry Errors =====
var (
	ErrUnknownFactory     = errors.New("factory does not exist")
	ErrMissingClassOption = errors.New("model class is not specified")
	ErrParentCycle        = errors.New("factory parent chain is circular")
)

// ===== Build Errors =====
var (
	ErrUnknownClass      = errors.New("model class is not registered")
	ErrResolveLimit      = errors.New("attribute resolution did not settle")
	ErrPersistenceFailed = errors.New("could not save model")
	ErrNoStore           = errors.New("no store configured")
)

// ===== Sequence Errors =====
var (
	ErrUnknownSequence = errors.New("sequence does not exist")
)

// PersistenceError is returned by Create when the store refuses a model.
// It matches ErrPersistenceFailed and the store's own error with errors.Is.
type PersistenceError struct {
	Factory string
	Model   Model
	Detail  []string
	Err     error
}

func (e *PersistenceError) Error() string {
	msg := fmt.Sprintf("%s built from factory %s", ErrPersistenceFailed, e.Factory)
	if len(e.Detail) > 0 {
		msg += "\n" + strings.Join(e.Detail, "\n")
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *PersistenceError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrPersistenceFailed}
	}
	return []error{ErrPersistenceFailed, e.Err}
}
