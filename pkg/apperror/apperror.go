// Package apperror defines the error kinds surfaced by workflows and how
// they classify failures without leaking store or driver details.
package apperror

import (
	"errors"
	"strings"
)

type Kind string

const (
	KindMissingFields   Kind = "missing_fields"
	KindInvalidInput    Kind = "invalid_input"
	KindConflict        Kind = "conflict"
	KindNotFound        Kind = "not_found"
	KindForbidden       Kind = "forbidden"
	KindUnauthorized    Kind = "unauthorized"
	KindStorage         Kind = "storage_error"
	KindExternalService Kind = "external_service_error"
)

// Error carries a stable kind and a client-safe message. Err holds the
// underlying cause for logging and errors.Is/As; it is never rendered.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// MissingFields names each absent field.
func MissingFields(names ...string) *Error {
	fields := make(map[string]string, len(names))
	for _, name := range names {
		fields[name] = name + " is required"
	}
	return &Error{
		Kind:    KindMissingFields,
		Message: "missing required fields: " + strings.Join(names, ", "),
		Fields:  fields,
	}
}

// Storage wraps a store failure. Errors that already carry a kind pass through.
func Storage(err error) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}
	return Wrap(KindStorage, "storage error", err)
}

func External(message string, err error) error {
	return Wrap(KindExternalService, message, err)
}

// KindOf reports the kind of err, or KindStorage for unclassified errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStorage
}
