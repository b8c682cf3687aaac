package browser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Kind classifies why a host store could not be read.
type Kind int

const (
	KindUnavailable Kind = iota
	KindPermissionDenied
	KindTimeout
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindPermissionDenied:
		return "permission denied"
	case KindTimeout:
		return "timeout"
	case KindMalformed:
		return "malformed"
	default:
		return "unavailable"
	}
}

// FetchError is returned by every Host method that fails.
type FetchError struct {
	Source Source
	Kind   Kind
	Err    error
}

func (e *FetchError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s: %s: %v", e.Source, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// AsFetchError returns err as a *FetchError, classifying it against source
// when it is not one already. A nil err returns nil.
func AsFetchError(source Source, err error) *FetchError {
	if err == nil {
		return nil
	}
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe
	}
	return &FetchError{Source: source, Kind: classify(err), Err: err}
}

// KindOf returns the Kind of err and whether err carries one.
func KindOf(err error) (Kind, bool) {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind, true
	}
	return KindUnavailable, false
}

func fail(source Source, err error) error {
	return AsFetchError(source, err)
}

func classify(err error) Kind {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.Is(err, os.ErrPermission):
		return KindPermissionDenied
	case errors.Is(err, os.ErrNotExist):
		return KindUnavailable
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return KindMalformed
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "permission denied"), strings.Contains(msg, "access is denied"):
		return KindPermissionDenied
	case strings.Contains(msg, "database is locked"), strings.Contains(msg, "busy"):
		return KindUnavailable
	case strings.Contains(msg, "not a database"),
		strings.Contains(msg, "malformed"),
		strings.Contains(msg, "no such table"),
		strings.Contains(msg, "no such column"):
		return KindMalformed
	}
	return KindUnavailable
}
