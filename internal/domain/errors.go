package domain

import "errors"

// ErrorKind is the machine-readable classification surfaced to callers.
type ErrorKind string

const (
	KindUnsupportedCity  ErrorKind = "unsupported_city"
	KindMissingDateRange ErrorKind = "missing_date_range"
	KindUpstreamAuth     ErrorKind = "upstream_auth"
	KindUpstreamRequest  ErrorKind = "upstream_request"
	KindNoInventory      ErrorKind = "no_inventory"
	KindCacheRead        ErrorKind = "cache_read"
	KindCacheWrite       ErrorKind = "cache_write"
)

// Error couples an ErrorKind with a message, so the HTTP layer can tell
// "bad input" apart from "upstream unavailable" without string matching.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func NewError(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func WrapError(kind ErrorKind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// KindOf extracts the ErrorKind from err, or "" for untyped errors.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
