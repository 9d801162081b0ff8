package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrConflict indicates a write lost against a concurrent writer; the
	// caller should retry the whole read-modify-write.
	ErrConflict = errors.New("conflicting write")
	// ErrMisconfigured indicates required deployment settings are absent.
	ErrMisconfigured = errors.New("server misconfigured")
	// ErrBadDocument indicates the shared orders document could not be decoded.
	ErrBadDocument = errors.New("bad orders document")
)
