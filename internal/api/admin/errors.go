package admin

import (
	"errors"
	"fmt"
)

var (
	// ErrNotEditable: the record came from the fallback document and has no id.
	ErrNotEditable    = errors.New("artwork is not editable in read-only mode")
	ErrMediaDisabled  = errors.New("media uploads are not configured")
	ErrStoreReadOnly  = errors.New("artwork store is not configured, uploads are disabled")
	ErrPhotosDisabled = errors.New("photo library import is not configured")
)

// ValidationError aborts an operation before any network call is made.
type ValidationError struct {
	Msg string
	Err error
}

func (e *ValidationError) Error() string {
	if e.Err != nil && e.Msg == "" {
		return e.Err.Error()
	}
	return e.Msg
}

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func invalidErr(err error) error {
	return &ValidationError{Msg: err.Error(), Err: err}
}

