package display

import (
	"errors"
	"fmt"
)

var (
	// ErrEnumerationFailed implies the OS refused to enumerate outputs. It is
	// never returned when there are simply no displays.
	ErrEnumerationFailed = errors.New("display enumeration failed")

	// ErrQueryFailed implies the OS could not describe the handle, usually
	// because it went stale after a configuration change.
	ErrQueryFailed = errors.New("display query failed")

	// ErrInvalidRect implies the OS reported right < left or bottom < top.
	ErrInvalidRect = errors.New("invalid monitor rectangle")

	// ErrInvalidHandle implies a textual handle could not be parsed.
	ErrInvalidHandle = errors.New("invalid display handle")
)

// QueryError carries the handle and the OS error behind an ErrQueryFailed.
type QueryError struct {
	Handle Handle
	Err    error
}

func (e *QueryError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: handle %s", ErrQueryFailed, e.Handle)
	}
	return fmt.Sprintf("%s: handle %s: %s", ErrQueryFailed, e.Handle, e.Err)
}

func (e *QueryError) Is(target error) bool {
	return target == ErrQueryFailed
}

func (e *QueryError) Unwrap() error {
	return e.Err
}
