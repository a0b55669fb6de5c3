package service

import (
	"errors"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrConflict  = errors.New("conflict")
	ErrInvalid   = errors.New("invalid")
	ErrFeedFetch = errors.New("feed fetch failed")
	ErrTimeout   = errors.New("feed fetch timed out")
	ErrParse     = errors.New("feed parse failed")
)

// SubmitError is returned by a failed submission. Key is the translation key
// that was written into the state; Err unwraps to one of the sentinels above.
type SubmitError struct {
	Key string
	Err error
}

func (e *SubmitError) Error() string {
	if e.Err == nil {
		return e.Key
	}
	return e.Key + ": " + e.Err.Error()
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}

// ErrorKey returns the translation key carried by err, or "" if there is none.
func ErrorKey(err error) string {
	var submitErr *SubmitError
	if errors.As(err, &submitErr) {
		return submitErr.Key
	}
	return ""
}
