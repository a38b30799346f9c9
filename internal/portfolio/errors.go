package portfolio

import "errors"

var (
	// ErrRequestFailed covers transport failures, non-2xx answers and
	// unreadable bodies alike.
	ErrRequestFailed = errors.New("request failed")
	ErrMissingFields = errors.New("missing required fields")
	ErrNotConfirmed  = errors.New("delete not confirmed")
)
