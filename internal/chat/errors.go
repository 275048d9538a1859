package chat

import "errors"

// Reject reasons returned by Policy.Validate. The message of each sentinel is
// the wire code sent back to the offending connection, except ErrEmptyMessage
// which is dropped silently.
var (
	ErrEmptyMessage         = errors.New("ERR_EMPTY_MESSAGE")
	ErrLongMessage          = errors.New("ERR_LONG_MESSAGE")
	ErrFrequentMessage      = errors.New("ERR_FREQUENT_MESSAGE")
	ErrInappropriateMessage = errors.New("ERR_INAPPROPRIATE_MESSAGE")
)
