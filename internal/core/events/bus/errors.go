package bus

import "errors"

var (
	ErrEmptyEventType = errors.New("event type is required")
	ErrNilHandler     = errors.New("event handler is nil")
	ErrNilEvent       = errors.New("event is nil")
)
