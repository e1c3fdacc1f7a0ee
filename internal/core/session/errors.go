package session

import "errors"

var (
	ErrUnsupportedDevice = errors.New("device does not support OpenGL ES 3.0")
	ErrAlreadyStarted    = errors.New("session already started")
)
