package replay

import "errors"

var (
	ErrDecode       = errors.New("trace decode failed")
	ErrInvalidTrace = errors.New("invalid trace")
)
