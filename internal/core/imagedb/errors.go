package imagedb

import "errors"

var (
	ErrEmptyName      = errors.New("image name is required")
	ErrInvalidWidth   = errors.New("image physical width must be positive")
	ErrEmptyImage     = errors.New("image has no pixels")
	ErrDuplicateName  = errors.New("image name already registered")
	ErrDuplicateImage = errors.New("image content already registered")
	ErrUnknownFormat  = errors.New("unsupported image format")
)
