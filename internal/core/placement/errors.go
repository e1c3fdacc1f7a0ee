package placement

import "errors"

var (
	ErrAlreadyReady = errors.New("object asset already marked ready")
	ErrNilAsset     = errors.New("object asset is nil")
	ErrNilFactory   = errors.New("anchor factory is nil")
)
