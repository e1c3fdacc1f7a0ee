package assets

import "errors"

var (
	ErrNotGLB             = errors.New("asset is not a binary glTF container")
	ErrUnsupportedVersion = errors.New("unsupported glTF container version")
	ErrTruncated          = errors.New("asset data truncated")
	ErrFetchFailed        = errors.New("asset fetch failed")
)
