package spatial

import "errors"

var ErrUnknownPlaneType = errors.New("unknown plane type")
