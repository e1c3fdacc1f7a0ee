package config

import "errors"

var (
	ErrDecode  = errors.New("config decode failed")
	ErrInvalid = errors.New("invalid config")
)
