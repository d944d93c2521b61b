package service

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrSourceUnavailable = errors.New("source data unavailable")
)
