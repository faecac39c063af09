package apperrors

import "errors"

var (
	ErrToolNotFound = errors.New("tool not found")
	ErrBadArguments = errors.New("bad tool arguments")
	ErrNoAPIKey     = errors.New("decision service API key is not configured")
)
