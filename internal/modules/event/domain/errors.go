package domain

import "errors"

var (
	ErrEventNotFound    = errors.New("event not found")
	ErrLocationNotFound = errors.New("location not found")
	ErrValidation       = errors.New("validation failed")
)
