package domain

import "errors"

var (
	ErrSongNotFound   = errors.New("song not found")
	ErrArtistNotFound = errors.New("artist not found")
	ErrValidation     = errors.New("missing or invalid required field")
)
