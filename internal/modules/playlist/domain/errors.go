package domain

import "errors"

var (
	ErrPlaylistNotFound = errors.New("playlist not found")
	ErrSongNotFound     = errors.New("song not found")
	ErrNotOwner         = errors.New("playlist does not belong to caller")
	ErrValidation       = errors.New("validation failed")
)
