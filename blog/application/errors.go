package application

import "errors"

var (
	// ErrInvalidPost wraps every input validation failure.
	ErrInvalidPost = errors.New("invalid post")

	// ErrTitleRequired is returned when generation is requested without a title.
	ErrTitleRequired = errors.New("title is required")
)
