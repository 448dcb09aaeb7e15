package service

import "errors"

var (
	// ErrEmptyTitle is returned before any data call when a recipe title is
	// blank after trimming.
	ErrEmptyTitle = errors.New("recipe title must not be empty")

	// ErrEmptyGenreName is returned before any data call when a genre name
	// is blank after trimming.
	ErrEmptyGenreName = errors.New("genre name must not be empty")

	// ErrDuplicateGenre is returned when a genre with the same name already
	// exists, compared case-insensitively.
	ErrDuplicateGenre = errors.New("genre already exists")

	// ErrGenreLimit is returned when the registry already holds GenreLimit
	// genres.
	ErrGenreLimit = errors.New("genre limit reached")

	// ErrInvalidToken is returned when an identity token cannot be parsed
	// or verified.
	ErrInvalidToken = errors.New("invalid identity token")
)
