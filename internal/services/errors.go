package services

import "errors"

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrMovieNotFound = errors.New("movie not found")
)
