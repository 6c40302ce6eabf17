package domain

import "errors"

var (
	// ErrValidation marks malformed or missing input.
	ErrValidation = errors.New("invalid input")
	// ErrDuplicate marks a unique-key collision.
	ErrDuplicate = errors.New("already exists")
	// ErrNotFound marks a lookup miss.
	ErrNotFound = errors.New("not found")
)
