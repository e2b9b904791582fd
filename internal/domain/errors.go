package domain

import "errors"

var (
	// ErrAlreadyExists is returned when a create targets an occupied address
	// (duplicate profile, quiz id, or achievement id for the same owner).
	ErrAlreadyExists = errors.New("record already exists")
	// ErrNotFound is returned when an operation requires a record that has
	// not been created.
	ErrNotFound = errors.New("record not found")
	// ErrUnauthorized is returned when the caller identity does not match
	// the owner of the record being mutated.
	ErrUnauthorized = errors.New("caller does not own record")
	// ErrInvalidScore is returned when a quiz score exceeds the question count.
	ErrInvalidScore = errors.New("score cannot exceed total questions")
	// ErrInvalidArgument is returned for malformed or over-length input.
	ErrInvalidArgument = errors.New("invalid argument")
)
