// Package common defines shared sentinel errors and small helpers used across
// csvdb layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")

	// Validation errors.
	ErrInvalidName = errors.New("invalid name")

	// Session errors.
	ErrNotLoggedIn = errors.New("not logged in")
	ErrNoDatabase  = errors.New("no database opened")
)
