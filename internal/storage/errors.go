package storage

import "errors"

var (
	ErrEmptySchema    = errors.New("schema is empty")
	ErrSchemaMismatch = errors.New("value count does not match schema")
	ErrInvalidValue   = errors.New("value contains a delimiter or line break")
	ErrIDCollision    = errors.New("could not generate a unique row id")
)
