package dao

import "errors"

var (
	// ErrNotFound is returned when no record is registered under the key
	ErrNotFound = errors.New("record not found")

	// ErrInvalidID is returned for keys that can never be registered, such as
	// a pid below 1
	ErrInvalidID = errors.New("invalid record id")

	ErrNilEntity = errors.New("nil record")
)
