package disk

import "errors"

var (
	// ErrFileNotFound is returned when the virtual file does not exist
	ErrFileNotFound = errors.New("disk: file not found")

	// ErrInvalidName is returned for empty names or names breaking the entry format
	ErrInvalidName = errors.New("disk: invalid file name")

	// ErrInvalidContent is returned for content spanning multiple lines
	ErrInvalidContent = errors.New("disk: invalid content")
)
