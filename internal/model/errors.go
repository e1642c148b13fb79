package model

import "errors"

// ErrNotFound is returned when a looked-up entity does not exist.
var ErrNotFound = errors.New("not found")

// DefaultDirectoryMessage is used when a directory failure carries no text at all.
const DefaultDirectoryMessage = "connection to the directory API failed"

// DirectoryError is the single error shape produced by the directory client.
// Message is taken from the remote error body when it has one.
type DirectoryError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *DirectoryError) Error() string {
	if e.Message == "" {
		return DefaultDirectoryMessage
	}
	return e.Message
}

func (e *DirectoryError) Unwrap() error {
	return e.Err
}

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ErrInvalidPassword is returned when the console password does not match.
var ErrInvalidPassword = errors.New("invalid password")
