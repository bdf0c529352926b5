package common

import (
	"errors"
	"fmt"
)

// Upload and processing errors
var (
	ErrNoFileUploaded    = errors.New("no file uploaded")
	ErrUnsupportedType   = errors.New("unsupported file type")
	ErrFileTooLarge      = errors.New("file exceeds upload limit")
	ErrNotMultipart      = errors.New("request is not multipart/form-data")
	ErrPoolOverloaded    = errors.New("compression pool overloaded")
	ErrInvalidPreference = errors.New("invalid preference value")
)

// CompressionError represents compression-specific errors
type CompressionError struct {
	Operation string
	Filename  string
	Err       error
}

func (e *CompressionError) Error() string {
	if e.Filename != "" {
		return fmt.Sprintf("compression %s failed for file %s: %v", e.Operation, e.Filename, e.Err)
	}
	return fmt.Sprintf("compression %s failed: %v", e.Operation, e.Err)
}

func (e *CompressionError) Unwrap() error {
	return e.Err
}

// NewCompressionError creates a new compression error
func NewCompressionError(operation, filename string, err error) *CompressionError {
	return &CompressionError{
		Operation: operation,
		Filename:  filename,
		Err:       err,
	}
}
