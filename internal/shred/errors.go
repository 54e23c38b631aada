package shred

import "errors"

// Common errors that can be returned by shred operations
var (
	// ErrNotFound is returned when the target path does not exist
	ErrNotFound = errors.New("no such file or directory")

	// ErrNotRegular is returned when the target is not a regular file
	ErrNotRegular = errors.New("not a regular file")

	// ErrNotDirectory is returned when a directory operation is attempted on a non-directory
	ErrNotDirectory = errors.New("not a directory")

	// ErrProtectedPath is returned when the target is a path that must never be shredded
	ErrProtectedPath = errors.New("protected path")
)

// ShredError wraps an error with additional context about the shred operation
type ShredError struct {
	// Op is the operation that failed (e.g., "open", "write", "sync", "rename")
	Op string

	// Path is the path of the file that caused the error
	Path string

	// Err is the underlying error
	Err error
}

// Error implements the error interface
func (e *ShredError) Error() string {
	if e.Path == "" {
		return e.Op + ": " + e.Err.Error()
	}
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

// Unwrap returns the underlying error
func (e *ShredError) Unwrap() error {
	return e.Err
}

// NewShredError creates a new ShredError
func NewShredError(op, path string, err error) error {
	return &ShredError{
		Op:   op,
		Path: path,
		Err:  err,
	}
}

// IsNotFound returns true if the error is ErrNotFound
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsNotRegular returns true if the error is ErrNotRegular
func IsNotRegular(err error) bool {
	return errors.Is(err, ErrNotRegular)
}
