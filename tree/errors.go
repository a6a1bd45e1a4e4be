package tree

import (
	"errors"
	"fmt"
)

var (
	// ErrPathNotFound is returned when a path segment has no matching child
	ErrPathNotFound = errors.New("path not found")

	// ErrNotADirectory is returned when adding a child below a file
	ErrNotADirectory = errors.New("not a directory")

	// ErrIsADirectory is returned when reading or writing content of a directory
	ErrIsADirectory = errors.New("is a directory")
)

// Operation names carried by Error
const (
	OpResolve = "resolve"
	OpAdd     = "add"
	OpWrite   = "write"
	OpRead    = "read"
	OpList    = "list"
	OpAttach  = "attach"
)

// Error wraps one of the sentinel errors with the failed operation and the
// path it was given. Use errors.Is against the sentinels to inspect it.
type Error struct {
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
