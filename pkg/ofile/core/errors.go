package core

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// ErrorKind classifies the failures reported by ofile operations.
type ErrorKind int

const (
	// KindIO is a generic read, write or filesystem failure
	KindIO ErrorKind = iota
	// KindNotFound means the entry does not exist
	KindNotFound
	// KindAlgorithmUnavailable means no digest implementation is linked in
	KindAlgorithmUnavailable
	// KindRename means a rename could not be performed
	KindRename
	// KindPartialDelete means some descendants of a directory could not be deleted
	KindPartialDelete
	// KindIsDirectory means a file-only operation was attempted on a directory
	KindIsDirectory
	// KindInvalidPath means the path or name argument is malformed
	KindInvalidPath
)

// Sentinel errors, one per kind, usable with errors.Is.
var (
	ErrIO                   = errors.New("i/o error")
	ErrNotFound             = errors.New("not found")
	ErrAlgorithmUnavailable = errors.New("digest algorithm unavailable")
	ErrRename               = errors.New("rename failed")
	ErrPartialDelete        = errors.New("partial delete failure")
	ErrIsDirectory          = errors.New("is a directory")
	ErrInvalidPath          = errors.New("invalid path")

	ErrInvalidMatchMode = errors.New("unknown match mode")
)

// String returns the string representation of the ErrorKind
func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindAlgorithmUnavailable:
		return "algorithm_unavailable"
	case KindRename:
		return "rename_error"
	case KindPartialDelete:
		return "partial_delete"
	case KindIsDirectory:
		return "is_directory"
	case KindInvalidPath:
		return "invalid_path"
	default:
		return "io_error"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindNotFound:
		return ErrNotFound
	case KindAlgorithmUnavailable:
		return ErrAlgorithmUnavailable
	case KindRename:
		return ErrRename
	case KindPartialDelete:
		return ErrPartialDelete
	case KindIsDirectory:
		return ErrIsDirectory
	case KindInvalidPath:
		return ErrInvalidPath
	default:
		return ErrIO
	}
}

// Error provides context about a failed filesystem operation
type Error struct {
	Op   string    // Operation (e.g., "checksum", "copy", "rename")
	Path string    // Primary path being operated on
	Kind ErrorKind // Failure classification
	Err  error     // Underlying error
}

// NewError builds an *Error.
func NewError(op, path string, kind ErrorKind, err error) *Error {
	return &Error{Op: op, Path: path, Kind: kind, Err: err}
}

// Wrap converts err into an *Error, classifying fs.ErrNotExist as KindNotFound
// and everything else as fallback. An existing *Error is returned as is.
func Wrap(op, path string, fallback ErrorKind, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	kind := fallback
	if errors.Is(err, fs.ErrNotExist) {
		kind = KindNotFound
	}
	return NewError(op, path, kind, err)
}

// Error returns a formatted error message
func (e *Error) Error() string {
	// Format: "<op> '<path>': <kind>: <reason>"
	if e.Err != nil {
		return fmt.Sprintf("%s '%s': %s: %v", e.Op, e.Path, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s '%s': %s", e.Op, e.Path, e.Kind)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind.
func (e *Error) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// KindOf returns the ErrorKind carried by err, or KindIO for foreign errors.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindIO
}

// ChildFailure records one descendant that could not be removed.
type ChildFailure struct {
	Path string
	Err  error
}

// DeleteResult reports the outcome of a recursive delete. Removed reflects only
// the removal of the root entry; Failures lists descendants that were left behind.
type DeleteResult struct {
	Path     string
	Removed  bool
	Deleted  int
	Failures []ChildFailure
	RootErr  error
}

// OK reports whether the root was removed and no descendant failed.
func (r *DeleteResult) OK() bool {
	return r.Removed && len(r.Failures) == 0
}

// Err summarises the result as an error, nil when OK.
func (r *DeleteResult) Err() error {
	if r.OK() {
		return nil
	}
	if len(r.Failures) == 0 {
		return Wrap("delete", r.Path, KindIO, r.RootErr)
	}

	return NewError("delete", r.Path, KindPartialDelete, JoinFailures(r.Failures))
}

// JoinFailures folds child failures into one error, nil for an empty slice.
func JoinFailures(failures []ChildFailure) error {
	if len(failures) == 0 {
		return nil
	}
	var parts []string
	for _, f := range failures {
		parts = append(parts, fmt.Sprintf("%s: %v", f.Path, f.Err))
	}
	return fmt.Errorf("%d child(ren) failed: %s", len(failures), strings.Join(parts, "; "))
}
