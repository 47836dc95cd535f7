package ofile

import "github.com/arthur-debert/ofile/pkg/ofile/core"

// Error is the error type returned by every handle operation.
type Error = core.Error

// DeleteResult reports the outcome of a recursive delete.
type DeleteResult = core.DeleteResult

// ChildFailure records one descendant a recursive operation could not handle.
type ChildFailure = core.ChildFailure

// Sentinels for errors.Is checks against *Error values.
var (
	ErrNotFound             = core.ErrNotFound
	ErrIO                   = core.ErrIO
	ErrAlgorithmUnavailable = core.ErrAlgorithmUnavailable
	ErrRename               = core.ErrRename
	ErrPartialDelete        = core.ErrPartialDelete
	ErrIsDirectory          = core.ErrIsDirectory
	ErrInvalidPath          = core.ErrInvalidPath
)
