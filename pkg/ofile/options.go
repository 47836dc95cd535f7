package ofile

import (
	"io/fs"

	"github.com/arthur-debert/ofile/pkg/ofile/core"
	"github.com/arthur-debert/ofile/pkg/ofile/filesystem"
)

// Options holds the configuration shared by every handle opened with it
type Options struct {
	// FileSystem is the backend all paths are resolved against
	FileSystem filesystem.FullFileSystem

	// BlockSize is the read size used when digesting and counting lines
	BlockSize int

	// MatchMode selects how directory children are paired during comparison
	MatchMode core.MatchMode

	// Permissions for entries created by Open and CopyReplace
	FileMode fs.FileMode
	DirMode  fs.FileMode
}

// DefaultOptions returns options backed by the OS filesystem rooted at the
// working directory.
func DefaultOptions() *Options {
	return &Options{
		FileSystem: filesystem.NewOSFileSystem("."),
		BlockSize:  DefaultBlockSize,
		MatchMode:  core.MatchByName,
		FileMode:   DefaultFileMode,
		DirMode:    DefaultDirMode,
	}
}

// WithFileSystem sets the backend
func (opts *Options) WithFileSystem(fsys filesystem.FullFileSystem) *Options {
	newOpts := *opts
	newOpts.FileSystem = fsys
	return &newOpts
}

// WithBlockSize sets the read block size; non-positive values restore the default
func (opts *Options) WithBlockSize(size int) *Options {
	newOpts := *opts
	if size <= 0 {
		size = DefaultBlockSize
	}
	newOpts.BlockSize = size
	return &newOpts
}

// WithMatchMode sets the directory matching mode
func (opts *Options) WithMatchMode(mode core.MatchMode) *Options {
	newOpts := *opts
	newOpts.MatchMode = mode
	return &newOpts
}

// WithFileMode sets the permission bits of newly created files
func (opts *Options) WithFileMode(mode fs.FileMode) *Options {
	newOpts := *opts
	newOpts.FileMode = mode
	return &newOpts
}

// WithDirMode sets the permission bits of newly created directories
func (opts *Options) WithDirMode(mode fs.FileMode) *Options {
	newOpts := *opts
	newOpts.DirMode = mode
	return &newOpts
}

// normalized fills zero values with defaults without touching the receiver.
func (opts *Options) normalized() *Options {
	if opts == nil {
		return DefaultOptions()
	}
	newOpts := *opts
	if newOpts.FileSystem == nil {
		newOpts.FileSystem = filesystem.NewOSFileSystem(".")
	}
	if newOpts.BlockSize <= 0 {
		newOpts.BlockSize = DefaultBlockSize
	}
	if newOpts.FileMode == 0 {
		newOpts.FileMode = DefaultFileMode
	}
	if newOpts.DirMode == 0 {
		newOpts.DirMode = DefaultDirMode
	}
	return &newOpts
}
