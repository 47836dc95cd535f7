package ofile

import (
	"github.com/arthur-debert/ofile/pkg/ofile/checksum"
	"github.com/arthur-debert/ofile/pkg/ofile/core"
)

// --- Entry Kind Constants ---

// EntryKind is defined in the core package
type EntryKind = core.EntryKind

const (
	// KindUnknown represents an unknown or non-existent entry.
	KindUnknown = core.KindUnknown
	// KindFile represents a regular file.
	KindFile = core.KindFile
	// KindDirectory represents a directory.
	KindDirectory = core.KindDirectory
)

// --- Directory Matching Constants ---

// MatchMode is defined in the core package
type MatchMode = core.MatchMode

const (
	// MatchByName pairs directory children by name.
	MatchByName = core.MatchByName
	// MatchPositional pairs directory children by listing position.
	MatchPositional = core.MatchPositional
)

// Digest is the MD5 content digest of a file.
type Digest = checksum.Digest

// --- Default Values ---

const (
	// DefaultBlockSize is the read block size used for digests and line counting.
	DefaultBlockSize = checksum.BlockSize
	// DefaultFileMode is the default file permission mode (0644).
	DefaultFileMode = 0644
	// DefaultDirMode is the default directory permission mode (0755).
	DefaultDirMode = 0755
)
