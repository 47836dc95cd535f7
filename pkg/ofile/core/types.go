package core

// EntryKind represents the type of a filesystem entry behind a handle
type EntryKind int

const (
	// KindUnknown represents an unknown or non-existent entry
	KindUnknown EntryKind = iota
	// KindFile represents a regular file
	KindFile
	// KindDirectory represents a directory
	KindDirectory
)

// String returns the string representation of the EntryKind
func (k EntryKind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	default:
		return "unknown"
	}
}

// StreamState tracks which buffered stream a handle currently holds open.
type StreamState int

const (
	// StreamNone means neither reader nor writer is open
	StreamNone StreamState = iota
	// StreamReading means the buffered reader is open
	StreamReading
	// StreamWriting means the buffered writer is open
	StreamWriting
)

// String returns the string representation of the StreamState
func (s StreamState) String() string {
	switch s {
	case StreamReading:
		return "reading"
	case StreamWriting:
		return "writing"
	default:
		return "none"
	}
}

// MatchMode selects how the children of two directories are paired during comparison.
type MatchMode int

const (
	// MatchByName pairs children with the same name. A child without a
	// counterpart makes the directories unequal.
	MatchByName MatchMode = iota
	// MatchPositional pairs children by their index in the (name sorted) listing.
	MatchPositional
)

// String returns the string representation of the MatchMode
func (m MatchMode) String() string {
	switch m {
	case MatchPositional:
		return "positional"
	default:
		return "name"
	}
}

// ParseMatchMode parses "name" or "positional".
func ParseMatchMode(s string) (MatchMode, error) {
	switch s {
	case "", "name", "by-name":
		return MatchByName, nil
	case "positional", "position":
		return MatchPositional, nil
	default:
		return MatchByName, NewError("parse-match-mode", s, KindInvalidPath, ErrInvalidMatchMode)
	}
}
