package filesystem

import (
	"io"
	"io/fs"
)

// ReadFS is an alias for fs.FS, representing a read-only file system.
type ReadFS = fs.FS

// WritableFile is the stream returned by OpenFile.
type WritableFile = io.WriteCloser

// WriteFS defines the interface for write operations on a file system.
type WriteFS interface {
	WriteFile(name string, data []byte, perm fs.FileMode) error
	// OpenFile opens name for writing with os.O_* flags. Only O_WRONLY,
	// O_CREATE, O_TRUNC and O_APPEND are meaningful.
	OpenFile(name string, flag int, perm fs.FileMode) (WritableFile, error)
	MkdirAll(path string, perm fs.FileMode) error
	// Remove deletes a file or an empty directory.
	Remove(name string) error
	RemoveAll(name string) error
	Rename(oldpath, newpath string) error
}

// FileSystem combines read and write operations.
type FileSystem interface {
	ReadFS
	WriteFS
}

// StatFS extends ReadFS with Stat capabilities for better io/fs compatibility
type StatFS interface {
	ReadFS
	Stat(name string) (fs.FileInfo, error)
}

// LstatFS is implemented by backends that can describe a symbolic link
// itself instead of the entry it points to.
type LstatFS interface {
	Lstat(name string) (fs.FileInfo, error)
}

// FullFileSystem provides the complete filesystem interface including Stat
// and directory listing. ReadDir returns entries sorted by name.
type FullFileSystem interface {
	FileSystem
	Stat(name string) (fs.FileInfo, error)
	ReadDir(name string) ([]fs.DirEntry, error)
}
