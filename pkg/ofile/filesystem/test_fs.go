package filesystem

import (
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"syscall"
	"testing"
	"testing/fstest"
	"time"
)

// TestFileSystem extends fstest.MapFS to implement our FileSystem interface.
// Directories are stored as explicit entries so that removing the last child
// does not make the parent disappear.
type TestFileSystem struct {
	fstest.MapFS
}

// NewTestFileSystem creates a new test filesystem based on fstest.MapFS
func NewTestFileSystem() *TestFileSystem {
	return &TestFileSystem{
		MapFS: make(fstest.MapFS),
	}
}

// WriteFile implements WriteFS for testing
func (tfs *TestFileSystem) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if !fs.ValidPath(name) {
		return &fs.PathError{Op: "writefile", Path: name, Err: fs.ErrInvalid}
	}
	if err := tfs.checkParent("writefile", name); err != nil {
		return err
	}
	if tfs.isDir(name) {
		return &fs.PathError{Op: "writefile", Path: name, Err: syscall.EISDIR}
	}
	tfs.MapFS[name] = &fstest.MapFile{
		Data:    append([]byte(nil), data...),
		Mode:    perm,
		ModTime: time.Now(),
	}
	return nil
}

// OpenFile implements WriteFS for testing. Writes land in the map immediately.
func (tfs *TestFileSystem) OpenFile(name string, flag int, perm fs.FileMode) (WritableFile, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "openfile", Path: name, Err: fs.ErrInvalid}
	}
	if tfs.isDir(name) {
		return nil, &fs.PathError{Op: "openfile", Path: name, Err: syscall.EISDIR}
	}

	file, exists := tfs.MapFS[name]
	if !exists {
		if flag&os.O_CREATE == 0 {
			return nil, &fs.PathError{Op: "openfile", Path: name, Err: fs.ErrNotExist}
		}
		if err := tfs.checkParent("openfile", name); err != nil {
			return nil, err
		}
		file = &fstest.MapFile{Mode: perm, ModTime: time.Now()}
		tfs.MapFS[name] = file
	}
	if flag&os.O_TRUNC != 0 {
		file.Data = nil
		file.ModTime = time.Now()
	}
	return &memWriter{name: name, file: file}, nil
}

// MkdirAll implements WriteFS for testing
func (tfs *TestFileSystem) MkdirAll(p string, perm fs.FileMode) error {
	if !fs.ValidPath(p) {
		return &fs.PathError{Op: "mkdirall", Path: p, Err: fs.ErrInvalid}
	}
	if p == "." {
		return nil
	}

	// Create every missing ancestor, root first
	parts := strings.Split(p, "/")
	for i := range parts {
		dir := strings.Join(parts[:i+1], "/")
		if existing, ok := tfs.MapFS[dir]; ok {
			if !existing.Mode.IsDir() {
				return &fs.PathError{Op: "mkdirall", Path: dir, Err: syscall.ENOTDIR}
			}
			continue
		}
		tfs.MapFS[dir] = &fstest.MapFile{
			Mode:    perm | fs.ModeDir,
			ModTime: time.Now(),
		}
	}
	return nil
}

// Remove implements WriteFS for testing
func (tfs *TestFileSystem) Remove(name string) error {
	if !fs.ValidPath(name) {
		return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrInvalid}
	}
	if !tfs.exists(name) {
		return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrNotExist}
	}
	if tfs.isDir(name) && tfs.hasChildren(name) {
		return &fs.PathError{Op: "remove", Path: name, Err: syscall.ENOTEMPTY}
	}
	delete(tfs.MapFS, name)
	return nil
}

// RemoveAll implements WriteFS for testing
func (tfs *TestFileSystem) RemoveAll(name string) error {
	if !fs.ValidPath(name) {
		return &fs.PathError{Op: "removeall", Path: name, Err: fs.ErrInvalid}
	}
	// Remove the path and all its children
	for p := range tfs.MapFS {
		if isSubPath(name, p) {
			delete(tfs.MapFS, p)
		}
	}
	return nil
}

// Rename implements WriteFS for testing. Directories are moved with their
// whole subtree; an existing regular file at newpath is replaced.
func (tfs *TestFileSystem) Rename(oldpath, newpath string) error {
	if !fs.ValidPath(oldpath) || !fs.ValidPath(newpath) {
		return &fs.PathError{Op: "rename", Path: newpath, Err: fs.ErrInvalid}
	}
	if !tfs.exists(oldpath) {
		return &fs.PathError{Op: "rename", Path: oldpath, Err: fs.ErrNotExist}
	}
	if oldpath == newpath {
		return nil
	}
	if isSubPath(oldpath, newpath) {
		return &fs.PathError{Op: "rename", Path: newpath, Err: fs.ErrInvalid}
	}
	if tfs.exists(newpath) && (tfs.isDir(newpath) || tfs.isDir(oldpath)) {
		return &fs.PathError{Op: "rename", Path: newpath, Err: fs.ErrExist}
	}
	if err := tfs.checkParent("rename", newpath); err != nil {
		return err
	}

	moved := make(map[string]*fstest.MapFile)
	for p, file := range tfs.MapFS {
		if isSubPath(oldpath, p) {
			moved[newpath+strings.TrimPrefix(p, oldpath)] = file
			delete(tfs.MapFS, p)
		}
	}
	for p, file := range moved {
		tfs.MapFS[p] = file
	}
	return nil
}

// Stat implements FullFileSystem for testing
func (tfs *TestFileSystem) Stat(name string) (fs.FileInfo, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrInvalid}
	}

	// Use Open to get the file and then get its info
	file, err := tfs.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = file.Close() // Best effort close
	}()

	return file.Stat()
}

// ReadDir implements FullFileSystem for testing
func (tfs *TestFileSystem) ReadDir(name string) ([]fs.DirEntry, error) {
	entries, err := tfs.MapFS.ReadDir(name)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

func (tfs *TestFileSystem) exists(name string) bool {
	_, err := tfs.MapFS.Stat(name)
	return err == nil
}

func (tfs *TestFileSystem) isDir(name string) bool {
	info, err := tfs.MapFS.Stat(name)
	return err == nil && info.IsDir()
}

func (tfs *TestFileSystem) hasChildren(name string) bool {
	for p := range tfs.MapFS {
		if p != name && isSubPath(name, p) {
			return true
		}
	}
	return false
}

// checkParent mirrors the OS: the parent of name must be an existing directory.
func (tfs *TestFileSystem) checkParent(op, name string) error {
	parent := path.Dir(name)
	if parent == "." {
		return nil
	}
	info, err := tfs.MapFS.Stat(parent)
	if err != nil {
		return &fs.PathError{Op: op, Path: name, Err: fs.ErrNotExist}
	}
	if !info.IsDir() {
		return &fs.PathError{Op: op, Path: name, Err: syscall.ENOTDIR}
	}
	return nil
}

// isSubPath returns true if child is parent itself or lives below it
func isSubPath(parent, child string) bool {
	if parent == "" || parent == "." {
		return true
	}
	if child == parent {
		return true // The path itself should be included
	}
	if len(child) <= len(parent) {
		return false
	}
	return child[:len(parent)+1] == parent+"/"
}

// memWriter appends straight into a MapFile.
type memWriter struct {
	name   string
	file   *fstest.MapFile
	closed bool
}

func (w *memWriter) Write(p []byte) (int, error) {
	if w.closed {
		return 0, &fs.PathError{Op: "write", Path: w.name, Err: fs.ErrClosed}
	}
	w.file.Data = append(w.file.Data, p...)
	w.file.ModTime = time.Now()
	return len(p), nil
}

func (w *memWriter) Close() error {
	if w.closed {
		return &fs.PathError{Op: "close", Path: w.name, Err: fs.ErrClosed}
	}
	w.closed = true
	return nil
}

// TestHelper provides utilities for tests running against a TestFileSystem
type TestHelper struct {
	t  *testing.T
	fs *TestFileSystem
}

// NewTestHelper creates a new test helper with a fresh filesystem
func NewTestHelper(t *testing.T) *TestHelper {
	return &TestHelper{
		t:  t,
		fs: NewTestFileSystem(),
	}
}

// FileSystem returns the test filesystem
func (th *TestHelper) FileSystem() *TestFileSystem {
	return th.fs
}

// WriteFile writes a file, creating its parents, and fails the test on error
func (th *TestHelper) WriteFile(name string, data []byte) {
	th.t.Helper()
	if dir := path.Dir(name); dir != "." {
		th.MkdirAll(dir)
	}
	if err := th.fs.WriteFile(name, data, 0644); err != nil {
		th.t.Fatalf("Failed to write file %s: %v", name, err)
	}
}

// MkdirAll is a helper that creates directories and fails the test on error
func (th *TestHelper) MkdirAll(p string) {
	th.t.Helper()
	if err := th.fs.MkdirAll(p, 0755); err != nil {
		th.t.Fatalf("Failed to create directory %s: %v", p, err)
	}
}

// ReadFile is a helper that reads a file and fails the test on error
func (th *TestHelper) ReadFile(name string) []byte {
	th.t.Helper()
	file, err := th.fs.Open(name)
	if err != nil {
		th.t.Fatalf("Failed to open file %s: %v", name, err)
	}
	defer func() {
		_ = file.Close() // Best effort close
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		th.t.Fatalf("Failed to read file %s: %v", name, err)
	}
	return data
}

// FileExists checks if a file exists
func (th *TestHelper) FileExists(name string) bool {
	_, err := th.fs.Stat(name)
	return err == nil
}

// AssertFileContent checks that a file has the expected content
func (th *TestHelper) AssertFileContent(name string, expected []byte) {
	th.t.Helper()
	actual := th.ReadFile(name)
	if string(actual) != string(expected) {
		th.t.Errorf("File %s content mismatch:\nExpected: %q\nActual: %q", name, expected, actual)
	}
}

// AssertFileNotExists checks that a file does not exist
func (th *TestHelper) AssertFileNotExists(name string) {
	th.t.Helper()
	if th.FileExists(name) {
		th.t.Errorf("Expected file %s to not exist, but it does", name)
	}
}
