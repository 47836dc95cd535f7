package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/arthur-debert/ofile/pkg/ofile/filesystem"
)

// RealFSTestHelper provides utilities for testing against the host filesystem
// inside a per-test temporary directory. Unix only.
type RealFSTestHelper struct {
	t       *testing.T
	tempDir string
	fs      *filesystem.OSFileSystem
}

// NewRealFSTestHelper creates a new real filesystem test helper
func NewRealFSTestHelper(t *testing.T) *RealFSTestHelper {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("ofile does not officially support Windows")
	}

	tempDir := t.TempDir()
	return &RealFSTestHelper{
		t:       t,
		tempDir: tempDir,
		fs:      filesystem.NewOSFileSystem(tempDir),
	}
}

// FileSystem returns a backend rooted at the temporary directory
func (h *RealFSTestHelper) FileSystem() *filesystem.OSFileSystem {
	return h.fs
}

// TempDir returns the temporary directory path
func (h *RealFSTestHelper) TempDir() string {
	return h.tempDir
}

// Abs returns the host path of a slash separated name below the temp dir
func (h *RealFSTestHelper) Abs(name string) string {
	return filepath.Join(h.tempDir, filepath.FromSlash(name))
}

// WriteFile creates name with data, parents included
func (h *RealFSTestHelper) WriteFile(name, data string) {
	h.t.Helper()
	full := h.Abs(name)
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		h.t.Fatalf("Failed to create parent of %s: %v", name, err)
	}
	if err := os.WriteFile(full, []byte(data), 0644); err != nil {
		h.t.Fatalf("Failed to write %s: %v", name, err)
	}
}

// ReadFile returns the content of name, failing the test if it cannot be read
func (h *RealFSTestHelper) ReadFile(name string) string {
	h.t.Helper()
	data, err := os.ReadFile(h.Abs(name))
	if err != nil {
		h.t.Fatalf("Failed to read %s: %v", name, err)
	}
	return string(data)
}

// Chmod changes the mode of name and restores 0755 when the test ends, so
// t.TempDir cleanup can still remove what is below it.
func (h *RealFSTestHelper) Chmod(name string, mode os.FileMode) {
	h.t.Helper()
	full := h.Abs(name)
	if err := os.Chmod(full, mode); err != nil {
		h.t.Fatalf("Failed to chmod %s: %v", name, err)
	}
	h.t.Cleanup(func() {
		_ = os.Chmod(full, 0755)
	})
}

// SkipIfRoot skips tests that rely on permission errors, which root bypasses
func (h *RealFSTestHelper) SkipIfRoot() {
	h.t.Helper()
	if os.Geteuid() == 0 {
		h.t.Skip("permission checks do not apply to root")
	}
}

// CreateSymlink creates a link at linkPath pointing to target. target is
// written as given, so relative targets resolve from the link's directory.
func (h *RealFSTestHelper) CreateSymlink(target, linkPath string) {
	h.t.Helper()
	if err := os.Symlink(filepath.FromSlash(target), h.Abs(linkPath)); err != nil {
		h.t.Fatalf("Failed to create symlink %s -> %s: %v", linkPath, target, err)
	}
}

// AssertExists verifies that name exists
func (h *RealFSTestHelper) AssertExists(name string) {
	h.t.Helper()
	if _, err := os.Lstat(h.Abs(name)); err != nil {
		h.t.Errorf("Expected %s to exist, but got error: %v", name, err)
	}
}

// AssertNotExists verifies that name does not exist
func (h *RealFSTestHelper) AssertNotExists(name string) {
	h.t.Helper()
	if _, err := os.Lstat(h.Abs(name)); err == nil {
		h.t.Errorf("Expected %s to not exist, but it does", name)
	} else if !os.IsNotExist(err) {
		h.t.Errorf("Unexpected error checking %s: %v", name, err)
	}
}

// AssertFileContent verifies the content of name
func (h *RealFSTestHelper) AssertFileContent(name, expected string) {
	h.t.Helper()
	if actual := h.ReadFile(name); actual != expected {
		h.t.Errorf("Content mismatch for %s: expected %q, got %q", name, expected, actual)
	}
}
