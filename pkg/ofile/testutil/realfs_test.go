package testutil

import (
	"io/fs"
	"os"
	"testing"
)

func TestRealFSTestHelper_Basic(t *testing.T) {
	helper := NewRealFSTestHelper(t)

	if helper.FileSystem() == nil {
		t.Fatal("FileSystem() returned nil")
	}
	if helper.TempDir() == "" {
		t.Fatal("TempDir() returned empty string")
	}

	helper.WriteFile("a/b/c.txt", "content")
	helper.AssertExists("a/b")
	helper.AssertFileContent("a/b/c.txt", "content")
	helper.AssertNotExists("a/missing")

	info, err := helper.FileSystem().Stat("a/b/c.txt")
	if err != nil {
		t.Fatalf("Stat through backend failed: %v", err)
	}
	if info.Size() != int64(len("content")) {
		t.Errorf("Expected size %d, got %d", len("content"), info.Size())
	}

	if _, err := fs.ReadFile(helper.FileSystem(), "a/b/c.txt"); err != nil {
		t.Errorf("fs.ReadFile through backend failed: %v", err)
	}
}

func TestRealFSTestHelper_Chmod(t *testing.T) {
	helper := NewRealFSTestHelper(t)
	helper.WriteFile("locked/f.txt", "x")
	helper.Chmod("locked", 0500)

	info, err := helper.FileSystem().Stat("locked")
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Mode().Perm() != 0500 {
		t.Errorf("Expected mode 0500, got %v", info.Mode().Perm())
	}
}

func TestRealFSTestHelper_CreateSymlink(t *testing.T) {
	helper := NewRealFSTestHelper(t)
	helper.WriteFile("target/keep.txt", "kept")
	helper.CreateSymlink("target", "link")

	info, err := os.Lstat(helper.Abs("link"))
	if err != nil {
		t.Fatalf("Lstat failed: %v", err)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		t.Errorf("Expected link to be a symlink, got mode %v", info.Mode())
	}
	helper.AssertFileContent("link/keep.txt", "kept")
}
