package filesystem_test

import (
	"errors"
	"io/fs"
	"os"
	"testing"

	"github.com/arthur-debert/ofile/pkg/ofile/filesystem"
)

func TestTestFileSystemSpecifics(t *testing.T) {
	t.Run("writing under a missing parent fails", func(t *testing.T) {
		tfs := filesystem.NewTestFileSystem()
		err := tfs.WriteFile("missing/child.txt", []byte("x"), 0644)
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("expected ErrNotExist, got %v", err)
		}
	})

	t.Run("MkdirAll through a file fails", func(t *testing.T) {
		tfs := filesystem.NewTestFileSystem()
		if err := tfs.WriteFile("file", []byte("x"), 0644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
		if err := tfs.MkdirAll("file/sub", 0755); err == nil {
			t.Error("expected MkdirAll through a file to fail")
		}
	})

	t.Run("OpenFile without O_CREATE needs an existing file", func(t *testing.T) {
		tfs := filesystem.NewTestFileSystem()
		if _, err := tfs.OpenFile("nope", os.O_WRONLY, 0644); !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("expected ErrNotExist, got %v", err)
		}
	})

	t.Run("writes after close are rejected", func(t *testing.T) {
		tfs := filesystem.NewTestFileSystem()
		w, err := tfs.OpenFile("f", os.O_WRONLY|os.O_CREATE, 0644)
		if err != nil {
			t.Fatalf("OpenFile failed: %v", err)
		}
		if err := w.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
		if _, err := w.Write([]byte("late")); !errors.Is(err, fs.ErrClosed) {
			t.Errorf("expected ErrClosed, got %v", err)
		}
	})

	t.Run("emptied directories survive", func(t *testing.T) {
		th := filesystem.NewTestHelper(t)
		th.WriteFile("dir/only.txt", []byte("x"))
		if err := th.FileSystem().Remove("dir/only.txt"); err != nil {
			t.Fatalf("Remove failed: %v", err)
		}
		if !th.FileExists("dir") {
			t.Error("expected dir to remain after its last child was removed")
		}
	})

	t.Run("renaming a directory into itself fails", func(t *testing.T) {
		th := filesystem.NewTestHelper(t)
		th.MkdirAll("a/b")
		if err := th.FileSystem().Rename("a", "a/b/c"); err == nil {
			t.Error("expected rename into own subtree to fail")
		}
		th.AssertFileNotExists("a/b/c")
	})
}
