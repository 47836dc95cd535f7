package ofile_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/ofile/pkg/ofile"
	"github.com/arthur-debert/ofile/pkg/ofile/filesystem"
	"github.com/arthur-debert/ofile/pkg/ofile/testutil"
)

func TestCopyReplaceFile(t *testing.T) {
	t.Run("copy then compare", func(t *testing.T) {
		th, opts := memFS(t)
		th.WriteFile("src.txt", []byte("payload"))
		src := mustOpen(t, "src.txt", opts)

		dst, err := src.CopyReplace("out/dst.txt")
		require.NoError(t, err)

		assert.Equal(t, "out/dst.txt", dst.Path())
		th.AssertFileContent("out/dst.txt", []byte("payload"))
		assert.True(t, src.EqualsIgnoreName(dst))
		assert.False(t, src.Equals(dst))
	})

	t.Run("replaces a longer file", func(t *testing.T) {
		th, opts := memFS(t)
		th.WriteFile("src.txt", []byte("short"))
		th.WriteFile("dst.txt", []byte("a much longer existing content"))

		_, err := mustOpen(t, "src.txt", opts).CopyReplace("dst.txt")
		require.NoError(t, err)
		th.AssertFileContent("dst.txt", []byte("short"))
	})

	t.Run("trailing slash copies into the directory", func(t *testing.T) {
		th, opts := memFS(t)
		th.WriteFile("src.txt", []byte("payload"))

		dst, err := mustOpen(t, "src.txt", opts).CopyReplace("into/")
		require.NoError(t, err)
		assert.Equal(t, "into/src.txt", dst.Path())
		th.AssertFileContent("into/src.txt", []byte("payload"))
	})

	t.Run("pending writes are copied", func(t *testing.T) {
		th, opts := memFS(t)
		src := mustOpen(t, "src.txt", opts)
		_, err := src.WriteString("buffered")
		require.NoError(t, err)

		_, err = src.CopyReplace("dst.txt")
		require.NoError(t, err)
		th.AssertFileContent("dst.txt", []byte("buffered"))
	})

	t.Run("onto itself", func(t *testing.T) {
		th, opts := memFS(t)
		th.WriteFile("same.txt", []byte("intact"))

		dst, err := mustOpen(t, "same.txt", opts).CopyReplace("./same.txt")
		require.NoError(t, err)
		assert.Equal(t, "same.txt", dst.Path())
		th.AssertFileContent("same.txt", []byte("intact"))
	})

	t.Run("missing source", func(t *testing.T) {
		th, opts := memFS(t)
		src := mustOpen(t, "src.txt", opts)
		require.NoError(t, th.FileSystem().Remove("src.txt"))

		dst, err := src.CopyReplace("dst.txt")
		assert.Nil(t, dst)
		assert.True(t, errors.Is(err, ofile.ErrNotFound), "got %v", err)
		th.AssertFileNotExists("dst.txt")
	})

	t.Run("large file across blocks", func(t *testing.T) {
		th, opts := memFS(t)
		content := strings.Repeat("line of text\n", 2000)
		th.WriteFile("big.txt", []byte(content))

		dst, err := mustOpen(t, "big.txt", opts.WithBlockSize(100)).CopyReplace("copy.txt")
		require.NoError(t, err)
		th.AssertFileContent("copy.txt", []byte(content))
		n, err := dst.CountLines()
		require.NoError(t, err)
		assert.Equal(t, 2000, n)
	})
}

func TestCopyReplaceDirectory(t *testing.T) {
	t.Run("recursive copy", func(t *testing.T) {
		th, opts := memFS(t)
		th.WriteFile("D/x.txt", []byte("hello"))
		th.WriteFile("D/sub/y.txt", []byte("nested"))
		th.WriteFile("D/sub/deeper/z.txt", []byte("deep"))
		th.MkdirAll("D/empty")
		src := mustOpen(t, "D/", opts)

		dst, err := src.CopyReplace("backup/D2")
		require.NoError(t, err)

		assert.True(t, dst.IsDir())
		assert.Equal(t, "backup/D2", dst.Path())
		th.AssertFileContent("backup/D2/x.txt", []byte("hello"))
		th.AssertFileContent("backup/D2/sub/y.txt", []byte("nested"))
		th.AssertFileContent("backup/D2/sub/deeper/z.txt", []byte("deep"))
		assert.True(t, th.FileExists("backup/D2/empty"))
		assert.True(t, src.EqualsIgnoreName(dst))
	})

	t.Run("empty directory yields a handle", func(t *testing.T) {
		th, opts := memFS(t)
		th.MkdirAll("empty")

		dst, err := mustOpen(t, "empty/", opts).CopyReplace("copy")
		require.NoError(t, err)
		require.NotNil(t, dst)
		assert.True(t, dst.IsDir())
	})

	t.Run("merges into an existing directory", func(t *testing.T) {
		th, opts := memFS(t)
		th.WriteFile("D/x.txt", []byte("new"))
		th.WriteFile("T/x.txt", []byte("old content"))
		th.WriteFile("T/keep.txt", []byte("kept"))

		_, err := mustOpen(t, "D/", opts).CopyReplace("T")
		require.NoError(t, err)
		th.AssertFileContent("T/x.txt", []byte("new"))
		th.AssertFileContent("T/keep.txt", []byte("kept"))
	})

	t.Run("into its own subtree", func(t *testing.T) {
		th, opts := memFS(t)
		th.WriteFile("D/x.txt", []byte("hello"))

		_, err := mustOpen(t, "D/", opts).CopyReplace("D/inner")
		require.NoError(t, err)
		th.AssertFileContent("D/inner/x.txt", []byte("hello"))
		assert.False(t, th.FileExists("D/inner/inner"))
	})

	t.Run("billy memfs backend", func(t *testing.T) {
		opts := ofile.DefaultOptions().WithFileSystem(filesystem.NewInMemoryFileSystem())
		f := mustOpen(t, "D/a/f.txt", opts)
		_, err := f.WriteString("billy")
		require.NoError(t, err)
		require.NoError(t, f.Close())

		dst, err := mustOpen(t, "D/", opts).CopyReplace("E")
		require.NoError(t, err)
		assert.True(t, mustOpen(t, "D/", opts).EqualsIgnoreName(dst))

		content, err := mustOpen(t, "E/a/f.txt", opts).ReadFile()
		require.NoError(t, err)
		assert.Equal(t, "billy", content)
	})
}

func TestCopyReplaceRealFS(t *testing.T) {
	t.Run("keeps permission bits", func(t *testing.T) {
		helper := testutil.NewRealFSTestHelper(t)
		helper.WriteFile("secret.txt", "s")
		helper.Chmod("secret.txt", 0600)
		opts := ofile.DefaultOptions().WithFileSystem(helper.FileSystem())

		_, err := mustOpen(t, "secret.txt", opts).CopyReplace("copy.txt")
		require.NoError(t, err)

		info, err := helper.FileSystem().Stat("copy.txt")
		require.NoError(t, err)
		assert.Equal(t, "-rw-------", info.Mode().String())
	})

	t.Run("unreadable child is reported and the rest copied", func(t *testing.T) {
		helper := testutil.NewRealFSTestHelper(t)
		helper.SkipIfRoot()
		helper.WriteFile("D/ok.txt", "fine")
		helper.WriteFile("D/locked/hidden.txt", "x")
		helper.Chmod("D/locked", 0000)
		opts := ofile.DefaultOptions().WithFileSystem(helper.FileSystem())

		dst, err := mustOpen(t, "D/", opts).CopyReplace("E")
		assert.Nil(t, dst)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ofile.ErrIO), "got %v", err)
		assert.Contains(t, err.Error(), "D/locked")
		helper.AssertFileContent("E/ok.txt", "fine")
		helper.AssertNotExists("E/locked/hidden.txt")
	})
}
