package ofile_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/ofile/pkg/ofile"
	"github.com/arthur-debert/ofile/pkg/ofile/filesystem"
)

const helloMD5 = "5d41402abc4b2a76b9719d911017c592"

func TestHandleChecksum(t *testing.T) {
	t.Run("known digest and caching", func(t *testing.T) {
		th, opts := memFS(t)
		th.WriteFile("f.txt", []byte("hello"))
		h := mustOpen(t, "f.txt", opts)
		assert.False(t, h.HasCachedChecksum())

		sum, err := h.Checksum()
		require.NoError(t, err)
		assert.Equal(t, helloMD5, sum.String())
		assert.True(t, h.HasCachedChecksum())

		again, err := h.Checksum()
		require.NoError(t, err)
		assert.Equal(t, sum, again)
	})

	t.Run("appending changes the digest", func(t *testing.T) {
		th, opts := memFS(t)
		th.WriteFile("f.txt", []byte("hello"))
		h := mustOpen(t, "f.txt", opts)

		before, err := h.Checksum()
		require.NoError(t, err)

		require.NoError(t, h.Append(" world"))
		assert.False(t, h.HasCachedChecksum())

		after, err := h.Checksum()
		require.NoError(t, err)
		assert.NotEqual(t, before, after)
	})

	t.Run("pending writes are flushed first", func(t *testing.T) {
		_, opts := memFS(t)
		h := mustOpen(t, "f.txt", opts)
		_, err := h.WriteString("hello")
		require.NoError(t, err)

		sum, err := h.Checksum()
		require.NoError(t, err)
		assert.Equal(t, helloMD5, sum.String())
		require.NoError(t, h.Close())
	})

	t.Run("external change of size is noticed", func(t *testing.T) {
		th, opts := memFS(t)
		th.WriteFile("f.txt", []byte("hello"))
		h := mustOpen(t, "f.txt", opts)

		before, err := h.Checksum()
		require.NoError(t, err)

		th.WriteFile("f.txt", []byte("a longer replacement"))
		after, err := h.Checksum()
		require.NoError(t, err)
		assert.NotEqual(t, before, after)
	})

	t.Run("record carries metadata", func(t *testing.T) {
		th, opts := memFS(t)
		th.WriteFile("f.txt", []byte("hello"))

		rec, err := mustOpen(t, "f.txt", opts).ChecksumRecord()
		require.NoError(t, err)
		assert.Equal(t, "f.txt", rec.Path)
		assert.Equal(t, helloMD5, rec.MD5)
		assert.Equal(t, int64(5), rec.Size)
	})

	t.Run("directory", func(t *testing.T) {
		_, opts := memFS(t)
		_, err := mustOpen(t, "dir/", opts).Checksum()
		assert.True(t, errors.Is(err, ofile.ErrIsDirectory), "got %v", err)
	})

	t.Run("missing file", func(t *testing.T) {
		th, opts := memFS(t)
		h := mustOpen(t, "gone.txt", opts)
		_, err := h.Checksum()
		require.NoError(t, err)
		require.NoError(t, th.FileSystem().Remove("gone.txt"))

		_, err = h.Checksum()
		assert.True(t, errors.Is(err, ofile.ErrNotFound), "got %v", err)
		assert.False(t, h.HasCachedChecksum())
	})

	t.Run("block size does not change the digest", func(t *testing.T) {
		th, opts := memFS(t)
		th.WriteFile("f.txt", []byte("hello"))

		sum, err := mustOpen(t, "f.txt", opts.WithBlockSize(2)).Checksum()
		require.NoError(t, err)
		assert.Equal(t, helloMD5, sum.String())
	})
}

func TestChecksumOnBillyMemory(t *testing.T) {
	fsys := filesystem.NewInMemoryFileSystem()
	require.NoError(t, fsys.WriteFile("f.txt", []byte("hello"), 0644))
	h := mustOpen(t, "f.txt", ofile.DefaultOptions().WithFileSystem(fsys))

	sum, err := h.Checksum()
	require.NoError(t, err)
	assert.Equal(t, helloMD5, sum.String())

	// same size, so only the backend mtime tells the cache the content moved
	require.NoError(t, fsys.WriteFile("f.txt", []byte("jello"), 0644))
	after, err := h.Checksum()
	require.NoError(t, err)
	assert.NotEqual(t, sum, after)
}
