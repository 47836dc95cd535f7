package ofile_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/ofile/pkg/ofile"
	"github.com/arthur-debert/ofile/pkg/ofile/filesystem"
)

// memFS returns a map backed filesystem helper and options bound to it.
func memFS(t *testing.T) (*filesystem.TestHelper, *ofile.Options) {
	t.Helper()
	th := filesystem.NewTestHelper(t)
	return th, ofile.DefaultOptions().WithFileSystem(th.FileSystem())
}

func mustOpen(t *testing.T, p string, opts *ofile.Options) *ofile.Handle {
	t.Helper()
	h, err := ofile.OpenWith(p, opts)
	require.NoError(t, err, "opening %s", p)
	return h
}
