package ofile

import (
	"fmt"
	"path"
	"strings"

	"github.com/arthur-debert/ofile/pkg/ofile/core"
)

// RenameTo renames the entry within its directory and returns a handle to the
// new name. newName must be a bare name. On failure the entry is untouched.
func (h *Handle) RenameTo(newName string) (*Handle, error) {
	if err := h.Close(); err != nil {
		return nil, err
	}
	if newName == "" || newName == "." || newName == ".." || strings.Contains(newName, "/") {
		return nil, core.NewError("rename", h.Path(), core.KindRename,
			fmt.Errorf("%w: %q is not a bare name", core.ErrInvalidPath, newName))
	}
	return h.rename(path.Join(path.Dir(h.name), newName))
}

// RenameToPath moves the entry to p, resolved the way the handle was opened.
// The parent of p must exist.
func (h *Handle) RenameToPath(p string) (*Handle, error) {
	if err := h.Close(); err != nil {
		return nil, err
	}
	name, _, err := h.locate(p)
	if err != nil {
		return nil, core.NewError("rename", h.Path(), core.KindRename, err)
	}
	return h.rename(name)
}

func (h *Handle) rename(newName string) (*Handle, error) {
	if h.name == "." {
		return nil, core.NewError("rename", h.Path(), core.KindRename,
			fmt.Errorf("%w: cannot rename the backend root", core.ErrInvalidPath))
	}
	if newName == h.name {
		return h.sibling(newName), nil
	}
	if err := h.fsys.Rename(h.name, newName); err != nil {
		return nil, core.NewError("rename", h.Path(), core.KindRename, err)
	}
	h.invalidate()

	nh := h.sibling(newName)
	Logger().Debug().
		Str("from", h.Path()).
		Str("to", nh.Path()).
		Msg("renamed")
	return nh, nil
}
