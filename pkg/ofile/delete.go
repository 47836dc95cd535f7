package ofile

import (
	"io/fs"

	"github.com/arthur-debert/ofile/pkg/ofile/core"
	"github.com/arthur-debert/ofile/pkg/ofile/filesystem"
)

// Delete removes the entry, recursing into directories, and reports whether
// the entry itself is gone. DeleteTree tells what was left behind.
func (h *Handle) Delete() bool {
	return h.DeleteTree().Removed
}

// DeleteTree removes the entry and all its descendants, deepest first. A
// failing child does not stop the walk; it is recorded and the remaining
// siblings are still removed. The root is attempted last. A symbolic link is
// removed on its own, its target is left alone.
func (h *Handle) DeleteTree() *core.DeleteResult {
	res := &core.DeleteResult{Path: h.Path()}

	if err := h.Close(); err != nil {
		Logger().Warn().Err(err).Str("path", h.Path()).Msg("closing stream before delete")
	}
	h.appending = false
	h.invalidate()

	info, err := h.lstat()
	if err != nil {
		res.RootErr = core.Wrap("delete", h.Path(), core.KindIO, err)
		return res
	}

	plan, failures := planDelete(h.fsys, h.name, info.IsDir())
	for _, f := range failures {
		res.Failures = append(res.Failures, core.ChildFailure{Path: h.sibling(f.Path).Path(), Err: f.Err})
	}
	steps, err := plan.sorted()
	if err != nil {
		res.RootErr = core.NewError("delete", h.Path(), core.KindIO, err)
		return res
	}

	for _, s := range steps {
		err := h.fsys.Remove(s.dst)
		if s.dst == h.name {
			if err != nil {
				res.RootErr = core.Wrap("delete", h.Path(), core.KindIO, err)
				continue
			}
			res.Removed = true
			res.Deleted++
			continue
		}
		if err != nil {
			p := h.sibling(s.dst).Path()
			Logger().Warn().Err(err).Str("path", p).Msg("could not delete")
			res.Failures = append(res.Failures, core.ChildFailure{Path: p, Err: err})
			continue
		}
		res.Deleted++
	}

	Logger().Debug().
		Str("path", h.Path()).
		Bool("removed", res.Removed).
		Int("deleted", res.Deleted).
		Int("failures", len(res.Failures)).
		Msg("delete finished")
	return res
}

// lstat describes the entry without following a final symbolic link when the
// backend supports it.
func (h *Handle) lstat() (fs.FileInfo, error) {
	if lfs, ok := h.fsys.(filesystem.LstatFS); ok {
		return lfs.Lstat(h.name)
	}
	return h.fsys.Stat(h.name)
}
