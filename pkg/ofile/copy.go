package ofile

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path"

	"github.com/arthur-debert/ofile/pkg/ofile/core"
)

// CopyReplace copies the entry to dest, overwriting files already there, and
// returns a handle to the copy. A trailing slash on dest copies a file into
// that directory under its own name. Directories are copied recursively;
// children already present at dest but absent from the source are left alone.
// The copy keeps going past failing children and reports all of them.
func (h *Handle) CopyReplace(dest string) (*Handle, error) {
	if err := h.Close(); err != nil {
		return nil, err
	}

	dstName, intoDir, err := h.locate(dest)
	if err != nil {
		return nil, err
	}
	info, err := h.fsys.Stat(h.name)
	if err != nil {
		return nil, core.Wrap("copy", h.Path(), core.KindIO, err)
	}
	if intoDir && !info.IsDir() {
		dstName = path.Join(dstName, path.Base(h.name))
	}
	target := h.sibling(dstName)
	if dstName == h.name {
		return target, nil
	}

	plan, unreadable := planCopy(h.fsys, h.name, dstName, info)
	var failures []core.ChildFailure
	for _, f := range unreadable {
		failures = append(failures, core.ChildFailure{Path: h.sibling(f.Path).Path(), Err: f.Err})
	}
	steps, err := plan.sorted()
	if err != nil {
		return nil, core.NewError("copy", h.Path(), core.KindIO, err)
	}

	if parent := path.Dir(dstName); parent != "." {
		if err := h.fsys.MkdirAll(parent, h.opts.DirMode); err != nil {
			return nil, core.Wrap("copy", target.Path(), core.KindIO, err)
		}
	}

	copied := 0
	for _, s := range steps {
		if err := h.runCopyStep(s); err != nil {
			Logger().Warn().
				Err(err).
				Str("op", s.kind.String()).
				Str("path", h.sibling(s.dst).Path()).
				Msg("copy step failed")
			failures = append(failures, core.ChildFailure{Path: h.sibling(s.dst).Path(), Err: err})
			continue
		}
		copied++
	}

	if len(failures) > 0 {
		return nil, core.NewError("copy", h.Path(), core.KindIO, core.JoinFailures(failures))
	}

	Logger().Debug().
		Str("source", h.Path()).
		Str("destination", target.Path()).
		Int("entries", copied).
		Msg("copied")
	return target, nil
}

func (h *Handle) runCopyStep(s *step) error {
	switch s.kind {
	case stepMkdir:
		return h.fsys.MkdirAll(s.dst, h.opts.DirMode)
	case stepCopyFile:
		return h.copyFile(s.src, s.dst, s.mode)
	default:
		return errors.New("unexpected step " + s.kind.String())
	}
}

func (h *Handle) copyFile(src, dst string, mode fs.FileMode) error {
	in, err := h.fsys.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		_ = in.Close()
	}()

	out, err := h.fsys.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	_, copyErr := io.CopyBuffer(out, in, make([]byte, h.opts.BlockSize))
	return errors.Join(copyErr, out.Close())
}
