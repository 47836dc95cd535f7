// Package ofile wraps files and directories in a Handle that reads and writes
// lines through lazily opened buffered streams, compares entries by MD5 content
// and copies, renames and deletes whole directory trees.
//
// Paths are slash separated. A trailing slash marks a directory: opening a
// missing "logs/" creates the directory chain, opening a missing "logs/a.txt"
// creates an empty file and its parents.
package ofile

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/ofile/pkg/ofile/checksum"
	"github.com/arthur-debert/ofile/pkg/ofile/core"
	"github.com/arthur-debert/ofile/pkg/ofile/filesystem"
)

// Handle represents one filesystem entry and the stream currently open on it.
// A Handle is not safe for concurrent use.
type Handle struct {
	opts *Options
	fsys filesystem.FullFileSystem
	name string // backend path, always fs.ValidPath clean

	// Set for handles opened through Open: the backend is rooted at "/" and
	// base is the working directory Path is reported relative to.
	osRoot bool
	base   string

	state     core.StreamState
	appending bool
	wfile     filesystem.WritableFile
	writer    *bufio.Writer
	rfile     fs.File
	reader    *bufio.Reader

	// nil until computed, reset by every mutation through the handle
	digest *checksum.Record
}

// Open opens the entry at p on the host filesystem, creating it when absent.
// Relative paths are resolved against the working directory.
func Open(p string) (*Handle, error) {
	return OpenHostWith(p, nil)
}

// OpenHostWith is Open with explicit options. opts.FileSystem is ignored.
func OpenHostWith(p string, opts *Options) (*Handle, error) {
	tmpl, err := osTemplate(opts)
	if err != nil {
		return nil, err
	}
	return tmpl.open(p)
}

// OpenWith opens the entry at p on opts.FileSystem, creating it when absent.
// p must be relative to the backend root.
func OpenWith(p string, opts *Options) (*Handle, error) {
	opts = opts.normalized()
	tmpl := &Handle{opts: opts, fsys: opts.FileSystem}
	return tmpl.open(p)
}

// Exists reports whether an entry exists at p on the host filesystem.
func Exists(p string) bool {
	tmpl, err := osTemplate(nil)
	if err != nil {
		return false
	}
	name, _, err := tmpl.locate(p)
	if err != nil {
		return false
	}
	return tmpl.sibling(name).Exists()
}

// ExistsIn reports whether an entry exists at p on fsys.
func ExistsIn(fsys filesystem.StatFS, p string) bool {
	name, _, err := parseRelative(p)
	if err != nil {
		return false
	}
	_, err = fsys.Stat(name)
	return err == nil
}

func osTemplate(opts *Options) (*Handle, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, core.NewError("open", ".", core.KindIO, err)
	}
	opts = opts.normalized().WithFileSystem(filesystem.NewOSFileSystem("/"))
	return &Handle{
		opts:   opts,
		fsys:   opts.FileSystem,
		osRoot: true,
		base:   strings.TrimPrefix(filepath.ToSlash(wd), "/"),
	}, nil
}

// open resolves p the way h resolves paths and creates the entry if needed.
func (h *Handle) open(p string) (*Handle, error) {
	name, wantDir, err := h.locate(p)
	if err != nil {
		return nil, err
	}
	nh := h.sibling(name)

	_, err = h.fsys.Stat(name)
	if err == nil {
		return nh, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, core.Wrap("open", p, core.KindIO, err)
	}

	if wantDir {
		if err := h.fsys.MkdirAll(name, h.opts.DirMode); err != nil {
			return nil, core.Wrap("open", p, core.KindIO, err)
		}
		Logger().Debug().Str("path", nh.Path()).Msg("created directory")
		return nh, nil
	}

	if err := nh.createFile(); err != nil {
		return nil, core.Wrap("open", p, core.KindIO, err)
	}
	Logger().Debug().Str("path", nh.Path()).Msg("created file")
	return nh, nil
}

// createFile creates an empty regular file plus its parent chain.
func (h *Handle) createFile() error {
	if dir := path.Dir(h.name); dir != "." {
		if err := h.fsys.MkdirAll(dir, h.opts.DirMode); err != nil {
			return err
		}
	}
	f, err := h.fsys.OpenFile(h.name, os.O_WRONLY|os.O_CREATE, h.opts.FileMode)
	if err != nil {
		return err
	}
	return f.Close()
}

// locate turns a user path into a backend name. The bool reports a trailing slash.
func (h *Handle) locate(p string) (string, bool, error) {
	if !h.osRoot {
		return parseRelative(p)
	}
	if p == "" {
		return "", false, core.NewError("open", p, core.KindInvalidPath, errors.New("empty path"))
	}

	wantDir := strings.HasSuffix(p, "/")
	abs := filepath.ToSlash(p)
	if !path.IsAbs(abs) {
		abs = "/" + h.base + "/" + abs
	}
	name := strings.TrimPrefix(path.Clean(abs), "/")
	if name == "" {
		name = "."
	}
	return name, wantDir, nil
}

func parseRelative(p string) (string, bool, error) {
	if p == "" {
		return "", false, core.NewError("open", p, core.KindInvalidPath, errors.New("empty path"))
	}
	wantDir := strings.HasSuffix(p, "/")
	name := path.Clean(p)
	if !fs.ValidPath(name) {
		return "", false, core.NewError("open", p, core.KindInvalidPath, fs.ErrInvalid)
	}
	return name, wantDir, nil
}

// sibling returns a handle sharing h's backend and options. It never creates anything.
func (h *Handle) sibling(name string) *Handle {
	return &Handle{
		opts:   h.opts,
		fsys:   h.fsys,
		name:   name,
		osRoot: h.osRoot,
		base:   h.base,
	}
}

// Path returns the entry's path. Handles from Open report paths relative to
// the working directory at open time when possible, absolute otherwise.
func (h *Handle) Path() string {
	if !h.osRoot {
		return h.name
	}
	if h.base != "" {
		if h.name == h.base {
			return "."
		}
		if rel, ok := strings.CutPrefix(h.name, h.base+"/"); ok {
			return rel
		}
	}
	if h.name == "." {
		return "/"
	}
	return "/" + h.name
}

// Name returns the final path component.
func (h *Handle) Name() string {
	return path.Base(h.name)
}

// ParentPath returns the parent directory path with a trailing slash, or ""
// when the path has no directory component.
func (h *Handle) ParentPath() string {
	p := h.Path()
	i := strings.LastIndex(p, "/")
	if i < 0 {
		return ""
	}
	return p[:i+1]
}

// Parent returns a handle to the parent directory, nil at the top of the path.
func (h *Handle) Parent() *Handle {
	if h.name == "." || h.ParentPath() == "" {
		return nil
	}
	return h.sibling(path.Dir(h.name))
}

// FileSystem returns the backend the handle operates on.
func (h *Handle) FileSystem() filesystem.FullFileSystem {
	return h.fsys
}

// Options returns the options the handle was opened with.
func (h *Handle) Options() *Options {
	return h.opts
}

// State reports which stream is open.
func (h *Handle) State() core.StreamState {
	return h.state
}

// Appending reports the remembered append mode.
func (h *Handle) Appending() bool {
	return h.appending
}

// Exists reports whether the entry currently exists.
func (h *Handle) Exists() bool {
	_, err := h.fsys.Stat(h.name)
	return err == nil
}

// Kind stats the entry and reports whether it is a file or a directory.
func (h *Handle) Kind() core.EntryKind {
	info, err := h.fsys.Stat(h.name)
	switch {
	case err != nil:
		return core.KindUnknown
	case info.IsDir():
		return core.KindDirectory
	default:
		return core.KindFile
	}
}

// IsDir reports whether the entry is an existing directory.
func (h *Handle) IsDir() bool {
	return h.Kind() == core.KindDirectory
}

// IsFile reports whether the entry is an existing regular file.
func (h *Handle) IsFile() bool {
	return h.Kind() == core.KindFile
}

// List returns handles for the children of a directory, sorted by name.
func (h *Handle) List() ([]*Handle, error) {
	entries, err := h.fsys.ReadDir(h.name)
	if err != nil {
		return nil, core.Wrap("list", h.Path(), core.KindIO, err)
	}
	children := make([]*Handle, 0, len(entries))
	for _, e := range entries {
		children = append(children, h.sibling(path.Join(h.name, e.Name())))
	}
	return children, nil
}

// String returns the entry's path
func (h *Handle) String() string {
	return h.Path()
}
