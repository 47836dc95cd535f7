package ofile

import (
	"path"

	"github.com/arthur-debert/ofile/pkg/ofile/checksum"
	"github.com/arthur-debert/ofile/pkg/ofile/core"
	"github.com/arthur-debert/ofile/pkg/ofile/filesystem"
)

// Equals reports whether other has the same name, kind and content as h.
func (h *Handle) Equals(other *Handle) bool {
	return Equal(h, other, true)
}

// EqualsIgnoreName reports whether other has the same kind and content as h,
// whatever the two entries are called.
func (h *Handle) EqualsIgnoreName(other *Handle) bool {
	return Equal(h, other, false)
}

// Equal compares two entries. Files are equal when their digests match.
// Directories are equal when they hold the same number of children and every
// child has an equal counterpart, paired according to a's MatchMode. With
// nameSensitive the basenames must match too, at every level. Any failure to
// read either side makes the entries unequal.
func Equal(a, b *Handle, nameSensitive bool) bool {
	if a == nil || b == nil {
		return false
	}
	c := &comparator{match: a.opts.MatchMode, blockSize: a.opts.BlockSize}
	equal := c.equal(handleEntry(a), handleEntry(b), nameSensitive)

	Logger().Debug().
		Str("a", a.Path()).
		Str("b", b.Path()).
		Bool("name_sensitive", nameSensitive).
		Bool("equal", equal).
		Msg("compared")
	return equal
}

// FilesEqual compares the entries at two paths on the same backend,
// name-sensitively, with default options.
func FilesEqual(fsys filesystem.FullFileSystem, a, b string) bool {
	return pathsEqual(fsys, a, b, true)
}

// FilesEqualIgnoreName compares the entries at two paths on the same backend
// ignoring their basenames.
func FilesEqualIgnoreName(fsys filesystem.FullFileSystem, a, b string) bool {
	return pathsEqual(fsys, a, b, false)
}

func pathsEqual(fsys filesystem.FullFileSystem, a, b string, nameSensitive bool) bool {
	an, _, errA := parseRelative(a)
	bn, _, errB := parseRelative(b)
	if errA != nil || errB != nil {
		return false
	}
	c := &comparator{match: core.MatchByName, blockSize: DefaultBlockSize}
	return c.equal(c.plainEntry(fsys, an), c.plainEntry(fsys, bn), nameSensitive)
}

type entry struct {
	fsys    filesystem.FullFileSystem
	name    string
	display string
	digest  func() (checksum.Digest, error)
}

// handleEntry digests through the handle so its cache is used and refreshed.
func handleEntry(h *Handle) entry {
	return entry{fsys: h.fsys, name: h.name, display: h.Path(), digest: h.Checksum}
}

type comparator struct {
	match     core.MatchMode
	blockSize int
}

func (c *comparator) plainEntry(fsys filesystem.FullFileSystem, name string) entry {
	return entry{
		fsys:    fsys,
		name:    name,
		display: name,
		digest: func() (checksum.Digest, error) {
			rec, err := checksum.ComputeWithBlockSize(fsys, name, c.blockSize)
			if err != nil {
				return checksum.Digest{}, err
			}
			return rec.Digest, nil
		},
	}
}

func (c *comparator) child(parent entry, childName string) entry {
	e := c.plainEntry(parent.fsys, path.Join(parent.name, childName))
	e.display = path.Join(parent.display, childName)
	return e
}

func (c *comparator) equal(a, b entry, nameSensitive bool) bool {
	infoA, err := a.fsys.Stat(a.name)
	if err != nil {
		Logger().Debug().Err(err).Str("path", a.display).Msg("compare: cannot stat")
		return false
	}
	infoB, err := b.fsys.Stat(b.name)
	if err != nil {
		Logger().Debug().Err(err).Str("path", b.display).Msg("compare: cannot stat")
		return false
	}

	if infoA.IsDir() != infoB.IsDir() {
		return false
	}
	if nameSensitive && path.Base(a.name) != path.Base(b.name) {
		return false
	}
	if infoA.IsDir() {
		return c.directoriesEqual(a, b, nameSensitive)
	}

	sumA, err := a.digest()
	if err != nil {
		Logger().Warn().Err(err).Str("path", a.display).Msg("error getting checksum")
		return false
	}
	sumB, err := b.digest()
	if err != nil {
		Logger().Warn().Err(err).Str("path", b.display).Msg("error getting checksum")
		return false
	}
	return checksum.Equal(sumA, sumB)
}

func (c *comparator) directoriesEqual(a, b entry, nameSensitive bool) bool {
	listA, err := a.fsys.ReadDir(a.name)
	if err != nil {
		Logger().Warn().Err(err).Str("path", a.display).Msg("error listing directory")
		return false
	}
	listB, err := b.fsys.ReadDir(b.name)
	if err != nil {
		Logger().Warn().Err(err).Str("path", b.display).Msg("error listing directory")
		return false
	}
	if len(listA) != len(listB) {
		return false
	}

	if c.match == core.MatchPositional {
		for i := range listA {
			if !c.equal(c.child(a, listA[i].Name()), c.child(b, listB[i].Name()), nameSensitive) {
				return false
			}
		}
		return true
	}

	names := make(map[string]struct{}, len(listB))
	for _, e := range listB {
		names[e.Name()] = struct{}{}
	}
	for _, e := range listA {
		if _, ok := names[e.Name()]; !ok {
			return false
		}
		if !c.equal(c.child(a, e.Name()), c.child(b, e.Name()), nameSensitive) {
			return false
		}
	}
	return true
}
