package ofile

import (
	"github.com/arthur-debert/ofile/pkg/ofile/checksum"
	"github.com/arthur-debert/ofile/pkg/ofile/core"
)

// Checksum returns the MD5 digest of the file, reusing the cached value while
// the file is unchanged.
func (h *Handle) Checksum() (checksum.Digest, error) {
	rec, err := h.ChecksumRecord()
	if err != nil {
		return checksum.Digest{}, err
	}
	return rec.Digest, nil
}

// ChecksumRecord is Checksum with the size and timestamps the digest was taken at.
// The cached record is reused only while the backend reports the same size
// and mtime. Backends whose mtime moves on every Stat, such as the billy
// in-memory filesystem, recompute on each call.
func (h *Handle) ChecksumRecord() (*checksum.Record, error) {
	if err := h.Flush(); err != nil {
		return nil, err
	}

	info, err := h.fsys.Stat(h.name)
	if err != nil {
		h.invalidate()
		return nil, core.Wrap("checksum", h.Path(), core.KindIO, err)
	}
	if info.IsDir() {
		return nil, core.NewError("checksum", h.Path(), core.KindIsDirectory, nil)
	}

	if h.digest.Matches(info.Size(), info.ModTime()) {
		return h.digest, nil
	}

	rec, err := checksum.ComputeWithBlockSize(h.fsys, h.name, h.opts.BlockSize)
	if err != nil {
		h.invalidate()
		return nil, err
	}
	h.digest = rec

	Logger().Trace().
		Str("path", h.Path()).
		Str("md5", rec.MD5).
		Msg("digest computed")
	return rec, nil
}

// HasCachedChecksum reports whether a digest is cached on the handle.
func (h *Handle) HasCachedChecksum() bool {
	return h.digest != nil
}

func (h *Handle) invalidate() {
	h.digest = nil
}
