// Package checksum computes MD5 digests of regular files. MD5 is used only to
// detect accidental differences between files, never as a security boundary.
package checksum

import (
	"crypto"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"time"

	"github.com/arthur-debert/ofile/pkg/ofile/core"
	"github.com/arthur-debert/ofile/pkg/ofile/filesystem"
)

// BlockSize is the default number of bytes fed to the digest per read.
const BlockSize = 1024

// Digest is a 128-bit MD5 sum.
type Digest [md5.Size]byte

// String returns the lowercase hex form of the digest
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// ParseDigest parses a 32 character hex string.
func ParseDigest(s string) (Digest, error) {
	var d Digest
	raw, err := hex.DecodeString(s)
	if err != nil {
		return d, fmt.Errorf("invalid digest %q: %w", s, err)
	}
	if len(raw) != len(d) {
		return d, fmt.Errorf("invalid digest %q: want %d bytes, got %d", s, len(d), len(raw))
	}
	copy(d[:], raw)
	return d, nil
}

// Equal reports whether two digests are byte-for-byte identical.
func Equal(a, b Digest) bool {
	return a == b
}

// Record stores file checksum information
type Record struct {
	Path         string
	Digest       Digest
	MD5          string
	Size         int64
	ModTime      time.Time
	ChecksumTime time.Time
}

// Matches reports whether size and modification time still agree with info,
// i.e. whether the record may still describe the file.
func (r *Record) Matches(size int64, modTime time.Time) bool {
	return r != nil && r.Size == size && r.ModTime.Equal(modTime)
}

// Compute returns the digest of the regular file at filePath.
func Compute(fsys filesystem.StatFS, filePath string) (Digest, error) {
	rec, err := ComputeRecord(fsys, filePath)
	if err != nil {
		return Digest{}, err
	}
	return rec.Digest, nil
}

// ComputeRecord calculates the MD5 checksum and gathers file metadata.
func ComputeRecord(fsys filesystem.StatFS, filePath string) (*Record, error) {
	return ComputeWithBlockSize(fsys, filePath, BlockSize)
}

// ComputeWithBlockSize is ComputeRecord with an explicit read block size.
func ComputeWithBlockSize(fsys filesystem.StatFS, filePath string, blockSize int) (*Record, error) {
	if blockSize <= 0 {
		blockSize = BlockSize
	}

	info, err := fsys.Stat(filePath)
	if err != nil {
		return nil, core.Wrap("checksum", filePath, core.KindIO, err)
	}
	if info.IsDir() {
		return nil, core.NewError("checksum", filePath, core.KindIsDirectory, nil)
	}

	h, err := newHash()
	if err != nil {
		return nil, core.NewError("checksum", filePath, core.KindAlgorithmUnavailable, err)
	}

	file, err := fsys.Open(filePath)
	if err != nil {
		return nil, core.Wrap("checksum", filePath, core.KindIO, err)
	}
	defer func() {
		_ = file.Close()
	}()

	buf := make([]byte, blockSize)
	for {
		n, err := file.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, core.NewError("checksum", filePath, core.KindIO, err)
		}
	}

	rec := &Record{
		Path:         filePath,
		Size:         info.Size(),
		ModTime:      info.ModTime(),
		ChecksumTime: time.Now(),
	}
	copy(rec.Digest[:], h.Sum(nil))
	rec.MD5 = rec.Digest.String()
	return rec, nil
}

func newHash() (hash.Hash, error) {
	if !crypto.MD5.Available() {
		return nil, errors.New("md5 is not linked into the binary")
	}
	return crypto.MD5.New(), nil
}
