package ofile

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/ofile/pkg/ofile/core"
)

// Write writes p through the buffered writer, opening it first if needed.
// Unless append mode is on, the first write after opening truncates the file.
func (h *Handle) Write(p []byte) (int, error) {
	if err := h.OpenWriter(); err != nil {
		return 0, err
	}
	h.invalidate()
	n, err := h.writer.Write(p)
	if err != nil {
		return n, core.NewError("write", h.Path(), core.KindIO, err)
	}
	return n, nil
}

// WriteString writes s through the buffered writer.
func (h *Handle) WriteString(s string) (int, error) {
	return h.Write([]byte(s))
}

// WriteMode writes s after switching the remembered append mode. Changing the
// mode reopens the writer; the mode sticks for subsequent writes.
func (h *Handle) WriteMode(s string, appending bool) error {
	if appending != h.appending {
		h.appending = appending
		if err := h.CloseWriter(); err != nil {
			return err
		}
		if err := h.OpenWriter(); err != nil {
			return err
		}
	}
	_, err := h.WriteString(s)
	return err
}

// Append writes s in append mode.
func (h *Handle) Append(s string) error {
	return h.WriteMode(s, true)
}

// Flush pushes buffered writes to the backend. It is a no-op without a writer.
func (h *Handle) Flush() error {
	if h.state != core.StreamWriting {
		return nil
	}
	if err := h.writer.Flush(); err != nil {
		return core.NewError("flush", h.Path(), core.KindIO, err)
	}
	return nil
}

// OpenWriter opens the buffered writer, closing the reader if one is open.
func (h *Handle) OpenWriter() error {
	if h.state == core.StreamWriting {
		return nil
	}
	if err := h.CloseReader(); err != nil {
		return err
	}

	flag := os.O_WRONLY | os.O_CREATE
	if h.appending {
		flag |= os.O_APPEND
	} else {
		flag |= os.O_TRUNC
	}
	f, err := h.fsys.OpenFile(h.name, flag, h.opts.FileMode)
	if err != nil {
		return core.Wrap("open-writer", h.Path(), core.KindIO, err)
	}

	h.wfile = f
	h.writer = bufio.NewWriter(f)
	h.state = core.StreamWriting
	h.invalidate()

	Logger().Trace().
		Str("path", h.Path()).
		Bool("appending", h.appending).
		Msg("writer opened")
	return nil
}

// OpenReader opens the buffered reader, closing the writer if one is open.
func (h *Handle) OpenReader() error {
	if h.state == core.StreamReading {
		return nil
	}
	if err := h.CloseWriter(); err != nil {
		return err
	}

	f, err := h.fsys.Open(h.name)
	if err != nil {
		return core.Wrap("open-reader", h.Path(), core.KindIO, err)
	}
	if info, err := f.Stat(); err == nil && info.IsDir() {
		_ = f.Close()
		return core.NewError("open-reader", h.Path(), core.KindIsDirectory, nil)
	}

	h.rfile = f
	h.reader = bufio.NewReader(f)
	h.state = core.StreamReading

	Logger().Trace().Str("path", h.Path()).Msg("reader opened")
	return nil
}

// CloseWriter flushes and closes the writer if open.
func (h *Handle) CloseWriter() error {
	if h.state != core.StreamWriting {
		return nil
	}
	flushErr := h.writer.Flush()
	closeErr := h.wfile.Close()
	h.writer, h.wfile = nil, nil
	h.state = core.StreamNone

	if err := errors.Join(flushErr, closeErr); err != nil {
		return core.NewError("close-writer", h.Path(), core.KindIO, err)
	}
	return nil
}

// CloseReader closes the reader if open.
func (h *Handle) CloseReader() error {
	if h.state != core.StreamReading {
		return nil
	}
	err := h.rfile.Close()
	h.reader, h.rfile = nil, nil
	h.state = core.StreamNone

	if err != nil {
		return core.NewError("close-reader", h.Path(), core.KindIO, err)
	}
	return nil
}

// Close closes whichever stream is open.
func (h *Handle) Close() error {
	if err := h.CloseWriter(); err != nil {
		return err
	}
	return h.CloseReader()
}

// Writer returns the buffered writer, opening it if needed. The cached digest
// is dropped since the caller is expected to write.
func (h *Handle) Writer() (*bufio.Writer, error) {
	if err := h.OpenWriter(); err != nil {
		return nil, err
	}
	h.invalidate()
	return h.writer, nil
}

// Reader returns the buffered reader, opening it if needed.
func (h *Handle) Reader() (*bufio.Reader, error) {
	if err := h.OpenReader(); err != nil {
		return nil, err
	}
	return h.reader, nil
}

// Read reads from the buffered reader, opening it if needed.
func (h *Handle) Read(p []byte) (int, error) {
	if err := h.OpenReader(); err != nil {
		return 0, err
	}
	return h.reader.Read(p)
}

// ReadLine returns the next line without its terminator. It returns io.EOF
// once the reader is exhausted.
func (h *Handle) ReadLine() (string, error) {
	if err := h.OpenReader(); err != nil {
		return "", err
	}
	line, err := h.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", core.NewError("read", h.Path(), core.KindIO, err)
	}
	if errors.Is(err, io.EOF) && line == "" {
		return "", io.EOF
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

// Bytes closes any open stream and returns the whole content.
func (h *Handle) Bytes() ([]byte, error) {
	if err := h.Close(); err != nil {
		return nil, err
	}
	f, err := h.fsys.Open(h.name)
	if err != nil {
		return nil, core.Wrap("read-file", h.Path(), core.KindIO, err)
	}
	defer func() {
		_ = f.Close()
	}()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, core.NewError("read-file", h.Path(), core.KindIO, err)
	}
	return data, nil
}

// ReadFile closes any open stream and returns the whole content as a string.
func (h *Handle) ReadFile() (string, error) {
	data, err := h.Bytes()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Clear truncates the file to zero length and turns append mode off.
func (h *Handle) Clear() error {
	if err := h.Close(); err != nil {
		return err
	}
	h.appending = false
	if err := h.OpenWriter(); err != nil {
		return err
	}
	return h.CloseWriter()
}

// CountLines returns the number of newline characters in the file. A
// non-empty file without any newline counts as one line.
func (h *Handle) CountLines() (int, error) {
	if err := h.Close(); err != nil {
		return 0, err
	}
	f, err := h.fsys.Open(h.name)
	if err != nil {
		return 0, core.Wrap("count-lines", h.Path(), core.KindIO, err)
	}
	defer func() {
		_ = f.Close()
	}()

	buf := make([]byte, h.opts.BlockSize)
	count, empty := 0, true
	for {
		n, err := f.Read(buf)
		if n > 0 {
			empty = false
			for _, b := range buf[:n] {
				if b == '\n' {
					count++
				}
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, core.NewError("count-lines", h.Path(), core.KindIO, err)
		}
	}

	if count == 0 && !empty {
		return 1, nil
	}
	return count, nil
}
