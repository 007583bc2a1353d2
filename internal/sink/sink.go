// Package sink writes finished payloads to their destination.
package sink

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/andrei-cloud/go_segop/pkg/errorcodes"
)

// Sink receives one finished payload.
type Sink interface {
	Write(payload []byte) error
}

// FileSink writes the payload to Path atomically.
type FileSink struct {
	Path string
	Perm os.FileMode // defaults to 0o644
}

// Write creates parent directories, writes a uniquely named temp file next to
// Path and renames it over Path, so concurrent writers never share a temp file.
func (s FileSink) Write(payload []byte) error {
	perm := s.Perm
	if perm == 0 {
		perm = 0o644
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ioFailure(err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.Path)+".*.tmp")
	if err != nil {
		return ioFailure(err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return ioFailure(err)
	}
	if err := tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return ioFailure(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return ioFailure(err)
	}

	if err := os.Rename(tmpName, s.Path); err != nil {
		_ = os.Remove(tmpName)
		return ioFailure(err)
	}

	return nil
}

// WriterSink writes the payload to W in one call.
type WriterSink struct {
	W io.Writer
}

// Write writes payload to the underlying writer.
func (s WriterSink) Write(payload []byte) error {
	n, err := s.W.Write(payload)
	if err != nil {
		return ioFailure(err)
	}
	if n != len(payload) {
		return ioFailure(io.ErrShortWrite)
	}

	return nil
}

func ioFailure(err error) error {
	return fmt.Errorf("%w: %w", errorcodes.ErrIOFailure, err)
}
