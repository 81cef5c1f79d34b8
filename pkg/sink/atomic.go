// Package sink provides all-or-nothing creation of output files.
//
// Output is written to a dot-prefixed staging file in the destination
// directory and only reaches its final name through an atomic rename after
// a durable sync. A sink that is discarded before committing removes its
// staging file, so the final path never holds partial output.
package sink

import (
	"os"
	"path/filepath"

	"github.com/csvpq/csvpq/pkg/errors"
)

// tempPrefix marks staging files in the destination directory.
const tempPrefix = ".tmp."

// StagingPath returns the staging filename for finalPath: the final
// basename prefixed with the staging marker, in the same directory.
func StagingPath(finalPath string) string {
	dir, base := filepath.Split(finalPath)
	return filepath.Join(dir, tempPrefix+base)
}

// Sink accumulates output in a staging file until Commit promotes it.
type Sink struct {
	f         *os.File
	tempPath  string
	bytes     int64
	committed bool
}

// Create exclusively creates the staging file at tempPath. The exclusive
// create is the only hard mutual-exclusion guarantee; callers pre-check the
// final and staging paths as an advisory skip, and a lost race surfaces
// here as an error.
func Create(tempPath string) (*Sink, error) {
	f, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to create staging file").
			WithDetail("path", tempPath)
	}
	return &Sink{f: f, tempPath: tempPath}, nil
}

// Write appends to the staging file.
func (s *Sink) Write(p []byte) (int, error) {
	n, err := s.f.Write(p)
	s.bytes += int64(n)
	return n, err
}

// Name returns the staging path.
func (s *Sink) Name() string {
	return s.tempPath
}

// BytesWritten returns the number of bytes accepted so far.
func (s *Sink) BytesWritten() int64 {
	return s.bytes
}

// Commit durably syncs the staging file, closes it, and atomically renames
// it to finalPath. On success the sink is spent and Discard becomes a
// no-op. On failure the staging file is left in place for Discard.
func (s *Sink) Commit(finalPath string) error {
	if s.committed {
		return errors.New(errors.ErrorTypeInternal, "sink already committed").
			WithDetail("path", s.tempPath)
	}
	if err := s.f.Sync(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to sync staging file").
			WithDetail("path", s.tempPath)
	}
	if err := s.f.Close(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to close staging file").
			WithDetail("path", s.tempPath)
	}
	if err := os.Rename(s.tempPath, finalPath); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to promote staging file").
			WithDetail("from", s.tempPath).
			WithDetail("to", finalPath)
	}
	s.committed = true
	return nil
}

// Discard closes and removes the staging file unless Commit succeeded.
// Best-effort and safe to defer unconditionally.
func (s *Sink) Discard() {
	if s.committed {
		return
	}
	s.f.Close()
	os.Remove(s.tempPath)
}
