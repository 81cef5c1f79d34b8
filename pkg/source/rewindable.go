// Package source provides rewindable readers over possibly-compressed
// input files.
//
// Schema inference consumes a bounded prefix of the decoded stream, after
// which the full content must be read again from the start to produce
// rows. Decompressed streams cannot seek backward on the decoded side, so
// rewinding a compressed input reseeks the underlying file and restarts
// decompression over the repositioned handle.
package source

import (
	"compress/gzip"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/csvpq/csvpq/pkg/errors"
)

// Compression extensions recognized on input filenames, matched
// case-sensitively.
const (
	extGzip = ".gz"
	extZstd = ".zst"
	extLZ4  = ".lz4"
)

// RowFormatSuffixes lists the input filename endings csvpq converts,
// longest first so the compressed forms match before the plain one.
var RowFormatSuffixes = []string{".csv.gz", ".csv.zst", ".csv.lz4", ".csv"}

// MatchSuffix returns the recognized row-format suffix of path, or false
// when the filename does not end in one.
func MatchSuffix(path string) (string, bool) {
	for _, suffix := range RowFormatSuffixes {
		if strings.HasSuffix(path, suffix) {
			return suffix, true
		}
	}
	return "", false
}

// Reader is a byte stream over one input file that can be restarted from
// the beginning after a partial read.
type Reader interface {
	io.ReadCloser

	// Rewind repositions the stream at the first decoded byte, restarting
	// decompression where the input is compressed.
	Rewind() error
}

// Open opens path for reading, picking the variant from the compression
// extension. Paths without a recognized compression extension are read as
// plain bytes.
func Open(path string) (Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to open input file").
			WithDetail("path", path)
	}

	switch {
	case strings.HasSuffix(path, extGzip):
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to open gzip stream").
				WithDetail("path", path)
		}
		return &gzipReader{f: f, zr: zr}, nil

	case strings.HasSuffix(path, extZstd):
		dec, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to open zstd stream").
				WithDetail("path", path)
		}
		return &zstdReader{f: f, dec: dec}, nil

	case strings.HasSuffix(path, extLZ4):
		return &lz4Reader{f: f, zr: lz4.NewReader(f)}, nil

	default:
		return &plainReader{f: f}, nil
	}
}

func seekStart(f *os.File) error {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to rewind input file").
			WithDetail("path", f.Name())
	}
	return nil
}

// plainReader reads an uncompressed file directly.
type plainReader struct {
	f *os.File
}

func (r *plainReader) Read(p []byte) (int, error) { return r.f.Read(p) }

func (r *plainReader) Rewind() error { return seekStart(r.f) }

func (r *plainReader) Close() error { return r.f.Close() }

// gzipReader streams a gzip-compressed file, including multi-member
// streams produced by concatenated gzip writers.
type gzipReader struct {
	f  *os.File
	zr *gzip.Reader
}

func (r *gzipReader) Read(p []byte) (int, error) { return r.zr.Read(p) }

func (r *gzipReader) Rewind() error {
	if err := seekStart(r.f); err != nil {
		return err
	}
	if err := r.zr.Reset(r.f); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to restart gzip stream").
			WithDetail("path", r.f.Name())
	}
	return nil
}

func (r *gzipReader) Close() error {
	err := r.zr.Close()
	if cerr := r.f.Close(); err == nil {
		err = cerr
	}
	return err
}

// zstdReader streams a zstd-compressed file.
type zstdReader struct {
	f   *os.File
	dec *zstd.Decoder
}

func (r *zstdReader) Read(p []byte) (int, error) { return r.dec.Read(p) }

func (r *zstdReader) Rewind() error {
	if err := seekStart(r.f); err != nil {
		return err
	}
	if err := r.dec.Reset(r.f); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to restart zstd stream").
			WithDetail("path", r.f.Name())
	}
	return nil
}

func (r *zstdReader) Close() error {
	// The decoder owns goroutines and must be released.
	r.dec.Close()
	return r.f.Close()
}

// lz4Reader streams an lz4-compressed file.
type lz4Reader struct {
	f  *os.File
	zr *lz4.Reader
}

func (r *lz4Reader) Read(p []byte) (int, error) { return r.zr.Read(p) }

func (r *lz4Reader) Rewind() error {
	if err := seekStart(r.f); err != nil {
		return err
	}
	r.zr.Reset(r.f)
	return nil
}

func (r *lz4Reader) Close() error { return r.f.Close() }
