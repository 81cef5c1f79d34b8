// Package columnar provides the Parquet encoding layer.
package columnar

import (
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/csvpq/csvpq/pkg/errors"
)

// Output compression is fixed at gzip level 8, trading write speed for
// well-compressed archival output.
const gzipLevel = 8

// Writer encodes Arrow record batches into a Parquet stream.
type Writer struct {
	fileWriter  *pqarrow.FileWriter
	rowsWritten int64
}

// NewWriter creates a Parquet writer that emits record batches matching
// schema into w. Closing the Writer finalizes the Parquet footer but does
// not close w.
func NewWriter(w io.Writer, schema *arrow.Schema, alloc memory.Allocator) (*Writer, error) {
	props := parquet.NewWriterProperties(
		parquet.WithCompression(compress.Codecs.Gzip),
		parquet.WithCompressionLevel(gzipLevel),
	)
	arrowProps := pqarrow.NewArrowWriterProperties(
		pqarrow.WithAllocator(alloc),
	)

	fw, err := pqarrow.NewFileWriter(schema, w, props, arrowProps)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to create parquet writer")
	}

	return &Writer{fileWriter: fw}, nil
}

// WriteBatch appends one record batch to the buffered row group.
func (w *Writer) WriteBatch(rec arrow.Record) error {
	if err := w.fileWriter.WriteBuffered(rec); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to write record batch")
	}
	w.rowsWritten += rec.NumRows()
	return nil
}

// RowsWritten returns the number of rows appended so far.
func (w *Writer) RowsWritten() int64 {
	return w.rowsWritten
}

// Close flushes buffered row groups and writes the Parquet footer.
func (w *Writer) Close() error {
	if err := w.fileWriter.Close(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to finalize parquet file")
	}
	return nil
}
