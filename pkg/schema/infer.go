package schema

import (
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/csv"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/csvpq/csvpq/pkg/errors"
)

// Infer samples up to sampleRows data rows from r and returns the schema
// inferred from them. The first row is a header naming the columns; fields
// are comma separated. Numeric columns come back as the generic int64 and
// float64 placeholders that Rewrite narrows afterwards.
func Infer(r io.Reader, sampleRows int, alloc memory.Allocator) (*arrow.Schema, error) {
	rd := csv.NewInferringReader(r,
		csv.WithAllocator(alloc),
		csv.WithComma(','),
		csv.WithHeader(true),
		csv.WithChunk(sampleRows),
		csv.WithNullReader(false),
	)
	defer rd.Release()

	if !rd.Next() {
		if err := rd.Err(); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeData, "failed to infer schema from sample rows")
		}
		return nil, errors.New(errors.ErrorTypeData, "no data rows to infer a schema from")
	}

	return rd.Schema(), nil
}
