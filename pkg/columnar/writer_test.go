package columnar

import (
	"bytes"
	"context"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema() *arrow.Schema {
	return arrow.NewSchema([]arrow.Field{
		{Name: "id", Type: arrow.PrimitiveTypes.Int64, Nullable: true},
		{Name: "name", Type: arrow.BinaryTypes.String, Nullable: true},
		{Name: "score", Type: arrow.PrimitiveTypes.Float32, Nullable: true},
	}, nil)
}

func buildBatch(t *testing.T, alloc memory.Allocator, s *arrow.Schema, ids []int64, names []string, scores []float32) arrow.Record {
	t.Helper()

	b := array.NewRecordBuilder(alloc, s)
	defer b.Release()

	b.Field(0).(*array.Int64Builder).AppendValues(ids, nil)
	b.Field(1).(*array.StringBuilder).AppendValues(names, nil)
	b.Field(2).(*array.Float32Builder).AppendValues(scores, nil)

	return b.NewRecord()
}

func TestWriterRoundTrip(t *testing.T) {
	alloc := memory.NewGoAllocator()
	s := testSchema()

	var buf bytes.Buffer
	w, err := NewWriter(&buf, s, alloc)
	require.NoError(t, err)

	first := buildBatch(t, alloc, s, []int64{1, 2}, []string{"alice", "bob"}, []float32{2.5, 3.5})
	defer first.Release()
	require.NoError(t, w.WriteBatch(first))

	second := buildBatch(t, alloc, s, []int64{3}, []string{"carol"}, []float32{4.5})
	defer second.Release()
	require.NoError(t, w.WriteBatch(second))

	assert.EqualValues(t, 3, w.RowsWritten())
	require.NoError(t, w.Close())

	fr, err := file.NewParquetReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer fr.Close()

	assert.EqualValues(t, 3, fr.NumRows())

	rdr, err := pqarrow.NewFileReader(fr, pqarrow.ArrowReadProperties{}, alloc)
	require.NoError(t, err)

	got, err := rdr.Schema()
	require.NoError(t, err)
	require.Equal(t, 3, got.NumFields())
	assert.Equal(t, arrow.INT64, got.Field(0).Type.ID())
	assert.Equal(t, arrow.STRING, got.Field(1).Type.ID())
	assert.Equal(t, arrow.FLOAT32, got.Field(2).Type.ID())

	tbl, err := rdr.ReadTable(context.Background())
	require.NoError(t, err)
	defer tbl.Release()

	require.EqualValues(t, 3, tbl.NumRows())

	var ids []int64
	for _, chunk := range tbl.Column(0).Data().Chunks() {
		col := chunk.(*array.Int64)
		for i := 0; i < col.Len(); i++ {
			ids = append(ids, col.Value(i))
		}
	}
	assert.Equal(t, []int64{1, 2, 3}, ids)
}

func TestWriterUsesGzipCompression(t *testing.T) {
	alloc := memory.NewGoAllocator()
	s := testSchema()

	var buf bytes.Buffer
	w, err := NewWriter(&buf, s, alloc)
	require.NoError(t, err)

	rec := buildBatch(t, alloc, s, []int64{1}, []string{"alice"}, []float32{2.5})
	defer rec.Release()
	require.NoError(t, w.WriteBatch(rec))
	require.NoError(t, w.Close())

	fr, err := file.NewParquetReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer fr.Close()

	require.Equal(t, 1, fr.NumRowGroups())
	col, err := fr.RowGroup(0).MetaData().ColumnChunk(0)
	require.NoError(t, err)
	assert.Equal(t, compress.Codecs.Gzip, col.Compression())
}

func TestWriterEmptyFile(t *testing.T) {
	alloc := memory.NewGoAllocator()

	var buf bytes.Buffer
	w, err := NewWriter(&buf, testSchema(), alloc)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	fr, err := file.NewParquetReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer fr.Close()

	assert.EqualValues(t, 0, fr.NumRows())
}
