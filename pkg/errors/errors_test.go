package errors

import (
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(ErrorTypeConfig, "conflicting defaults")

	require.NotNil(t, err)
	assert.Equal(t, ErrorTypeConfig, err.Type)
	assert.Equal(t, "conflicting defaults", err.Message)
	assert.Nil(t, err.Cause)
	assert.NotEmpty(t, err.Stack)
	assert.Equal(t, "config: conflicting defaults", err.Error())
}

func TestNewf(t *testing.T) {
	err := Newf(ErrorTypeConfig, "data type for column `%s' was specified multiple times", "id")

	require.NotNil(t, err)
	assert.Equal(t, ErrorTypeConfig, err.Type)
	assert.Equal(t, "data type for column `id' was specified multiple times", err.Message)
}

func TestWrap(t *testing.T) {
	cause := io.ErrUnexpectedEOF
	err := Wrap(cause, ErrorTypeFile, "failed to read sample rows")

	require.NotNil(t, err)
	assert.Equal(t, ErrorTypeFile, err.Type)
	assert.Equal(t, cause, err.Cause)
	assert.Equal(t, cause, err.Unwrap())
	assert.Equal(t, "file: failed to read sample rows: unexpected EOF", err.Error())
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrorTypeFile, "ignored"))
}

func TestIsType(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		errType ErrorType
		want    bool
	}{
		{
			name:    "matching type",
			err:     New(ErrorTypeData, "schema inference produced no fields"),
			errType: ErrorTypeData,
			want:    true,
		},
		{
			name:    "mismatched type",
			err:     New(ErrorTypeData, "schema inference produced no fields"),
			errType: ErrorTypeConfig,
			want:    false,
		},
		{
			name:    "outermost type wins through wrapping",
			err:     Wrap(New(ErrorTypeData, "inner"), ErrorTypeFile, "outer"),
			errType: ErrorTypeFile,
			want:    true,
		},
		{
			name:    "plain error",
			err:     fmt.Errorf("plain"),
			errType: ErrorTypeInternal,
			want:    false,
		},
		{
			name:    "nil error",
			err:     nil,
			errType: ErrorTypeInternal,
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsType(tt.err, tt.errType))
		})
	}
}

func TestWithDetail(t *testing.T) {
	err := New(ErrorTypeFile, "destination already exists").
		WithDetail("path", "out/data.parquet").
		WithDetail("attempt", 1)

	require.NotNil(t, err.Details)
	assert.Equal(t, "out/data.parquet", err.Details["path"])
	assert.Equal(t, 1, err.Details["attempt"])
}

func TestErrorChainUnwrapsToCause(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := Wrap(cause, ErrorTypeFile, "commit failed")

	assert.ErrorIs(t, err, cause)
}
