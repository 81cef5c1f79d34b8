// Package pipeline orchestrates the conversion of CSV input files into
// Parquet output files.
//
// # Overview
//
// Each input file moves through an explicit per-file flow:
//
//	entry guards -> infer schema -> rewrite schema ->
//	    print schema (terminal)
//	  | open sink -> stream rows -> commit (terminal)
//
// Entry guards reject a file with a logged skip and the run moves on to
// the next input. Every error past the guards is fatal and aborts the
// whole run. Files are processed sequentially in argument order; the
// consolidated overrides and defaults are read-only and shared across
// files.
//
// # Usage
//
//	runner := pipeline.NewRunner(pipeline.Options{
//	    Overrides:  overrides,
//	    Defaults:   defaults,
//	    SampleRows: 8192,
//	    BatchSize:  1024,
//	}, logger)
//
//	results, err := runner.Run(ctx, paths)
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/csv"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"go.uber.org/zap"

	"github.com/csvpq/csvpq/pkg/columnar"
	"github.com/csvpq/csvpq/pkg/config"
	"github.com/csvpq/csvpq/pkg/errors"
	"github.com/csvpq/csvpq/pkg/logger"
	"github.com/csvpq/csvpq/pkg/schema"
	"github.com/csvpq/csvpq/pkg/sink"
	"github.com/csvpq/csvpq/pkg/source"
)

// outputSuffix replaces the recognized row-format suffix on output names.
const outputSuffix = ".parquet"

// Options configure a conversion run.
type Options struct {
	// Overrides and Defaults come from consolidating the type directives.
	Overrides schema.Overrides
	Defaults  schema.Defaults

	// SampleRows caps the inference pass; BatchSize sets rows per decoded
	// record batch in the write pass.
	SampleRows int
	BatchSize  int

	// PrintSchema renders resolved schemas to SchemaOut instead of
	// converting.
	PrintSchema bool
	// RemoveInputs deletes each input after its successful conversion.
	RemoveInputs bool

	// SchemaOut receives rendered schemas in print mode. Defaults to
	// stdout.
	SchemaOut io.Writer
	// ProgressOut, when set, receives the input filename after each
	// successful conversion.
	ProgressOut io.Writer
}

// Runner converts input files sequentially.
type Runner struct {
	opts   Options
	alloc  memory.Allocator
	logger *zap.Logger
}

// NewRunner creates a runner. Zero sampling and batching options fall back
// to the configuration defaults.
func NewRunner(opts Options, log *zap.Logger) *Runner {
	if opts.SampleRows <= 0 {
		opts.SampleRows = config.DefaultSampleRows
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = config.DefaultBatchSize
	}
	if opts.SchemaOut == nil {
		opts.SchemaOut = os.Stdout
	}
	if log == nil {
		log = logger.Get()
	}

	return &Runner{
		opts:   opts,
		alloc:  memory.NewGoAllocator(),
		logger: log,
	}
}

// Run processes paths in order. Skips are logged and processing continues;
// the first fatal error aborts the run, and results for files finished
// before the failure are returned alongside it.
func (r *Runner) Run(ctx context.Context, paths []string) ([]FileResult, error) {
	metrics := NewRunMetrics()
	r.logger.Info("starting run",
		zap.Int("files", len(paths)),
		zap.Bool("print_schema", r.opts.PrintSchema),
		zap.Int("sample_rows", r.opts.SampleRows),
		zap.Int("batch_size", r.opts.BatchSize))

	results := make([]FileResult, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return results, errors.Wrap(err, errors.ErrorTypeInternal, "run cancelled")
		}

		res, err := r.processFile(path)
		if err != nil {
			r.logger.Error("conversion failed", zap.String("file", path), zap.Error(err))
			return results, err
		}

		results = append(results, res)
		metrics.Record(res)

		switch res.Status {
		case StatusSkipped:
			r.logger.Warn("skipping input file",
				zap.String("file", res.Input),
				zap.String("reason", res.Reason))
		case StatusConverted:
			r.logger.Info("converted input file",
				zap.String("file", res.Input),
				zap.String("output", res.Output),
				zap.Int64("rows", res.Rows),
				zap.Int64("bytes", res.Bytes),
				zap.Duration("duration", res.Elapsed))
		case StatusPrinted:
			r.logger.Debug("printed schema", zap.String("file", res.Input))
		}
	}

	metrics.LogSummary(r.logger)
	return results, nil
}

// processFile runs one input through the per-file flow and returns its
// terminal outcome. A returned error aborts the whole run.
func (r *Runner) processFile(path string) (FileResult, error) {
	start := time.Now()

	finalPath, reason := entryGuards(path)
	if reason != "" {
		return FileResult{
			Input:   path,
			Status:  StatusSkipped,
			Reason:  reason,
			Elapsed: time.Since(start),
		}, nil
	}

	src, err := source.Open(path)
	if err != nil {
		return FileResult{}, err
	}
	defer src.Close()

	inferred, err := schema.Infer(src, r.opts.SampleRows, r.alloc)
	if err != nil {
		return FileResult{}, err
	}

	final := schema.Rewrite(inferred, r.opts.Overrides, r.opts.Defaults)

	if r.opts.PrintSchema {
		rendered, err := schema.Render(final)
		if err != nil {
			return FileResult{}, err
		}
		if _, err := fmt.Fprintf(r.opts.SchemaOut, "%s:\n%s\n", path, rendered); err != nil {
			return FileResult{}, errors.Wrap(err, errors.ErrorTypeFile, "failed to print schema")
		}
		return FileResult{
			Input:   path,
			Status:  StatusPrinted,
			Elapsed: time.Since(start),
		}, nil
	}

	snk, err := sink.Create(sink.StagingPath(finalPath))
	if err != nil {
		return FileResult{}, err
	}
	defer snk.Discard()

	if err := src.Rewind(); err != nil {
		return FileResult{}, err
	}

	rows, err := r.streamRows(snk, src, final)
	if err != nil {
		return FileResult{}, err
	}

	if err := snk.Commit(finalPath); err != nil {
		return FileResult{}, err
	}

	if r.opts.RemoveInputs {
		if err := os.Remove(path); err != nil {
			r.logger.Warn("failed to remove input file",
				zap.String("file", path),
				zap.Error(err))
		}
	}

	if r.opts.ProgressOut != nil {
		fmt.Fprintln(r.opts.ProgressOut, path)
	}

	return FileResult{
		Input:   path,
		Output:  finalPath,
		Status:  StatusConverted,
		Rows:    rows,
		Bytes:   snk.BytesWritten(),
		Elapsed: time.Since(start),
	}, nil
}

// streamRows decodes the full input with the final schema and writes it
// batch by batch into the sink.
func (r *Runner) streamRows(snk *sink.Sink, src source.Reader, final *arrow.Schema) (int64, error) {
	w, err := columnar.NewWriter(snk, final, r.alloc)
	if err != nil {
		return 0, err
	}

	rd := csv.NewReader(src, final,
		csv.WithAllocator(r.alloc),
		csv.WithComma(','),
		csv.WithHeader(true),
		csv.WithChunk(r.opts.BatchSize),
		csv.WithNullReader(false),
	)
	defer rd.Release()

	for rd.Next() {
		if err := w.WriteBatch(rd.Record()); err != nil {
			return 0, err
		}
	}
	if err := rd.Err(); err != nil {
		return 0, errors.Wrap(err, errors.ErrorTypeData, "failed to decode rows")
	}

	if err := w.Close(); err != nil {
		return 0, err
	}
	return w.RowsWritten(), nil
}

// entryGuards applies the advisory pre-checks in order and returns the
// derived final path plus a skip reason when a guard rejects the file.
// The guards race-check only; the sink's exclusive create is the real
// mutual-exclusion guarantee.
func entryGuards(path string) (finalPath, reason string) {
	info, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		return "", "input does not exist"
	case err != nil:
		return "", "input is not accessible"
	case !info.Mode().IsRegular():
		return "", "input is not a regular file"
	}

	suffix, ok := source.MatchSuffix(path)
	if !ok {
		return "", "unrecognized input suffix"
	}

	finalPath = strings.TrimSuffix(path, suffix) + outputSuffix
	if _, err := os.Stat(finalPath); err == nil {
		return finalPath, "destination already exists"
	}
	if _, err := os.Stat(sink.StagingPath(finalPath)); err == nil {
		return finalPath, "staging file already exists"
	}

	return finalPath, ""
}
