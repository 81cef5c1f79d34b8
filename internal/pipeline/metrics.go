package pipeline

import (
	"time"

	"go.uber.org/zap"
)

// RunMetrics aggregates per-file outcomes across one conversion run.
// The runner processes files sequentially, so the counters are not
// synchronized.
type RunMetrics struct {
	filesConverted int64
	filesSkipped   int64
	filesPrinted   int64
	rowsWritten    int64
	bytesWritten   int64

	startTime time.Time
}

// NewRunMetrics creates metrics anchored at the current time.
func NewRunMetrics() *RunMetrics {
	return &RunMetrics{startTime: time.Now()}
}

// Record folds one file outcome into the counters.
func (m *RunMetrics) Record(res FileResult) {
	switch res.Status {
	case StatusConverted:
		m.filesConverted++
		m.rowsWritten += res.Rows
		m.bytesWritten += res.Bytes
	case StatusSkipped:
		m.filesSkipped++
	case StatusPrinted:
		m.filesPrinted++
	}
}

// Snapshot returns the current counters for reporting.
func (m *RunMetrics) Snapshot() map[string]interface{} {
	duration := time.Since(m.startTime)
	throughput := 0.0
	if secs := duration.Seconds(); secs > 0 {
		throughput = float64(m.rowsWritten) / secs
	}

	return map[string]interface{}{
		"files_converted": m.filesConverted,
		"files_skipped":   m.filesSkipped,
		"files_printed":   m.filesPrinted,
		"rows_written":    m.rowsWritten,
		"bytes_written":   m.bytesWritten,
		"duration":        duration.String(),
		"throughput_rps":  throughput,
	}
}

// LogSummary emits the end-of-run summary line.
func (m *RunMetrics) LogSummary(logger *zap.Logger) {
	duration := time.Since(m.startTime)
	throughput := 0.0
	if secs := duration.Seconds(); secs > 0 {
		throughput = float64(m.rowsWritten) / secs
	}

	logger.Info("run completed",
		zap.Int64("files_converted", m.filesConverted),
		zap.Int64("files_skipped", m.filesSkipped),
		zap.Int64("files_printed", m.filesPrinted),
		zap.Int64("rows_written", m.rowsWritten),
		zap.Int64("bytes_written", m.bytesWritten),
		zap.Duration("duration", duration),
		zap.Float64("throughput_rps", throughput))
}
