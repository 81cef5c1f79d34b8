package pipeline

import "time"

// Status classifies the terminal outcome of one input file.
type Status string

const (
	// StatusConverted means an output file was committed to its final path.
	StatusConverted Status = "converted"
	// StatusSkipped means an entry guard rejected the file; the run continues.
	StatusSkipped Status = "skipped"
	// StatusPrinted means the resolved schema was rendered instead of
	// converting; no file was written.
	StatusPrinted Status = "printed"
)

// FileResult is the terminal outcome for one input path. Every file that
// does not abort the run ends in exactly one of the three statuses.
type FileResult struct {
	// Input is the path as given on the command line.
	Input string
	// Output is the final destination path; set for conversions only.
	Output string
	// Status is the terminal state.
	Status Status
	// Reason says which guard rejected a skipped file.
	Reason string
	// Rows is the number of rows written; set for conversions only.
	Rows int64
	// Bytes is the size of the committed output; set for conversions only.
	Bytes int64
	// Elapsed is the wall time spent on this file.
	Elapsed time.Duration
}
