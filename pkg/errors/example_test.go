// Package errors provides examples of structured error handling in csvpq.
package errors_test

import (
	"fmt"
	"io"

	"github.com/csvpq/csvpq/pkg/errors"
)

// Example demonstrates basic error creation and wrapping.
func Example() {
	// Create a new error with type
	err := errors.New(errors.ErrorTypeConfig, "i32 and i64 can't both be the default data types for integers")

	// Add context details
	err = err.WithDetail("flag", "--i32").
		WithDetail("conflicting_flag", "--i64")

	// Print the error
	fmt.Println(err.Error())

	// Output:
	// config: i32 and i64 can't both be the default data types for integers
}

// ExampleWrap shows how to wrap existing errors with context.
func ExampleWrap() {
	// Simulate an underlying error
	originalErr := io.ErrUnexpectedEOF

	// Wrap the error with context
	err := errors.Wrap(originalErr, errors.ErrorTypeFile, "failed to read input file").
		WithDetail("file", "data.csv.gz")

	// Check the error type
	if errors.IsType(err, errors.ErrorTypeFile) {
		fmt.Println("This is a file error")
	}

	// Output:
	// This is a file error
}

// ExampleIsType demonstrates checking error types through wrapping.
func ExampleIsType() {
	inferErr := errors.New(errors.ErrorTypeData, "could not infer schema")
	wrappedErr := errors.Wrap(inferErr, errors.ErrorTypeFile, "conversion failed")

	fmt.Printf("Is data error: %v\n", errors.IsType(inferErr, errors.ErrorTypeData))
	fmt.Printf("Wrapped error is file type: %v\n", errors.IsType(wrappedErr, errors.ErrorTypeFile))
	fmt.Printf("Wrapped error contains data type: %v\n", errors.IsType(wrappedErr, errors.ErrorTypeData))

	// Output:
	// Is data error: true
	// Wrapped error is file type: true
	// Wrapped error contains data type: false
}
