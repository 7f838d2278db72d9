package encryption

import "time"

// Result represents the outcome of processing a single file.
type Result struct {
	// Input file path
	Input string

	// Output file path
	Output string

	// Output file size in bytes
	OutputSize int64

	// Number of chunks the input was split into
	Chunks int

	// Wall time of the transform
	Duration time.Duration
}
