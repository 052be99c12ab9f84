package rowstats

import "errors"

// Sentinel errors for common error conditions
var (
	// Configuration errors
	ErrEmptyPath          = errors.New("input path is required")
	ErrInvalidChunkSize   = errors.New("invalid chunk size")
	ErrInvalidWorkerCount = errors.New("invalid worker count")

	// Input errors. These are fatal: a run that hits one produces no report.
	ErrOpenInput = errors.New("open input")
	ErrReadInput = errors.New("read input")
)
