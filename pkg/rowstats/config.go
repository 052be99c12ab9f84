package rowstats

import (
	"fmt"
	"runtime"

	"pkg.jsn.cam/rowstats/pkg/progress"
)

// DefaultChunkSize is the number of lines per unit of parallel work.
const DefaultChunkSize = 100_000

// Config holds run configuration
type Config struct {
	Progress  progress.Sink // nil disables progress output
	InputPath string
	ChunkSize int // lines per chunk, 0 means DefaultChunkSize
	Workers   int // concurrent chunk tasks, 0 means runtime.NumCPU()

	// SinglePass skips the line-count pre-pass and tracks progress by
	// bytes consumed instead of chunks merged.
	SinglePass bool
	Quiet      bool
}

// Validate checks the configuration for values that can never work.
func (c Config) Validate() error {
	if c.InputPath == "" {
		return ErrEmptyPath
	}
	if c.ChunkSize < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidChunkSize, c.ChunkSize)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkerCount, c.Workers)
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.ChunkSize == 0 {
		c.ChunkSize = DefaultChunkSize
	}
	if c.Workers == 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Progress == nil {
		c.Progress = progress.Nop{}
	}
	return c
}
