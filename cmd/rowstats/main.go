package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"

	"github.com/pkg/profile"

	"pkg.jsn.cam/rowstats/pkg/progress"
	"pkg.jsn.cam/rowstats/pkg/rowstats"
)

var (
	path         = flag.String("path", "", "Path to the key:value input file")
	chunkSize    = flag.Int("chunk-size", rowstats.DefaultChunkSize, "Lines per chunk of parallel work")
	workers      = flag.Int("workers", runtime.NumCPU(), "Maximum concurrent chunk tasks")
	singlePass   = flag.Bool("single-pass", false, "Skip the line-count pre-pass and track progress by bytes")
	progressMode = flag.String("progress", progress.ModeAuto, "Progress display: auto, bar, line or none")
	cpuProfile   = flag.String("cpuprofile", "", "Directory to write a CPU profile to")
	memProfile   = flag.String("memprofile", "", "Directory to write a memory profile to")
	quiet        = flag.Bool("quiet", false, "Suppress log output")
)

func main() {
	flag.Parse()

	if *path == "" {
		log.Fatal("path is required")
	}
	if *cpuProfile != "" && *memProfile != "" {
		log.Fatal("cpuprofile and memprofile are mutually exclusive")
	}
	if err := checkSizes(*chunkSize, *workers); err != nil {
		log.Fatal(err)
	}

	if err := run(); err != nil {
		log.Fatal(err)
	}
}

// checkSizes rejects non-positive sizes. The library reads zero as "use the
// default", but on the command line a zero is always a mistake.
func checkSizes(chunkSize, workers int) error {
	if chunkSize <= 0 {
		return fmt.Errorf("%w: -chunk-size %d", rowstats.ErrInvalidChunkSize, chunkSize)
	}
	if workers <= 0 {
		return fmt.Errorf("%w: -workers %d", rowstats.ErrInvalidWorkerCount, workers)
	}
	return nil
}

// run does the work of main so deferred profile writers flush before a
// fatal exit.
func run() error {
	absPath, err := filepath.Abs(*path)
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}

	if *cpuProfile != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*cpuProfile), profile.NoShutdownHook).Stop()
	}
	if *memProfile != "" {
		defer profile.Start(profile.MemProfile, profile.ProfilePath(*memProfile), profile.NoShutdownHook).Stop()
	}

	sink, err := progress.New(*progressMode, os.Stdout)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := rowstats.Run(ctx, rowstats.Config{
		InputPath:  absPath,
		ChunkSize:  *chunkSize,
		Workers:    *workers,
		SinglePass: *singlePass,
		Progress:   sink,
		Quiet:      *quiet,
	})
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	return rowstats.WriteReport(os.Stdout, res)
}
