package rowstats

import (
	"context"
	"fmt"
	"iter"
	"log"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"pkg.jsn.cam/rowstats/pkg/progress"
)

// Result is the final aggregate of a run.
type Result struct {
	Stats   PartialMap
	RunID   string
	Lines   int64 // lines read, malformed ones included
	Parsed  int64
	Skipped int64
	Chunks  int
	Elapsed time.Duration
}

// Run aggregates the file named by cfg.InputPath.
//
// Chunks are read in file order and aggregated on a pool of cfg.Workers
// goroutines. The calling goroutine is the only one that touches the global
// aggregate: it merges chunk results as they arrive, in whatever order the
// workers finish. Any open or read failure aborts the run and no Result is
// returned.
func Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	start := time.Now()
	runID := uuid.New().String()
	logf := func(tag, format string, args ...any) {
		if !cfg.Quiet {
			log.Printf("[%s:%s] "+format, append([]any{tag, runID}, args...)...)
		}
	}

	tracker, err := newTracker(ctx, cfg, logf)
	if err != nil {
		return nil, err
	}

	d, err := startDispatcher(ctx, cfg.Workers, Aggregate)
	if err != nil {
		return nil, err
	}
	logf("POOL", "Started %d workers (chunk size %s lines)",
		d.Workers(), humanize.Comma(int64(cfg.ChunkSize)))

	g, gctx := errgroup.WithContext(ctx)
	chunks := make(chan Chunk)

	g.Go(func() error {
		return ChunkFile(gctx, cfg.InputPath, cfg.ChunkSize, chunks)
	})
	g.Go(func() error {
		for c := range chunks {
			d.Submit(c)
		}
		return d.Close()
	})

	res := &Result{Stats: make(PartialMap), RunID: runID}
	collect(gctx, d.Results(), res, func(cr ChunkResult) {
		if cfg.SinglePass {
			tracker.Advance(cr.Bytes)
		} else {
			tracker.Advance(1)
		}
	})

	if err := g.Wait(); err != nil {
		tracker.Abort()
		return nil, err
	}
	tracker.Finish()

	res.Lines = res.Parsed + res.Skipped
	res.Elapsed = time.Since(start)
	logf("REDUCER", "Merged %d of %d aggregated chunks: %s keys, %s parsed, %s skipped in %v",
		res.Chunks, d.Processed(), humanize.Comma(int64(len(res.Stats))),
		humanize.Comma(res.Parsed), humanize.Comma(res.Skipped), res.Elapsed)

	return res, nil
}

// collect merges every chunk result into res and calls advance after each
// merge. Once ctx is done the remaining results are drained and dropped, so a
// failed run stops touching the aggregate and the display right away.
func collect(ctx context.Context, results iter.Seq[ChunkResult], res *Result, advance func(ChunkResult)) {
	for cr := range results {
		if ctx.Err() != nil {
			continue
		}

		res.Stats.Merge(cr.Stats)
		res.Parsed += cr.Parsed
		res.Skipped += cr.Skipped
		res.Chunks++
		advance(cr)
	}
}

// newTracker sizes the progress tracker. By default it counts lines up front
// so progress is exact chunk accounting; in single-pass mode it uses the file
// size and counts bytes instead.
func newTracker(ctx context.Context, cfg Config, logf func(tag, format string, args ...any)) (*progress.Tracker, error) {
	if cfg.SinglePass {
		info, err := os.Stat(cfg.InputPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrOpenInput, err)
		}
		logf("SOURCE", "Single pass over %s (%s)", cfg.InputPath, humanize.Bytes(uint64(info.Size())))
		return progress.NewTracker(info.Size(), cfg.Progress), nil
	}

	lines, err := CountLines(ctx, cfg.InputPath)
	if err != nil {
		return nil, err
	}
	total := ChunkCount(lines, cfg.ChunkSize)
	logf("SOURCE", "Counted %s lines in %s, %s chunks",
		humanize.Comma(lines), cfg.InputPath, humanize.Comma(total))

	return progress.NewTracker(total, cfg.Progress), nil
}
