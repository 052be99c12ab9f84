package rowstats

import (
	"context"
	"iter"

	"github.com/go-pkgz/pool"
	"github.com/go-pkgz/pool/metrics"
)

// dispatcher aggregates chunks on a fixed-size worker group and fans the
// results in through a collector read by a single consumer.
//
// Submit blocks once every worker is busy. Results must be drained while
// chunks are submitted, otherwise workers stall on the collector.
type dispatcher struct {
	group   *pool.WorkerGroup[Chunk]
	results *pool.Collector[ChunkResult]
	workers int
}

// startDispatcher starts workers goroutines running fn. ctx only carries
// values: the group and collector are never cancelled, so every submitted
// chunk produces a result and the consumer can always drain the stream.
func startDispatcher(ctx context.Context, workers int, fn func(Chunk) ChunkResult) (*dispatcher, error) {
	if workers < 1 {
		workers = 1
	}
	ctx = context.WithoutCancel(ctx)

	results := pool.NewCollector[ChunkResult](ctx, workers)
	group := pool.New[Chunk](workers, pool.WorkerFunc[Chunk](func(ctx context.Context, c Chunk) error {
		cr := fn(c)
		metrics.Get(ctx).Inc("chunks")
		results.Submit(cr)
		return nil
	}))

	if err := group.Go(ctx); err != nil {
		return nil, err
	}

	return &dispatcher{group: group, results: results, workers: workers}, nil
}

// Submit hands c to the next free worker. It must not be called after Close.
func (d *dispatcher) Submit(c Chunk) {
	d.group.Submit(c)
}

// Close waits for every submitted chunk to be aggregated and then ends the
// result stream.
func (d *dispatcher) Close() error {
	defer d.results.Close()
	return d.group.Close(context.Background())
}

// Results yields chunk results in completion order until Close has run and
// the stream is drained.
func (d *dispatcher) Results() iter.Seq[ChunkResult] {
	return func(yield func(ChunkResult) bool) {
		for cr := range d.results.Iter() {
			if !yield(cr) {
				return
			}
		}
	}
}

// Workers returns the size of the worker group.
func (d *dispatcher) Workers() int {
	return d.workers
}

// Processed returns how many chunks the workers have aggregated.
func (d *dispatcher) Processed() int {
	return d.group.Metrics().Get("chunks")
}
