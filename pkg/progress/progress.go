// Package progress tracks completion of a run and renders it as a
// percentage that only ever moves forward.
package progress

// Sink displays progress percentages.
type Sink interface {
	// Update shows percent, a value in [0, 100].
	Update(percent float64)
	// Done ends the display of a completed run. No Update follows it.
	Done()
	// Abort ends the display of a failed run, leaving the last update in
	// place. No Update follows it.
	Abort()
}

// Nop discards all progress.
type Nop struct{}

func (Nop) Update(float64) {}
func (Nop) Done()          {}
func (Nop) Abort()         {}

// Tracker converts completed units into percentages for a Sink. Units are
// whatever the caller counts: chunks merged, bytes consumed.
//
// A Tracker is owned by a single goroutine and does no locking.
type Tracker struct {
	sink     Sink
	total    int64
	done     int64
	last     float64
	finished bool
}

// NewTracker returns a tracker expecting total units of work.
func NewTracker(total int64, sink Sink) *Tracker {
	if sink == nil {
		sink = Nop{}
	}
	return &Tracker{sink: sink, total: total}
}

// Advance records n more completed units and emits the new percentage.
func (t *Tracker) Advance(n int64) float64 {
	if t.finished {
		return t.last
	}

	t.done += n
	pct := 100.0
	if t.total > 0 && t.done < t.total {
		pct = 100 * float64(t.done) / float64(t.total)
	}
	if pct < t.last {
		pct = t.last
	}

	t.last = pct
	t.sink.Update(pct)
	return pct
}

// Finish emits a final 100% and closes the display. Further calls are no-ops.
func (t *Tracker) Finish() {
	if t.finished {
		return
	}
	t.finished = true
	t.last = 100
	t.sink.Update(100)
	t.sink.Done()
}

// Abort closes the display without claiming completion.
func (t *Tracker) Abort() {
	if t.finished {
		return
	}
	t.finished = true
	t.sink.Abort()
}

// Percent returns the last emitted percentage.
func (t *Tracker) Percent() float64 {
	return t.last
}

// Total returns the expected number of units.
func (t *Tracker) Total() int64 {
	return t.total
}
