package progress

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// ErrUnknownMode is returned by New for an unrecognized display mode.
var ErrUnknownMode = errors.New("unknown progress mode")

// Display modes accepted by New.
const (
	ModeAuto = "auto"
	ModeBar  = "bar"
	ModeLine = "line"
	ModeNone = "none"
)

// New returns the sink for mode writing to f. ModeAuto picks a bar when f is
// a terminal and a plain line otherwise.
func New(mode string, f *os.File) (Sink, error) {
	switch mode {
	case ModeAuto, "":
		return ForFile(f), nil
	case ModeBar:
		return NewBarSink(f, "Progress"), nil
	case ModeLine:
		return NewLineSink(f), nil
	case ModeNone:
		return Nop{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}

// ForFile picks a display for f based on whether it is a terminal.
func ForFile(f *os.File) Sink {
	if term.IsTerminal(int(f.Fd())) {
		return NewBarSink(f, "Progress")
	}
	return NewLineSink(f)
}

// LineSink rewrites a single "Progress: 12.34%" line in place.
type LineSink struct {
	w io.Writer
}

func NewLineSink(w io.Writer) *LineSink {
	return &LineSink{w: w}
}

func (s *LineSink) Update(percent float64) {
	fmt.Fprintf(s.w, "\rProgress: %.2f%%", percent)
}

func (s *LineSink) Done() {
	fmt.Fprintln(s.w)
}

func (s *LineSink) Abort() {
	fmt.Fprintln(s.w)
}

// barScale is the bar's maximum; one step is a hundredth of a percent.
const barScale = 100 * 100

// BarSink renders progress as a terminal progress bar.
type BarSink struct {
	bar *progressbar.ProgressBar
}

func NewBarSink(w io.Writer, description string) *BarSink {
	bar := progressbar.NewOptions64(barScale,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(w)
		}),
	)
	return &BarSink{bar: bar}
}

func (s *BarSink) Update(percent float64) {
	_ = s.bar.Set64(int64(math.Round(percent * 100)))
}

// Done fills the bar.
func (s *BarSink) Done() {
	_ = s.bar.Finish()
}

// Abort stops the bar where it is.
func (s *BarSink) Abort() {
	_ = s.bar.Exit()
}

// Recorder keeps every update it receives.
type Recorder struct {
	updates []float64
	done    int
	aborted int
	mu      sync.Mutex
}

func (r *Recorder) Update(percent float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, percent)
}

func (r *Recorder) Done() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.done++
}

func (r *Recorder) Abort() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aborted++
}

// Updates returns a copy of the recorded percentages in emission order.
func (r *Recorder) Updates() []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]float64(nil), r.updates...)
}

// DoneCalls reports how many times Done was called.
func (r *Recorder) DoneCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.done
}

// AbortCalls reports how many times Abort was called.
func (r *Recorder) AbortCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.aborted
}
