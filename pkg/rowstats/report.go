package rowstats

import (
	"fmt"
	"io"
	"sort"

	"github.com/dustin/go-humanize"
)

// Keys returns the keys of m in lexicographic order.
func (m PartialMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// WriteReport renders res as one line per key, in key order, followed by a
// row summary and the elapsed time.
func WriteReport(w io.Writer, res *Result) error {
	if _, err := fmt.Fprintln(w, "Final aggregated data:"); err != nil {
		return err
	}

	for _, key := range res.Stats.Keys() {
		s := res.Stats[key]
		if _, err := fmt.Fprintf(w, "%s: min: %.2f, max: %.2f, avg: %.2f\n", key, s.Min, s.Max, s.Mean); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "Rows: %s parsed, %s skipped in %s chunks\nProcessed in: %.2f seconds\n",
		humanize.Comma(res.Parsed), humanize.Comma(res.Skipped),
		humanize.Comma(int64(res.Chunks)), res.Elapsed.Seconds())
	return err
}
