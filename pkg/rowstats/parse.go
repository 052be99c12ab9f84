package rowstats

import (
	"math"
	"strconv"
	"strings"
)

// ParseLine parses one "key:value" line. Only the first colon separates key
// from value. ok is false for blank lines, lines without a colon and values
// strconv.ParseFloat rejects.
//
// NaN and infinities ("NaN", "Inf", "inf", "+Infinity" and so on) are valid
// floats to strconv but are skipped here too: one of them would pin a key's
// min or max and turn its mean into NaN or Inf for the rest of the run.
func ParseLine(line string) (key string, value float64, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", 0, false
	}

	k, v, found := strings.Cut(line, ":")
	if !found {
		return "", 0, false
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return "", 0, false
	}

	return strings.TrimSpace(k), value, true
}

// ChunkResult is what a worker hands back for one chunk.
type ChunkResult struct {
	Stats   PartialMap
	Index   int
	Parsed  int64
	Skipped int64
	Bytes   int64
}

// Aggregate builds the statistics of a single chunk. It touches no state
// outside the chunk, so any number of chunks can be aggregated at once.
func Aggregate(chunk Chunk) ChunkResult {
	res := ChunkResult{
		Stats: make(PartialMap),
		Index: chunk.Index,
		Bytes: chunk.Bytes,
	}

	for _, line := range chunk.Lines {
		key, value, ok := ParseLine(line)
		if !ok {
			res.Skipped++
			continue
		}
		res.Stats.Observe(key, value)
		res.Parsed++
	}

	return res
}
