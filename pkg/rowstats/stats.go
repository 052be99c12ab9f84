package rowstats

// KeyStats holds the running statistics for one key.
//
// Mean is kept as a running mean rather than a sum so intermediate values
// stay within the magnitude of the observations.
type KeyStats struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Mean  float64 `json:"mean"`
	Count int64   `json:"count"`
}

// NewKeyStats returns the statistics of a single observation.
func NewKeyStats(v float64) KeyStats {
	return KeyStats{Min: v, Max: v, Mean: v, Count: 1}
}

// Observe folds one more value into s.
func (s KeyStats) Observe(v float64) KeyStats {
	n := float64(s.Count)
	s.Mean = (s.Mean*n + v) / (n + 1)
	s.Count++
	s.Min = min(s.Min, v)
	s.Max = max(s.Max, v)
	return s
}

// Merge combines two disjoint sets of observations. It is commutative, and
// associative up to floating point rounding of the weighted mean.
func (s KeyStats) Merge(o KeyStats) KeyStats {
	total := s.Count + o.Count
	return KeyStats{
		Min:   min(s.Min, o.Min),
		Max:   max(s.Max, o.Max),
		Mean:  (s.Mean*float64(s.Count) + o.Mean*float64(o.Count)) / float64(total),
		Count: total,
	}
}

// PartialMap maps a key to its statistics, for either one chunk or a whole run.
type PartialMap map[string]KeyStats

// Observe records v for key. Keys are only inserted on their first valid
// observation, so every stored entry has Count >= 1.
func (m PartialMap) Observe(key string, v float64) {
	if s, ok := m[key]; ok {
		m[key] = s.Observe(v)
		return
	}
	m[key] = NewKeyStats(v)
}

// Merge folds src into m. src is not modified and must not be shared with
// another writer while Merge runs.
func (m PartialMap) Merge(src PartialMap) {
	for key, s := range src {
		if cur, ok := m[key]; ok {
			m[key] = cur.Merge(s)
		} else {
			m[key] = s
		}
	}
}

// Merge returns a new map holding the combination of a and b.
func Merge(a, b PartialMap) PartialMap {
	out := make(PartialMap, max(len(a), len(b)))
	out.Merge(a)
	out.Merge(b)
	return out
}
