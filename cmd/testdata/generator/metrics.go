package generator

import (
	"io"
	"math/rand/v2"
	"strconv"
)

// MetricsGenerator generates well-formed key:value lines
type MetricsGenerator struct {
	rand     *rand.Rand
	keys     []string
	KeyCount int
}

var metricKeys = []string{
	"temperature",
	"humidity",
	"pressure",
	"cpu_usage",
	"memory_usage",
	"disk_io",
	"network_latency",
	"response_time",
	"error_rate",
	"request_count",
}

// Keys returns the key names the generator draws from after Init.
func (g *MetricsGenerator) Keys() []string {
	return g.keys
}

func (g *MetricsGenerator) Init(r *rand.Rand) {
	g.rand = r
	g.keys = metricKeyNames(g.KeyCount)
}

func (g *MetricsGenerator) WriteLine(w io.Writer) error {
	key := g.keys[g.rand.IntN(len(g.keys))]
	// Values between -50 and 150 with 2 decimal places
	value := g.rand.Float64()*200 - 50
	_, err := io.WriteString(w, key+":"+strconv.FormatFloat(value, 'f', 2, 64)+"\n")
	return err
}

func (g *MetricsGenerator) Description() string {
	return "Metric data: key:value"
}

func (g *MetricsGenerator) DefaultCount() int64 {
	return 1e6
}

// metricKeyNames returns n distinct keys, reusing the well known metric names
// first and numbering the rest.
func metricKeyNames(n int) []string {
	if n <= 0 {
		n = len(metricKeys)
	}
	names := make([]string, n)
	for i := range names {
		if i < len(metricKeys) {
			names[i] = metricKeys[i]
		} else {
			names[i] = "metric_" + strconv.Itoa(i)
		}
	}
	return names
}
