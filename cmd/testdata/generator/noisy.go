package generator

import (
	"io"
	"math/rand/v2"
)

// NoisyGenerator mixes malformed lines into metric data: blank lines, lines
// without a colon and lines whose value is not a number.
type NoisyGenerator struct {
	rand    *rand.Rand
	metrics MetricsGenerator

	KeyCount int
	// MalformedRate is the fraction of lines, in [0, 1], that are malformed
	MalformedRate float64
}

var malformedLines = []string{
	"\n",
	"   \n",
	"temperature 42.0\n",
	"humidity:not-a-number\n",
	"pressure:\n",
	"cpu_usage:12..5\n",
}

func (g *NoisyGenerator) Init(r *rand.Rand) {
	g.rand = r
	g.metrics = MetricsGenerator{KeyCount: g.KeyCount}
	g.metrics.Init(r)
}

func (g *NoisyGenerator) WriteLine(w io.Writer) error {
	if g.rand.Float64() < g.MalformedRate {
		_, err := io.WriteString(w, malformedLines[g.rand.IntN(len(malformedLines))])
		return err
	}
	return g.metrics.WriteLine(w)
}

func (g *NoisyGenerator) Description() string {
	return "Metric data with malformed lines mixed in"
}

func (g *NoisyGenerator) DefaultCount() int64 {
	return 1e6
}
