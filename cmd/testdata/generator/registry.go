package generator

import (
	"fmt"
	"sort"
)

// Options parameterize the generators built by Get.
type Options struct {
	KeyCount      int
	MalformedRate float64
}

// Registry maps generator names to generator factory functions
var Registry = map[string]func(Options) Generator{
	"metrics": func(o Options) Generator { return &MetricsGenerator{KeyCount: o.KeyCount} },
	"noisy": func(o Options) Generator {
		return &NoisyGenerator{KeyCount: o.KeyCount, MalformedRate: o.MalformedRate}
	},
}

// Get returns a generator by name
func Get(name string, opts Options) (Generator, error) {
	factory, exists := Registry[name]
	if !exists {
		return nil, fmt.Errorf("unknown generator: %s", name)
	}
	return factory(opts), nil
}

// List returns all available generator names, sorted
func List() []string {
	names := make([]string, 0, len(Registry))
	for name := range Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
