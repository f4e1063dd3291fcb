package sweep

import (
	"fmt"
	"sort"

	"github.com/viant/sweeper/model/trial"
)

var (
	// SmallDatasets fit a single host at native size.
	SmallDatasets = []string{"facebook", "arxiv", "p2pgnutella", "amazonsample", "twittersample1", "twittersample2"}
	// LargeDatasets are swept with replication factors 0 and 2 only.
	LargeDatasets = []string{"amazon", "twitter"}
)

var presets = map[string]func() *Definition{
	"facebook": func() *Definition {
		return &Definition{
			Name:       "facebook",
			Datasets:   []string{"facebook"},
			Algorithms: trial.Algorithms(),
			Servers:    []int{128},
			Replicas:   []int{2},
			Nodes:      []int{256, 512, 1024, 2048},
			Order:      []string{AxisNodes},
		}
	},
	"small": func() *Definition {
		return &Definition{
			Name:       "small",
			Datasets:   append([]string(nil), SmallDatasets...),
			Algorithms: trial.Algorithms(),
			Servers:    []int{128},
			Replicas:   []int{0, 2, 3},
		}
	},
	"large": func() *Definition {
		return &Definition{
			Name:       "large",
			Datasets:   append([]string(nil), LargeDatasets...),
			Algorithms: trial.Algorithms(),
			Servers:    []int{128},
			Replicas:   []int{0, 2},
		}
	},
}

// Preset returns a fresh copy of a built-in sweep.
func Preset(name string) (*Definition, error) {
	newDefinition, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return newDefinition(), nil
}

// Presets lists built-in sweep names.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
