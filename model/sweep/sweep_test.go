package sweep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/sweeper/model/trial"
)

func TestDefinition_Expand(t *testing.T) {
	def := &Definition{
		Name:       "facebook-mini",
		Datasets:   []string{"facebook"},
		Algorithms: []trial.Algorithm{trial.AlgorithmRandom, trial.AlgorithmSpar},
		Servers:    []int{128},
		Replicas:   []int{2},
		Nodes:      []int{256, 512},
	}
	specs, err := def.Expand()
	require.NoError(t, err)

	var names []string
	for _, spec := range specs {
		names = append(names, spec.Name())
	}
	assert.Equal(t, []string{
		"facebook-random-128-2-256",
		"facebook-random-128-2-512",
		"facebook-spar-128-2-256",
		"facebook-spar-128-2-512",
	}, names)
	assert.Equal(t, 4, def.Size())
}

func TestDefinition_ExpandOrder(t *testing.T) {
	def := &Definition{
		Name:       "facebook-mini",
		Datasets:   []string{"facebook"},
		Algorithms: []trial.Algorithm{trial.AlgorithmRandom, trial.AlgorithmSpar},
		Servers:    []int{128},
		Replicas:   []int{2},
		Nodes:      []int{256, 512},
		Order:      []string{AxisNodes},
	}
	specs, err := def.Expand()
	require.NoError(t, err)

	var names []string
	for _, spec := range specs {
		names = append(names, spec.Name())
	}
	assert.Equal(t, []string{
		"facebook-random-128-2-256",
		"facebook-spar-128-2-256",
		"facebook-random-128-2-512",
		"facebook-spar-128-2-512",
	}, names)
}

func TestPreset_FacebookNodesOutermost(t *testing.T) {
	def, err := Preset("facebook")
	require.NoError(t, err)
	specs, err := def.Expand()
	require.NoError(t, err)
	require.Len(t, specs, 20)
	for i, spec := range specs {
		assert.Equal(t, def.Nodes[i/len(def.Algorithms)], spec.Nodes)
		assert.Equal(t, def.Algorithms[i%len(def.Algorithms)], spec.Algorithm)
	}
}

func TestDefinition_ExpandDefaultsOptionalAxes(t *testing.T) {
	def := &Definition{
		Name:       "native",
		Datasets:   []string{"arxiv"},
		Algorithms: []trial.Algorithm{"METIS"},
		Servers:    []int{16},
	}
	specs, err := def.Expand()
	require.NoError(t, err)
	require.Len(t, specs, 1)
	assert.Equal(t, trial.Spec{Dataset: "arxiv", Algorithm: trial.AlgorithmMetis, Servers: 16}, specs[0])
}

func TestDefinition_Validate(t *testing.T) {
	valid := func() *Definition {
		return &Definition{
			Name:       "x",
			Datasets:   []string{"facebook"},
			Algorithms: []trial.Algorithm{trial.AlgorithmRandom},
			Servers:    []int{128},
		}
	}
	testCases := []struct {
		name     string
		mutate   func(d *Definition)
		expected error
	}{
		{name: "missing name", mutate: func(d *Definition) { d.Name = "" }, expected: ErrMissingName},
		{name: "no datasets", mutate: func(d *Definition) { d.Datasets = nil }, expected: ErrEmptyAxis},
		{name: "no algorithms", mutate: func(d *Definition) { d.Algorithms = nil }, expected: ErrEmptyAxis},
		{name: "no servers", mutate: func(d *Definition) { d.Servers = nil }, expected: ErrEmptyAxis},
		{name: "zero servers", mutate: func(d *Definition) { d.Servers = []int{0} }, expected: ErrOutOfRange},
		{name: "negative replicas", mutate: func(d *Definition) { d.Replicas = []int{-1} }, expected: ErrOutOfRange},
		{name: "duplicate nodes", mutate: func(d *Definition) { d.Nodes = []int{256, 256} }, expected: ErrDuplicateValue},
		{name: "duplicate algorithm", mutate: func(d *Definition) { d.Algorithms = append(d.Algorithms, trial.AlgorithmRandom) }, expected: ErrDuplicateValue},
		{name: "dataset with separator", mutate: func(d *Definition) { d.Datasets = []string{"twitter-1"} }, expected: trial.ErrInvalidSpec},
		{name: "unknown order axis", mutate: func(d *Definition) { d.Order = []string{"size"} }, expected: ErrUnknownAxis},
		{name: "duplicate order axis", mutate: func(d *Definition) { d.Order = []string{AxisNodes, AxisNodes} }, expected: ErrDuplicateValue},
		{name: "unknown algorithm", mutate: func(d *Definition) { d.Algorithms = []trial.Algorithm{"greedy"} }, expected: trial.ErrUnknownAlgorithm},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			def := valid()
			tc.mutate(def)
			err := def.Validate()
			assert.ErrorIs(t, err, tc.expected)
			_, err = def.Expand()
			assert.ErrorIs(t, err, tc.expected)
		})
	}
	assert.NoError(t, valid().Validate())
}

func TestPreset(t *testing.T) {
	testCases := []struct {
		name     string
		expected int
	}{
		{name: "facebook", expected: 4 * 5},
		{name: "small", expected: 6 * 5 * 3},
		{name: "large", expected: 2 * 5 * 2},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			def, err := Preset(tc.name)
			require.NoError(t, err)
			specs, err := def.Expand()
			require.NoError(t, err)
			assert.Len(t, specs, tc.expected)

			unique := map[string]bool{}
			for _, spec := range specs {
				unique[spec.Name()] = true
			}
			assert.Len(t, unique, tc.expected)
		})
	}
	_, err := Preset("huge")
	assert.ErrorIs(t, err, ErrUnknownPreset)
	assert.Equal(t, []string{"facebook", "large", "small"}, Presets())
}
