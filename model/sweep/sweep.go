package sweep

import (
	"fmt"
	"strconv"

	"github.com/viant/sweeper/model/trial"
)

// Axis names usable in Definition.Order.
const (
	AxisDataset   = "dataset"
	AxisAlgorithm = "algorithm"
	AxisServers   = "servers"
	AxisReplicas  = "replicas"
	AxisNodes     = "nodes"
)

// DefaultOrder is the generation order, outermost axis first.
var DefaultOrder = []string{AxisDataset, AxisAlgorithm, AxisServers, AxisReplicas, AxisNodes}

// Definition describes a sweep as the cartesian product of its axes.
// Empty Replicas or Nodes axes default to a single 0 value.
type Definition struct {
	Name       string            `json:"name" yaml:"name"`
	Datasets   []string          `json:"datasets" yaml:"datasets"`
	Algorithms []trial.Algorithm `json:"algorithms" yaml:"algorithms"`
	Servers    []int             `json:"servers" yaml:"servers"`
	Replicas   []int             `json:"replicas,omitempty" yaml:"replicas,omitempty"`
	Nodes      []int             `json:"nodes,omitempty" yaml:"nodes,omitempty"`
	// Order lists axes outermost first; axes it omits follow in DefaultOrder.
	Order []string `json:"order,omitempty" yaml:"order,omitempty"`
}

// Size returns the number of specs Expand would produce.
func (d *Definition) Size() int {
	return len(d.Datasets) * len(d.Algorithms) * len(d.Servers) * len(orZero(d.Replicas)) * len(orZero(d.Nodes))
}

// Validate reports configuration errors. A sweep that validates expands into
// specs with pairwise distinct names.
func (d *Definition) Validate() error {
	if d == nil {
		return fmt.Errorf("sweep definition was nil")
	}
	if d.Name == "" {
		return ErrMissingName
	}
	if len(d.Datasets) == 0 {
		return fmt.Errorf("%w: sweep %q: datasets", ErrEmptyAxis, d.Name)
	}
	if len(d.Algorithms) == 0 {
		return fmt.Errorf("%w: sweep %q: algorithms", ErrEmptyAxis, d.Name)
	}
	if len(d.Servers) == 0 {
		return fmt.Errorf("%w: sweep %q: servers", ErrEmptyAxis, d.Name)
	}
	seen := map[string]bool{}
	for _, axis := range d.Order {
		if !isAxis(axis) {
			return fmt.Errorf("%w: sweep %q: %q", ErrUnknownAxis, d.Name, axis)
		}
		if err := unique(seen, "order", axis); err != nil {
			return fmt.Errorf("sweep %q: %w", d.Name, err)
		}
	}
	for _, dataset := range d.Datasets {
		if err := trial.ValidateDataset(dataset); err != nil {
			return fmt.Errorf("sweep %q: %w", d.Name, err)
		}
		if err := unique(seen, "dataset", dataset); err != nil {
			return fmt.Errorf("sweep %q: %w", d.Name, err)
		}
	}
	for _, algorithm := range d.Algorithms {
		parsed, err := trial.ParseAlgorithm(string(algorithm))
		if err != nil {
			return fmt.Errorf("sweep %q: %w", d.Name, err)
		}
		if err := unique(seen, "algorithm", string(parsed)); err != nil {
			return fmt.Errorf("sweep %q: %w", d.Name, err)
		}
	}
	axes := []struct {
		name string
		min  int
		vals []int
	}{
		{"servers", 1, d.Servers},
		{"replicas", 0, d.Replicas},
		{"nodes", 0, d.Nodes},
	}
	for _, axis := range axes {
		for _, v := range axis.vals {
			if v < axis.min {
				return fmt.Errorf("%w: sweep %q: %s value %d is below %d", ErrOutOfRange, d.Name, axis.name, v, axis.min)
			}
			if err := unique(seen, axis.name, strconv.Itoa(v)); err != nil {
				return fmt.Errorf("sweep %q: %w", d.Name, err)
			}
		}
	}
	return nil
}

// Expand validates the definition and returns its specs in generation order,
// the last axis of Order varying fastest.
func (d *Definition) Expand() ([]trial.Spec, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	axes := d.order()
	sizes := make([]int, len(axes))
	for i, axis := range axes {
		sizes[i] = d.axisLen(axis)
	}
	total := d.Size()
	specs := make([]trial.Spec, 0, total)
	for n := 0; n < total; n++ {
		spec := trial.Spec{}
		rest := n
		for i := len(axes) - 1; i >= 0; i-- {
			d.assign(&spec, axes[i], rest%sizes[i])
			rest /= sizes[i]
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func (d *Definition) order() []string {
	ret := make([]string, 0, len(DefaultOrder))
	listed := map[string]bool{}
	for _, axis := range d.Order {
		ret = append(ret, axis)
		listed[axis] = true
	}
	for _, axis := range DefaultOrder {
		if !listed[axis] {
			ret = append(ret, axis)
		}
	}
	return ret
}

func (d *Definition) axisLen(axis string) int {
	switch axis {
	case AxisDataset:
		return len(d.Datasets)
	case AxisAlgorithm:
		return len(d.Algorithms)
	case AxisServers:
		return len(d.Servers)
	case AxisReplicas:
		return len(orZero(d.Replicas))
	default:
		return len(orZero(d.Nodes))
	}
}

func (d *Definition) assign(spec *trial.Spec, axis string, index int) {
	switch axis {
	case AxisDataset:
		spec.Dataset = d.Datasets[index]
	case AxisAlgorithm:
		spec.Algorithm, _ = trial.ParseAlgorithm(string(d.Algorithms[index]))
	case AxisServers:
		spec.Servers = d.Servers[index]
	case AxisReplicas:
		spec.Replicas = orZero(d.Replicas)[index]
	case AxisNodes:
		spec.Nodes = orZero(d.Nodes)[index]
	}
}

func isAxis(name string) bool {
	for _, axis := range DefaultOrder {
		if axis == name {
			return true
		}
	}
	return false
}

func unique(seen map[string]bool, axis, value string) error {
	key := axis + "/" + value
	if seen[key] {
		return fmt.Errorf("%w: %s %q", ErrDuplicateValue, axis, value)
	}
	seen[key] = true
	return nil
}

func orZero(values []int) []int {
	if len(values) == 0 {
		return []int{0}
	}
	return values
}
