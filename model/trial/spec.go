package trial

import (
	"fmt"
	"strconv"
	"strings"
)

// Separator joins spec fields in a result file name.
const Separator = "-"

// Algorithm identifies the partitioning variant under test.
type Algorithm string

const (
	AlgorithmRandom  Algorithm = "random"
	AlgorithmSpar    Algorithm = "spar"
	AlgorithmMetis   Algorithm = "metis"
	AlgorithmOnline  Algorithm = "online"
	AlgorithmOffline Algorithm = "offline"
)

// Algorithms returns every known variant in canonical order.
func Algorithms() []Algorithm {
	return []Algorithm{AlgorithmRandom, AlgorithmSpar, AlgorithmMetis, AlgorithmOnline, AlgorithmOffline}
}

// ParseAlgorithm returns the algorithm matching name (case-insensitive).
func ParseAlgorithm(name string) (Algorithm, error) {
	candidate := Algorithm(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Algorithms() {
		if candidate == known {
			return known, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// Spec is one parameter combination of a sweep. It is a value type; copies are
// independent and nothing mutates a Spec after expansion.
type Spec struct {
	Dataset   string    `json:"dataset" yaml:"dataset"`
	Algorithm Algorithm `json:"algorithm" yaml:"algorithm"`
	Servers   int       `json:"servers" yaml:"servers"`
	Replicas  int       `json:"replicas" yaml:"replicas"`
	// Nodes caps the number of graph nodes loaded; 0 uses the dataset's native size.
	Nodes int `json:"nodes" yaml:"nodes"`
}

// Name returns the result file name <dataset>-<algorithm>-<servers>-<replicas>-<nodes>.
func (s Spec) Name() string {
	return strings.Join([]string{
		s.Dataset,
		string(s.Algorithm),
		strconv.Itoa(s.Servers),
		strconv.Itoa(s.Replicas),
		strconv.Itoa(s.Nodes),
	}, Separator)
}

func (s Spec) String() string {
	return s.Name()
}

// Validate checks field ranges and that the name mapping stays reversible.
func (s Spec) Validate() error {
	if err := ValidateDataset(s.Dataset); err != nil {
		return err
	}
	if _, err := ParseAlgorithm(string(s.Algorithm)); err != nil {
		return err
	}
	if s.Servers <= 0 {
		return fmt.Errorf("%w: servers must be > 0, got %d", ErrInvalidSpec, s.Servers)
	}
	if s.Replicas < 0 {
		return fmt.Errorf("%w: replicas must be >= 0, got %d", ErrInvalidSpec, s.Replicas)
	}
	if s.Nodes < 0 {
		return fmt.Errorf("%w: nodes must be >= 0, got %d", ErrInvalidSpec, s.Nodes)
	}
	return nil
}

// ValidateDataset rejects identifiers that would break name parsing or escape the data root.
func ValidateDataset(dataset string) error {
	switch {
	case dataset == "":
		return fmt.Errorf("%w: dataset is empty", ErrInvalidSpec)
	case strings.Contains(dataset, Separator):
		return fmt.Errorf("%w: dataset %q contains %q", ErrInvalidSpec, dataset, Separator)
	case strings.ContainsAny(dataset, `/\`) || dataset == "." || dataset == "..":
		return fmt.Errorf("%w: dataset %q is not a plain identifier", ErrInvalidSpec, dataset)
	}
	return nil
}

// Args returns the program arguments for this spec. The order matches the
// invocation contract: -d -a -s -k -n.
func (s Spec) Args(datasetPath string) []string {
	return []string{
		"-d", datasetPath,
		"-a", string(s.Algorithm),
		"-s", strconv.Itoa(s.Servers),
		"-k", strconv.Itoa(s.Replicas),
		"-n", strconv.Itoa(s.Nodes),
	}
}

// ParseName reconstructs a Spec from a result file name.
func ParseName(name string) (Spec, error) {
	parts := strings.Split(name, Separator)
	if len(parts) != 5 {
		return Spec{}, fmt.Errorf("%w: %q has %d fields, expected 5", ErrInvalidName, name, len(parts))
	}
	algorithm, err := ParseAlgorithm(parts[1])
	if err != nil {
		return Spec{}, fmt.Errorf("%w: %q: %v", ErrInvalidName, name, err)
	}
	ints := make([]int, 3)
	for i, raw := range parts[2:] {
		if ints[i], err = strconv.Atoi(raw); err != nil {
			return Spec{}, fmt.Errorf("%w: %q: field %d: %v", ErrInvalidName, name, i+3, err)
		}
	}
	spec := Spec{Dataset: parts[0], Algorithm: algorithm, Servers: ints[0], Replicas: ints[1], Nodes: ints[2]}
	if err = spec.Validate(); err != nil {
		return Spec{}, fmt.Errorf("%w: %q: %v", ErrInvalidName, name, err)
	}
	return spec, nil
}
