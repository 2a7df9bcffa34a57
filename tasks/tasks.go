// Package tasks reads text-classification corpora into labeled examples.
// Each Processor knows one dataset's directory name, file layout, column
// mapping and label set.
package tasks

import (
	"sort"
	"strings"
)

// Example is a single labeled input. TextB is empty for single-sentence
// tasks.
type Example struct {
	Guid  string
	TextA string
	TextB string
	Label string
}

// LabelSet is the ordered label vocabulary of a task; a label's position is
// its integer id.
type LabelSet []string

// Index returns the id of label, or false if the label is not in the set.
func (labels LabelSet) Index(label string) (int, bool) {
	for idx, candidate := range labels {
		if candidate == label {
			return idx, true
		}
	}
	return 0, false
}

// Processor is implemented once per dataset.
type Processor interface {
	// DataDir is the corpus directory name under the data root.
	DataDir() string
	Labels() LabelSet
	TrainExamples(dataDir string) ([]Example, error)
	DevExamples(dataDir string) ([]Example, error)
	TestExamples(dataDir string) ([]Example, error)
}

type Constructor func() Processor

// Registry maps case-insensitive task names to Processor constructors.
type Registry struct {
	constructors map[string]Constructor
}

func NewRegistry() *Registry {
	return &Registry{constructors: make(map[string]Constructor)}
}

// DefaultRegistry returns a Registry holding every built-in task.
func DefaultRegistry() *Registry {
	registry := NewRegistry()
	registry.Register("COLA", func() Processor { return ColaProcessor{} })
	registry.Register("MNLI", func() Processor { return MnliProcessor{} })
	registry.Register("MRPC", func() Processor { return MrpcProcessor{} })
	registry.Register("XNLI", func() Processor {
		return XnliProcessor{Language: "zh"}
	})
	registry.Register("SST", func() Processor { return SstProcessor{} })
	return registry
}

// Register adds or replaces the constructor for a task name.
func (registry *Registry) Register(name string, constructor Constructor) {
	registry.constructors[strings.ToUpper(name)] = constructor
}

func (registry *Registry) New(name string) (Processor, error) {
	constructor, ok := registry.constructors[strings.ToUpper(name)]
	if !ok {
		return nil, &UnknownTaskError{Task: name, Known: registry.Names()}
	}
	return constructor(), nil
}

// Names lists the registered task names in sorted order.
func (registry *Registry) Names() []string {
	names := make([]string, 0, len(registry.constructors))
	for name := range registry.constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
