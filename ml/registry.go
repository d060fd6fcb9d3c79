package ml

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"
)

// ModelSpec names one model file the registry must load.
type ModelSpec struct {
	Name string
	Kind Kind
	File string
}

// DefaultModelSpecs lists the four models in sidebar order.
func DefaultModelSpecs() []ModelSpec {
	return []ModelSpec{
		{Name: "svm_model", Kind: KindSVM, File: "svm_model.json"},
		{Name: "RF_model", Kind: KindRandomForest, File: "rf_model.json"},
		{Name: "ANN_model", Kind: KindMLP, File: "ann_model.json"},
		{Name: "LINEAR_model", Kind: KindLinear, File: "linear_model.json"},
	}
}

// Entry is a loaded model. Entries are never mutated after load.
type Entry struct {
	Name       string
	Kind       Kind
	Path       string
	Classifier Classifier
}

// Registry is the immutable set of models available for selection.
type Registry struct {
	names   []string
	entries map[string]Entry
}

// LoadRegistry loads every spec from dir. Any failure aborts the whole load;
// a partial registry is never returned.
func LoadRegistry(dir string, specs []ModelSpec, logger *zap.Logger) (*Registry, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("no models configured")
	}
	entries := make([]Entry, 0, len(specs))
	for _, spec := range specs {
		path := filepath.Join(dir, spec.File)
		kind, model, err := LoadModel(path)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", spec.Name, err)
		}
		if spec.Kind != "" && kind != spec.Kind {
			return nil, fmt.Errorf("load %s: file %s holds a %s model, want %s", spec.Name, path, kind, spec.Kind)
		}
		logger.Info("model loaded",
			zap.String("model", spec.Name),
			zap.String("kind", string(kind)),
			zap.String("path", path))
		entries = append(entries, Entry{Name: spec.Name, Kind: kind, Path: path, Classifier: model})
	}
	return NewRegistry(entries...)
}

// NewRegistry builds a registry from already constructed entries.
func NewRegistry(entries ...Entry) (*Registry, error) {
	r := &Registry{
		names:   make([]string, 0, len(entries)),
		entries: make(map[string]Entry, len(entries)),
	}
	for _, e := range entries {
		if e.Name == "" {
			return nil, fmt.Errorf("registry entry without a name")
		}
		if _, dup := r.entries[e.Name]; dup {
			return nil, fmt.Errorf("duplicate model name %q", e.Name)
		}
		r.names = append(r.names, e.Name)
		r.entries[e.Name] = e
	}
	return r, nil
}

func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

func (r *Registry) Lookup(name string) (Entry, bool) {
	e, ok := r.entries[name]
	return e, ok
}

func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, r.entries[name])
	}
	return out
}

func (r *Registry) Len() int {
	return len(r.names)
}
