package filter

import (
	"fmt"
	"sort"
	"sync"

	"github.com/kbukum/pktchain/errors"
)

// Factory constructs a filter from its string options.
type Factory func(opts map[string]string) (Filter, error)

// OptionDoc documents one option of a filter kind.
type OptionDoc struct {
	Name    string `json:"name" yaml:"name"`
	Type    string `json:"type" yaml:"type"`
	Default string `json:"default" yaml:"default"`
	Range   string `json:"range,omitempty" yaml:"range,omitempty"`
	Help    string `json:"help,omitempty" yaml:"help,omitempty"`
}

// Kind is a registered filter type.
type Kind struct {
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description" yaml:"description"`
	Options     []OptionDoc `json:"options,omitempty" yaml:"options,omitempty"`
	New         Factory     `json:"-" yaml:"-"`
}

// Registry maps filter names to kinds. It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	kinds map[string]Kind
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{kinds: make(map[string]Kind)}
}

// DefaultRegistry creates a Registry holding null, tok and concat.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, k := range []Kind{NullKind(), TokenizerKind(), ConcatKind()} {
		if err := r.Register(k); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds a kind. Names must be unique and non-empty.
func (r *Registry) Register(k Kind) error {
	if k.Name == "" {
		return errors.InvalidConfig("filter kind name is empty")
	}
	if k.New == nil {
		return errors.InvalidConfig(fmt.Sprintf("filter kind %q has no factory", k.Name))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.kinds[k.Name]; ok {
		return errors.InvalidConfig(fmt.Sprintf("filter kind %q is already registered", k.Name))
	}
	r.kinds[k.Name] = k
	return nil
}

// Lookup returns the kind registered under name.
func (r *Registry) Lookup(name string) (Kind, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	k, ok := r.kinds[name]
	return k, ok
}

// Construct builds a new filter of kind name with opts applied over the
// kind's defaults.
func (r *Registry) Construct(name string, opts map[string]string) (Filter, error) {
	k, ok := r.Lookup(name)
	if !ok {
		return nil, errors.FilterNotFound(name)
	}
	return k.New(opts)
}

// List returns sorted names of all registered kinds.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.kinds))
	for name := range r.kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Kinds returns all registered kinds sorted by name.
func (r *Registry) Kinds() []Kind {
	names := r.List()
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Kind, 0, len(names))
	for _, name := range names {
		if k, ok := r.kinds[name]; ok {
			out = append(out, k)
		}
	}
	return out
}
