package eval

import (
	"cmp"
	"context"
	"slices"
	"strconv"
	"sync"

	apperrors "github.com/kbukum/infiniter/errors"
	"github.com/kbukum/infiniter/observability"
	"github.com/kbukum/infiniter/seq"
)

// Builder constructs a fresh sequence from query arguments.
type Builder func(Args) (*seq.Sequence[float64], error)

// Generator is a named sequence source.
type Generator struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Finiteness  seq.Finiteness `json:"finiteness"`
	Build       Builder        `json:"-"`
}

// Registry holds generators by name. It is safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	generators map[string]Generator
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{generators: make(map[string]Generator)}
}

// Register adds g. Names must be unique and builders non-nil.
func (r *Registry) Register(g Generator) error {
	if g.Name == "" {
		return apperrors.InvalidArgument("name", "must not be empty")
	}
	if g.Build == nil {
		return apperrors.InvalidArgument("build", "generator "+strconv.Quote(g.Name)+" has no builder")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.generators[g.Name]; exists {
		return apperrors.InvalidArgument("name", "generator "+strconv.Quote(g.Name)+" is already registered")
	}
	r.generators[g.Name] = g
	return nil
}

// Get returns the generator registered under name.
func (r *Registry) Get(name string) (Generator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.generators[name]
	if !ok {
		return Generator{}, apperrors.NotFound("generator", name)
	}
	return g, nil
}

// List returns all generators ordered by name.
func (r *Registry) List() []Generator {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Generator, 0, len(r.generators))
	for _, g := range r.generators {
		out = append(out, g)
	}
	slices.SortFunc(out, func(a, b Generator) int { return cmp.Compare(a.Name, b.Name) })
	return out
}

// Len returns the number of registered generators.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.generators)
}

// CheckHealth reports the registry down when no generator is registered.
func (r *Registry) CheckHealth(_ context.Context) observability.Health {
	n := r.Len()
	h := observability.Health{
		Name:    "registry",
		Status:  observability.HealthStatusUp,
		Details: map[string]string{"generators": strconv.Itoa(n)},
	}
	if n == 0 {
		h.Status = observability.HealthStatusDown
		h.Message = "no generators registered"
	}
	return h
}
