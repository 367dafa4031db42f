// Package predicate defines the pluggable predicate registry: the mapping
// from predicate name to an Evaluator object that the parser's emitted
// names are validated against, and that the evaluator dispatches through
// (spec.md §3 "Predicate registry", §4.6 "Predicate(k, v): dispatch to
// registry"). Modeled on morfx's internal/registry/registry.go
// RegisterProvider/GetProvider shape: a single RWMutex-guarded map built
// once at startup and shared read-only thereafter.
package predicate

import (
	"fmt"
	"sync"

	"github.com/termfx/rdump/internal/filectx"
	"github.com/termfx/rdump/internal/query"
)

// CostClass tags a predicate's evaluation expense tier, driving the
// evaluator's conjunction reordering (spec.md §4.6).
type CostClass int

const (
	CostMetadata CostClass = iota
	CostContent
	CostSemantic
)

// Evaluator is a named, single-valued boolean test on a file context.
// Missing data (a load error) must be treated as false, never panic.
type Evaluator interface {
	// Name is the predicate's canonical registry key.
	Name() string
	// Cost classifies the predicate for the evaluator's reordering pass.
	Cost() CostClass
	// Eval tests the predicate's value against the given file.
	Eval(fc *filectx.Context, v query.Value) (bool, error)
}

// Registry is a thread-safe name->Evaluator map, built once at startup and
// shared read-only by all evaluator worker tasks.
type Registry struct {
	mu    sync.RWMutex
	evals map[string]Evaluator
}

// NewRegistry creates an empty registry. Predicates must be registered
// explicitly via Register -- there are no built-ins baked into the type
// itself, matching morfx's registry which ships with zero providers until
// something calls RegisterProvider.
func NewRegistry() *Registry {
	return &Registry{evals: make(map[string]Evaluator)}
}

// Register adds a predicate evaluator, or its aliases, under the given
// names. With no names supplied, it is registered under e.Name().
func (r *Registry) Register(e Evaluator, names ...string) error {
	if e == nil {
		return fmt.Errorf("predicate: evaluator cannot be nil")
	}
	if len(names) == 0 {
		names = []string{e.Name()}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, name := range names {
		if name == "" {
			return fmt.Errorf("predicate: name cannot be empty")
		}
		if _, exists := r.evals[name]; exists {
			return fmt.Errorf("predicate: %q already registered", name)
		}
		r.evals[name] = e
	}
	return nil
}

// Get looks up a predicate evaluator by name.
func (r *Registry) Get(name string) (Evaluator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.evals[name]
	return e, ok
}

// Validate checks that every name in names resolves in the registry,
// returning the first unknown name found. Used by the orchestrator to fail
// fast before walking (spec.md §4.1, §4.8).
func (r *Registry) Validate(names []string) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, n := range names {
		if _, ok := r.evals[n]; !ok {
			return fmt.Errorf("unknown predicate %q", n)
		}
	}
	return nil
}
