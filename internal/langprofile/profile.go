// Package langprofile holds the language profiles that make rdump's
// semantic engine extensible by data rather than code (spec.md §4.5,
// §9 "Per-language data-driven extension"). Each Profile is an immutable
// record: a language name, its file extensions, a tree-sitter parser
// handle, and a map from universal predicate name to a tree-sitter query
// source string. Adding a language means adding a Profile to the registry
// in init() -- the evaluator and semantic engine are never touched.
//
// Modeled on morfx's providers/golang/config.go Config type, generalized
// from a node-type alias map (MapQueryTypeToNodeTypes) to full tree-sitter
// query strings, because spec.md §4.5 calls for a structural *query* with
// a designated capture per predicate, not a bare node-kind list.
package langprofile

import (
	"fmt"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
)

// MatchCapture is the tag every profile query must use to mark the node
// whose source text is compared against the predicate's value (spec.md
// §4.5 step 5).
const MatchCapture = "match"

// Profile is a per-language, immutable record.
type Profile struct {
	// Name is the canonical language identifier, e.g. "go", "rust".
	Name string
	// Extensions are the bare (no leading dot) extensions this profile
	// claims, matched case-insensitively by Registry.ByExtension.
	Extensions []string
	// Lang returns the tree-sitter grammar handle. A function rather than
	// a bare value so profiles can be registered before the underlying
	// grammar package's init() side effects are needed.
	Lang func() *sitter.Language
	// Queries maps a universal predicate name to a tree-sitter query
	// source string. A profile may omit any predicate it cannot express;
	// that predicate is then false for every file of this language
	// (spec.md §4.5).
	Queries map[string]string
}

// HasPredicate reports whether this profile can answer the given
// universal predicate name.
func (p Profile) HasPredicate(name string) bool {
	_, ok := p.Queries[name]
	return ok
}

// Registry is the data-driven, startup-populated map from language name
// (and extension) to Profile.
type Registry struct {
	mu         sync.RWMutex
	byName     map[string]*Profile
	byExt      map[string]*Profile
}

// NewRegistry creates an empty profile registry.
func NewRegistry() *Registry {
	return &Registry{byName: map[string]*Profile{}, byExt: map[string]*Profile{}}
}

// Register adds a profile. Extensions are normalized to lowercase,
// no-leading-dot form.
func (r *Registry) Register(p *Profile) error {
	if p == nil || p.Name == "" {
		return fmt.Errorf("langprofile: profile must have a non-empty name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byName[p.Name]; exists {
		return fmt.Errorf("langprofile: %q already registered", p.Name)
	}
	r.byName[p.Name] = p
	for _, ext := range p.Extensions {
		ext = strings.ToLower(strings.TrimPrefix(ext, "."))
		if existing, exists := r.byExt[ext]; exists {
			return fmt.Errorf("langprofile: extension %q already mapped to %q", ext, existing.Name)
		}
		r.byExt[ext] = p
	}
	return nil
}

// ByExtension detects a profile from a bare (no leading dot) file
// extension, case-insensitively. Returns (nil, false) for unmapped
// extensions -- files with no matching profile evaluate every semantic
// predicate to false (spec.md §4.2).
func (r *Registry) ByExtension(ext string) (*Profile, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byExt[strings.ToLower(strings.TrimPrefix(ext, "."))]
	return p, ok
}

// ByName looks up a profile by its canonical language name.
func (r *Registry) ByName(name string) (*Profile, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byName[name]
	return p, ok
}

// Default is the process-wide registry populated by the init() of each
// per-language file in this package (go.go, rust.go, ...). The core
// packages depend only on this instance, so adding a language is a
// matter of adding one such file.
var Default = NewRegistry()
