// Package semantic implements the five-step dispatch the evaluator uses
// for structural predicates (spec.md §4.5): detect language, look up the
// profile's query for the predicate name, obtain the cached tree, run the
// tree-sitter query, and compare each @match capture's source text against
// the predicate's value (or, for the wildcard value ".", report a match on
// the first capture found at all).
//
// One evaluator instance is registered per universal predicate name
// (spec.md §4.5's list: func, struct, class, interface, enum, trait, impl,
// type, import, var, const, call, field, comment, str, macro, plus the
// JSX/TSX-only element, component, hook, customhook, prop, and the
// Python-flavored def/decorator supplement). A profile that omits a
// predicate from its Queries map simply answers false for every file of
// that language -- the dispatch never special-cases missing queries
// beyond that.
package semantic

import (
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/termfx/rdump/internal/filectx"
	"github.com/termfx/rdump/internal/langprofile"
	"github.com/termfx/rdump/internal/predicate"
	"github.com/termfx/rdump/internal/query"
)

// UniversalPredicates lists every semantic predicate name a language
// profile may implement (spec.md §4.5).
var UniversalPredicates = []string{
	"func", "struct", "class", "interface", "enum", "trait", "impl", "type",
	"import", "var", "const", "call", "field", "comment", "str", "macro",
	"element", "component", "hook", "customhook", "prop",
	"def", "decorator",
}

// Register installs one evaluator per universal predicate name into reg,
// all sharing a single compiled-query cache.
func Register(reg *predicate.Registry) error {
	cache := newQueryCache()
	for _, name := range UniversalPredicates {
		if err := reg.Register(&evaluator{name: name, cache: cache}); err != nil {
			return err
		}
	}
	return nil
}

// queryCache compiles each (profile, predicate) tree-sitter query at most
// once and shares it across every file of that language, since a *Query is
// immutable after compilation.
type queryCache struct {
	mu       sync.Mutex
	compiled map[string]*compiledQuery
}

type compiledQuery struct {
	q   *sitter.Query
	err error
}

func newQueryCache() *queryCache {
	return &queryCache{compiled: map[string]*compiledQuery{}}
}

func (c *queryCache) get(profile *langprofile.Profile, name string) (*sitter.Query, error) {
	src, ok := profile.Queries[name]
	if !ok {
		return nil, nil
	}
	key := profile.Name + "\x00" + name
	c.mu.Lock()
	defer c.mu.Unlock()
	if cq, ok := c.compiled[key]; ok {
		return cq.q, cq.err
	}
	q, err := sitter.NewQuery([]byte(src), profile.Lang())
	c.compiled[key] = &compiledQuery{q: q, err: err}
	return q, err
}

type evaluator struct {
	name  string
	cache *queryCache
}

func (e *evaluator) Name() string              { return e.name }
func (e *evaluator) Cost() predicate.CostClass { return predicate.CostSemantic }

func (e *evaluator) Eval(fc *filectx.Context, v query.Value) (bool, error) {
	tree, profile, err := fc.Tree()
	if err != nil {
		return false, nil // ParseTreeError: this predicate is false, search continues (spec.md §7)
	}
	if tree == nil || profile == nil {
		return false, nil // no detected language, or no profile for it
	}

	q, err := e.cache.get(profile, e.name)
	if err != nil {
		return false, err
	}
	if q == nil {
		return false, nil // profile doesn't express this predicate
	}

	src, err := fc.Content()
	if err != nil {
		return false, nil
	}

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	cursor.Exec(q, tree.RootNode())

	wantAny := v.Kind == query.KindWildcard
	want := normalizeCapture(v.Text, e.name)

	for {
		m, ok := cursor.NextMatch()
		if !ok {
			return false, nil
		}
		// Enforce any (#match? ...) / (#eq? ...) predicates in the query
		// (e.g. typescript.go's hook/customhook use-prefix constraint); a
		// no-op when the query carries none.
		m = cursor.FilterPredicates(m, src)
		if len(m.Captures) == 0 {
			continue
		}
		for _, cap := range m.Captures {
			if q.CaptureNameForId(cap.Index) != langprofile.MatchCapture {
				continue
			}
			if wantAny {
				return true, nil
			}
			text := normalizeCapture(string(src[cap.Node.StartByte():cap.Node.EndByte()]), e.name)
			if text == want {
				return true, nil
			}
		}
	}
}

// normalizeCapture strips surrounding quotes from string/import literal
// captures, and turns Rust's "::" path separator into "." so
// import:std.io matches a use std::io::Read; declaration regardless of
// source language (spec.md §4.5).
func normalizeCapture(text, predName string) string {
	switch predName {
	case "str", "import":
		text = strings.Trim(text, `"'`)
	}
	if predName == "import" {
		text = strings.ReplaceAll(text, "::", ".")
	}
	return text
}
