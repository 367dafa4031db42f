// Package contentpred implements the O(file size) content predicates:
// contains (alias c) and matches (alias m) (spec.md §4.4). Both trigger
// content loading through filectx.Context.Content, which participates in
// the evaluator's short-circuit avoidance (spec.md §4.6, invariant 4).
package contentpred

import (
	"bytes"
	"regexp"
	"strings"
	"sync"

	"github.com/termfx/rdump/internal/filectx"
	"github.com/termfx/rdump/internal/predicate"
	"github.com/termfx/rdump/internal/query"
)

// Register installs contains/c and matches/m into reg.
func Register(reg *predicate.Registry) error {
	if err := reg.Register(containsPredicate{}, "contains", "c"); err != nil {
		return err
	}
	if err := reg.Register(&matchesPredicate{cache: map[string]*regexp.Regexp{}}, "matches", "m"); err != nil {
		return err
	}
	return nil
}

type containsPredicate struct{}

func (containsPredicate) Name() string             { return "contains" }
func (containsPredicate) Cost() predicate.CostClass { return predicate.CostContent }

// Eval performs a case-insensitive literal substring search, treating the
// content as UTF-8 with lossy replacement on invalid sequences (spec.md
// §4.4).
func (containsPredicate) Eval(fc *filectx.Context, v query.Value) (bool, error) {
	raw, err := fc.Content()
	if err != nil {
		return false, nil // FileAccessError: predicate is false, not an error
	}
	text := toValidUTF8Lossy(raw)
	return strings.Contains(strings.ToLower(text), strings.ToLower(v.Text)), nil
}

// matchesPredicate compiles its regex at most once per predicate value
// (spec.md §4.4: "compiles the value as a regular expression once per
// query (cached in the predicate)"), modeled on morfx's
// internal/matcher/regex.go RegexMatcher.
type matchesPredicate struct {
	mu    sync.Mutex
	cache map[string]*regexp.Regexp
}

func (*matchesPredicate) Name() string             { return "matches" }
func (*matchesPredicate) Cost() predicate.CostClass { return predicate.CostContent }

func (m *matchesPredicate) Eval(fc *filectx.Context, v query.Value) (bool, error) {
	re, err := m.compile(v.Text)
	if err != nil {
		return false, err
	}
	raw, err := fc.Content()
	if err != nil {
		return false, nil
	}
	return re.Match(raw), nil
}

func (m *matchesPredicate) compile(pattern string) (*regexp.Regexp, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if re, ok := m.cache[pattern]; ok {
		return re, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	m.cache[pattern] = re
	return re, nil
}

// toValidUTF8Lossy mirrors bytes.ToValidUTF8's replacement behavior for
// content that may not be valid UTF-8, per spec.md §4.4.
func toValidUTF8Lossy(b []byte) string {
	return string(bytes.ToValidUTF8(b, []byte("�")))
}
