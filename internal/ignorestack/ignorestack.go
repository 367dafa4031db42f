// Package ignorestack implements rdump's layered ignore precedence:
// built-in defaults, then a global ignore file, then every gitignore-style
// file found in directories enclosing a candidate path, then a
// .rdumpignore file at the search root with the highest precedence,
// including negation re-includes that override all lower layers
// (spec.md §4.7). Modeled on morfx's internal/scanner/scanner.go
// loadGitignore, which compiles multiple gitignore files into one matcher
// via github.com/sabhiram/go-gitignore's CompileIgnoreFileAndLines "root
// file first, then the rest" ordering -- the same ordering gitignore
// itself uses to let a later line override an earlier one, including
// negation. This package generalizes that to an explicit, growable
// precedence list recompiled as the walker discovers more gitignore files.
package ignorestack

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	ignore "github.com/sabhiram/go-gitignore"
)

// defaultPatterns mirrors morfx's shouldSkipDirectory hard-coded skip
// list, promoted to the lowest-precedence layer so it can still be
// overridden by an explicit re-include higher in the stack.
var defaultPatterns = []string{
	".git/", "vendor/", "node_modules/", "dist/", "build/", ".rdump/",
}

// Stack holds every ignore-pattern line discovered so far, lowest
// precedence first, and recompiles a single matcher on demand. Combining
// every layer into one gitignore.GitIgnore (rather than evaluating N
// separate matchers) is what lets a negation line in a later layer
// override an ignore line in an earlier one: that is ordinary gitignore
// semantics, "last matching line wins", applied across the whole
// concatenated line list.
type Stack struct {
	mu           sync.Mutex
	root         string
	noIgnore     bool
	hideDotfiles bool
	lines        []string // precedence order: lowest first
	rdumpLines   []string // .rdumpignore content, always appended last
	matcher      *ignore.GitIgnore
	dirty        bool
}

// Options configures a Stack's construction.
type Options struct {
	// Root is the search root; .rdumpignore is read from here.
	Root string
	// GlobalIgnoreFile is an optional path to a user-wide ignore file,
	// layered above the built-in defaults but below any gitignore found
	// while walking.
	GlobalIgnoreFile string
	// NoIgnore disables every layer except .rdumpignore's negation
	// re-includes (spec.md §4.7).
	NoIgnore bool
	// HideDotfiles skips hidden files/directories (leading '.') as the
	// very lowest-precedence rule.
	HideDotfiles bool
}

// New builds a Stack seeded with the built-in defaults, the optional
// global ignore file, and the root's .rdumpignore, if present.
func New(opts Options) (*Stack, error) {
	s := &Stack{root: opts.Root, noIgnore: opts.NoIgnore, hideDotfiles: opts.HideDotfiles}

	if !opts.NoIgnore {
		s.lines = append(s.lines, defaultPatterns...)
	}
	if opts.HideDotfiles {
		// A slash-free pattern matches at any directory depth in
		// gitignore syntax, so this covers every hidden file and
		// directory as the lowest-precedence rule; a later
		// .rdumpignore "!.env"-style line overrides it exactly like
		// any other gitignore negation.
		s.lines = append(s.lines, ".*")
	}
	if !opts.NoIgnore {
		if opts.GlobalIgnoreFile != "" {
			if b, err := os.ReadFile(opts.GlobalIgnoreFile); err == nil {
				s.lines = append(s.lines, strings.Split(string(b), "\n")...)
			}
		}
	}

	if b, err := os.ReadFile(filepath.Join(opts.Root, ".rdumpignore")); err == nil {
		s.rdumpLines = strings.Split(string(b), "\n")
	}

	s.dirty = true
	return s, nil
}

// AddGitignore reads a gitignore-style file discovered while walking and
// layers its lines above everything added so far except .rdumpignore
// (spec.md §4.7 precedence order). A no-op under --no-ignore.
func (s *Stack) AddGitignore(path string) {
	if s.noIgnore {
		return
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, strings.Split(string(b), "\n")...)
	s.dirty = true
}

func (s *Stack) compile() *ignore.GitIgnore {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty && s.matcher != nil {
		return s.matcher
	}
	all := make([]string, 0, len(s.lines)+len(s.rdumpLines))
	all = append(all, s.lines...)
	all = append(all, s.rdumpLines...)
	s.matcher = ignore.CompileIgnoreLines(all...)
	s.dirty = false
	return s.matcher
}

// Ignored reports whether path should be excluded from the walk,
// path may be absolute or relative to Root.
func (s *Stack) Ignored(path string, isDir bool) bool {
	rel, err := filepath.Rel(s.root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	if isDir && !strings.HasSuffix(rel, "/") {
		rel += "/"
	}

	return s.compile().MatchesPath(rel)
}
