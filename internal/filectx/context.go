// Package filectx implements the per-file lazy context: the bundle of
// eager path, cached metadata, cached content, and per-language cached
// syntax trees that every predicate consults (spec.md §3 "File context",
// §4.2). Modeled on morfx's providers/base/cache.go ASTCache (parse once,
// keyed, reused) narrowed from a process-wide cache down to the
// single-owner-per-file scope spec.md's invariants require.
package filectx

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/termfx/rdump/internal/langprofile"
)

// Info is the subset of file metadata predicates need.
type Info struct {
	Size    int64
	ModTime time.Time
	IsDir   bool
}

// Context is the per-candidate-file bundle of lazy accessors. A Context is
// created once per candidate and is owned by exactly one evaluation task;
// it is discarded after that task completes.
type Context struct {
	path     string
	profiles *langprofile.Registry

	metadata cell[Info]
	content  cell[[]byte]

	treesMu sync.Mutex
	trees   map[string]*treeCell
}

// treeCell is a cell keyed per language name, since a file can in
// principle be asked for more than one language's tree (spec.md §3: "a
// syntax tree for language L is obtained on demand ... cached keyed by
// L"). In practice a file has exactly one detected language, but the
// per-language keying is what the spec's invariant describes.
type treeCell = cell[*sitter.Tree]

func (c *Context) treeCellFor(lang string) *treeCell {
	c.treesMu.Lock()
	defer c.treesMu.Unlock()
	if c.trees == nil {
		c.trees = map[string]*treeCell{}
	}
	tc, ok := c.trees[lang]
	if !ok {
		tc = &treeCell{}
		c.trees[lang] = tc
	}
	return tc
}

// New builds a Context for a single candidate path, against the given
// language profile registry (normally langprofile.Default).
func New(path string, profiles *langprofile.Registry) *Context {
	return &Context{path: path, profiles: profiles}
}

// Path returns the candidate's path exactly as given to New (for walked
// files: the root as given joined with the entry's path, so it is
// absolute only when the root is). Cheap and eager -- it never performs
// I/O (spec.md §4.2).
func (c *Context) Path() string { return c.path }

// Metadata returns the cached os.Stat-derived Info, performing the syscall
// at most once.
func (c *Context) Metadata() (Info, error) {
	return c.metadata.get(func() (Info, error) {
		fi, err := os.Stat(c.path)
		if err != nil {
			return Info{}, fmt.Errorf("stat %s: %w", c.path, err)
		}
		return Info{Size: fi.Size(), ModTime: fi.ModTime(), IsDir: fi.IsDir()}, nil
	})
}

// Content returns the cached file bytes, read at most once. A read error
// is recorded and causes all content-dependent predicates to evaluate
// false (spec.md §4.2, §7 FileAccessError).
func (c *Context) Content() ([]byte, error) {
	return c.content.get(func() ([]byte, error) {
		b, err := os.ReadFile(c.path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", c.path, err)
		}
		return b, nil
	})
}

// Language detects the profile for this file from its extension, if any.
func (c *Context) Language() (*langprofile.Profile, bool) {
	ext := strings.TrimPrefix(filepath.Ext(c.path), ".")
	return c.profiles.ByExtension(ext)
}

// Tree returns the cached, parsed syntax tree for this file's detected
// language, parsing on first use. Files with no matching profile, or whose
// parse fails, report "no tree" -- every semantic predicate on such a file
// evaluates false rather than erroring the whole search (spec.md §4.2,
// §7 ParseTreeError).
func (c *Context) Tree() (*sitter.Tree, *langprofile.Profile, error) {
	profile, ok := c.Language()
	if !ok {
		return nil, nil, nil
	}

	tc := c.treeCellFor(profile.Name)
	tree, err := tc.get(func() (*sitter.Tree, error) {
		src, err := c.Content()
		if err != nil {
			return nil, err
		}
		parser := sitter.NewParser()
		parser.SetLanguage(profile.Lang())
		tree, err := parser.ParseCtx(context.Background(), nil, src)
		if err != nil {
			return nil, fmt.Errorf("parse %s as %s: %w", c.path, profile.Name, err)
		}
		return tree, nil
	})
	if err != nil {
		return nil, profile, err
	}
	return tree, profile, nil
}
