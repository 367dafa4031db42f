// Package orchestrator wires the query parser, predicate registry,
// ignore stack, walker, and evaluator into the single entry point the CLI
// (and any other embedder) calls: validate predicate names, walk
// candidates, evaluate each one in a fixed worker pool, collect and sort
// matches (spec.md §4.8). The worker pool shape -- a jobs channel plus a
// fixed number of goroutines draining it, default runtime.NumCPU() --
// is the same one morfx's internal/cli/runner.go uses for file
// processing, applied here to file evaluation instead of file mutation.
package orchestrator

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/termfx/rdump/internal/evaluator"
	"github.com/termfx/rdump/internal/filectx"
	"github.com/termfx/rdump/internal/ignorestack"
	"github.com/termfx/rdump/internal/langprofile"
	"github.com/termfx/rdump/internal/predicate"
	"github.com/termfx/rdump/internal/query"
	"github.com/termfx/rdump/internal/rdumperr"
	"github.com/termfx/rdump/internal/resultcache"
	"github.com/termfx/rdump/internal/walker"
)

// Options configures one search run. Query and Roots come from the CLI's
// positional arguments, GlobalIgnoreFile from the environment-derived
// config, and every other field from a CLI flag.
type Options struct {
	Query            query.Expr
	Roots            []string
	ShowHidden       bool
	NoIgnore         bool
	GlobalIgnoreFile string
	// MaxDepth is passed straight through to walker.Options.MaxDepth:
	// negative means unbounded, 0 restricts to the root directory's own
	// files, N>0 additionally allows N levels of subdirectories.
	MaxDepth int
	Workers  int

	// CacheDSN, when non-empty, enables internal/resultcache (spec.md
	// §4.8 "Supplemented"). Empty disables caching, the default.
	CacheDSN   string
	CacheDebug bool
}

// Orchestrator binds the shared, read-only predicate and language-profile
// registries once, then serves any number of Run calls.
type Orchestrator struct {
	reg      *predicate.Registry
	profiles *langprofile.Registry
	ev       *evaluator.Evaluator

	interrupted atomic.Bool
}

// New builds an Orchestrator against the given registries.
func New(reg *predicate.Registry, profiles *langprofile.Registry) *Orchestrator {
	return &Orchestrator{reg: reg, profiles: profiles, ev: evaluator.New(reg)}
}

// Interrupt requests cooperative cancellation: in-flight file evaluations
// finish, but no new candidate is evaluated after this call (spec.md §5).
func (o *Orchestrator) Interrupt() {
	o.interrupted.Store(true)
}

// Run executes one search and returns its matches sorted by canonical
// path bytes (spec.md §4.8, §8 invariant: deterministic output order).
func (o *Orchestrator) Run(ctx context.Context, opts Options) ([]filectx.Record, error) {
	if err := o.reg.Validate(query.Names(opts.Query)); err != nil {
		return nil, rdumperr.CLIError{Code: rdumperr.CodeUnknownPredicate, Message: err.Error(), Pos: -1}
	}

	roots := opts.Roots
	if len(roots) == 0 {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, rdumperr.Wrap(rdumperr.ErrRoot, "resolving current directory", err)
		}
		roots = []string{cwd}
	}
	for _, r := range roots {
		if _, err := os.Stat(r); err != nil {
			return nil, rdumperr.Wrap(rdumperr.ErrRoot, fmt.Sprintf("root %q", r), err)
		}
	}

	prepared := o.ev.Prepare(opts.Query)

	var cache *resultcache.Cache
	if opts.CacheDSN != "" {
		c, err := resultcache.Connect(opts.CacheDSN, opts.CacheDebug)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: connect result cache: %w", err)
		}
		cache = c
		defer cache.Close()
	}

	ignoreRoot := roots[0]
	stack, err := ignorestack.New(ignorestack.Options{
		Root:             ignoreRoot,
		GlobalIgnoreFile: opts.GlobalIgnoreFile,
		NoIgnore:         opts.NoIgnore,
		HideDotfiles:     !opts.ShowHidden,
	})
	if err != nil {
		return nil, fmt.Errorf("orchestrator: build ignore stack: %w", err)
	}

	candidates := walker.Walk(ctx, walker.Options{Roots: roots, Ignore: stack, MaxDepth: opts.MaxDepth})

	numW := opts.Workers
	if numW < 1 {
		numW = runtime.NumCPU()
	}

	queryHash := ""
	if cache != nil {
		queryHash = resultcache.QueryHash(query.Sprint(opts.Query))
	}

	var (
		mu       sync.Mutex
		records  []filectx.Record
		firstErr error
	)

	var wg sync.WaitGroup
	for i := 0; i < numW; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range candidates {
				if o.interrupted.Load() {
					continue // drain the channel without doing further work
				}
				o.evaluateOne(path, prepared, cache, queryHash, &mu, &records, &firstErr)
			}
		}()
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Path < records[j].Path })

	if o.interrupted.Load() {
		return records, rdumperr.Wrap(rdumperr.ErrInterrupt, "search interrupted before completion", nil)
	}
	return records, nil
}

func (o *Orchestrator) evaluateOne(path string, prepared query.Expr, cache *resultcache.Cache, queryHash string, mu *sync.Mutex, records *[]filectx.Record, firstErr *error) {
	fc := filectx.New(path, o.profiles)

	if cache != nil {
		if info, err := fc.Metadata(); err == nil {
			if matched, ranges, ok := cache.Lookup(path, info.Size, info.ModTime.UnixNano(), queryHash); ok {
				if matched {
					mu.Lock()
					*records = append(*records, fc.ToRecord(ranges))
					mu.Unlock()
				}
				return
			}
		}
	}

	matched, err := o.ev.Eval(prepared, fc)
	if err != nil {
		mu.Lock()
		if *firstErr == nil {
			*firstErr = err
		}
		mu.Unlock()
		return
	}

	if cache != nil {
		if info, err := fc.Metadata(); err == nil {
			_ = cache.Store(path, info.Size, info.ModTime.UnixNano(), queryHash, matched, nil)
		}
	}

	if matched {
		mu.Lock()
		*records = append(*records, fc.ToRecord(nil))
		mu.Unlock()
	}
}
