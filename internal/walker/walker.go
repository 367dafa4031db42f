// Package walker discovers candidate files under one or more roots,
// respecting an ignorestack.Stack and an optional maximum depth, and
// streams them onto a channel for the orchestrator's worker pool to
// consume (spec.md §4.7 "Walker"). The directory traversal itself is
// sequential (filepath.WalkDir per root) since ignore-stack state is
// built incrementally as deeper gitignore files are discovered, but
// consumers read the resulting channel concurrently -- the same
// jobs-channel handoff morfx's internal/cli/runner.go uses between its
// file list and its worker goroutines.
package walker

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/termfx/rdump/internal/ignorestack"
)

// Options configures a walk.
type Options struct {
	Roots  []string
	Ignore *ignorestack.Stack
	// MaxDepth limits how many directory levels below a root are
	// searched. A negative value means unbounded (the default). 0
	// restricts results to files directly inside the root directory --
	// no subdirectory is ever descended into -- matching spec.md §8's
	// "max-depth 0 restricts to root-directory children only" reading.
	// N>0 additionally admits files up to N levels of subdirectories
	// below the root.
	MaxDepth int
}

// Walk streams every candidate regular file path under opts.Roots onto
// the returned channel, closing it when the walk completes or ctx is
// canceled. Errors encountered walking (permission denied, a vanished
// entry) are skipped rather than aborting the whole walk, matching
// morfx's scanner which logs and continues past a single bad target
// (spec.md §7: a walk error narrows results, it does not fail the query).
func Walk(ctx context.Context, opts Options) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		for _, root := range opts.Roots {
			if walkOneRoot(ctx, root, opts, out) != nil {
				return // ctx canceled
			}
		}
	}()
	return out
}

func walkOneRoot(ctx context.Context, root string, opts Options, out chan<- string) error {
	info, err := os.Lstat(root)
	if err != nil {
		return nil // skip an inaccessible root, don't abort the whole walk
	}
	if !info.IsDir() {
		if !opts.Ignore.Ignored(root, false) {
			select {
			case out <- root:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if d.IsDir() {
			if gi := filepath.Join(path, ".gitignore"); fileExists(gi) {
				opts.Ignore.AddGitignore(gi)
			}
			if path != root && opts.Ignore.Ignored(path, true) {
				return fs.SkipDir
			}
			if path != root && opts.MaxDepth >= 0 && relDepth(root, path) >= opts.MaxDepth {
				return fs.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}
		if opts.Ignore.Ignored(path, false) {
			return nil
		}
		if opts.MaxDepth >= 0 && relDepth(root, path) > opts.MaxDepth {
			return nil
		}

		select {
		case out <- path:
		case <-ctx.Done():
			return ctx.Err()
		}
		return nil
	})
}

// relDepth is how many directory levels path sits below root: 0 for an
// entry directly inside root, 1 for an entry one subdirectory deeper, and
// so on.
func relDepth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator))
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
