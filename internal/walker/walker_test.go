package walker

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/termfx/rdump/internal/ignorestack"
)

func collect(ctx context.Context, opts Options) []string {
	var got []string
	for p := range Walk(ctx, opts) {
		got = append(got, p)
	}
	sort.Strings(got)
	return got
}

func TestWalkSkipsIgnoredDirectoriesEntirely(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "a.go"), "package a\n")
	mustMkdir(t, filepath.Join(dir, "vendor"))
	mustWrite(t, filepath.Join(dir, "vendor", "b.go"), "package b\n")

	stack, err := ignorestack.New(ignorestack.Options{Root: dir})
	if err != nil {
		t.Fatalf("ignorestack.New: %v", err)
	}
	got := collect(context.Background(), Options{Roots: []string{dir}, Ignore: stack, MaxDepth: -1})

	for _, p := range got {
		if filepath.Base(filepath.Dir(p)) == "vendor" {
			t.Errorf("expected vendor/ to be skipped entirely, found %s", p)
		}
	}
	if len(got) != 1 || filepath.Base(got[0]) != "a.go" {
		t.Fatalf("got %v, want [.../a.go]", got)
	}
}

func TestWalkRespectsMaxDepth(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "top.go"), "package a\n")
	nested := filepath.Join(dir, "a", "b", "c")
	mustMkdir(t, nested)
	mustWrite(t, filepath.Join(nested, "deep.go"), "package a\n")

	stack, err := ignorestack.New(ignorestack.Options{Root: dir})
	if err != nil {
		t.Fatalf("ignorestack.New: %v", err)
	}
	got := collect(context.Background(), Options{Roots: []string{dir}, Ignore: stack, MaxDepth: 1})

	for _, p := range got {
		if filepath.Base(p) == "deep.go" {
			t.Errorf("expected deep.go beyond max depth to be excluded, found %s", p)
		}
	}
}

func TestWalkMaxDepthZeroRestrictsToRootFiles(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "top.go"), "package a\n")
	nested := filepath.Join(dir, "a")
	mustMkdir(t, nested)
	mustWrite(t, filepath.Join(nested, "nested.go"), "package a\n")

	stack, err := ignorestack.New(ignorestack.Options{Root: dir})
	if err != nil {
		t.Fatalf("ignorestack.New: %v", err)
	}
	got := collect(context.Background(), Options{Roots: []string{dir}, Ignore: stack, MaxDepth: 0})

	if len(got) != 1 || filepath.Base(got[0]) != "top.go" {
		t.Fatalf("got %v, want only top.go at max-depth 0", got)
	}
}

func TestWalkLoadsRootGitignore(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, ".gitignore"), "*.log\n")
	mustWrite(t, filepath.Join(dir, "noise.log"), "junk\n")
	mustWrite(t, filepath.Join(dir, "important.txt"), "keep\n")

	// Hide dotfiles as the CLI does by default, so the .gitignore file
	// itself is not a candidate.
	stack, err := ignorestack.New(ignorestack.Options{Root: dir, HideDotfiles: true})
	if err != nil {
		t.Fatalf("ignorestack.New: %v", err)
	}
	got := collect(context.Background(), Options{Roots: []string{dir}, Ignore: stack, MaxDepth: -1})

	if len(got) != 1 || filepath.Base(got[0]) != "important.txt" {
		t.Fatalf("got %v, want only important.txt; root .gitignore's *.log should apply", got)
	}
}

func TestWalkSingleFileRoot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "only.go")
	mustWrite(t, path, "package a\n")

	stack, err := ignorestack.New(ignorestack.Options{Root: dir})
	if err != nil {
		t.Fatalf("ignorestack.New: %v", err)
	}
	got := collect(context.Background(), Options{Roots: []string{path}, Ignore: stack, MaxDepth: -1})
	if len(got) != 1 || got[0] != path {
		t.Fatalf("got %v, want [%s]", got, path)
	}
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
}
