package contentpred

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/termfx/rdump/internal/filectx"
	"github.com/termfx/rdump/internal/predicate"
	"github.com/termfx/rdump/internal/query"
)

func mustRegistry(t *testing.T) *predicate.Registry {
	t.Helper()
	reg := predicate.NewRegistry()
	if err := Register(reg); err != nil {
		t.Fatalf("Register: %v", err)
	}
	return reg
}

func writeTemp(t *testing.T, content string) *filectx.Context {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return filectx.New(path, nil)
}

func eval(t *testing.T, reg *predicate.Registry, name string, fc *filectx.Context, text string) bool {
	t.Helper()
	e, ok := reg.Get(name)
	if !ok {
		t.Fatalf("predicate %q not registered", name)
	}
	ok2, err := e.Eval(fc, query.Value{Kind: query.KindBare, Text: text})
	if err != nil {
		t.Fatalf("Eval(%s): %v", name, err)
	}
	return ok2
}

func TestContainsCaseInsensitive(t *testing.T) {
	fc := writeTemp(t, "fn TODO_Marker() {}")
	reg := mustRegistry(t)

	if !eval(t, reg, "contains", fc, "todo_marker") {
		t.Error("expected contains:todo_marker to match case-insensitively")
	}
	if !eval(t, reg, "c", fc, "TODO_Marker") {
		t.Error("expected alias c to behave like contains")
	}
	if eval(t, reg, "contains", fc, "nonexistent") {
		t.Error("expected no match for absent substring")
	}
}

func TestContainsInvalidUTF8(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bin.dat")
	data := append([]byte("prefix "), 0xff, 0xfe)
	data = append(data, []byte(" suffix")...)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	fc := filectx.New(path, nil)
	reg := mustRegistry(t)

	if !eval(t, reg, "contains", fc, "suffix") {
		t.Error("expected contains to tolerate invalid UTF-8 via lossy replacement")
	}
}

func TestMatchesRegexCachedAndApplied(t *testing.T) {
	fc := writeTemp(t, "version = 1.2.3")
	reg := mustRegistry(t)

	if !eval(t, reg, "matches", fc, `\d+\.\d+\.\d+`) {
		t.Error("expected matches to find a semver-like pattern")
	}
	if !eval(t, reg, "m", fc, `^version`) {
		t.Error("expected alias m to behave like matches")
	}
	if eval(t, reg, "matches", fc, `^nomatch$`) {
		t.Error("expected no match for an absent pattern")
	}
}

func TestMatchesInvalidPatternErrors(t *testing.T) {
	fc := writeTemp(t, "anything")
	reg := mustRegistry(t)
	e, ok := reg.Get("matches")
	if !ok {
		t.Fatal("matches not registered")
	}
	_, err := e.Eval(fc, query.Value{Kind: query.KindBare, Text: "(unterminated"})
	if err == nil {
		t.Error("expected an error for an invalid regex pattern")
	}
}
