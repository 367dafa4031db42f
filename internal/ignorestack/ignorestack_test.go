package ignorestack

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBuiltinDefaultsIgnoreVendorAndGit(t *testing.T) {
	dir := t.TempDir()
	s, err := New(Options{Root: dir})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !s.Ignored(filepath.Join(dir, "vendor"), true) {
		t.Error("expected vendor/ to be ignored by default")
	}
	if !s.Ignored(filepath.Join(dir, ".git"), true) {
		t.Error("expected .git/ to be ignored by default")
	}
	if s.Ignored(filepath.Join(dir, "main.go"), false) {
		t.Error("expected an ordinary file not to be ignored")
	}
}

func TestRdumpIgnoreNegationOverridesGitignore(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, ".rdumpignore"), []byte("!build/keep.txt\n"), 0o644)
	s, err := New(Options{Root: dir})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.AddGitignore(writeFile(t, dir, ".gitignore", "build/\n"))

	if !s.Ignored(filepath.Join(dir, "build", "other.txt"), false) {
		t.Error("expected build/other.txt to be ignored by the gitignore rule")
	}
	if s.Ignored(filepath.Join(dir, "build", "keep.txt"), false) {
		t.Error("expected .rdumpignore's negation to re-include build/keep.txt")
	}
}

func TestNoIgnoreDisablesDefaultsButKeepsRdumpignore(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, ".rdumpignore"), []byte("secret.txt\n"), 0o644)
	s, err := New(Options{Root: dir, NoIgnore: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if s.Ignored(filepath.Join(dir, "vendor"), true) {
		t.Error("expected --no-ignore to disable the built-in vendor/ default")
	}
	if !s.Ignored(filepath.Join(dir, "secret.txt"), false) {
		t.Error("expected .rdumpignore entries to still apply under --no-ignore")
	}
}

func TestHideDotfilesAndRdumpignoreOverride(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, ".rdumpignore"), []byte("!.env\n"), 0o644)
	s, err := New(Options{Root: dir, HideDotfiles: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !s.Ignored(filepath.Join(dir, ".secret"), false) {
		t.Error("expected a dotfile with no re-include to be hidden")
	}
	if s.Ignored(filepath.Join(dir, ".env"), false) {
		t.Error("expected .rdumpignore's !.env to override dotfile hiding")
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}
