package query

import "testing"

func TestParsePrecedence(t *testing.T) {
	// !P & Q | R must parse as ((!P) & Q) | R -- spec.md §8 invariant 2.
	expr, err := Parse("!ext:rs & size:>1kb | path:tests")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	or, ok := expr.(*Or)
	if !ok {
		t.Fatalf("top-level node = %T, want *Or", expr)
	}
	and, ok := or.L.(*And)
	if !ok {
		t.Fatalf("Or.L = %T, want *And", or.L)
	}
	not, ok := and.L.(*Not)
	if !ok {
		t.Fatalf("And.L = %T, want *Not", and.L)
	}
	if p, ok := not.X.(*Predicate); !ok || p.Name != "ext" {
		t.Fatalf("Not.X = %#v, want predicate ext", not.X)
	}
	if p, ok := and.R.(*Predicate); !ok || p.Name != "size" {
		t.Fatalf("And.R = %#v, want predicate size", and.R)
	}
	if p, ok := or.R.(*Predicate); !ok || p.Name != "path" {
		t.Fatalf("Or.R = %#v, want predicate path", or.R)
	}
}

func TestParseWhitespaceInvariant(t *testing.T) {
	a, err := Parse("ext:rs&size:>1kb")
	if err != nil {
		t.Fatalf("Parse a: %v", err)
	}
	b, err := Parse("  ext:rs   &   size:>1kb  ")
	if err != nil {
		t.Fatalf("Parse b: %v", err)
	}
	if !Equal(a, b) {
		t.Fatalf("whitespace-differing forms produced different trees: %s vs %s", Sprint(a), Sprint(b))
	}
}

func TestParseRoundTrip(t *testing.T) {
	inputs := []string{
		"ext:rs",
		"ext:rs & !path:tests",
		"(ext:rs | ext:py) & size:>10kb",
		`contains:'fn main()'`,
		"struct:User",
		"import:.",
	}
	for _, in := range inputs {
		e1, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", in, err)
		}
		printed := Sprint(e1)
		e2, err := Parse(printed)
		if err != nil {
			t.Fatalf("re-Parse(%q): %v", printed, err)
		}
		if !Equal(e1, e2) {
			t.Fatalf("round trip mismatch for %q: %s != %s", in, Sprint(e1), Sprint(e2))
		}
	}
}

func TestParseErrors(t *testing.T) {
	cases := []string{
		"",
		"   ",
		"ext:rs &",
		"(ext:rs",
		"ext:rs)",
		"ext:'unterminated",
		"ext",
		":rs",
		"bad-key:rs",
	}
	for _, in := range cases {
		if _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q): expected error, got nil", in)
		}
	}
}

func TestParseQuotedEscapes(t *testing.T) {
	e, err := Parse(`contains:"line1\nline2 \"quoted\""`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	p := e.(*Predicate)
	want := "line1\nline2 \"quoted\""
	if p.Value.Text != want {
		t.Errorf("Value.Text = %q, want %q", p.Value.Text, want)
	}
}

func TestParseSizeValue(t *testing.T) {
	e, err := Parse("size:>10kb")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	p := e.(*Predicate)
	if p.Value.Kind != KindSize {
		t.Fatalf("Kind = %v, want KindSize", p.Value.Kind)
	}
	if p.Value.Cmp != CmpGreater {
		t.Errorf("Cmp = %v, want >", p.Value.Cmp)
	}
	if p.Value.Bytes() != 10*1024 {
		t.Errorf("Bytes() = %d, want %d", p.Value.Bytes(), 10*1024)
	}
}

func TestParseWildcard(t *testing.T) {
	e, err := Parse("import:.")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if e.(*Predicate).Value.Kind != KindWildcard {
		t.Fatalf("Value.Kind = %v, want KindWildcard", e.(*Predicate).Value.Kind)
	}
}

func TestNames(t *testing.T) {
	e, err := Parse("ext:rs & !path:tests | ext:rs")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	names := Names(e)
	if len(names) != 2 {
		t.Fatalf("Names() = %v, want 2 unique names", names)
	}
}

func TestResolvePreset(t *testing.T) {
	presets := map[string]string{
		"rust-structs": "ext:rs & struct:.",
		"alias":        "@rust-structs",
	}
	out, err := ResolvePreset("@alias", presets)
	if err != nil {
		t.Fatalf("ResolvePreset: %v", err)
	}
	if out != "ext:rs & struct:." {
		t.Errorf("ResolvePreset = %q, want %q", out, "ext:rs & struct:.")
	}

	if _, err := ResolvePreset("@missing", presets); err == nil {
		t.Error("expected error for unknown preset")
	}

	cyclic := map[string]string{"a": "@b", "b": "@a"}
	if _, err := ResolvePreset("@a", cyclic); err == nil {
		t.Error("expected error for cyclic preset reference")
	}
}
