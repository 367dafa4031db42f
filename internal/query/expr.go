// Package query implements rdump's grammar, lexer, and recursive-descent
// parser: a boolean expression of key:value predicates over `&`, `|`, `!`
// (and their word aliases `and`, `or`, `not`) with parenthetical grouping.
// The parser produces an immutable Expr tree plus the list of every
// predicate name it referenced, so the orchestrator can cross-check that
// list against the predicate registry before walking a single file
// (spec.md §4.1, §4.8).
package query

// Expr is the sum type of the parsed expression tree: Predicate, And, Or,
// or Not. It is immutable once Parse returns.
type Expr interface {
	isExpr()
}

// Predicate is a leaf node: a named test with a value.
type Predicate struct {
	Name  string
	Value Value
}

func (*Predicate) isExpr() {}

// And is a conjunction; evaluation must short-circuit on a false L.
type And struct {
	L, R Expr
}

func (*And) isExpr() {}

// Or is a disjunction; evaluation must short-circuit on a true L. Spec.md
// §4.6 forbids reordering disjunctions: the user's left-to-right order is
// preserved because it is a user-visible short-circuit hint.
type Or struct {
	L, R Expr
}

func (*Or) isExpr() {}

// Not negates its operand.
type Not struct {
	X Expr
}

func (*Not) isExpr() {}

// Names returns every predicate name referenced anywhere in the tree, for
// the orchestrator's fail-fast unknown-predicate check.
func Names(e Expr) []string {
	seen := map[string]bool{}
	var out []string
	var walk func(Expr)
	walk = func(e Expr) {
		switch n := e.(type) {
		case *Predicate:
			if !seen[n.Name] {
				seen[n.Name] = true
				out = append(out, n.Name)
			}
		case *And:
			walk(n.L)
			walk(n.R)
		case *Or:
			walk(n.L)
			walk(n.R)
		case *Not:
			walk(n.X)
		}
	}
	walk(e)
	return out
}
