package query

import "fmt"

// Sprint renders an Expr back into query syntax. Parsing the result again
// must yield a structurally identical tree (spec.md §8's round-trip
// property), so parentheses are always emitted around binary nodes rather
// than relying on the reader to re-derive precedence.
func Sprint(e Expr) string {
	switch n := e.(type) {
	case *Predicate:
		return fmt.Sprintf("%s:%s", n.Name, n.Value.String())
	case *Not:
		return "!" + Sprint(n.X)
	case *And:
		return fmt.Sprintf("(%s & %s)", Sprint(n.L), Sprint(n.R))
	case *Or:
		return fmt.Sprintf("(%s | %s)", Sprint(n.L), Sprint(n.R))
	default:
		return ""
	}
}

// Equal reports whether two expression trees are structurally identical.
func Equal(a, b Expr) bool {
	switch x := a.(type) {
	case *Predicate:
		y, ok := b.(*Predicate)
		return ok && x.Name == y.Name && x.Value == y.Value
	case *Not:
		y, ok := b.(*Not)
		return ok && Equal(x.X, y.X)
	case *And:
		y, ok := b.(*And)
		return ok && Equal(x.L, y.L) && Equal(x.R, y.R)
	case *Or:
		y, ok := b.(*Or)
		return ok && Equal(x.L, y.L) && Equal(x.R, y.R)
	}
	return false
}
