// Package evaluator walks a parsed query.Expr against a filectx.Context,
// dispatching each Predicate leaf through the shared predicate.Registry
// (spec.md §4.6). Two passes are involved: Prepare rewrites a query's And
// chains once, reordering conjuncts cheapest-cost-first so metadata
// predicates run before content predicates before semantic predicates;
// Eval then walks the (possibly rewritten) tree once per candidate file
// with short-circuit And/Or semantics.
//
// Disjunctions are never reordered (spec.md §4.6, invariant 3): the
// query's left-to-right Or order is a user-visible short-circuit hint and
// is preserved exactly as written.
package evaluator

import (
	"fmt"
	"sort"

	"github.com/termfx/rdump/internal/filectx"
	"github.com/termfx/rdump/internal/predicate"
	"github.com/termfx/rdump/internal/query"
)

// Evaluator binds a predicate registry for repeated use across many files
// and queries.
type Evaluator struct {
	reg *predicate.Registry
}

// New builds an Evaluator against reg, normally the process-wide registry
// populated by metapred.Register, contentpred.Register, and
// semantic.Register.
func New(reg *predicate.Registry) *Evaluator {
	return &Evaluator{reg: reg}
}

// Prepare rewrites e's And chains into cost-ascending order, once per
// query (spec.md §4.6: "a one-time rewrite pass over the parsed tree, not
// a per-file cost model"). The returned tree is semantically equivalent to
// e for every possible file, differing only in which predicate short-
// circuits evaluation first.
func (ev *Evaluator) Prepare(e query.Expr) query.Expr {
	switch n := e.(type) {
	case *query.Predicate:
		return n
	case *query.Not:
		return &query.Not{X: ev.Prepare(n.X)}
	case *query.Or:
		return &query.Or{L: ev.Prepare(n.L), R: ev.Prepare(n.R)}
	case *query.And:
		leaves := flattenAnd(n)
		for i, leaf := range leaves {
			leaves[i] = ev.Prepare(leaf)
		}
		sort.SliceStable(leaves, func(i, j int) bool {
			return ev.costOf(leaves[i]) < ev.costOf(leaves[j])
		})
		return buildAndChain(leaves)
	default:
		return e
	}
}

// flattenAnd collects every top-level conjunct of an And chain, stopping
// at Or/Not/Predicate boundaries.
func flattenAnd(e query.Expr) []query.Expr {
	if a, ok := e.(*query.And); ok {
		return append(flattenAnd(a.L), flattenAnd(a.R)...)
	}
	return []query.Expr{e}
}

func buildAndChain(leaves []query.Expr) query.Expr {
	acc := leaves[0]
	for _, leaf := range leaves[1:] {
		acc = &query.And{L: acc, R: leaf}
	}
	return acc
}

// costOf estimates a subexpression's worst-case cost tier as the most
// expensive predicate it could touch, so that a group containing even one
// semantic predicate sorts after a group of pure metadata predicates.
func (ev *Evaluator) costOf(e query.Expr) predicate.CostClass {
	switch n := e.(type) {
	case *query.Predicate:
		if p, ok := ev.reg.Get(n.Name); ok {
			return p.Cost()
		}
		return predicate.CostSemantic
	case *query.Not:
		return ev.costOf(n.X)
	case *query.And:
		return maxCost(ev.costOf(n.L), ev.costOf(n.R))
	case *query.Or:
		return maxCost(ev.costOf(n.L), ev.costOf(n.R))
	default:
		return predicate.CostSemantic
	}
}

func maxCost(a, b predicate.CostClass) predicate.CostClass {
	if a > b {
		return a
	}
	return b
}

// Eval walks e against fc with short-circuit And/Or/Not semantics
// (spec.md §4.6, invariants 1-2). A predicate dispatch error aborts this
// file's evaluation with an error rather than silently reporting false
// (that distinction -- missing data vs. registry corruption -- belongs to
// the individual predicate's Eval, which must itself report false for
// ordinary load failures).
func (ev *Evaluator) Eval(e query.Expr, fc *filectx.Context) (bool, error) {
	switch n := e.(type) {
	case *query.Predicate:
		p, ok := ev.reg.Get(n.Name)
		if !ok {
			return false, fmt.Errorf("evaluator: unknown predicate %q", n.Name)
		}
		return p.Eval(fc, n.Value)
	case *query.Not:
		v, err := ev.Eval(n.X, fc)
		if err != nil {
			return false, err
		}
		return !v, nil
	case *query.And:
		l, err := ev.Eval(n.L, fc)
		if err != nil {
			return false, err
		}
		if !l {
			return false, nil
		}
		return ev.Eval(n.R, fc)
	case *query.Or:
		l, err := ev.Eval(n.L, fc)
		if err != nil {
			return false, err
		}
		if l {
			return true, nil
		}
		return ev.Eval(n.R, fc)
	default:
		return false, fmt.Errorf("evaluator: unhandled expression node %T", e)
	}
}
