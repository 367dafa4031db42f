// Package metapred implements the O(1)-per-file metadata predicates: ext,
// name, path, in, size, modified (spec.md §4.3). Globs use doublestar so
// "in:src/**" recurses, matching morfx's use of the same library for its
// include/exclude glob flags (cmd/morfx/main.go).
package metapred

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/termfx/rdump/internal/filectx"
	"github.com/termfx/rdump/internal/predicate"
	"github.com/termfx/rdump/internal/query"
)

// Register installs all six metadata predicates into reg.
func Register(reg *predicate.Registry) error {
	for _, e := range []predicate.Evaluator{
		extPredicate{}, namePredicate{}, pathPredicate{}, inPredicate{},
		sizePredicate{}, modifiedPredicate{},
	} {
		if err := reg.Register(e); err != nil {
			return err
		}
	}
	return nil
}

type extPredicate struct{}

func (extPredicate) Name() string             { return "ext" }
func (extPredicate) Cost() predicate.CostClass { return predicate.CostMetadata }

// Eval is a case-insensitive exact match on the extension, no leading dot
// (spec.md §4.3).
func (extPredicate) Eval(fc *filectx.Context, v query.Value) (bool, error) {
	actual := strings.TrimPrefix(filepath.Ext(fc.Path()), ".")
	return strings.EqualFold(actual, v.Text), nil
}

type namePredicate struct{}

func (namePredicate) Name() string             { return "name" }
func (namePredicate) Cost() predicate.CostClass { return predicate.CostMetadata }

// Eval is a case-insensitive glob on the basename (spec.md §4.3).
func (namePredicate) Eval(fc *filectx.Context, v query.Value) (bool, error) {
	base := filepath.Base(fc.Path())
	ok, err := doublestar.Match(strings.ToLower(v.Text), strings.ToLower(base))
	if err != nil {
		return false, err
	}
	return ok, nil
}

type pathPredicate struct{}

func (pathPredicate) Name() string             { return "path" }
func (pathPredicate) Cost() predicate.CostClass { return predicate.CostMetadata }

// Eval is a substring match, promoted to a glob match when the value
// contains a glob metacharacter (*, ?, or [) -- spec.md §4.3 and the open
// question in §9, resolved here by making the promotion rule explicit:
// any of *, ?, [ anywhere in the value switches the predicate from
// substring to glob, matched against the file's path with platform
// separators normalized to '/'.
func (pathPredicate) Eval(fc *filectx.Context, v query.Value) (bool, error) {
	p := filepath.ToSlash(fc.Path())
	if isGlobby(v.Text) {
		return doublestar.Match(v.Text, p)
	}
	return strings.Contains(p, v.Text), nil
}

type inPredicate struct{}

func (inPredicate) Name() string             { return "in" }
func (inPredicate) Cost() predicate.CostClass { return predicate.CostMetadata }

// Eval implements directory containment: an exact parent directory match,
// or a recursive match when the value ends in "**" (spec.md §4.3).
func (inPredicate) Eval(fc *filectx.Context, v query.Value) (bool, error) {
	p := filepath.ToSlash(fc.Path())
	pattern := strings.TrimSuffix(v.Text, "/")
	if strings.HasSuffix(pattern, "**") {
		return doublestar.Match(pattern, p)
	}
	dir := filepath.ToSlash(filepath.Dir(p))
	return dir == pattern || strings.HasSuffix(dir, "/"+pattern), nil
}

func isGlobby(s string) bool {
	return strings.ContainsAny(s, "*?[")
}

type sizePredicate struct{}

func (sizePredicate) Name() string             { return "size" }
func (sizePredicate) Cost() predicate.CostClass { return predicate.CostMetadata }

// Eval compares the file's byte size using 1024-based unit multiples
// (spec.md §4.3, §9 resolves the unit-base open question as 1024).
func (sizePredicate) Eval(fc *filectx.Context, v query.Value) (bool, error) {
	info, err := fc.Metadata()
	if err != nil {
		return false, nil // an unreadable file narrows results, it doesn't fail the query
	}
	return compare(info.Size, v.Cmp, v.Bytes()), nil
}

type modifiedPredicate struct{}

func (modifiedPredicate) Name() string             { return "modified" }
func (modifiedPredicate) Cost() predicate.CostClass { return predicate.CostMetadata }

// Eval compares now-minus-mtime against the duration qualifier. "<" means
// more recent than the duration, ">" means older, "=" means within one
// unit of it (spec.md §4.3).
func (modifiedPredicate) Eval(fc *filectx.Context, v query.Value) (bool, error) {
	info, err := fc.Metadata()
	if err != nil {
		return false, nil // an unreadable file narrows results, it doesn't fail the query
	}
	age := time.Since(info.ModTime)
	want := time.Duration(v.Number * float64(durationUnitNanos(v.DurUnit)))

	switch v.Cmp {
	case query.CmpLess, query.CmpLessEqual:
		return age < want || (v.Cmp == query.CmpLessEqual && age == want), nil
	case query.CmpGreater, query.CmpGreaterEqual:
		return age > want || (v.Cmp == query.CmpGreaterEqual && age == want), nil
	default: // CmpEqual: within one unit
		unit := time.Duration(durationUnitNanos(v.DurUnit))
		diff := age - want
		if diff < 0 {
			diff = -diff
		}
		return diff <= unit, nil
	}
}

func durationUnitNanos(u query.DurationUnit) int64 {
	switch u {
	case query.UnitMinutes:
		return int64(time.Minute)
	case query.UnitHours:
		return int64(time.Hour)
	case query.UnitDays:
		return int64(24 * time.Hour)
	case query.UnitWeeks:
		return int64(7 * 24 * time.Hour)
	case query.UnitYears:
		return int64(365 * 24 * time.Hour)
	default:
		return int64(time.Second)
	}
}

func compare(actual int64, cmp query.Comparator, want int64) bool {
	switch cmp {
	case query.CmpLess:
		return actual < want
	case query.CmpLessEqual:
		return actual <= want
	case query.CmpGreater:
		return actual > want
	case query.CmpGreaterEqual:
		return actual >= want
	default:
		return actual == want
	}
}
