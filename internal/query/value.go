package query

import "fmt"

// ValueKind tags the variant held by a Value.
type ValueKind int

const (
	// KindBare is an unquoted identifier-like token.
	KindBare ValueKind = iota
	// KindQuoted is a single- or double-quoted string with escapes resolved.
	KindQuoted
	// KindWildcard is the literal "." value meaning "any".
	KindWildcard
	// KindSize is a size qualifier such as ">10kb".
	KindSize
	// KindDuration is a time qualifier such as "<2d".
	KindDuration
)

// Comparator is the comparison operator carried by size and duration values.
type Comparator int

const (
	CmpLess Comparator = iota
	CmpGreater
	CmpEqual
	CmpLessEqual
	CmpGreaterEqual
)

func (c Comparator) String() string {
	switch c {
	case CmpLess:
		return "<"
	case CmpGreater:
		return ">"
	case CmpEqual:
		return "="
	case CmpLessEqual:
		return "<="
	case CmpGreaterEqual:
		return ">="
	default:
		return "?"
	}
}

// SizeUnit is the byte-multiple unit of a size qualifier.
type SizeUnit int

const (
	UnitBytes SizeUnit = iota
	UnitKB
	UnitMB
	UnitGB
)

// Multiplier returns the 1024-based byte multiplier for the unit (spec.md §9
// fixes 1024 over 1000 as the ambiguous source documentation's base).
func (u SizeUnit) Multiplier() int64 {
	switch u {
	case UnitKB:
		return 1024
	case UnitMB:
		return 1024 * 1024
	case UnitGB:
		return 1024 * 1024 * 1024
	default:
		return 1
	}
}

// DurationUnit is the unit of a time qualifier.
type DurationUnit int

const (
	UnitSeconds DurationUnit = iota
	UnitMinutes
	UnitHours
	UnitDays
	UnitWeeks
	UnitYears
)

// Value is a tagged variant of predicate value forms (spec.md §3).
type Value struct {
	Kind ValueKind

	// Text holds the literal value for KindBare/KindQuoted/KindWildcard.
	Text string

	// Size/duration qualifiers.
	Cmp      Comparator
	Number   float64
	SzUnit   SizeUnit
	DurUnit  DurationUnit
}

// String renders the value the way it would appear in a re-serialized
// query, used by the round-trip property in spec.md §8.
func (v Value) String() string {
	switch v.Kind {
	case KindWildcard:
		return "."
	case KindSize:
		return fmt.Sprintf("%s%s%s", v.Cmp, trimFloat(v.Number), sizeUnitSuffix(v.SzUnit))
	case KindDuration:
		return fmt.Sprintf("%s%s%s", v.Cmp, trimFloat(v.Number), durationUnitSuffix(v.DurUnit))
	case KindQuoted:
		return fmt.Sprintf("%q", v.Text)
	default:
		return v.Text
	}
}

func trimFloat(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}

func sizeUnitSuffix(u SizeUnit) string {
	switch u {
	case UnitKB:
		return "kb"
	case UnitMB:
		return "mb"
	case UnitGB:
		return "gb"
	default:
		return "b"
	}
}

func durationUnitSuffix(u DurationUnit) string {
	switch u {
	case UnitMinutes:
		return "m"
	case UnitHours:
		return "h"
	case UnitDays:
		return "d"
	case UnitWeeks:
		return "w"
	case UnitYears:
		return "y"
	default:
		return "s"
	}
}

// Bytes converts a size Value to an absolute byte count.
func (v Value) Bytes() int64 {
	return int64(v.Number * float64(v.SzUnit.Multiplier()))
}
