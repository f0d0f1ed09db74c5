// Package venn splits N overlapping collections into the 2^N - 1 disjoint
// sections of their Venn diagram.
//
// A section is identified by a Key: the elements of section k belong to every
// input i with k[i] set and to no input with k[i] unset. Sections are
// produced in binary counting order with the first input as the most
// significant bit, skipping the all-out key. For three inputs the order is
//
//	OOI, OIO, OII, IOO, IOI, IIO, III
//
// Diagram templates rely on this order and on the I/O spelling of keys.
package venn

import (
	"iter"

	"github.com/shopspring/decimal"

	"github.com/rdeusser/venn/set"
)

const (
	// MaxSets is the largest number of inputs Compute accepts.
	MaxSets = 62

	// FractionPrecision is the number of decimal places kept when a section
	// is normalized by the number of distinct elements.
	FractionPrecision = 28
)

// Compute returns the sections of data reported as mode. Each input is
// coerced into a set; inputs are not modified.
//
// Every configuration problem is reported here, before the first section is
// produced. The returned sequence may be ranged over more than once.
func Compute[T comparable](data [][]T, mode Mode) (iter.Seq2[Key, Value[T]], error) {
	sets := make([]set.Interface[T], len(data))
	for i, items := range data {
		sets[i] = set.NewSet(items...)
	}
	return compute(sets, mode)
}

// ComputeSets is like Compute for inputs that are already sets. The sets are
// copied so later changes to them do not leak into the sections.
func ComputeSets[T comparable](data []set.Interface[T], mode Mode) (iter.Seq2[Key, Value[T]], error) {
	sets := make([]set.Interface[T], len(data))
	for i, s := range data {
		if isNil(s) {
			return nil, &ValidationError{Index: i, Reason: "nil is not a set"}
		}
		sets[i] = s.Clone()
	}
	return compute(sets, mode)
}

// ComputeAny is like Compute for inputs whose types are only known at run
// time. See Coerce for what counts as a collection.
func ComputeAny(data []any, mode Mode) (iter.Seq2[Key, Value[any]], error) {
	if len(data) == 0 {
		return nil, configurationErrorf("no input sets")
	}

	coerced, err := Coerce(data)
	if err != nil {
		return nil, err
	}

	return Compute(coerced, mode)
}

// Total returns the number of distinct elements across all inputs.
func Total[T comparable](data [][]T) int {
	seen := make(map[T]struct{})
	for _, items := range data {
		for _, item := range items {
			seen[item] = struct{}{}
		}
	}
	return len(seen)
}

type computer[T comparable] struct {
	sets  []set.Interface[T]
	mode  Mode
	total decimal.Decimal
}

func compute[T comparable](sets []set.Interface[T], mode Mode) (iter.Seq2[Key, Value[T]], error) {
	switch {
	case len(sets) == 0:
		return nil, configurationErrorf("no input sets")
	case len(sets) > MaxSets:
		return nil, configurationErrorf("%d input sets, at most %d are supported", len(sets), MaxSets)
	case !mode.Valid():
		return nil, &ConfigurationError{Reason: "unknown mode", Err: ErrInvalidMode}
	}

	c := &computer[T]{
		sets:  sets,
		mode:  mode,
		total: decimal.NewFromInt(int64(set.Union(sets...).Length())),
	}

	if mode == ModeFraction && c.total.IsZero() {
		return nil, configurationErrorf("cannot normalize sections: all input sets are empty")
	}

	return c.sections, nil
}

func (c *computer[T]) sections(yield func(Key, Value[T]) bool) {
	for key := range Keys(len(c.sets)) {
		if !yield(key, c.project(c.section(key))) {
			return
		}
	}
}

// section returns the elements of every in set that belong to no out set.
// The result never aliases an input.
func (c *computer[T]) section(key Key) set.Interface[T] {
	var in, out []set.Interface[T]

	for i, s := range c.sets {
		if key[i] {
			in = append(in, s)
		} else {
			out = append(out, s)
		}
	}

	var section set.Interface[T]

	switch len(in) {
	case 1:
		section = in[0]
	default:
		section = set.Intersection(in...)
	}

	switch len(out) {
	case 0:
		if len(in) == 1 {
			section = section.Clone()
		}
	case 1:
		section = section.Difference(out[0])
	default:
		section = section.Difference(set.Union(out...))
	}

	return section
}

func (c *computer[T]) project(section set.Interface[T]) Value[T] {
	v := Value[T]{Mode: c.mode}

	switch c.mode {
	case ModeSet:
		v.Set = section
	case ModeCount:
		v.Count = section.Length()
	case ModeFraction:
		v.Fraction = decimal.NewFromInt(int64(section.Length())).DivRound(c.total, FractionPrecision)
	}

	return v
}
