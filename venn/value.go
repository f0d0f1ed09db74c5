package venn

import (
	"encoding/json"
	"fmt"
	"iter"
	"slices"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rdeusser/venn/set"
)

// Value is a section projected according to Mode. Only the field matching
// Mode is set.
type Value[T comparable] struct {
	Mode     Mode
	Set      set.Interface[T]
	Count    int
	Fraction decimal.Decimal
}

// String renders the value for use as a diagram label: sets as "{a, b}" with
// elements in printed order, counts as integers and fractions as decimals.
func (v Value[T]) String() string {
	switch v.Mode {
	case ModeSet:
		return "{" + strings.Join(v.elements(), ", ") + "}"
	case ModeCount:
		return strconv.Itoa(v.Count)
	case ModeFraction:
		return v.Fraction.String()
	}
	return ""
}

// MarshalJSON encodes sets as arrays, counts as numbers and fractions as
// decimal strings.
func (v Value[T]) MarshalJSON() ([]byte, error) {
	switch v.Mode {
	case ModeSet:
		items := v.Set.ToSlice()
		slices.SortFunc(items, func(a, b T) int {
			return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
		})
		return json.Marshal(items)
	case ModeCount:
		return json.Marshal(v.Count)
	case ModeFraction:
		return json.Marshal(v.Fraction)
	}
	return nil, fmt.Errorf("%w: %d", ErrInvalidMode, int(v.Mode))
}

func (v Value[T]) elements() []string {
	if v.Set == nil {
		return nil
	}

	items := make([]string, 0, v.Set.Length())
	v.Set.ForEach(func(item T) bool {
		items = append(items, fmt.Sprint(item))
		return false
	})
	slices.Sort(items)

	return items
}

// Section pairs a key with its value.
type Section[T comparable] struct {
	Key   Key      `json:"key"`
	Value Value[T] `json:"value"`
}

// Collect drains a section sequence into a slice, preserving order.
func Collect[T comparable](seq iter.Seq2[Key, Value[T]]) []Section[T] {
	var sections []Section[T]
	for key, value := range seq {
		sections = append(sections, Section[T]{Key: key, Value: value})
	}
	return sections
}
