package venn

import (
	"fmt"
	"reflect"
)

// Coerce converts run-time typed inputs into element slices. Slices and
// arrays contribute their elements, maps their keys, strings their
// characters, and values with a ToSlice() []any method (such as a
// set.Interface[any]) the result of that method. Elements must be
// comparable.
//
// An input that is none of these, or that holds an element which cannot be a
// set member, fails with a *ValidationError.
func Coerce(data []any) ([][]any, error) {
	coerced := make([][]any, len(data))

	for i, d := range data {
		items, err := coerce(d)
		if err != nil {
			return nil, &ValidationError{Index: i, Reason: err.Error()}
		}
		coerced[i] = items
	}

	return coerced, nil
}

func coerce(d any) ([]any, error) {
	if isNil(d) {
		return nil, fmt.Errorf("nil is not a collection")
	}

	if s, ok := d.(interface{ ToSlice() []any }); ok {
		return checkComparable(s.ToSlice())
	}

	v := reflect.ValueOf(d)

	var items []any

	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		items = make([]any, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			items = append(items, v.Index(i).Interface())
		}
	case reflect.Map:
		items = make([]any, 0, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			items = append(items, iter.Key().Interface())
		}
	case reflect.String:
		for _, r := range v.String() {
			items = append(items, string(r))
		}
	default:
		return nil, fmt.Errorf("%T is not a collection", d)
	}

	return checkComparable(items)
}

// isNil reports whether v is nil or a nil pointer held in an interface. Nil
// slices and maps are empty collections, not nil.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

func checkComparable(items []any) ([]any, error) {
	for _, item := range items {
		if item == nil {
			continue
		}
		if !reflect.ValueOf(item).Comparable() {
			return nil, fmt.Errorf("element of type %T cannot be a set member", item)
		}
	}
	return items, nil
}
