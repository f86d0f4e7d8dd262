// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package contract

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Product contracts validate fixed-shape aggregates component by component.
// Validation stops at the first failing component, whose error carries
// the component's location in its Path.

func index(i int) string    { return "[" + strconv.Itoa(i) + "]" }
func field(k string) string { return "." + k }

// elements views a slice or array as []any. A []any is returned as is.
func elements(v any) ([]any, bool) {
	if xs, ok := v.([]any); ok {
		return xs, true
	}
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		xs := make([]any, rv.Len())
		for i := range xs {
			xs[i] = rv.Index(i).Interface()
		}
		return xs, true
	}
	return nil, false
}

// entries views a string-keyed map as map[string]any.
// A map[string]any is returned as is.
func entries(v any) (map[string]any, bool) {
	if m, ok := v.(map[string]any); ok {
		return m, true
	}
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	m := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		m[iter.Key().String()] = iter.Value().Interface()
	}
	return m, true
}

// ArrayOf validates every element of a slice or array with c and returns
// the results as a new slice.
func ArrayOf[T any](c Contract[T]) Contract[[]T] {
	return func(v any) ([]T, error) {
		xs, ok := elements(v)
		if !ok {
			return nil, typeMismatch("array", v)
		}
		out := make([]T, len(xs))
		for i, x := range xs {
			t, err := c(x)
			if err != nil {
				return nil, annotate(err, index(i))
			}
			out[i] = t
		}
		return out, nil
	}
}

// MapOf validates every value of a string-keyed map with c and returns the
// results as a new map. Keys are visited in sorted order.
func MapOf[T any](c Contract[T]) Contract[map[string]T] {
	return func(v any) (map[string]T, error) {
		m, ok := entries(v)
		if !ok {
			return nil, typeMismatch("object", v)
		}
		out := make(map[string]T, len(m))
		for _, k := range slices.Sorted(maps.Keys(m)) {
			t, err := c(m[k])
			if err != nil {
				return nil, annotate(err, field(k))
			}
			out[k] = t
		}
		return out, nil
	}
}

// Tuple is the positional product of cs: it accepts sequences of exactly
// len(cs) elements and applies cs[i] to element i. The result is a new
// slice; the input is left untouched.
func Tuple(cs ...Contract[any]) Contract[[]any] {
	cs = slices.Clone(cs)
	expected := fmt.Sprintf("tuple of %d", len(cs))
	return func(v any) ([]any, error) {
		xs, ok := elements(v)
		if !ok {
			return nil, typeMismatch(expected, v)
		}
		if len(xs) != len(cs) {
			return nil, mismatch(KindArityMismatch, expected, v)
		}
		out := make([]any, len(cs))
		for i, c := range cs {
			x, err := c(xs[i])
			if err != nil {
				return nil, annotate(err, index(i))
			}
			out[i] = x
		}
		return out, nil
	}
}

// Fields maps record field names to their contracts.
type Fields map[string]Contract[any]

// Record is the named product of fields with copy semantics: it accepts
// string-keyed maps with exactly the keys of fields and returns a new map
// holding the validated values. The input is never modified.
func Record(fields Fields) Contract[map[string]any] {
	return record(fields, false)
}

// RecordInPlace is the named product of fields with identity-preserving
// semantics: it accepts a map[string]any with exactly the keys of fields,
// stores the validated values back into it and returns the same map.
// The map is written only if every field passes.
func RecordInPlace(fields Fields) Contract[map[string]any] {
	return record(fields, true)
}

func record(fields Fields, inPlace bool) Contract[map[string]any] {
	fields = maps.Clone(fields)
	keys := slices.Sorted(maps.Keys(fields))
	expected := "record {" + strings.Join(keys, ", ") + "}"
	return func(v any) (map[string]any, error) {
		var (
			m  map[string]any
			ok bool
		)
		if inPlace {
			m, ok = v.(map[string]any)
		} else {
			m, ok = entries(v)
		}
		if !ok {
			return nil, typeMismatch(expected, v)
		}
		if err := sameKeys(m, keys, expected); err != nil {
			return nil, err
		}
		out := make(map[string]any, len(keys))
		for _, k := range keys {
			x, err := fields[k](m[k])
			if err != nil {
				return nil, annotate(err, field(k))
			}
			out[k] = x
		}
		if !inPlace {
			return out, nil
		}
		maps.Copy(m, out)
		return m, nil
	}
}

// sameKeys reports the first missing, then the first extra key of m.
func sameKeys(m map[string]any, keys []string, expected string) error {
	for _, k := range keys {
		if _, ok := m[k]; !ok {
			return annotate(mismatch(KindArityMismatch, expected, m), field(k))
		}
	}
	if len(m) == len(keys) {
		return nil
	}
	for _, k := range slices.Sorted(maps.Keys(m)) {
		if _, found := slices.BinarySearch(keys, k); !found {
			return annotate(mismatch(KindArityMismatch, expected, m), field(k))
		}
	}
	return nil
}

// Decode validates with rec and decodes the record into a T, usually a
// struct. Struct fields are matched by their `contract` tag, or by name
// ignoring case; every record key must land in a field.
func Decode[T any](rec Contract[map[string]any]) Contract[T] {
	name := reflect.TypeFor[T]().String()
	return func(v any) (T, error) {
		var out T
		m, err := rec(v)
		if err != nil {
			return out, err
		}
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:      &out,
			TagName:     "contract",
			ErrorUnused: true,
		})
		if err != nil {
			return out, err
		}
		if err := dec.Decode(m); err != nil {
			var zero T
			return zero, typeMismatch(name, m)
		}
		return out, nil
	}
}
