// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package contract

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/hashicorp/go-multierror"
)

// Intersect composes cs left to right: each contract refines the result of
// the previous one. With no contracts it accepts everything unchanged.
func Intersect(cs ...Contract[any]) Contract[any] {
	cs = slices.Clone(cs)
	return func(v any) (any, error) {
		var err error
		for _, c := range cs {
			if v, err = c(v); err != nil {
				return nil, err
			}
		}
		return v, nil
	}
}

// Union tries cs in order against the original input and returns the first
// success. Member failures are collected and reported together only when
// every alternative has failed.
//
// The first match wins, not the most specific one.
func Union[T any](cs ...Contract[T]) Contract[T] {
	cs = slices.Clone(cs)
	expected := fmt.Sprintf("one of %d alternatives", len(cs))
	return func(v any) (T, error) {
		var errs *multierror.Error
		for _, c := range cs {
			t, err := c(v)
			if err == nil {
				return t, nil
			}
			errs = multierror.Append(errs, err)
		}
		if errs != nil {
			errs.ErrorFormat = alternativesFormat
		}
		var zero T
		return zero, &ValidationError{
			Kind:         KindUnionExhausted,
			Expected:     expected,
			Actual:       v,
			Alternatives: errs,
		}
	}
}

// Pullback accepts tuples whose components agree once mapped through
// derivers: derivers[i] is applied to element i, and every derived value
// must equal the first. The original tuple, not the derived values, is
// returned. A derived value that cannot be compared, such as a slice
// derived through D = any, is a type mismatch at its position.
func Pullback[D comparable](derivers ...func(any) D) Contract[[]any] {
	cs := make([]Contract[any], len(derivers))
	for i, f := range derivers {
		cs[i] = func(x any) (any, error) { return f(x), nil }
	}
	derive := Tuple(cs...)
	return func(v any) ([]any, error) {
		ds, err := derive(v)
		if err != nil {
			return nil, err
		}
		for i, d := range ds {
			if !comparableValue(d) {
				return nil, annotate(typeMismatch("comparable derived value", d), index(i))
			}
		}
		for i := 1; i < len(ds); i++ {
			if ds[i] != ds[0] {
				return nil, &ValidationError{
					Kind:     KindPullbackMismatch,
					Expected: fmt.Sprintf("%v", ds[0]),
					Actual:   ds[i],
					Position: i,
				}
			}
		}
		xs, _ := elements(v)
		return xs, nil
	}
}

// comparableValue reports whether v can be compared with == without
// panicking.
func comparableValue(v any) bool {
	return v == nil || reflect.ValueOf(v).Comparable()
}
