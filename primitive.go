// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package contract

import (
	"math"
	"math/big"
	"reflect"
	"regexp"
	"time"
)

// Primitive contracts check one concrete property of a value.
// On success they return the value unchanged, except the numeric range
// contracts, which normalize to a fixed Go integer type.

// Symbol is a unique token. Symbols compare equal only to themselves.
type Symbol struct{ desc string }

// NewSymbol returns a fresh symbol with a description used for printing.
func NewSymbol(desc string) *Symbol { return &Symbol{desc: desc} }

func (s *Symbol) String() string { return "Symbol(" + s.desc + ")" }

// TypeOf returns the primitive kind of v: "undefined", "boolean", "number",
// "bigint", "string", "symbol", "function" or "object".
func TypeOf(v any) string {
	switch v.(type) {
	case nil:
		return "undefined"
	case *Symbol:
		return "symbol"
	case *big.Int:
		return "bigint"
	case Callable:
		return "function"
	}
	switch k := reflect.TypeOf(v).Kind(); {
	case k == reflect.Bool:
		return "boolean"
	case k == reflect.String:
		return "string"
	case k == reflect.Func:
		return "function"
	case isNumberKind(k):
		return "number"
	}
	return "object"
}

// ClassOf returns the structural class label of v. Besides the labels of
// TypeOf it distinguishes "null" (a nil pointer, map, slice, channel or
// func), "array", "date", "regexp" and "promise" (a channel).
func ClassOf(v any) string {
	if v == nil {
		return "undefined"
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		if rv.IsNil() {
			return "null"
		}
	}
	switch v.(type) {
	case time.Time, *time.Time:
		return "date"
	case *regexp.Regexp:
		return "regexp"
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Chan:
		return "promise"
	}
	return TypeOf(v)
}

func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// TypeTag accepts values whose TypeOf is name.
func TypeTag(name string) Contract[any] {
	return func(v any) (any, error) {
		if TypeOf(v) != name {
			return nil, typeMismatch(name, v)
		}
		return v, nil
	}
}

// ClassTag accepts values whose ClassOf is name.
func ClassTag(name string) Contract[any] {
	return func(v any) (any, error) {
		if ClassOf(v) != name {
			return nil, typeMismatch(name, v)
		}
		return v, nil
	}
}

// InstanceOf accepts values of the nominal type T. When T is an interface
// type, any value implementing it is accepted.
func InstanceOf[T any]() Contract[T] {
	name := reflect.TypeFor[T]().String()
	return func(v any) (T, error) {
		t, ok := v.(T)
		if !ok {
			var zero T
			return zero, typeMismatch(name, v)
		}
		return t, nil
	}
}

// Any accepts every value unchanged.
func Any(v any) (any, error) { return v, nil }

// Undefined accepts only the absent value, an untyped nil.
func Undefined(v any) (any, error) {
	if v != nil {
		return nil, typeMismatch("undefined", v)
	}
	return nil, nil
}

// Null accepts nil of any nilable type, including an untyped nil.
func Null(v any) (any, error) {
	if ClassOf(v) != "null" && v != nil {
		return nil, typeMismatch("null", v)
	}
	return v, nil
}

// NaN accepts a floating point not-a-number.
func NaN(v any) (float64, error) {
	rv := reflect.ValueOf(v)
	if v == nil || (rv.Kind() != reflect.Float32 && rv.Kind() != reflect.Float64) || !math.IsNaN(rv.Float()) {
		return 0, typeMismatch("NaN", v)
	}
	return rv.Float(), nil
}

// String accepts Go strings.
func String(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", typeMismatch("string", v)
	}
	return s, nil
}

// Bool accepts Go booleans.
func Bool(v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, typeMismatch("boolean", v)
	}
	return b, nil
}

// Number accepts any numeric value and returns it as a float64.
func Number(v any) (float64, error) {
	if v == nil {
		return 0, typeMismatch("number", v)
	}
	rv := reflect.ValueOf(v)
	switch k := rv.Kind(); {
	case k >= reflect.Int && k <= reflect.Int64:
		return float64(rv.Int()), nil
	case k >= reflect.Uint && k <= reflect.Uintptr:
		return float64(rv.Uint()), nil
	case k == reflect.Float32 || k == reflect.Float64:
		return rv.Float(), nil
	}
	return 0, typeMismatch("number", v)
}

// Matches accepts strings matched by re.
func Matches(re *regexp.Regexp) Contract[string] {
	expected := "string matching /" + re.String() + "/"
	return func(v any) (string, error) {
		s, ok := v.(string)
		if !ok || !re.MatchString(s) {
			return "", typeMismatch(expected, v)
		}
		return s, nil
	}
}

const maxSafeInteger = 1<<53 - 1

// Int32 accepts integral numbers representable as a signed 32-bit integer.
func Int32(v any) (int32, error) {
	n, err := integral(v, "int32", math.MinInt32, math.MaxInt32)
	return int32(n), err
}

// Nat32 accepts non-negative integral numbers representable as a signed
// 32-bit integer.
func Nat32(v any) (int32, error) {
	n, err := integral(v, "nat32", 0, math.MaxInt32)
	return int32(n), err
}

// SafeInt accepts integral numbers in [-(2^53-1), 2^53-1], the range where
// float64 represents every integer exactly.
func SafeInt(v any) (int64, error) {
	return integral(v, "safe integer", -maxSafeInteger, maxSafeInteger)
}

// SafeNat accepts integral numbers in [0, 2^53-1].
func SafeNat(v any) (int64, error) {
	return integral(v, "safe natural", 0, maxSafeInteger)
}

// integral returns v as an int64 if it is a number whose value is an
// integer in [lo, hi]. A float with a fractional part, NaN or an infinity
// fails the round trip and is a range mismatch.
func integral(v any, name string, lo, hi int64) (int64, error) {
	if v == nil {
		return 0, typeMismatch("number", v)
	}
	rv := reflect.ValueOf(v)
	var n int64
	switch k := rv.Kind(); {
	case k >= reflect.Int && k <= reflect.Int64:
		n = rv.Int()
	case k >= reflect.Uint && k <= reflect.Uintptr:
		u := rv.Uint()
		if u > uint64(hi) {
			return 0, mismatch(KindRangeMismatch, name, v)
		}
		n = int64(u)
	case k == reflect.Float32 || k == reflect.Float64:
		f := rv.Float()
		if f != math.Trunc(f) || f < float64(lo) || f > float64(hi) {
			return 0, mismatch(KindRangeMismatch, name, v)
		}
		n = int64(f)
	default:
		return 0, typeMismatch("number", v)
	}
	if n < lo || n > hi {
		return 0, mismatch(KindRangeMismatch, name, v)
	}
	return n, nil
}
