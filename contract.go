// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package contract

// Contract validates a dynamic value and returns it, possibly normalized,
// as a T. A failed check returns a non-nil error, usually a *ValidationError.
//
// Contracts are pure functions of their argument; only Memo keeps state.
type Contract[T any] func(v any) (T, error)

// Erase forgets the static result type of c.
func Erase[T any](c Contract[T]) Contract[any] {
	return func(v any) (any, error) {
		t, err := c(v)
		if err != nil {
			return nil, err
		}
		return t, nil
	}
}

// Map applies a pure function to the result of c.
func Map[A, B any](c Contract[A], f func(A) B) Contract[B] {
	return func(v any) (B, error) {
		a, err := c(v)
		if err != nil {
			var zero B
			return zero, err
		}
		return f(a), nil
	}
}

// Then runs c and feeds its result to next. It is the binary form of
// Intersect: next refines what c already accepted.
func Then[B any](c Contract[any], next Contract[B]) Contract[B] {
	return func(v any) (B, error) {
		a, err := c(v)
		if err != nil {
			var zero B
			return zero, err
		}
		return next(a)
	}
}

// Validate applies c to v.
func Validate[T any](c Contract[T], v any) (T, error) {
	return c(v)
}

// Must applies c to v and panics on failure.
func Must[T any](c Contract[T], v any) T {
	t, err := c(v)
	if err != nil {
		panic(err)
	}
	return t
}

// Try applies c to v and folds the outcome into an Either:
// Left holds the failure, Right the validated value.
func Try[T any](c Contract[T], v any) Either[error, T] {
	t, err := c(v)
	if err != nil {
		return Left[error, T](err)
	}
	return Right[error](t)
}
