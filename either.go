// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package contract

// Either is a binary coproduct value: exactly one of Left or Right.
// EitherOf builds it from a tagged pair, Try from a contract outcome.
type Either[L, R any] struct {
	isRight bool
	left    L
	right   R
}

// Left injects l at tag 0.
func Left[L, R any](l L) Either[L, R] {
	return Either[L, R]{left: l}
}

// Right injects r at tag 1.
func Right[L, R any](r R) Either[L, R] {
	return Either[L, R]{isRight: true, right: r}
}

func (e Either[L, R]) IsLeft() bool  { return !e.isRight }
func (e Either[L, R]) IsRight() bool { return e.isRight }

// GetLeft returns the Left value and true, or zero and false.
func (e Either[L, R]) GetLeft() (L, bool) {
	if e.isRight {
		var zero L
		return zero, false
	}
	return e.left, true
}

// GetRight returns the Right value and true, or zero and false.
func (e Either[L, R]) GetRight() (R, bool) {
	if !e.isRight {
		var zero R
		return zero, false
	}
	return e.right, true
}

// Pair returns the (tag, payload) representation accepted by Coproduct.
func (e Either[L, R]) Pair() []any {
	if e.isRight {
		return Inj(1, e.right)
	}
	return Inj(0, e.left)
}

// MatchEither eliminates e with onLeft or onRight.
func MatchEither[L, R, T any](e Either[L, R], onLeft func(L) T, onRight func(R) T) T {
	if e.isRight {
		return onRight(e.right)
	}
	return onLeft(e.left)
}

// MapEither applies f to a Right value.
func MapEither[L, R, S any](e Either[L, R], f func(R) S) Either[L, S] {
	if e.isRight {
		return Right[L](f(e.right))
	}
	return Left[L, S](e.left)
}

// FlatMapEither sequences f after a Right value.
func FlatMapEither[L, R, S any](e Either[L, R], f func(R) Either[L, S]) Either[L, S] {
	if e.isRight {
		return f(e.right)
	}
	return Left[L, S](e.left)
}
