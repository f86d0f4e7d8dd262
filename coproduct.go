// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package contract

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Coproduct values are always the literal pair []any{tag, payload}.

// Inj builds the coproduct value carrying v at tag.
func Inj(tag, v any) []any { return []any{tag, v} }

const pairExpected = "(tag, payload) pair"

func pair(v any) (tag, payload any, err error) {
	xs, ok := elements(v)
	if !ok {
		return nil, nil, typeMismatch(pairExpected, v)
	}
	if len(xs) != 2 {
		return nil, nil, mismatch(KindArityMismatch, pairExpected, v)
	}
	return xs[0], xs[1], nil
}

// position returns the integral tag of a positional coproduct of n
// alternatives.
func position(tag any, n int) (int, error) {
	i, err := integral(tag, "tag", 0, int64(n)-1)
	if err != nil {
		return 0, annotate(mismatch(KindTagOutOfRange, fmt.Sprintf("tag in [0, %d)", n), tag), index(0))
	}
	return int(i), nil
}

// Coproduct is the positional coproduct of cs. It accepts pairs whose tag
// is an integer i with 0 <= i < len(cs) and whose payload satisfies cs[i],
// and returns []any{i, validated payload}.
func Coproduct(cs ...Contract[any]) Contract[[]any] {
	cs = slices.Clone(cs)
	return func(v any) ([]any, error) {
		tag, payload, err := pair(v)
		if err != nil {
			return nil, err
		}
		i, err := position(tag, len(cs))
		if err != nil {
			return nil, err
		}
		p, err := cs[i](payload)
		if err != nil {
			return nil, annotate(err, index(1))
		}
		return Inj(i, p), nil
	}
}

// NamedCoproduct is the coproduct of cs tagged by name. It accepts pairs
// whose tag is a key of cs and whose payload satisfies that key's contract.
func NamedCoproduct(cs map[string]Contract[any]) Contract[[]any] {
	cs = maps.Clone(cs)
	expected := "tag in {" + strings.Join(slices.Sorted(maps.Keys(cs)), ", ") + "}"
	return func(v any) ([]any, error) {
		tag, payload, err := pair(v)
		if err != nil {
			return nil, err
		}
		name, isString := tag.(string)
		c, ok := cs[name]
		if !isString || !ok {
			return nil, annotate(mismatch(KindUnknownTag, expected, tag), index(0))
		}
		p, err := c(payload)
		if err != nil {
			return nil, annotate(err, index(1))
		}
		return Inj(name, p), nil
	}
}

// EitherOf is the binary positional coproduct of l and r, folded into an
// Either: tag 0 validates with l into Left, tag 1 with r into Right.
func EitherOf[L, R any](l Contract[L], r Contract[R]) Contract[Either[L, R]] {
	return func(v any) (Either[L, R], error) {
		tag, payload, err := pair(v)
		if err != nil {
			return Either[L, R]{}, err
		}
		i, err := position(tag, 2)
		if err != nil {
			return Either[L, R]{}, err
		}
		if i == 0 {
			x, err := l(payload)
			if err != nil {
				return Either[L, R]{}, annotate(err, index(1))
			}
			return Left[L, R](x), nil
		}
		y, err := r(payload)
		if err != nil {
			return Either[L, R]{}, annotate(err, index(1))
		}
		return Right[L](y), nil
	}
}
