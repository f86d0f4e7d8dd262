// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package contract_test

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"code.hybscloud.com/contract"
)

func squareHom() *contract.Hom[int64] {
	return contract.MustHom([]contract.Param{contract.Req(contract.SafeInt)}, contract.SafeInt)
}

func countingSquare(calls *atomic.Int64) contract.Method {
	return func(_ any, args ...any) (any, error) {
		calls.Add(1)
		n := args[0].(int64)
		return n * n, nil
	}
}

func TestMemoizeComputesOnce(t *testing.T) {
	var calls atomic.Int64
	m, err := contract.Memoize[int64](squareHom(), countingSquare(&calls))
	require.NoError(t, err)

	first, err := m.Call(7)
	require.NoError(t, err)
	second, err := m.Call(7)
	require.NoError(t, err)

	require.Equal(t, int64(49), first)
	require.Equal(t, first, second)
	require.Equal(t, int64(1), calls.Load())

	hits, misses := m.Stats()
	require.Equal(t, uint64(1), hits)
	require.Equal(t, uint64(1), misses)
	require.Equal(t, 1, m.Len())
}

func TestMemoizeDistinctKeys(t *testing.T) {
	var calls atomic.Int64
	m, err := contract.Memoize[int64](squareHom(), countingSquare(&calls))
	require.NoError(t, err)

	for i := range int64(10) {
		r, err := m.Call(i % 5)
		require.NoError(t, err)
		require.Equal(t, (i%5)*(i%5), r)
	}
	require.Equal(t, int64(5), calls.Load())
	require.Equal(t, 5, m.Len())

	m.Purge()
	require.Equal(t, 0, m.Len())
	_, err = m.Call(1)
	require.NoError(t, err)
	require.Equal(t, int64(6), calls.Load())
}

func TestMemoizeReturnsComputedValue(t *testing.T) {
	m, err := contract.Memoize[string](
		contract.MustHom([]contract.Param{contract.Req(contract.String)}, contract.String),
		contract.Lift1(func(s string) string { return s + "!" }),
	)
	require.NoError(t, err)

	for range 2 {
		r, err := m.Call("hi")
		require.NoError(t, err)
		require.Equal(t, "hi!", r, "the cached value is the result, not the key")
	}
}

func TestMemoizeDoesNotCacheFailures(t *testing.T) {
	var calls atomic.Int64
	fail := true
	m, err := contract.Memoize[int64](squareHom(), func(_ any, args ...any) (any, error) {
		calls.Add(1)
		if fail {
			return nil, errors.New("transient")
		}
		return args[0], nil
	})
	require.NoError(t, err)

	_, err = m.Call(3)
	require.EqualError(t, err, "transient")
	require.Equal(t, 0, m.Len())

	fail = false
	r, err := m.Call(3)
	require.NoError(t, err)
	require.Equal(t, int64(3), r)
	require.Equal(t, int64(2), calls.Load())
}

func TestMemoizeValidatesOnMiss(t *testing.T) {
	var calls atomic.Int64
	m, err := contract.Memoize[int64](squareHom(), countingSquare(&calls))
	require.NoError(t, err)

	_, err = m.Call(1 << 60)
	require.ErrorIs(t, err, contract.ErrRangeMismatch)
	require.Equal(t, int64(0), calls.Load())
}

func TestMemoizeRequiresUnaryHom(t *testing.T) {
	var calls atomic.Int64
	binary := contract.MustHom(
		[]contract.Param{contract.Req(contract.SafeInt), contract.Req(contract.SafeInt)},
		contract.SafeInt,
	)
	_, err := contract.Memoize[int64](binary, countingSquare(&calls))
	require.ErrorIs(t, err, contract.ErrConstruction)

	optional := contract.MustHom([]contract.Param{contract.Opt(contract.SafeInt)}, contract.SafeInt)
	_, err = contract.MemoizeHashed(optional, countingSquare(&calls))
	require.ErrorIs(t, err, contract.ErrConstruction)

	_, err = contract.Memoize[int64](squareHom(), nil)
	require.ErrorIs(t, err, contract.ErrConstruction)
}

func TestMemoizeInstancesDoNotShare(t *testing.T) {
	var calls atomic.Int64
	a, err := contract.Memoize[int64](squareHom(), countingSquare(&calls))
	require.NoError(t, err)
	b, err := contract.Memoize[int64](squareHom(), countingSquare(&calls))
	require.NoError(t, err)

	_, _ = a.Call(2)
	_, _ = b.Call(2)
	require.Equal(t, int64(2), calls.Load())
}

func TestMemoizePointerIdentity(t *testing.T) {
	type box struct{ n int64 }
	var calls atomic.Int64
	h := contract.MustHom([]contract.Param{contract.Req(contract.InstanceOf[*box]())}, contract.SafeInt)
	m, err := contract.Memoize[*box](h, func(_ any, args ...any) (any, error) {
		calls.Add(1)
		return args[0].(*box).n, nil
	})
	require.NoError(t, err)

	x, y := &box{1}, &box{1}
	_, _ = m.Call(x)
	_, _ = m.Call(x)
	_, _ = m.Call(y)
	require.Equal(t, int64(2), calls.Load(), "pointers are keyed by identity")
}

func TestMemoizeHashed(t *testing.T) {
	var calls atomic.Int64
	sum := contract.MustHom([]contract.Param{contract.Req(contract.ArrayOf(contract.SafeInt))}, contract.SafeInt)
	m, err := contract.MemoizeHashed(sum, func(_ any, args ...any) (any, error) {
		calls.Add(1)
		var total int64
		for _, n := range args[0].([]int64) {
			total += n
		}
		return total, nil
	})
	require.NoError(t, err)

	r, err := m.Call([]int{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, int64(6), r)

	r, err = m.Call([]int{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, int64(6), r)
	require.Equal(t, int64(1), calls.Load(), "structurally equal slices share an entry")

	_, err = m.Call([]int{3, 2, 1})
	require.NoError(t, err)
	require.Equal(t, int64(2), calls.Load())

	_, err = m.Call(func() {})
	require.ErrorIs(t, err, contract.ErrTypeMismatch)
}

func TestMemoizeWithCapacity(t *testing.T) {
	var calls atomic.Int64
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	m, err := contract.Memoize[int64](squareHom(), countingSquare(&calls),
		contract.WithCapacity(2), contract.WithLogger(logger))
	require.NoError(t, err)

	for _, k := range []int64{1, 2, 3} {
		_, err := m.Call(k)
		require.NoError(t, err)
	}
	require.Equal(t, 2, m.Len())

	_, err = m.Call(1)
	require.NoError(t, err)
	require.Equal(t, int64(4), calls.Load(), "the least recently used key was evicted")

	require.Contains(t, logs.String(), "memo evict")
	require.Contains(t, logs.String(), "memo miss")
}

func TestMemoizeConcurrentFirstAccess(t *testing.T) {
	var calls atomic.Int64
	release := make(chan struct{})
	var started sync.Once
	entered := make(chan struct{})
	m, err := contract.Memoize[int64](squareHom(), func(_ any, args ...any) (any, error) {
		calls.Add(1)
		started.Do(func() { close(entered) })
		<-release
		n := args[0].(int64)
		return n * n, nil
	})
	require.NoError(t, err)

	var g errgroup.Group
	results := make([]int64, 8)
	for i := range results {
		g.Go(func() error {
			r, err := m.Call(9)
			results[i] = r
			return err
		})
	}
	<-entered
	close(release)
	require.NoError(t, g.Wait())

	for _, r := range results {
		require.Equal(t, int64(81), r)
	}
	require.Equal(t, int64(1), calls.Load())
}

func TestMemoizeHashedKeepsTypesApart(t *testing.T) {
	var calls atomic.Int64
	show := contract.MustHom([]contract.Param{contract.Req(contract.Any)}, contract.String)
	m, err := contract.MemoizeHashed(show, func(_ any, args ...any) (any, error) {
		calls.Add(1)
		return fmt.Sprintf("%#v", args[0]), nil
	})
	require.NoError(t, err)

	cases := []struct {
		arg  any
		want string
	}{
		{"5", `"5"`},
		{int8(53), `53`},
		{true, `true`},
		{"\x01", `"\x01"`},
		{nil, `<nil>`},
		{int8(0), `0`},
		{[]any{"5"}, `[]interface {}{"5"}`},
		{[]any{int8(53)}, `[]interface {}{53}`},
	}
	for _, tc := range cases {
		got, err := m.Call(tc.arg)
		require.NoError(t, err)
		require.Equal(t, tc.want, got, "%#v", tc.arg)
	}
	require.Equal(t, int64(len(cases)), calls.Load())

	for _, tc := range cases {
		got, err := m.Call(tc.arg)
		require.NoError(t, err)
		require.Equal(t, tc.want, got, "%#v", tc.arg)
	}
	require.Equal(t, int64(len(cases)), calls.Load(), "repeated arguments hit the cache")
}

func TestMemoizeHashedValidatesEveryType(t *testing.T) {
	shout := contract.MustHom([]contract.Param{contract.Req(contract.String)}, contract.String)
	m, err := contract.MemoizeHashed(shout, contract.Lift1(func(s string) string { return s + "!" }))
	require.NoError(t, err)

	r, err := m.Call("5")
	require.NoError(t, err)
	require.Equal(t, "5!", r)

	_, err = m.Call(int8(53))
	require.ErrorIs(t, err, contract.ErrTypeMismatch)
	require.Equal(t, 1, m.Len())
}

func TestMemoizeRejectsIncomparableKeys(t *testing.T) {
	var calls atomic.Int64
	h := contract.MustHom([]contract.Param{contract.Req(contract.Any)}, contract.Any)
	m, err := contract.Memoize[any](h, func(_ any, args ...any) (any, error) {
		calls.Add(1)
		return args[0], nil
	})
	require.NoError(t, err)

	_, err = m.Call([]int{1})
	require.ErrorIs(t, err, contract.ErrTypeMismatch)

	type holder struct{ v any }
	_, err = m.Call(holder{v: map[string]int{}})
	require.ErrorIs(t, err, contract.ErrTypeMismatch)
	require.Equal(t, int64(0), calls.Load())

	r, err := m.Call(holder{v: 1})
	require.NoError(t, err)
	require.Equal(t, holder{v: 1}, r)
}
