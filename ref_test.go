// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package contract_test

import (
	"errors"
	"sync"
	"testing"

	"code.hybscloud.com/contract"
)

func TestRefBeforeSet(t *testing.T) {
	var r contract.Ref[int32]
	_, err := r.Contract()(1)
	if !errors.Is(err, contract.ErrConstruction) {
		t.Fatalf("got %v, want ErrConstruction", err)
	}
}

func TestRefDefers(t *testing.T) {
	var r contract.Ref[int32]
	c := r.Contract()
	r.Set(contract.Int32)

	got, err := c(7.0)
	if err != nil {
		t.Fatal(err)
	}
	if got != 7 {
		t.Fatalf("got %d, want 7", got)
	}
}

func TestRefPanicOnReuse(t *testing.T) {
	var r contract.Ref[int32]
	r.Set(contract.Int32)

	defer func() {
		rec := recover()
		if rec == nil {
			t.Fatal("expected panic on second Set")
		}
		if s, ok := rec.(string); !ok || s != "contract: ref set twice" {
			t.Fatalf("unexpected panic message: %v", rec)
		}
	}()

	r.Set(contract.Nat32)
}

func TestRefTrySet(t *testing.T) {
	var r contract.Ref[int32]
	if !r.TrySet(contract.Nat32) {
		t.Fatal("expected first TrySet to succeed")
	}
	if r.TrySet(contract.Int32) {
		t.Fatal("expected second TrySet to fail")
	}
	if _, err := r.Contract()(-1); !errors.Is(err, contract.ErrRangeMismatch) {
		t.Fatalf("first contract must stay in place, got %v", err)
	}
}

func TestRefRecursiveList(t *testing.T) {
	// list := (0, nil) | (1, [int32, list])
	var list contract.Ref[[]any]
	list.Set(contract.Coproduct(
		contract.Null,
		contract.Erase(contract.Tuple(contract.Erase(contract.Int32), contract.Erase(list.Contract()))),
	))

	nilList := contract.Inj(0, nil)
	cons := func(x any, rest []any) []any { return contract.Inj(1, []any{x, rest}) }

	if _, err := list.Contract()(cons(1, cons(2, nilList))); err != nil {
		t.Fatal(err)
	}
	_, err := list.Contract()(cons(1, cons("two", nilList)))
	if !errors.Is(err, contract.ErrTypeMismatch) {
		t.Fatalf("got %v, want ErrTypeMismatch", err)
	}
}

func TestRefConcurrentTrySet(t *testing.T) {
	var r contract.Ref[any]
	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0

	for range 100 {
		wg.Go(func() {
			if r.TrySet(contract.Any) {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		})
	}
	wg.Wait()

	if wins != 1 {
		t.Fatalf("got %d winners, want exactly 1", wins)
	}
}

func TestRefVisibleAfterConcurrentTrySet(t *testing.T) {
	var r contract.Ref[int32]
	var wg sync.WaitGroup
	errs := make([]error, 100)

	for i := range errs {
		wg.Go(func() {
			r.TrySet(contract.Int32)
			_, errs[i] = r.Contract()(1)
		})
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("goroutine %d: got %v after a successful set", i, err)
		}
	}
}
