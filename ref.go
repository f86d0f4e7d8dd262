// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package contract

import (
	"sync/atomic"
)

// Ref is a forward reference to a contract that is set after construction.
// It resolves self-referential contracts, such as an interface whose
// methods check their receiver against the interface itself.
//
// A Ref can be set at most once; subsequent attempts panic (Set) or
// return false (TrySet). The zero value is ready to use.
type Ref[T any] struct {
	c atomic.Pointer[Contract[T]]
}

// Set stores c. Panics if the reference has already been set.
func (r *Ref[T]) Set(c Contract[T]) {
	if !r.TrySet(c) {
		panic("contract: ref set twice")
	}
}

// TrySet stores c and returns true, or returns false if already set.
// Once TrySet has returned true, Contract sees c.
func (r *Ref[T]) TrySet(c Contract[T]) bool {
	return r.c.CompareAndSwap(nil, &c)
}

// Contract returns a contract that defers to the stored one. Applying it
// before Set fails with ErrConstruction.
func (r *Ref[T]) Contract() Contract[T] {
	return func(v any) (T, error) {
		p := r.c.Load()
		if p == nil {
			var zero T
			return zero, constructionErrorf("ref: applied before Set")
		}
		return (*p)(v)
	}
}
