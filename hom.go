// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package contract

import (
	"fmt"
	"reflect"
)

// Method is the Go shape of a callable guarded by a Hom: a receiver, nil
// for plain functions, followed by the positional arguments.
type Method func(recv any, args ...any) (any, error)

// Invoke calls m. It makes Method a Callable.
func (m Method) Invoke(recv any, args ...any) (any, error) { return m(recv, args...) }

// Callable is implemented by Method and *Guarded.
type Callable interface {
	Invoke(recv any, args ...any) (any, error)
}

// Param is a parameter specification of a Hom: a contract, either
// required or optional.
type Param struct {
	c        Contract[any]
	optional bool
}

// Req declares a required parameter validated by c.
func Req[T any](c Contract[T]) Param {
	if c == nil {
		return Param{}
	}
	return Param{c: Erase(c)}
}

// Opt declares an optional parameter validated by c. Optional parameters
// must form a contiguous suffix of the parameter list.
func Opt[T any](c Contract[T]) Param {
	if c == nil {
		return Param{optional: true}
	}
	return Param{c: Erase(c), optional: true}
}

// Hom is a function contract: parameter contracts plus a result contract.
// Guard applies it to a callable.
//
// With n parameters of which the last k are optional, a call accepts
// between n-k and n arguments. The precondition is the positional product
// of all parameters when k is 0, and otherwise the union of the k+1
// products of arity n-k through n, so any trailing run of optional
// arguments may be omitted.
type Hom[R any] struct {
	params   []Param
	required int
	pre      Contract[[]any]
	post     Contract[R]
}

// NewHom builds the function contract params -> result. It fails with
// ErrConstruction if a contract is missing or a required parameter follows
// an optional one.
func NewHom[R any](params []Param, result Contract[R]) (*Hom[R], error) {
	if result == nil {
		return nil, constructionErrorf("hom: nil result contract")
	}
	required := len(params)
	cs := make([]Contract[any], len(params))
	for i, p := range params {
		if p.c == nil {
			return nil, constructionErrorf("hom: parameter %d has no contract", i)
		}
		cs[i] = p.c
		if p.optional {
			required = min(required, i)
		} else if required < len(params) {
			return nil, constructionErrorf("hom: required parameter %d follows optional parameter %d", i, required)
		}
	}
	h := &Hom[R]{
		params:   params,
		required: required,
		post:     result,
	}
	if required == len(params) {
		h.pre = Tuple(cs...)
		return h, nil
	}
	alts := make([]Contract[[]any], 0, len(params)-required+1)
	for n := required; n <= len(params); n++ {
		alts = append(alts, Tuple(cs[:n]...))
	}
	h.pre = Union(alts...)
	return h, nil
}

// MustHom is like NewHom but panics on a malformed contract.
func MustHom[R any](params []Param, result Contract[R]) *Hom[R] {
	h, err := NewHom(params, result)
	if err != nil {
		panic(err)
	}
	return h
}

// Arity returns the minimum and maximum number of accepted arguments.
func (h *Hom[R]) Arity() (lo, hi int) { return h.required, len(h.params) }

// check validates an argument list against the precondition.
func (h *Hom[R]) check(args []any) ([]any, error) {
	if len(args) < h.required || len(args) > len(h.params) {
		expected := fmt.Sprintf("%d arguments", h.required)
		if h.required != len(h.params) {
			expected = fmt.Sprintf("%d to %d arguments", h.required, len(h.params))
		}
		return nil, annotate(mismatch(KindArityMismatch, expected, args), "args")
	}
	in, err := h.pre(args)
	if err != nil {
		return nil, annotate(err, "args")
	}
	return in, nil
}

// Guard wraps fn so that every call validates its arguments before fn runs
// and its result before the caller sees it.
func (h *Hom[R]) Guard(fn Method) *Guarded[R] {
	return &Guarded[R]{hom: h, fn: fn}
}

// Method guards body as a method whose receiver must satisfy recv.
// It is Guard(body).Self(recv).
func (h *Hom[R]) Method(recv Contract[any], body Method) *Guarded[R] {
	return h.Guard(body).Self(recv)
}

// Contract returns h as a contract over callables: it accepts a Method, a
// func with Method's signature or any Callable, and returns it guarded.
// A callable already guarded by h alone is returned unchanged.
func (h *Hom[R]) Contract() Contract[*Guarded[R]] {
	return func(v any) (*Guarded[R], error) {
		if ClassOf(v) == "null" || v == nil {
			return nil, typeMismatch("function", v)
		}
		switch f := v.(type) {
		case *Guarded[R]:
			if f.hom == h && f.recv == nil {
				return f, nil
			}
			return h.Guard(f.Invoke), nil
		case Method:
			return h.Guard(f), nil
		case func(recv any, args ...any) (any, error):
			return h.Guard(f), nil
		case Callable:
			return h.Guard(f.Invoke), nil
		}
		return nil, typeMismatch("function", v)
	}
}

// MethodContract is the method form of Contract: callables are guarded and
// specialized to receivers satisfying recv. A method produced by this
// contract is accepted unchanged, so validating an object again does not
// wrap its methods again.
func (h *Hom[R]) MethodContract(recv Contract[any]) Contract[*Guarded[R]] {
	mark := new(byte)
	guard := h.Contract()
	return func(v any) (*Guarded[R], error) {
		if g, ok := v.(*Guarded[R]); ok && g != nil && g.mark == mark {
			return g, nil
		}
		g, err := guard(v)
		if err != nil {
			return nil, err
		}
		g = g.Self(recv)
		g.mark = mark
		return g, nil
	}
}

// Guarded is a callable wrapped by a Hom, optionally also checking its
// receiver.
type Guarded[R any] struct {
	hom  *Hom[R]
	fn   Method
	recv Contract[any]
	mark *byte
}

// Self returns a specialization of g that also validates the receiver
// against recv before anything else runs. Receiver contracts accumulate.
func (g *Guarded[R]) Self(recv Contract[any]) *Guarded[R] {
	if g.recv != nil {
		recv = Then(g.recv, recv)
	}
	return &Guarded[R]{hom: g.hom, fn: g.fn, recv: recv}
}

// Call invokes g with a nil receiver.
func (g *Guarded[R]) Call(args ...any) (R, error) {
	return g.CallOn(nil, args...)
}

// CallOn invokes g with receiver recv.
//
// A receiver or argument failure returns before the wrapped callable runs.
// A result failure is detected after it ran; its side effects stand.
func (g *Guarded[R]) CallOn(recv any, args ...any) (R, error) {
	var zero R
	if g.recv != nil {
		r, err := g.recv(recv)
		if err != nil {
			return zero, annotate(err, "this")
		}
		recv = r
	}
	in, err := g.hom.check(args)
	if err != nil {
		return zero, err
	}
	out, err := g.fn(recv, in...)
	if err != nil {
		return zero, err
	}
	r, err := g.hom.post(out)
	if err != nil {
		return zero, annotate(err, "result")
	}
	return r, nil
}

// Invoke is CallOn with the result type erased. It makes *Guarded a
// Callable.
func (g *Guarded[R]) Invoke(recv any, args ...any) (any, error) {
	r, err := g.CallOn(recv, args...)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Lift1 adapts a typed unary Go function to a Method. The argument is
// expected to have been validated into an A already; an omitted optional
// argument arrives as the zero A.
func Lift1[A, R any](f func(A) R) Method {
	return func(_ any, args ...any) (any, error) {
		a, err := arg[A](args, 0)
		if err != nil {
			return nil, err
		}
		return f(a), nil
	}
}

// Lift2 adapts a typed binary Go function to a Method, like Lift1.
func Lift2[A, B, R any](f func(A, B) R) Method {
	return func(_ any, args ...any) (any, error) {
		a, err := arg[A](args, 0)
		if err != nil {
			return nil, err
		}
		b, err := arg[B](args, 1)
		if err != nil {
			return nil, err
		}
		return f(a, b), nil
	}
}

func arg[A any](args []any, i int) (A, error) {
	var zero A
	if i >= len(args) || args[i] == nil {
		return zero, nil
	}
	a, ok := args[i].(A)
	if !ok {
		return zero, annotate(typeMismatch(reflect.TypeFor[A]().String(), args[i]), "args"+index(i))
	}
	return a, nil
}

// Send calls the method stored under name in obj with obj as the receiver.
func Send(obj map[string]any, name string, args ...any) (any, error) {
	m, ok := obj[name]
	if !ok {
		return nil, annotate(typeMismatch("method", nil), field(name))
	}
	switch f := m.(type) {
	case Callable:
		return f.Invoke(obj, args...)
	case func(recv any, args ...any) (any, error):
		return f(obj, args...)
	}
	return nil, annotate(typeMismatch("function", m), field(name))
}
