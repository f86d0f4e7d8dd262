// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package contract provides composable runtime contracts: validating
// functions that check dynamic values and guard function calls.
//
// The core type [Contract] maps an arbitrary value to a validated value of
// type T, or fails with an error. Contracts are built bottom-up: primitive
// contracts check one property, combinators build products, coproducts,
// unions, intersections and pullbacks from simpler contracts, [Hom] guards
// callables with parameter and result contracts, and [Memo] caches a
// guarded unary function.
//
// # Core Operations
//
//   - [Contract]: func(v any) (T, error)
//   - [Erase]: Forget the static result type
//   - [Map]: Apply a pure function to the result
//   - [Then]: Refine the result of one contract with another
//   - [Validate], [Must]: Apply a contract
//   - [Try]: Apply a contract, folding the outcome into an [Either]
//
// # Primitive Contracts
//
// Checks on a single value, returning it unchanged:
//
//   - [TypeTag]: Primitive kind as reported by [TypeOf]
//   - [ClassTag]: Structural class as reported by [ClassOf]
//   - [InstanceOf]: Nominal Go type (interfaces included)
//   - [Matches]: String matching a regular expression
//   - [Undefined], [Null], [NaN], [Any]: Sentinels
//   - [String], [Bool], [Number]: Conveniences
//
// Numeric range contracts normalize to a fixed integer type. A value is
// accepted only if it is a number whose integral value survives the
// conversion unchanged:
//
//   - [Int32], [Nat32]: Signed 32-bit integer, and its non-negative part
//   - [SafeInt], [SafeNat]: Integers exactly representable as float64
//
// # Structural Combinators
//
//   - [ArrayOf], [MapOf]: Homogeneous sequences and string-keyed maps
//   - [Tuple]: Positional product of fixed arity
//   - [Record]: Named product, returns a fresh map
//   - [RecordInPlace]: Named product, writes back into the input map
//   - [Decode]: Record decoded into a Go struct
//   - [Coproduct], [NamedCoproduct]: Tagged choice; values are []any{tag, payload}
//   - [EitherOf]: Binary coproduct folded into [Either]
//   - [Intersect]: Sequential refinement, each contract sees the previous result
//   - [Union]: First alternative to succeed
//   - [Pullback]: Tuples whose derived values agree
//   - [Ref]: Set-once forward reference for self-referential contracts
//
// Failures short-circuit. Only [Union] suppresses member failures, and
// only until every alternative has failed.
//
// # Function Contracts
//
// [NewHom] combines parameter contracts, declared with [Req] and [Opt],
// with a result contract. Optional parameters form a trailing suffix, so
// a call may omit any trailing run of them:
//
//   - [Hom.Guard]: Wrap a [Method]
//   - [Hom.Method]: Wrap a method whose receiver is checked too
//   - [Hom.Contract]: Use the hom as a contract over callables
//   - [Guarded.Call], [Guarded.CallOn]: Invoke with or without a receiver
//   - [Guarded.Self]: Specialize to also check the receiver
//   - [Lift1], [Lift2]: Adapt typed Go functions to [Method]
//   - [Send]: Call a method stored in a record, with the record as receiver
//
// A guarded call validates the receiver and the arguments before the
// wrapped callable runs, and the result after. A result failure does not
// undo the callable's side effects.
//
// # Memoization
//
//   - [Memoize]: Cache keyed by the argument under ==
//   - [MemoizeHashed]: Cache keyed by the structural hash of the argument
//   - [WithCapacity]: Opt into a bounded LRU cache
//   - [WithLogger]: Log cache activity
//
// # Errors
//
// Every failure is a [*ValidationError] whose [Kind] matches one of the
// sentinels under errors.Is:
//
//   - [ErrTypeMismatch], [ErrRangeMismatch], [ErrArityMismatch]
//   - [ErrTagOutOfRange], [ErrUnknownTag], [ErrPullbackMismatch]
//   - [ErrUnionExhausted], [ErrConstruction]
//
// Container combinators record where a failure happened in
// [ValidationError.Path] but never change its kind.
//
// # Example
//
//	add := contract.MustHom(
//		[]contract.Param{contract.Req(contract.Int32), contract.Req(contract.Int32)},
//		contract.Int32,
//	).Guard(contract.Lift2(func(a, b int32) int32 { return a + b }))
//
//	sum, err := add.Call(3, 4)   // 7, nil
//	_, err = add.Call(3, "4")    // errors.Is(err, contract.ErrTypeMismatch)
package contract
