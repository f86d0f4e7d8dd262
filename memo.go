// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package contract

import (
	"context"
	"log/slog"
	"reflect"
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/mitchellh/hashstructure/v2"
	"resenje.org/singleflight"
)

// Memoization of unary function contracts.
//
// A memo caches validated results by argument key. A hit returns the cached
// result without calling the wrapped function and without validating the
// argument again. Failures are never cached.
//
// The cache belongs to one memo and, unless WithCapacity is given, grows
// for the lifetime of the memo. Lookups and stores are serialized, and
// concurrent first calls with the same key share a single computation.
// A wrapped function must not call its own memo with the key it is
// computing; that call would wait for itself.

type memoConfig struct {
	capacity int
	logger   *slog.Logger
}

// MemoOption configures Memoize and MemoizeHashed.
type MemoOption func(*memoConfig)

// WithCapacity bounds the cache to n entries, evicting the least recently
// used. This departs from the default unbounded cache: an evicted key is
// computed again on its next call. n <= 0 keeps the cache unbounded.
func WithCapacity(n int) MemoOption {
	return func(c *memoConfig) { c.capacity = n }
}

// WithLogger logs hits, misses and evictions at debug level.
func WithLogger(l *slog.Logger) MemoOption {
	return func(c *memoConfig) { c.logger = l }
}

type store[K comparable, R any] interface {
	Get(key K) (R, bool)
	Add(key K, r R)
	Len() int
	Purge()
}

// mapStore is the default unbounded store.
type mapStore[K comparable, R any] struct {
	mu sync.RWMutex
	m  map[K]R
}

func (s *mapStore[K, R]) Get(key K) (R, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.m[key]
	return r, ok
}

func (s *mapStore[K, R]) Add(key K, r R) {
	s.mu.Lock()
	s.m[key] = r
	s.mu.Unlock()
}

func (s *mapStore[K, R]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}

func (s *mapStore[K, R]) Purge() {
	s.mu.Lock()
	clear(s.m)
	s.mu.Unlock()
}

// lruStore adapts a bounded LRU cache, which locks internally.
type lruStore[K comparable, R any] struct {
	c *lru.Cache[K, R]
}

func (s lruStore[K, R]) Get(key K) (R, bool) { return s.c.Get(key) }
func (s lruStore[K, R]) Add(key K, r R)      { s.c.Add(key, r) }
func (s lruStore[K, R]) Len() int            { return s.c.Len() }
func (s lruStore[K, R]) Purge()              { s.c.Purge() }

// entry is a cached result together with the argument that produced it.
type entry[R any] struct {
	arg any
	r   R
}

type memoCore[K comparable, R any] struct {
	guarded *Guarded[R]
	store   store[K, entry[R]]
	flight  singleflight.Group[K, entry[R]]
	logger  *slog.Logger

	// same confirms that a cached argument is the one being looked up.
	// nil when equal keys imply equal arguments.
	same func(cached, arg any) bool

	hits   atomic.Uint64
	misses atomic.Uint64
}

func newMemoCore[K comparable, R any](h *Hom[R], fn Method, opts []MemoOption) (*memoCore[K, R], error) {
	if lo, hi := h.Arity(); lo != 1 || hi != 1 {
		return nil, constructionErrorf("memo: hom takes %d to %d arguments, want exactly 1", lo, hi)
	}
	if fn == nil {
		return nil, constructionErrorf("memo: nil function")
	}
	cfg := memoConfig{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&cfg)
	}
	m := &memoCore[K, R]{
		guarded: h.Guard(fn),
		logger:  cfg.logger,
	}
	if cfg.capacity <= 0 {
		m.store = &mapStore[K, entry[R]]{m: make(map[K]entry[R])}
		return m, nil
	}
	c, err := lru.NewWithEvict(cfg.capacity, func(key K, _ entry[R]) {
		m.logger.Debug("memo evict", "key", key)
	})
	if err != nil {
		return nil, err
	}
	m.store = lruStore[K, entry[R]]{c: c}
	return m, nil
}

func (m *memoCore[K, R]) lookup(key K, arg any) (R, bool) {
	e, ok := m.store.Get(key)
	if !ok || (m.same != nil && !m.same(e.arg, arg)) {
		var zero R
		return zero, false
	}
	return e.r, true
}

func (m *memoCore[K, R]) call(key K, arg any) (R, error) {
	if r, ok := m.lookup(key, arg); ok {
		m.hits.Add(1)
		m.logger.Debug("memo hit", "key", key)
		return r, nil
	}
	e, shared, err := m.flight.Do(context.Background(), key, func(context.Context) (entry[R], error) {
		if r, ok := m.lookup(key, arg); ok {
			m.hits.Add(1)
			return entry[R]{arg: arg, r: r}, nil
		}
		return m.compute(key, arg)
	})
	if shared && m.same != nil && !m.same(e.arg, arg) {
		// A colliding argument led the shared computation.
		e, err = m.compute(key, arg)
	}
	return e.r, err
}

func (m *memoCore[K, R]) compute(key K, arg any) (entry[R], error) {
	m.misses.Add(1)
	m.logger.Debug("memo miss", "key", key)
	r, err := m.guarded.Call(arg)
	if err != nil {
		return entry[R]{arg: arg}, err
	}
	e := entry[R]{arg: arg, r: r}
	m.store.Add(key, e)
	return e, nil
}

// Len returns the number of cached results.
func (m *memoCore[K, R]) Len() int { return m.store.Len() }

// Purge drops every cached result.
func (m *memoCore[K, R]) Purge() { m.store.Purge() }

// Stats returns the number of calls answered from the cache and the number
// of calls that ran the wrapped function.
func (m *memoCore[K, R]) Stats() (hits, misses uint64) {
	return m.hits.Load(), m.misses.Load()
}

// Memo is a memoized unary function keyed by its argument under Go's ==:
// value equality for value types, identity for pointers and channels.
// An argument whose dynamic value is not comparable, such as a slice held
// in an interface key, fails with ErrTypeMismatch; use MemoizeHashed for
// those.
type Memo[K comparable, R any] struct {
	*memoCore[K, R]
}

// Memoize guards fn with h and caches its results by argument. h must take
// exactly one required parameter.
func Memoize[K comparable, R any](h *Hom[R], fn Method, opts ...MemoOption) (*Memo[K, R], error) {
	core, err := newMemoCore[K](h, fn, opts)
	if err != nil {
		return nil, err
	}
	return &Memo[K, R]{core}, nil
}

// Call returns the result for arg, computing it on the first call only.
func (m *Memo[K, R]) Call(arg K) (R, error) {
	if !comparableValue(arg) {
		var zero R
		return zero, typeMismatch("comparable value", arg)
	}
	return m.call(arg, arg)
}

// hashedKey pairs the dynamic type of an argument with its structural hash.
type hashedKey struct {
	t reflect.Type
	h uint64
}

// HashedMemo is a memoized unary function keyed by the structural hash of
// its argument, for arguments that are not comparable such as slices and
// maps. Structurally equal arguments of the same type share one entry;
// a hit is confirmed with reflect.DeepEqual, so colliding hashes never
// share a result.
type HashedMemo[R any] struct {
	*memoCore[hashedKey, R]
}

// MemoizeHashed is Memoize for arbitrary arguments.
func MemoizeHashed[R any](h *Hom[R], fn Method, opts ...MemoOption) (*HashedMemo[R], error) {
	core, err := newMemoCore[hashedKey](h, fn, opts)
	if err != nil {
		return nil, err
	}
	core.same = reflect.DeepEqual
	return &HashedMemo[R]{core}, nil
}

// Call returns the result for arg, computing it on the first call for any
// structurally equal argument.
func (m *HashedMemo[R]) Call(arg any) (R, error) {
	h, err := hashstructure.Hash(arg, hashstructure.FormatV2, nil)
	if err != nil {
		var zero R
		return zero, typeMismatch("hashable value", arg)
	}
	return m.call(hashedKey{t: reflect.TypeOf(arg), h: h}, arg)
}
