/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package typemap provides Map, an insertion-ordered map keyed by type
// identifiers that keeps every key ahead of its supertypes.
//
// # Ordering
//
// For any two keys a and b, if a is a subtype of b then a is iterated before
// b. Unrelated keys keep the order their insertions produced. Put restores
// the invariant destructively: the supertypes of the new key are lifted out,
// the new key is appended, and the lifted keys are appended again behind it
// in their previous relative order.
//
// Because of that order, scanning from the front and stopping at the first
// supertype of a query yields the most specific comparable match
// (FindClosestAncestor). When two unrelated supertypes of a query are both
// present, the one that happens to come first wins; that depends on
// insertion history and is not a semantic tie-break.
//
// # Concurrency
//
// Map is safe for concurrent use. The state is an immutable snapshot
// published through an atomic pointer: reads validate an optimistic stamp and
// retry under a shared permit if a writer intervened; writes copy the
// snapshot under the exclusive permit and publish the copy. Map is meant for
// small, read-mostly key sets such as handler tables.
package typemap

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/eapache/queue"
	"github.com/hashicorp/go-hclog"

	"dirpx.dev/tcol/apis"
	"dirpx.dev/tcol/lock"
)

// ErrNilHierarchy is the panic value of New when no hierarchy is given.
var ErrNilHierarchy = errors.New("tcol(typemap): nil hierarchy")

// Entry is a single key/value pair of a Map.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// Option configures a Map.
type Option func(*options)

type options struct {
	logger hclog.Logger
}

// WithLogger sets the logger used to trace ancestor lookups.
func WithLogger(l hclog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Map is an ordered map from type identifiers to values.
type Map[K comparable, V any] struct {
	h   apis.Hierarchy[K]
	log hclog.Logger

	lock lock.Stamped
	st   atomic.Pointer[state[K, V]]
}

// state is a published snapshot; never mutate a state after Store.
type state[K comparable, V any] struct {
	keys []K
	vals map[K]V
}

func (s *state[K, V]) clone() *state[K, V] {
	return &state[K, V]{keys: slices.Clone(s.keys), vals: maps.Clone(s.vals)}
}

// found carries a lookup result out of an optimistic read.
type found[K comparable, V any] struct {
	e  Entry[K, V]
	ok bool
}

// New returns an empty Map ordered by h. It panics if h is nil.
func New[K comparable, V any](h apis.Hierarchy[K], opts ...Option) *Map[K, V] {
	if h == nil {
		panic(ErrNilHierarchy)
	}
	o := options{logger: hclog.NewNullLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	m := &Map[K, V]{h: h, log: o.logger}
	m.st.Store(emptyState[K, V]())
	return m
}

func emptyState[K comparable, V any]() *state[K, V] {
	return &state[K, V]{vals: make(map[K]V)}
}

// snapshot returns the current state under an optimistic read.
func (m *Map[K, V]) snapshot() *state[K, V] {
	return lock.ReadOptimistic(&m.lock, m.st.Load)
}

// mutate applies fn to a private copy of the state and publishes the copy if
// fn reports a change. fn runs under the exclusive permit and must only use
// the ...Locked helpers.
func (m *Map[K, V]) mutate(fn func(w *state[K, V]) bool) {
	lock.Exclusive(&m.lock, func() {
		w := m.st.Load().clone()
		if fn(w) {
			m.st.Store(w)
		}
	})
}

// Get returns the value stored under k.
func (m *Map[K, V]) Get(k K) (V, bool) {
	r := lock.ReadOptimistic(&m.lock, func() found[K, V] {
		v, ok := m.st.Load().vals[k]
		return found[K, V]{e: Entry[K, V]{Key: k, Value: v}, ok: ok}
	})
	return r.e.Value, r.ok
}

// ContainsKey reports whether k is stored.
func (m *Map[K, V]) ContainsKey(k K) bool {
	_, ok := m.Get(k)
	return ok
}

// ContainsValueFunc reports whether any stored value satisfies pred.
// pred may be called again if a concurrent write forces a retry.
func (m *Map[K, V]) ContainsValueFunc(pred func(V) bool) bool {
	return lock.ReadOptimistic(&m.lock, func() bool {
		for _, v := range m.st.Load().vals {
			if pred(v) {
				return true
			}
		}
		return false
	})
}

// ContainsValue reports whether v is stored under any key.
func ContainsValue[K, V comparable](m *Map[K, V], v V) bool {
	return m.ContainsValueFunc(func(x V) bool { return x == v })
}

// Len returns the number of keys.
func (m *Map[K, V]) Len() int {
	return lock.ReadOptimistic(&m.lock, func() int { return len(m.st.Load().keys) })
}

// IsEmpty reports whether the map has no keys.
func (m *Map[K, V]) IsEmpty() bool {
	return m.Len() == 0
}

// Put stores v under k and returns the previous value, if any.
// Replacing the value of an existing key never moves the key.
func (m *Map[K, V]) Put(k K, v V) (old V, replaced bool) {
	m.mutate(func(w *state[K, V]) bool {
		old, replaced = m.putLocked(w, k, v)
		return true
	})
	return old, replaced
}

// PutAll stores every pair of src, in src order, in a single write.
// src must not read from m.
func (m *Map[K, V]) PutAll(src iter.Seq2[K, V]) {
	m.mutate(func(w *state[K, V]) bool {
		changed := false
		for k, v := range src {
			m.putLocked(w, k, v)
			changed = true
		}
		return changed
	})
}

// putLocked inserts into w, restoring the subtype-first order.
func (m *Map[K, V]) putLocked(w *state[K, V], k K, v V) (V, bool) {
	old, exists := w.vals[k]
	w.vals[k] = v
	if exists {
		return old, true
	}

	var zero K
	if len(w.keys) == 0 || k == zero || !m.h.Belongs(k) {
		w.keys = append(w.keys, k)
		return old, false
	}

	// Lift every present supertype of k, keeping their mutual order.
	lifted := queue.New()
	kept := w.keys[:0]
	for _, e := range w.keys {
		if e != zero && m.h.IsSubtype(k, e) {
			lifted.Add(e)
			continue
		}
		kept = append(kept, e)
	}
	kept = append(kept, k)
	for lifted.Length() > 0 {
		kept = append(kept, lifted.Remove().(K))
	}
	w.keys = kept
	return old, false
}

// Remove deletes k and returns its value. Removal never reorders keys.
func (m *Map[K, V]) Remove(k K) (old V, removed bool) {
	m.mutate(func(w *state[K, V]) bool {
		old, removed = w.vals[k]
		if !removed {
			return false
		}
		delete(w.vals, k)
		if i := slices.Index(w.keys, k); i >= 0 {
			w.keys = slices.Delete(w.keys, i, i+1)
		}
		return true
	})
	return old, removed
}

// Clear removes all keys.
func (m *Map[K, V]) Clear() {
	lock.Exclusive(&m.lock, func() {
		m.st.Store(emptyState[K, V]())
	})
}

// FindClosestAncestor returns the entry of q itself if q is a key, otherwise
// the first entry, in map order, whose key is a supertype of q. The zero key
// and keys outside the hierarchy's family are never found by ancestry.
func (m *Map[K, V]) FindClosestAncestor(q K) (Entry[K, V], bool) {
	var zero K
	if q == zero {
		return Entry[K, V]{}, false
	}

	r := lock.ReadOptimistic(&m.lock, func() found[K, V] {
		return m.closestLocked(m.st.Load(), q)
	})
	if r.ok && m.log.IsTrace() {
		m.log.Trace("closest ancestor", "query", q, "match", r.e.Key)
	}
	return r.e, r.ok
}

func (m *Map[K, V]) closestLocked(s *state[K, V], q K) found[K, V] {
	if v, ok := s.vals[q]; ok {
		return found[K, V]{e: Entry[K, V]{Key: q, Value: v}, ok: true}
	}
	if !m.h.Belongs(q) {
		return found[K, V]{}
	}
	var zero K
	for _, k := range s.keys {
		if k != zero && m.h.IsSubtype(q, k) {
			return found[K, V]{e: Entry[K, V]{Key: k, Value: s.vals[k]}, ok: true}
		}
	}
	return found[K, V]{}
}

// All returns a view over the map in key order. Each range over the view
// sees the map as it is when that range starts.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		s := m.snapshot()
		for _, k := range s.keys {
			if !yield(k, s.vals[k]) {
				return
			}
		}
	}
}

// Keys returns a copy of the keys in map order. The slice does not track
// later writes; range over All for a view.
func (m *Map[K, V]) Keys() []K {
	return slices.Clone(m.snapshot().keys)
}

// Values returns a copy of the values in key order. Like Keys, it does
// not track later writes.
func (m *Map[K, V]) Values() []V {
	s := m.snapshot()
	out := make([]V, 0, len(s.keys))
	for _, k := range s.keys {
		out = append(out, s.vals[k])
	}
	return out
}

// Entries returns a copy of the entries in map order. Like Keys, it does
// not track later writes.
func (m *Map[K, V]) Entries() []Entry[K, V] {
	s := m.snapshot()
	out := make([]Entry[K, V], 0, len(s.keys))
	for _, k := range s.keys {
		out = append(out, Entry[K, V]{Key: k, Value: s.vals[k]})
	}
	return out
}

// String formats the map as "{k1=v1, k2=v2}" in key order.
func (m *Map[K, V]) String() string {
	s := m.snapshot()
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range s.keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%v=%v", k, s.vals[k])
	}
	b.WriteByte('}')
	return b.String()
}

// LockStats reports the counters of the map's lock.
func (m *Map[K, V]) LockStats() lock.Stats {
	return m.lock.Stats()
}
