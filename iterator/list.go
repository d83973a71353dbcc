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

package iterator

import (
	"iter"
	"slices"
	"sync/atomic"

	"dirpx.dev/tcol/apis"
	"dirpx.dev/tcol/lock"
)

// List is a copy-on-write list that is safe for concurrent use. Reads never
// block writers; each write publishes a new backing slice.
//
// List is an apis.Sequence and its All method is a live source for
// Restarting, so it can back iterators while being resized.
type List[T any] struct {
	lock  lock.Stamped
	items atomic.Pointer[[]T]
}

var _ apis.Sequence[int] = (*List[int])(nil)

// slot carries an element lookup out of an optimistic read.
type slot[T any] struct {
	v  T
	ok bool
}

// NewList returns a List holding a copy of items.
func NewList[T any](items ...T) *List[T] {
	l := &List[T]{}
	s := slices.Clone(items)
	l.items.Store(&s)
	return l
}

func (l *List[T]) load() []T {
	return *l.items.Load()
}

// Len returns the number of elements.
func (l *List[T]) Len() int {
	return lock.ReadOptimistic(&l.lock, func() int { return len(l.load()) })
}

// At returns the element at i, or false if i is out of range.
func (l *List[T]) At(i int) (T, bool) {
	s := lock.ReadOptimistic(&l.lock, func() slot[T] {
		return Slice[T](l.load()).slot(i)
	})
	return s.v, s.ok
}

// Snapshot returns a copy of the current elements.
func (l *List[T]) Snapshot() []T {
	return slices.Clone(lock.ReadOptimistic(&l.lock, l.load))
}

// All yields the elements by position, reading the list afresh for each one.
// Elements added during the range are seen; no lock is held while yielding.
func (l *List[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; ; i++ {
			v, ok := l.At(i)
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Append adds items at the end.
func (l *List[T]) Append(items ...T) {
	l.mutate(func(s []T) ([]T, bool) {
		return append(s, items...), len(items) > 0
	})
}

// Set replaces the element at i. It reports false if i is out of range.
func (l *List[T]) Set(i int, v T) bool {
	var ok bool
	l.mutate(func(s []T) ([]T, bool) {
		if ok = i >= 0 && i < len(s); ok {
			s[i] = v
		}
		return s, ok
	})
	return ok
}

// RemoveAt deletes and returns the element at i.
func (l *List[T]) RemoveAt(i int) (T, bool) {
	var r slot[T]
	l.mutate(func(s []T) ([]T, bool) {
		if r = Slice[T](s).slot(i); !r.ok {
			return s, false
		}
		return slices.Delete(s, i, i+1), true
	})
	return r.v, r.ok
}

// RemoveFunc deletes every element for which del returns true and reports
// how many were removed.
func (l *List[T]) RemoveFunc(del func(T) bool) int {
	var n int
	l.mutate(func(s []T) ([]T, bool) {
		before := len(s)
		s = slices.DeleteFunc(s, del)
		n = before - len(s)
		return s, n > 0
	})
	return n
}

// LockStats reports the counters of the list's lock.
func (l *List[T]) LockStats() lock.Stats {
	return l.lock.Stats()
}

// mutate hands fn a private copy of the elements and publishes the result if
// fn reports a change.
func (l *List[T]) mutate(fn func(s []T) ([]T, bool)) {
	lock.Exclusive(&l.lock, func() {
		if s, changed := fn(slices.Clone(l.load())); changed {
			l.items.Store(&s)
		}
	})
}

func (s Slice[T]) slot(i int) slot[T] {
	v, ok := s.At(i)
	return slot[T]{v: v, ok: ok}
}
