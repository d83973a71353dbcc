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

// Package iterator provides concurrency-safe iterators over sequences that
// may change while they are iterated:
//
//   - Cyclic walks an indexable sequence once, starting at an offset and
//     wrapping around to the element before it.
//   - Restarting cycles over a source forever, starting it over whenever it
//     runs out, unless the source turned out to be empty.
//
// Both implement apis.Iterator. List is a copy-on-write concurrent list that
// can back either of them.
package iterator

import (
	"errors"
	"iter"

	"dirpx.dev/tcol/apis"
)

var (
	// ErrExhausted is returned by Next when there are no more elements.
	ErrExhausted = errors.New("tcol(iterator): no more elements")
	// ErrNilSequence is returned when a Cyclic is built over a nil sequence.
	ErrNilSequence = errors.New("tcol(iterator): nil sequence")
	// ErrNilSource is returned when a Restarting is built over a nil source.
	ErrNilSource = errors.New("tcol(iterator): nil source")
)

// step carries the result of Next out of a guarded section.
type step[T any] struct {
	v   T
	err error
}

// Seq adapts it to a range-over-func sequence that ends when HasNext reports
// false. An infinite iterator yields until the consumer breaks.
func Seq[T any](it apis.Iterator[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for it.HasNext() {
			v, err := it.Next()
			if err != nil || !yield(v) {
				return
			}
		}
	}
}

// Slice is a fixed apis.Sequence over a Go slice.
type Slice[T any] []T

var _ apis.Sequence[int] = Slice[int](nil)

// Len returns len(s).
func (s Slice[T]) Len() int { return len(s) }

// At returns s[i] if i is in range.
func (s Slice[T]) At(i int) (T, bool) {
	if i < 0 || i >= len(s) {
		var zero T
		return zero, false
	}
	return s[i], true
}
