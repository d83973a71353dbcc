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

package apis

// Iterator is the "has more / advance" contract shared by finite and infinite
// iterators. Consumers loop while HasNext reports true.
type Iterator[T any] interface {
	// HasNext reports whether a following Next would yield an element.
	// It never fails.
	HasNext() bool
	// Next advances and returns the element. Past the end it returns the
	// zero T and an exhaustion error.
	Next() (T, error)
}

// Sequence is an indexable backing sequence that may change size while it is
// being iterated.
type Sequence[T any] interface {
	// Len returns the current number of elements.
	Len() int
	// At returns the element at i, or false if i is out of range at the
	// moment of the call.
	At(i int) (T, bool)
}
