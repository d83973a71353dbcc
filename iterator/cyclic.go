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
	"strconv"

	"dirpx.dev/tcol/apis"
	"dirpx.dev/tcol/lock"
)

// NoIndex is the index of an iterator that is not positioned on an element.
const NoIndex = -1

// State is a position in the Cyclic state machine:
//
//	empty sequence:  NotStarted -> Finished
//	start at 0:      NotStarted -> AtStartIndex -> MovedForward... -> Finished
//	start above 0:   NotStarted -> AtStartIndex -> MovedForward... ->
//	                 RolledOverEnd -> MovedForward... -> Finished
type State int

const (
	// NotStarted is the initial state.
	NotStarted State = iota
	// AtStartIndex is positioned on the start element.
	AtStartIndex
	// MovedForward is positioned after the start element.
	MovedForward
	// RolledOverEnd is positioned on element 0 after passing the end.
	RolledOverEnd
	// Finished is terminal.
	Finished
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case NotStarted:
		return "NotStarted"
	case AtStartIndex:
		return "AtStartIndex"
	case MovedForward:
		return "MovedForward"
	case RolledOverEnd:
		return "RolledOverEnd"
	case Finished:
		return "Finished"
	}
	return "State(" + strconv.Itoa(int(s)) + ")"
}

// successor is the state that follows s, before bounds are taken into account.
func (s State) successor() State {
	switch s {
	case NotStarted:
		return AtStartIndex
	case Finished:
		return Finished
	}
	return MovedForward
}

// Cyclic iterates a sequence once, from a start offset to the end and then
// from 0 up to the element before the start: start, ..., n-1, 0, ..., start-1.
// With start 0 this is an ordinary iteration.
//
// The sequence is held by reference and may grow or shrink concurrently. A
// start offset that is, or becomes, out of range is silently reset to 0.
// Next and HasNext are serialized; when several goroutines share one Cyclic
// every element is still produced at most once, but which goroutine gets
// which element is unspecified.
type Cyclic[T any] struct {
	seq  apis.Sequence[T]
	lock lock.Stamped

	start int
	state State
	index int
}

var _ apis.Iterator[int] = (*Cyclic[int])(nil)

// NewCyclic returns a Cyclic over seq starting at start.
func NewCyclic[T any](seq apis.Sequence[T], start int) (*Cyclic[T], error) {
	if seq == nil {
		return nil, ErrNilSequence
	}
	c := &Cyclic[T]{seq: seq, start: start, state: NotStarted, index: NoIndex}
	c.clampStart(seq.Len())
	return c, nil
}

// HasNext reports whether Next would yield an element. Once it reports
// false the iterator is Finished for good.
func (c *Cyclic[T]) HasNext() bool {
	return lock.WriteExclusive(&c.lock, func() bool {
		if next, _ := c.transition(c.seq.Len()); next == Finished {
			c.state, c.index = Finished, NoIndex
			return false
		}
		return true
	})
}

// Next advances and returns the element at the new position, or
// ErrExhausted once the pass is complete.
func (c *Cyclic[T]) Next() (T, error) {
	s := lock.WriteExclusive(&c.lock, c.nextLocked)
	return s.v, s.err
}

func (c *Cyclic[T]) nextLocked() step[T] {
	for {
		state, idx := c.transition(c.seq.Len())
		if state == Finished {
			c.state, c.index = Finished, NoIndex
			return step[T]{err: ErrExhausted}
		}
		if v, ok := c.seq.At(idx); ok {
			c.state, c.index = state, idx
			return step[T]{v: v}
		}
		// Shrunk between Len and At: recompute against the new length.
	}
}

// State returns the current state.
func (c *Cyclic[T]) State() State {
	return lock.ReadShared(&c.lock, func() State { return c.state })
}

// Index returns the current position, or NoIndex.
func (c *Cyclic[T]) Index() int {
	return lock.ReadShared(&c.lock, func() int { return c.index })
}

// LockStats reports the counters of the iterator's lock.
func (c *Cyclic[T]) LockStats() lock.Stats {
	return c.lock.Stats()
}

// transition computes the next state and index for a sequence of length n.
// It only mutates the start offset, which it keeps within [0, n).
func (c *Cyclic[T]) transition(n int) (State, int) {
	if n == 0 {
		return Finished, NoIndex
	}
	c.clampStart(n)

	switch next := c.state.successor(); next {
	case AtStartIndex:
		return next, c.start
	case MovedForward:
		idx := c.index + 1
		switch {
		case idx >= n:
			// Past the end: the pass is over if it began at 0, else wrap.
			if c.start == 0 {
				return Finished, NoIndex
			}
			return RolledOverEnd, 0
		case idx == c.start:
			return Finished, NoIndex
		}
		return MovedForward, idx
	}
	return Finished, NoIndex
}

func (c *Cyclic[T]) clampStart(n int) {
	if c.start < 0 || c.start >= n {
		c.start = 0
	}
}
