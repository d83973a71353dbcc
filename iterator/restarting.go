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
	"runtime"
	"sync/atomic"

	"dirpx.dev/tcol/apis"
	"dirpx.dev/tcol/lock"
)

// Restarting cycles over a source forever: when the active pass runs out, a
// new pass is pulled from the source and iteration continues from its start.
//
// Whether there is anything to iterate is decided once, when a pass is
// opened: at construction and at every restart. HasNext returns that answer
// verbatim and never consults the source. If a pass opens empty, the
// iterator stays exhausted for good, even if the source is refilled later.
//
// The source is not owned. It may change at any time; the iterator sees the
// change when the active pass reaches it or at the next restart.
//
// Each pass runs the source in its own coroutine. Close releases it; an
// iterator that is dropped without Close releases it once collected.
//
// The pass opened by NewRestarting only decides the flag. It is reopened on
// the first Next, so that call sees the source as it is then.
type Restarting[T any] struct {
	src  iter.Seq[T]
	lock lock.Stamped

	hasItems atomic.Bool
	// pass, closed and reopen are guarded by lock.
	pass   *pass[T]
	closed bool
	reopen bool
}

// pass holds the active cursor. It is split from Restarting so that a
// cleanup can stop the cursor without keeping the iterator reachable.
type pass[T any] struct {
	cur *cursor[T]
}

func (p *pass[T]) stop() {
	if p.cur != nil {
		p.cur.stop()
	}
}

var _ apis.Iterator[int] = (*Restarting[int])(nil)

// NewRestarting returns a Restarting over src and opens its first pass.
func NewRestarting[T any](src iter.Seq[T]) (*Restarting[T], error) {
	if src == nil {
		return nil, ErrNilSource
	}
	r := &Restarting[T]{src: src, pass: &pass[T]{}}
	r.restartLocked()
	r.reopen = true
	runtime.AddCleanup(r, (*pass[T]).stop, r.pass)
	return r, nil
}

// HasNext reports whether the last opened pass had any elements.
func (r *Restarting[T]) HasNext() bool {
	return lock.ReadOptimistic(&r.lock, r.hasItems.Load)
}

// Next returns the next element, restarting the source when the active pass
// is used up. It returns ErrExhausted once a pass has opened empty.
func (r *Restarting[T]) Next() (T, error) {
	if !r.hasItems.Load() {
		var zero T
		return zero, ErrExhausted
	}
	s := lock.WriteExclusive(&r.lock, func() step[T] {
		if r.closed {
			return step[T]{err: ErrExhausted}
		}
		if r.reopen || !r.pass.cur.hasNext() {
			r.reopen = false
			r.restartLocked()
		}
		v, ok := r.pass.cur.take()
		if !ok {
			return step[T]{err: ErrExhausted}
		}
		return step[T]{v: v}
	})
	return s.v, s.err
}

// Close stops the active pass. Afterwards the iterator is exhausted.
func (r *Restarting[T]) Close() error {
	lock.Exclusive(&r.lock, func() {
		if r.closed {
			return
		}
		r.closed = true
		r.hasItems.Store(false)
		r.pass.stop()
	})
	return nil
}

// LockStats reports the counters of the iterator's lock.
func (r *Restarting[T]) LockStats() lock.Stats {
	return r.lock.Stats()
}

// restartLocked replaces the active pass and recomputes the sticky flag.
func (r *Restarting[T]) restartLocked() {
	r.pass.stop()
	r.pass.cur = pull(r.src)
	r.hasItems.Store(r.pass.cur.hasNext())
}

// cursor is a single pass over a source with one element of lookahead.
type cursor[T any] struct {
	next func() (T, bool)
	stop func()

	head   T
	peeked bool
	done   bool
}

func pull[T any](src iter.Seq[T]) *cursor[T] {
	next, stop := iter.Pull(src)
	return &cursor[T]{next: next, stop: stop}
}

func (c *cursor[T]) hasNext() bool {
	if c.peeked {
		return true
	}
	if c.done {
		return false
	}
	v, ok := c.next()
	if !ok {
		c.done = true
		return false
	}
	c.head, c.peeked = v, true
	return true
}

func (c *cursor[T]) take() (T, bool) {
	var zero T
	if !c.hasNext() {
		return zero, false
	}
	v := c.head
	c.head, c.peeked = zero, false
	return v, true
}
