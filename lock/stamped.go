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

// Package lock provides Stamped, a sequence lock offering optimistic reads
// that fall back to a shared permit, plus exclusive writes.
//
// Stamped is not reentrant. Code running inside a guarded body must never
// call back into an operation guarded by the same Stamped; structures expose
// a locked public surface and call unguarded internal helpers when composing
// operations under an existing guard.
//
// An optimistic body runs concurrently with writers. It must only read data
// that writers publish atomically (for example an immutable snapshot behind
// an atomic.Pointer), and it may run twice, so it must not have side effects
// beyond its return value.
package lock

import (
	"sync"
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// Stamped is a sequence lock over sync.RWMutex.
// The zero value is ready to use. A Stamped must not be copied after first use.
type Stamped struct {
	mu sync.RWMutex

	_ cpu.CacheLinePad
	// seq is odd while a writer holds mu.
	seq atomic.Uint64
	_   cpu.CacheLinePad

	optimistic atomic.Uint64
	fallback   atomic.Uint64
	writes     atomic.Uint64
}

// Stats is a point-in-time copy of a Stamped's counters.
type Stats struct {
	// OptimisticReads counts reads that validated without taking a permit.
	OptimisticReads uint64
	// FallbackReads counts reads that ran under the shared permit.
	FallbackReads uint64
	// Writes counts exclusive sections.
	Writes uint64
}

// TryOptimisticRead returns a stamp for a later Validate.
// It fails while a writer holds the lock.
func (l *Stamped) TryOptimisticRead() (stamp uint64, ok bool) {
	s := l.seq.Load()
	return s, s&1 == 0
}

// Validate reports whether no writer has entered since stamp was taken.
func (l *Stamped) Validate(stamp uint64) bool {
	return l.seq.Load() == stamp
}

// RLock acquires the shared permit.
func (l *Stamped) RLock() { l.mu.RLock() }

// RUnlock releases the shared permit.
func (l *Stamped) RUnlock() { l.mu.RUnlock() }

// Lock acquires the exclusive permit and invalidates outstanding stamps.
func (l *Stamped) Lock() {
	l.mu.Lock()
	l.seq.Add(1)
}

// Unlock publishes the write and releases the exclusive permit.
func (l *Stamped) Unlock() {
	l.seq.Add(1)
	l.mu.Unlock()
}

// Stats returns the current counters.
func (l *Stamped) Stats() Stats {
	return Stats{
		OptimisticReads: l.optimistic.Load(),
		FallbackReads:   l.fallback.Load(),
		Writes:          l.writes.Load(),
	}
}

// ReadOptimistic runs body without blocking writers and validates the result.
// If a writer intervened, body runs again under the shared permit.
func ReadOptimistic[T any](l *Stamped, body func() T) T {
	if stamp, ok := l.TryOptimisticRead(); ok {
		v := body()
		if l.Validate(stamp) {
			l.optimistic.Add(1)
			return v
		}
	}
	return ReadShared(l, body)
}

// ReadShared runs body under the shared permit.
func ReadShared[T any](l *Stamped, body func() T) T {
	l.RLock()
	defer l.RUnlock()
	l.fallback.Add(1)
	return body()
}

// WriteExclusive runs body under the exclusive permit and returns its result.
func WriteExclusive[T any](l *Stamped, body func() T) T {
	l.Lock()
	defer l.Unlock()
	l.writes.Add(1)
	return body()
}

// Exclusive is WriteExclusive for bodies without a result.
func Exclusive(l *Stamped, body func()) {
	l.Lock()
	defer l.Unlock()
	l.writes.Add(1)
	body()
}
