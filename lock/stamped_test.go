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

package lock_test

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/tcol/lock"
)

func TestStamped_ValidateAfterWrite(t *testing.T) {
	var l lock.Stamped

	stamp, ok := l.TryOptimisticRead()
	require.True(t, ok)
	assert.True(t, l.Validate(stamp))

	l.Lock()
	_, ok = l.TryOptimisticRead()
	assert.False(t, ok, "optimistic read must fail while a writer holds the lock")
	l.Unlock()

	assert.False(t, l.Validate(stamp), "stamp taken before a write must not validate")
}

func TestReadOptimistic_NoContention(t *testing.T) {
	var l lock.Stamped

	got := lock.ReadOptimistic(&l, func() int { return 42 })
	assert.Equal(t, 42, got)

	st := l.Stats()
	assert.Equal(t, uint64(1), st.OptimisticReads)
	assert.Zero(t, st.FallbackReads)
}

func TestReadOptimistic_FallsBackWhenWriterIntervenes(t *testing.T) {
	var l lock.Stamped
	calls := 0

	got := lock.ReadOptimistic(&l, func() int {
		calls++
		if calls == 1 {
			// Simulate a writer completing between stamp and validation.
			l.Lock()
			l.Unlock()
		}
		return calls
	})

	assert.Equal(t, 2, got, "second run happens under the shared permit")
	st := l.Stats()
	assert.Zero(t, st.OptimisticReads)
	assert.Equal(t, uint64(1), st.FallbackReads)
}

func TestWriteExclusive_ReturnsBodyResult(t *testing.T) {
	var l lock.Stamped

	got := lock.WriteExclusive(&l, func() string { return "done" })
	lock.Exclusive(&l, func() {})

	assert.Equal(t, "done", got)
	assert.Equal(t, uint64(2), l.Stats().Writes)
}

// TestStamped_ConcurrentReadersSeeConsistentPairs checks that readers never
// observe a half-applied write.
func TestStamped_ConcurrentReadersSeeConsistentPairs(t *testing.T) {
	type pair struct{ a, b int }

	var (
		l   lock.Stamped
		cur atomic.Pointer[pair]
	)
	cur.Store(&pair{})

	workers := runtime.GOMAXPROCS(0) * 2
	var wg sync.WaitGroup

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				p := lock.ReadOptimistic(&l, func() pair { return *cur.Load() })
				if p.a != p.b {
					t.Errorf("torn read: %+v", p)
					return
				}
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 1; i <= 1000; i++ {
			lock.Exclusive(&l, func() { cur.Store(&pair{a: i, b: i}) })
		}
	}()

	wg.Wait()

	st := l.Stats()
	assert.Equal(t, uint64(1000), st.Writes)
	assert.Equal(t, uint64(workers*2000), st.OptimisticReads+st.FallbackReads)
}
