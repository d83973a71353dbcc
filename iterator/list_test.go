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

package iterator_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/tcol/iterator"
)

func TestList_Mutations(t *testing.T) {
	src := []string{"a", "b"}
	l := iterator.NewList(src...)
	src[0] = "changed"

	assert.Equal(t, []string{"a", "b"}, l.Snapshot(), "input is copied")

	l.Append("c", "d")
	assert.Equal(t, 4, l.Len())

	require.True(t, l.Set(1, "B"))
	assert.False(t, l.Set(4, "x"))
	assert.False(t, l.Set(-1, "x"))

	v, ok := l.RemoveAt(0)
	require.True(t, ok)
	assert.Equal(t, "a", v)
	_, ok = l.RemoveAt(10)
	assert.False(t, ok)

	assert.Equal(t, 1, l.RemoveFunc(func(s string) bool { return s == "d" }))
	assert.Zero(t, l.RemoveFunc(func(s string) bool { return s == "zzz" }))

	assert.Equal(t, []string{"B", "c"}, l.Snapshot())
	got, ok := l.At(1)
	assert.True(t, ok)
	assert.Equal(t, "c", got)
	_, ok = l.At(2)
	assert.False(t, ok)
}

func TestList_SnapshotIsDetached(t *testing.T) {
	l := iterator.NewList(1, 2, 3)
	snap := l.Snapshot()
	snap[0] = 100

	v, _ := l.At(0)
	assert.Equal(t, 1, v)
}

func TestList_AllIsLive(t *testing.T) {
	l := iterator.NewList(1, 2)

	var got []int
	for v := range l.All() {
		got = append(got, v)
		if v == 2 {
			l.Append(3)
		}
	}
	assert.Equal(t, []int{1, 2, 3}, got)
	assert.Equal(t, []int{1, 2, 3}, slices.Collect(l.All()))
}

func TestList_LockStats(t *testing.T) {
	l := iterator.NewList[int]()
	l.Append(1)
	l.Append()
	_ = l.Len()

	st := l.LockStats()
	assert.Equal(t, uint64(2), st.Writes)
	assert.Equal(t, uint64(1), st.OptimisticReads)
}
