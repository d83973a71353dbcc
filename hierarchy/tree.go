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

package hierarchy

import (
	"errors"
	"sync"

	"dirpx.dev/tcol/apis"
)

var (
	// ErrZeroKey is returned when the zero key is declared.
	ErrZeroKey = errors.New("tcol(hierarchy): zero key cannot be declared")
	// ErrUnknownParent is returned when a parent has not been declared yet.
	ErrUnknownParent = errors.New("tcol(hierarchy): parent not declared")
	// ErrRedeclared is returned when a key is declared twice.
	ErrRedeclared = errors.New("tcol(hierarchy): key already declared")
)

// Tree is a statically declared type hierarchy with multiple inheritance.
// Each key's full ancestor set is computed once, at declaration, so queries
// are a set lookup. Parents must be declared before their children, which
// also rules out cycles.
//
// Tree is safe for concurrent use; queries may run while keys are declared.
type Tree[K comparable] struct {
	mu        sync.RWMutex
	ancestors map[K]map[K]struct{}
}

var _ apis.Hierarchy[string] = (*Tree[string])(nil)

// NewTree returns an empty Tree.
func NewTree[K comparable]() *Tree[K] {
	return &Tree[K]{ancestors: make(map[K]map[K]struct{})}
}

// Declare adds k with the given direct parents.
func (t *Tree[K]) Declare(k K, parents ...K) error {
	var zero K
	if k == zero {
		return ErrZeroKey
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.ancestors[k]; ok {
		return ErrRedeclared
	}
	set := make(map[K]struct{})
	for _, p := range parents {
		pa, ok := t.ancestors[p]
		if !ok {
			return ErrUnknownParent
		}
		set[p] = struct{}{}
		for a := range pa {
			set[a] = struct{}{}
		}
	}
	t.ancestors[k] = set
	return nil
}

// MustDeclare is Declare that panics on error. Intended for package-level
// hierarchy literals and tests.
func (t *Tree[K]) MustDeclare(k K, parents ...K) *Tree[K] {
	if err := t.Declare(k, parents...); err != nil {
		panic(err)
	}
	return t
}

// IsSubtype reports whether sub equals super or has it among its ancestors.
func (t *Tree[K]) IsSubtype(sub, super K) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	anc, ok := t.ancestors[sub]
	if !ok {
		return false
	}
	if sub == super {
		return true
	}
	_, ok = anc[super]
	return ok
}

// Belongs reports whether k has been declared.
func (t *Tree[K]) Belongs(k K) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.ancestors[k]
	return ok
}
