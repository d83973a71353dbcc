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

// Package registry implements apis.Registry over a typemap.Map keyed by Go
// types, so that a lookup answers with the closest registered ancestor.
package registry

import (
	"errors"
	"reflect"
	"sync"

	"github.com/hashicorp/go-hclog"

	"dirpx.dev/tcol/apis"
	"dirpx.dev/tcol/config"
	"dirpx.dev/tcol/hierarchy"
	"dirpx.dev/tcol/lock"
	"dirpx.dev/tcol/typemap"
	uref "dirpx.dev/tcol/utils/reflect"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("tcol(registry): nil reflect.Type provided")
	// ErrEmptyName is returned when an empty name is provided.
	ErrEmptyName = errors.New("tcol(registry): empty name provided")
	// ErrConflictingRegistration indicates an attempt to re-register
	// a type with a different name.
	ErrConflictingRegistration = errors.New("tcol(registry): conflicting type registration")
)

// Registry keeps its entries ordered subtypes first. Interface types are
// stored as given; every other type is normalized to its nearest named type.
type Registry struct {
	cfg apis.Config
	log hclog.Logger

	// mu serializes the check-then-put of Register.
	mu sync.Mutex
	m  *typemap.Map[reflect.Type, string]
}

var _ apis.Registry = (*Registry)(nil)

// New constructs a Registry that normalizes types according to cfg.
// IncludeBuiltins is not used here.
func New(cfg apis.Config) *Registry {
	if cfg.MaxUnwrap <= 0 {
		cfg.MaxUnwrap = config.DefaultMaxUnwrap
	}
	log := cfg.Log().Named("registry")
	return &Registry{
		cfg: cfg,
		log: log,
		m:   typemap.New[reflect.Type, string](hierarchy.Reflect(nil), typemap.WithLogger(log)),
	}
}

// key maps t to the type it is stored under.
func (r *Registry) key(t reflect.Type) (reflect.Type, error) {
	if t == nil {
		return nil, ErrNilType
	}
	if t.Kind() == reflect.Interface {
		return t, nil
	}
	return uref.Normalize(t, r.cfg)
}

// Register associates t with name. It is idempotent for the same (type, name)
// pair and fails with ErrConflictingRegistration for a different name.
func (r *Registry) Register(t reflect.Type, name string) error {
	if t == nil {
		return ErrNilType
	}
	if name == "" {
		return ErrEmptyName
	}
	k, err := r.key(t)
	if err != nil {
		return err
	}

	if old, ok := r.m.Get(k); ok {
		return conflict(old, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.m.Get(k); ok {
		return conflict(old, name)
	}
	r.m.Put(k, name)
	r.log.Debug("registered", "type", k, "name", name)
	return nil
}

func conflict(old, name string) error {
	if old == name {
		return nil
	}
	return ErrConflictingRegistration
}

// Unregister removes the entry stored for t.
func (r *Registry) Unregister(t reflect.Type) bool {
	k, err := r.key(t)
	if err != nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.m.Remove(k)
	return ok
}

// Lookup returns the name of the closest registered ancestor of t. The
// normalized type is tried first, then t itself, so *T still finds
// interfaces that only the pointer implements.
func (r *Registry) Lookup(t reflect.Type) (string, bool) {
	if t == nil {
		return "", false
	}
	if nt, err := uref.Normalize(t, r.cfg); err == nil {
		if e, ok := r.m.FindClosestAncestor(nt); ok || nt == t {
			return e.Value, ok
		}
	}
	e, ok := r.m.FindClosestAncestor(t)
	return e.Value, ok
}

// Entries returns a copy of the entries, subtypes before their supertypes.
func (r *Registry) Entries() []apis.Entry {
	src := r.m.Entries()
	out := make([]apis.Entry, len(src))
	for i, e := range src {
		out[i] = apis.Entry{Type: e.Key, Name: e.Value}
	}
	return out
}

// Count returns the number of registered entries.
func (r *Registry) Count() int {
	return r.m.Len()
}

// Reset clears all registered entries.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m.Clear()
}

// LockStats reports the counters of the underlying map's lock.
func (r *Registry) LockStats() lock.Stats {
	return r.m.LockStats()
}
