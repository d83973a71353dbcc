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

package tcol

import (
	"errors"
	"reflect"
	"sync"
	"sync/atomic"

	"dirpx.dev/tcol/apis"
	"dirpx.dev/tcol/builder"
	"dirpx.dev/tcol/config"
	"dirpx.dev/tcol/lock"
	"dirpx.dev/tcol/metrics"
)

var (
	// ErrNilRegistry is the panic value when a builder returns a nil registry.
	ErrNilRegistry = errors.New("tcol: builder returned nil registry")
	// ErrNilResolver is the panic value when a builder returns a nil resolver.
	ErrNilResolver = errors.New("tcol: builder returned nil resolver")
)

func init() {
	Reset()
}

// state is an immutable snapshot; writers publish a new one.
type state struct {
	cfg apis.Config
	reg apis.Registry
	res apis.Resolver
	bld apis.Builder
	// ownReg and ownRes mark layers set by the caller. Rebuilds keep them.
	ownReg bool
	ownRes bool
}

var (
	// buildMu serializes writers so that snapshots are never published half built.
	buildMu sync.Mutex
	st      atomic.Pointer[state]
)

// update derives a snapshot from the current one under buildMu. edit
// reports which layers must be rebuilt; a rebuilt registry implies a
// rebuilt resolver.
func update(edit func(next *state) (rebuildReg, rebuildRes bool)) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := *old
	rebuildReg, rebuildRes := edit(&next)

	if rebuildReg && !next.ownReg {
		next.reg = next.bld.BuildRegistry(next.cfg, old.reg)
		rebuildRes = true
	}
	if rebuildRes && !next.ownRes {
		next.res = next.bld.BuildResolver(next.cfg, next.reg)
	}
	if next.reg == nil {
		panic(ErrNilRegistry)
	}
	if next.res == nil {
		panic(ErrNilResolver)
	}
	st.Store(&next)
}

// Reset publishes a fresh default snapshot: default config and builder, an
// empty registry, and nothing caller-owned.
func Reset() {
	buildMu.Lock()
	defer buildMu.Unlock()

	s := &state{cfg: config.DefaultConfig(), bld: builder.New()}
	s.reg = s.bld.BuildRegistry(s.cfg, nil)
	s.res = s.bld.BuildResolver(s.cfg, s.reg)
	st.Store(s)
}

// Entity returns the name of v.
func Entity(v any) string {
	s := st.Load()
	return s.res.Resolve(v, s.cfg)
}

// EntityType returns the name of t.
func EntityType(t reflect.Type) string {
	s := st.Load()
	return s.res.ResolveType(t, s.cfg)
}

// EntityOf returns the name of T.
func EntityOf[T any]() string {
	return EntityType(reflect.TypeFor[T]())
}

// RegisterType names t in the global registry. Since lookups answer with the
// closest registered ancestor, registering an interface names every
// implementation that has no entry of its own.
func RegisterType(t reflect.Type, name string) error {
	return st.Load().reg.Register(t, name)
}

// Register is RegisterType for T.
func Register[T any](name string) error {
	return RegisterType(reflect.TypeFor[T](), name)
}

// UnregisterType removes t from the global registry.
func UnregisterType(t reflect.Type) bool {
	return st.Load().reg.Unregister(t)
}

// Config returns the global configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig replaces the configuration and rebuilds every layer that was
// not set explicitly. Registry entries are carried over.
func SetConfig(cfg apis.Config) {
	update(func(next *state) (bool, bool) {
		next.cfg = cfg
		return true, true
	})
}

// Registry returns the global registry.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry installs reg and rebuilds the resolver over it. reg survives
// later rebuilds until SetAll or Reset. A nil reg is ignored.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}
	update(func(next *state) (bool, bool) {
		next.reg, next.ownReg = reg, true
		return false, true
	})
}

// Resolver returns the global resolver.
func Resolver() apis.Resolver {
	return st.Load().res
}

// SetResolver installs res. It survives later rebuilds until SetAll or
// Reset. A nil res is ignored.
func SetResolver(res apis.Resolver) {
	if res == nil {
		return
	}
	update(func(next *state) (bool, bool) {
		next.res, next.ownRes = res, true
		return false, false
	})
}

// Builder returns the global builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder installs b and rebuilds every layer that was not set
// explicitly. A nil b is ignored.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}
	update(func(next *state) (bool, bool) {
		next.bld = b
		return true, true
	})
}

// SetAll replaces every layer at once. Nil cfg and bld keep the current
// ones; a nil reg or res is rebuilt by the builder, and only non-nil ones
// are kept across later rebuilds.
func SetAll(cfg *apis.Config, reg apis.Registry, res apis.Resolver, bld apis.Builder) {
	update(func(next *state) (bool, bool) {
		if cfg != nil {
			next.cfg = *cfg
		}
		if bld != nil {
			next.bld = bld
		}
		next.reg, next.ownReg = reg, reg != nil
		next.res, next.ownRes = res, res != nil
		return true, true
	})
}

// Collector returns a metrics collector that reports the lock counters of
// whichever registry is global at collection time, under the structure
// label "registry". Registries without lock counters report zeros.
func Collector(namespace string) *metrics.Collector {
	c := metrics.NewCollector(namespace)
	c.Track("registry", metrics.SourceFunc(func() lock.Stats {
		if src, ok := Registry().(metrics.Source); ok {
			return src.LockStats()
		}
		return lock.Stats{}
	}))
	return c
}
