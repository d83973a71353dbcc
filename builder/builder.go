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

// Package builder assembles the default Registry and Resolver.
package builder

import (
	"dirpx.dev/tcol/apis"
	"dirpx.dev/tcol/registry"
	"dirpx.dev/tcol/resolver"
	"dirpx.dev/tcol/strategy"
)

// New returns the default Builder.
func New() apis.Builder {
	return defaults{}
}

type defaults struct{}

// BuildRegistry returns a registry for cfg holding the entries of prev. The
// entries are replayed subtypes first, which keeps their order. Entries that
// no longer normalize under cfg are dropped with a warning.
func (defaults) BuildRegistry(cfg apis.Config, prev apis.Registry) apis.Registry {
	reg := registry.New(cfg)
	if prev == nil {
		return reg
	}
	log := cfg.Log().Named("builder")
	for _, e := range prev.Entries() {
		if err := reg.Register(e.Type, e.Name); err != nil {
			log.Warn("entry not migrated", "type", e.Type, "name", e.Name, "error", err)
		}
	}
	return reg
}

// BuildResolver chains Namer, then Registry over reg, then Reflect.
func (defaults) BuildResolver(_ apis.Config, reg apis.Registry) apis.Resolver {
	return resolver.New(
		strategy.Namer(),
		strategy.Registry(reg),
		strategy.Reflect(),
	)
}
