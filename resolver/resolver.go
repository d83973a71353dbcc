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

// Package resolver chains strategies into an apis.Resolver.
package resolver

import (
	"reflect"

	"dirpx.dev/tcol/apis"
)

// New returns a Resolver that tries strategies in order and answers with the
// first one that handles the input. Nil strategies are dropped. The result
// is immutable and safe for concurrent use when the strategies are.
func New(strategies ...apis.Strategy) apis.Resolver {
	c := chain{strats: make([]apis.Strategy, 0, len(strategies))}
	for _, s := range strategies {
		if s != nil {
			c.strats = append(c.strats, s)
		}
	}
	return c
}

type chain struct {
	strats []apis.Strategy
}

// Resolve returns the first handled name for v, or "".
func (c chain) Resolve(v any, cfg apis.Config) string {
	for _, s := range c.strats {
		if name, ok := s.TryResolve(v, cfg); ok {
			return name
		}
	}
	cfg.Log().Named("resolver").Debug("unresolved value", "type", reflect.TypeOf(v))
	return ""
}

// ResolveType returns the first handled name for t, or "".
func (c chain) ResolveType(t reflect.Type, cfg apis.Config) string {
	for _, s := range c.strats {
		if name, ok := s.TryResolveType(t, cfg); ok {
			return name
		}
	}
	cfg.Log().Named("resolver").Debug("unresolved type", "type", t)
	return ""
}
