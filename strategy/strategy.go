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

// Package strategy holds the steps a resolver chains to name a value or a
// type: self-naming values, registry lookups and a reflection fallback.
package strategy

import (
	"reflect"

	"dirpx.dev/tcol/apis"
)

// Namer returns the step that asks the value itself through apis.Namer.
// Bare types carry no instance to ask, so it never handles them.
func Namer() apis.Strategy {
	return selfNamed{}
}

type selfNamed struct{}

func (selfNamed) TryResolve(v any, _ apis.Config) (string, bool) {
	if n, ok := v.(apis.Namer); ok {
		return n.EntityName(), true
	}
	return "", false
}

func (selfNamed) TryResolveType(reflect.Type, apis.Config) (string, bool) {
	return "", false
}

// Registry returns the step that names a type after its closest registered
// ancestor in reg. With a nil reg it never handles anything.
func Registry(reg apis.Registry) apis.Strategy {
	return registered{reg: reg}
}

type registered struct {
	reg apis.Registry
}

func (s registered) TryResolve(v any, cfg apis.Config) (string, bool) {
	return s.TryResolveType(reflect.TypeOf(v), cfg)
}

func (s registered) TryResolveType(t reflect.Type, _ apis.Config) (string, bool) {
	if s.reg == nil || t == nil {
		return "", false
	}
	return s.reg.Lookup(t)
}

var (
	_ apis.Strategy = selfNamed{}
	_ apis.Strategy = registered{}
)
