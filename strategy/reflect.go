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

package strategy

import (
	"path"
	"reflect"
	"strings"
	"sync"

	"dirpx.dev/tcol/apis"
	uref "dirpx.dev/tcol/utils/reflect"
)

// Reflect returns the fallback strategy: "pkg.Type" of the nearest named
// type, with generic arguments stripped. Builtins resolve to their bare name,
// or to "" when cfg.IncludeBuiltins is false. Results are memoized per
// strategy instance.
func Reflect() apis.Strategy {
	return &reflectNames{}
}

type reflectNames struct {
	memo sync.Map // memoKey -> string
}

var _ apis.Strategy = (*reflectNames)(nil)

// memoKey covers every knob that changes the result.
type memoKey struct {
	t          reflect.Type
	builtins   bool
	maxUnwrap  int
	preferElem bool
}

func (s *reflectNames) TryResolve(v any, cfg apis.Config) (string, bool) {
	if v == nil {
		return "", false
	}
	return s.name(reflect.TypeOf(v), cfg), true
}

func (s *reflectNames) TryResolveType(t reflect.Type, cfg apis.Config) (string, bool) {
	if t == nil {
		return "", false
	}
	return s.name(t, cfg), true
}

func (s *reflectNames) name(t reflect.Type, cfg apis.Config) string {
	k := memoKey{t: t, builtins: cfg.IncludeBuiltins, maxUnwrap: cfg.MaxUnwrap, preferElem: cfg.MapPreferElem}
	if v, ok := s.memo.Load(k); ok {
		return v.(string)
	}
	v, _ := s.memo.LoadOrStore(k, qualified(t, cfg))
	return v.(string)
}

// qualified computes the name without memoization.
func qualified(t reflect.Type, cfg apis.Config) string {
	base, err := uref.Normalize(t, cfg)
	if err != nil {
		return ""
	}
	name, _, _ := strings.Cut(base.Name(), "[")
	switch {
	case base.PkgPath() != "":
		return path.Base(base.PkgPath()) + "." + name
	case cfg.IncludeBuiltins:
		return name
	}
	return ""
}
