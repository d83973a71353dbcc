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

// Package reflect holds reflection helpers shared by the registry and the
// name resolution strategies.
package reflect

import (
	"errors"
	"reflect"

	"dirpx.dev/tcol/apis"
	"dirpx.dev/tcol/config"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("tcol(reflect): nil reflect.Type provided")
	// ErrNotNamed is returned when no named type is reachable by unwrapping
	// containers, e.g. for anonymous structs, funcs or empty interfaces.
	ErrNotNamed = errors.New("tcol(reflect): type has no named component")
)

// Normalize returns the nearest named type reachable from t by unwrapping
// containers, at most cfg.MaxUnwrap levels deep (config.DefaultMaxUnwrap
// when unset).
//
// Pointers, slices, arrays and channels unwrap to their element. For
// map[K]V the preferred side (V when cfg.MapPreferElem, else K) is returned
// if named, then the other side; otherwise unwrapping continues into V.
func Normalize(t reflect.Type, cfg apis.Config) (reflect.Type, error) {
	if t == nil {
		return nil, ErrNilType
	}
	depth := cfg.MaxUnwrap
	if depth <= 0 {
		depth = config.DefaultMaxUnwrap
	}

	for ; depth > 0; depth-- {
		switch t.Kind() {
		case reflect.Ptr, reflect.Slice, reflect.Array, reflect.Chan:
			t = t.Elem()
		case reflect.Map:
			first, second := t.Key(), t.Elem()
			if cfg.MapPreferElem {
				first, second = second, first
			}
			if named(first) {
				return first, nil
			}
			if named(second) {
				return second, nil
			}
			t = t.Elem()
		default:
			if named(t) {
				return t, nil
			}
			return nil, ErrNotNamed
		}
	}

	if named(t) {
		return t, nil
	}
	return nil, ErrNotNamed
}

// IsBuiltin reports whether t is a named type without a package, such as int
// or error.
func IsBuiltin(t reflect.Type) bool {
	return t != nil && t.Name() != "" && t.PkgPath() == ""
}

func named(t reflect.Type) bool {
	return t != nil && t.Name() != ""
}
