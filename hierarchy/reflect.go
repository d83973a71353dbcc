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

// Package hierarchy provides apis.Hierarchy implementations: one over Go
// reflect.Type values, a statically declared tree for synthetic type graphs,
// and an adapter for caller-supplied relations.
package hierarchy

import (
	"reflect"

	"dirpx.dev/tcol/apis"
)

// Reflect returns a Hierarchy over reflect.Type.
//
// Go has no class inheritance, so subtyping is interface satisfaction:
// sub is a subtype of super if they are the same type, or if super is an
// interface type and sub implements it. An interface that embeds another is
// therefore a subtype of the embedded one.
//
// root bounds the key family: only types that are subtypes of root belong.
// A nil root admits every non-nil type.
func Reflect(root reflect.Type) apis.Hierarchy[reflect.Type] {
	return reflectHierarchy{root: root}
}

type reflectHierarchy struct {
	root reflect.Type
}

var _ apis.Hierarchy[reflect.Type] = reflectHierarchy{}

// IsSubtype reports whether sub is super or implements it.
func (reflectHierarchy) IsSubtype(sub, super reflect.Type) bool {
	if sub == nil || super == nil {
		return false
	}
	if sub == super {
		return true
	}
	return super.Kind() == reflect.Interface && sub.Implements(super)
}

// Belongs reports whether k is a subtype of the root.
func (h reflectHierarchy) Belongs(k reflect.Type) bool {
	if k == nil {
		return false
	}
	return h.root == nil || h.IsSubtype(k, h.root)
}
