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

package apis

import "reflect"

// Resolver turns values and types into names by consulting a chain of
// Strategy steps. The default chain asks the value (Namer), then the closest
// registered ancestor in a Registry, then derives "pkg.Type" by reflection.
// Implementations must be safe for concurrent use.
type Resolver interface {
	// Resolve names v, or returns "" when no step handles it.
	Resolve(v any, cfg Config) string
	// ResolveType names t, or returns "" when no step handles it.
	ResolveType(t reflect.Type, cfg Config) string
}

// Strategy is a single step of a Resolver chain. A step that does not handle
// its input returns handled == false and the chain moves on; a handled empty
// name stops the chain.
type Strategy interface {
	TryResolve(v any, cfg Config) (name string, handled bool)
	TryResolveType(t reflect.Type, cfg Config) (name string, handled bool)
}
