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

// Hierarchy answers subtype questions about type identifiers of kind K.
//
// Identifiers need not be stored anywhere to be queried: a Hierarchy must
// answer for any K, including ones never inserted into a map. The zero value
// of K is treated as "no type" by consumers and is never passed in.
type Hierarchy[K comparable] interface {
	// IsSubtype reports whether sub is a subtype of super. The relation is
	// reflexive: IsSubtype(k, k) is true for every k that Belongs.
	IsSubtype(sub, super K) bool

	// Belongs reports whether k is part of the key family this hierarchy
	// describes. Keys outside the family are stored without reordering and
	// never match an ancestor lookup.
	Belongs(k K) bool
}
