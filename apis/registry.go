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

// Registry maps Go types to explicit names and answers lookups with the name
// of the closest registered ancestor type. Registering an interface type
// therefore names every implementation that has no more specific entry.
type Registry interface {
	// Register associates t with a fixed name.
	// Re-registering the same (type, name) pair is a no-op; a different name fails.
	Register(t reflect.Type, name string) error
	// Unregister removes t. It reports whether t was registered.
	Unregister(t reflect.Type) bool
	// Lookup returns the name registered for t or for its closest registered ancestor.
	Lookup(t reflect.Type) (name string, ok bool)
	// Entries returns a copy of all entries, subtypes before their supertypes.
	Entries() []Entry
	// Count returns the number of registered entries.
	Count() int
	// Reset clears all registered entries.
	Reset()
}

// Entry is a single (type, name) association in a Registry snapshot.
type Entry struct {
	// Type is the registered reflect.Type.
	Type reflect.Type
	// Name is the associated name.
	Name string
}
