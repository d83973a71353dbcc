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

// Package tcol is a small toolkit of concurrent, type-aware collections and
// a process-wide type naming service built on top of them.
//
// # Collections
//
// The building blocks live in sub-packages:
//
//   - lock: Stamped, a sequence lock whose readers run optimistically and
//     fall back to a shared permit only when a writer intervened.
//   - typemap: Map, an ordered map keyed by type identifiers that keeps
//     every subtype ahead of its supertypes, so the first supertype of a
//     query found in key order is its closest registered ancestor.
//   - hierarchy: subtype relations for typemap keys, over reflect.Type, a
//     declared tree, or a caller-supplied function.
//   - iterator: Cyclic, which walks a sequence once from a start offset and
//     wraps around; Restarting, which cycles over a source forever; and
//     List, a copy-on-write list that can back both while being resized.
//   - metrics: a Prometheus collector for the lock counters of the above.
//
// # Naming
//
// The root package turns a Go value or type into a stable, human-readable
// name such as "authn.jwt", for logs, metrics and audit trails:
//
//	tcol.Register[jwt.Handler]("authn.handler")
//	name := tcol.Entity(&jwtHandler{}) // "authn.handler"
//
// Resolution tries, in order: the value's own apis.Namer implementation,
// the closest registered ancestor of its type in the Registry, and finally
// the "pkg.Type" of its nearest named type. Registering an interface thus
// names all of its implementations that lack a more specific entry.
//
// The global state is an immutable snapshot of Config, Registry, Resolver
// and Builder behind an atomic pointer. Reads load the snapshot and take no
// locks of their own. Writers (SetConfig, SetBuilder, SetRegistry,
// SetResolver, SetAll, Reset) serialize on a build mutex, derive a new
// snapshot and publish it. Layers installed explicitly with SetRegistry or
// SetResolver are kept when other changes trigger a rebuild; every other
// layer is rebuilt by the Builder, and registry entries are migrated in
// their existing order.
package tcol
