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

package hierarchy

import "dirpx.dev/tcol/apis"

// Func adapts a caller-supplied subtype relation. Every non-zero key belongs.
// fn is only consulted for distinct keys; equal keys are always subtypes.
func Func[K comparable](fn func(sub, super K) bool) apis.Hierarchy[K] {
	return funcHierarchy[K](fn)
}

type funcHierarchy[K comparable] func(sub, super K) bool

func (f funcHierarchy[K]) IsSubtype(sub, super K) bool {
	return sub == super || f(sub, super)
}

func (funcHierarchy[K]) Belongs(k K) bool {
	var zero K
	return k != zero
}
