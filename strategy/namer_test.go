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

package strategy_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"dirpx.dev/tcol/apis"
	"dirpx.dev/tcol/strategy"
)

type selfNamed struct{}

func (selfNamed) EntityName() string { return "custom.name" }

var _ apis.Namer = selfNamed{}

func TestNamer(t *testing.T) {
	s := strategy.Namer()

	got, ok := s.TryResolve(selfNamed{}, apis.Config{})
	assert.True(t, ok)
	assert.Equal(t, "custom.name", got)

	got, ok = s.TryResolve(&selfNamed{}, apis.Config{})
	assert.True(t, ok, "pointer method set includes value methods")
	assert.Equal(t, "custom.name", got)

	_, ok = s.TryResolve(struct{}{}, apis.Config{})
	assert.False(t, ok)
	_, ok = s.TryResolve(nil, apis.Config{})
	assert.False(t, ok)

	_, ok = s.TryResolveType(reflect.TypeOf(selfNamed{}), apis.Config{})
	assert.False(t, ok, "types have no instance to ask")
}
