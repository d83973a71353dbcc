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

package hierarchy_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/tcol/hierarchy"
)

type Number interface{ Float64() float64 }

type Integral interface {
	Number
	Int64() int64
}

type Integer int

func (i Integer) Float64() float64 { return float64(i) }
func (i Integer) Int64() int64     { return int64(i) }

type Text string

func (s Text) String() string { return string(s) }

var (
	anyT      = reflect.TypeFor[any]()
	numberT   = reflect.TypeFor[Number]()
	integralT = reflect.TypeFor[Integral]()
	integerT  = reflect.TypeFor[Integer]()
	textT     = reflect.TypeFor[Text]()
)

func TestReflect_IsSubtype(t *testing.T) {
	h := hierarchy.Reflect(nil)

	cases := []struct {
		name       string
		sub, super reflect.Type
		want       bool
	}{
		{"reflexive concrete", integerT, integerT, true},
		{"reflexive interface", numberT, numberT, true},
		{"concrete implements", integerT, numberT, true},
		{"concrete implements embedded", integerT, integralT, true},
		{"everything is any", textT, anyT, true},
		{"interface embeds", integralT, numberT, true},
		{"embedded is not sub", numberT, integralT, false},
		{"unrelated concrete", textT, numberT, false},
		{"concrete super is never a supertype", integerT, textT, false},
		{"nil sub", nil, numberT, false},
		{"nil super", integerT, nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, h.IsSubtype(tc.sub, tc.super))
		})
	}
}

func TestReflect_Belongs(t *testing.T) {
	open := hierarchy.Reflect(nil)
	assert.True(t, open.Belongs(textT))
	assert.False(t, open.Belongs(nil))

	numbers := hierarchy.Reflect(numberT)
	assert.True(t, numbers.Belongs(integerT))
	assert.True(t, numbers.Belongs(integralT))
	assert.False(t, numbers.Belongs(textT))
	assert.False(t, numbers.Belongs(anyT))
}

func TestTree_DeclareAndQuery(t *testing.T) {
	tree := hierarchy.NewTree[string]().
		MustDeclare("Object").
		MustDeclare("Number", "Object").
		MustDeclare("Comparable").
		MustDeclare("Integer", "Number", "Comparable")

	assert.True(t, tree.IsSubtype("Integer", "Object"), "ancestors are transitive")
	assert.True(t, tree.IsSubtype("Integer", "Comparable"))
	assert.True(t, tree.IsSubtype("Number", "Number"))
	assert.False(t, tree.IsSubtype("Object", "Number"))
	assert.False(t, tree.IsSubtype("Boolean", "Object"), "undeclared keys relate to nothing")

	assert.True(t, tree.Belongs("Comparable"))
	assert.False(t, tree.Belongs("Boolean"))
}

func TestTree_DeclareErrors(t *testing.T) {
	tree := hierarchy.NewTree[string]().MustDeclare("Object")

	require.ErrorIs(t, tree.Declare(""), hierarchy.ErrZeroKey)
	require.ErrorIs(t, tree.Declare("Object"), hierarchy.ErrRedeclared)
	require.ErrorIs(t, tree.Declare("Integer", "Number"), hierarchy.ErrUnknownParent)
	assert.False(t, tree.Belongs("Integer"), "failed declaration leaves no trace")

	assert.Panics(t, func() { tree.MustDeclare("Object") })
}

func TestFunc(t *testing.T) {
	// Prefix relation: "a.b" is a subtype of "a".
	h := hierarchy.Func(func(sub, super string) bool {
		return strings.HasPrefix(sub, super+".")
	})

	assert.True(t, h.IsSubtype("a.b", "a"))
	assert.True(t, h.IsSubtype("a", "a"))
	assert.False(t, h.IsSubtype("a", "a.b"))
	assert.True(t, h.Belongs("x"))
	assert.False(t, h.Belongs(""))
}
