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

// Package config builds apis.Config values, either from functional options
// or from a YAML file and the environment.
package config

import (
	"github.com/hashicorp/go-hclog"

	"dirpx.dev/tcol/apis"
)

const (
	// DefaultIncludeBuiltins names builtin types such as "int".
	DefaultIncludeBuiltins = true
	// DefaultMaxUnwrap bounds container unwrapping.
	DefaultMaxUnwrap = 8
	// DefaultMapPreferElem looks at map values before map keys.
	DefaultMapPreferElem = true
)

// DefaultConfig returns the configuration used when none is provided.
// Its Logger is nil, which discards output.
func DefaultConfig() apis.Config {
	return apis.Config{
		IncludeBuiltins: DefaultIncludeBuiltins,
		MaxUnwrap:       DefaultMaxUnwrap,
		MapPreferElem:   DefaultMapPreferElem,
	}
}

// Option mutates an apis.Config during NewConfig.
type Option func(*apis.Config)

// NewConfig applies opts to DefaultConfig.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.MaxUnwrap < 0 {
		cfg.MaxUnwrap = DefaultMaxUnwrap
	}
	return cfg
}

// WithIncludeBuiltins sets IncludeBuiltins.
func WithIncludeBuiltins(include bool) Option {
	return func(c *apis.Config) { c.IncludeBuiltins = include }
}

// WithMaxUnwrap sets MaxUnwrap. A negative depth means the default.
func WithMaxUnwrap(depth int) Option {
	return func(c *apis.Config) {
		if depth < 0 {
			depth = DefaultMaxUnwrap
		}
		c.MaxUnwrap = depth
	}
}

// WithMapPreferElem sets MapPreferElem.
func WithMapPreferElem(prefer bool) Option {
	return func(c *apis.Config) { c.MapPreferElem = prefer }
}

// WithLogger sets the logger handed to registries and resolvers.
func WithLogger(l hclog.Logger) Option {
	return func(c *apis.Config) { c.Logger = l }
}
