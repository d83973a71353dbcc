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

package config

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"dirpx.dev/tcol/apis"
)

// DefaultEnvPrefix is the prefix of environment variables read by Load,
// e.g. TCOL_MAX_UNWRAP.
const DefaultEnvPrefix = "TCOL_"

// ErrInvalidLogLevel is returned when log_level names no hclog level.
var ErrInvalidLogLevel = errors.New("tcol(config): invalid log level")

// document is the on-disk shape of a configuration.
type document struct {
	apis.Config `koanf:",squash"`
	LogLevel    string `koanf:"log_level"`
}

type loader struct {
	path      string
	envPrefix string
	logOutput io.Writer
	base      []Option
}

// LoadOption configures Load.
type LoadOption func(*loader)

// WithFile reads a YAML file before the environment.
func WithFile(path string) LoadOption {
	return func(l *loader) { l.path = path }
}

// WithEnvPrefix replaces DefaultEnvPrefix.
func WithEnvPrefix(prefix string) LoadOption {
	return func(l *loader) { l.envPrefix = prefix }
}

// WithLogOutput directs the logger created for log_level to w.
// The default is hclog's default output.
func WithLogOutput(w io.Writer) LoadOption {
	return func(l *loader) { l.logOutput = w }
}

// WithBase applies opts to the defaults before any source is read.
func WithBase(opts ...Option) LoadOption {
	return func(l *loader) { l.base = append(l.base, opts...) }
}

// Load builds a Config from, in increasing priority: defaults, the YAML
// file, and environment variables. Recognized keys are include_builtins,
// max_unwrap, map_prefer_elem and log_level. When log_level is set the
// returned Config carries a logger at that level.
func Load(opts ...LoadOption) (apis.Config, error) {
	l := &loader{envPrefix: DefaultEnvPrefix}
	for _, opt := range opts {
		opt(l)
	}

	k := koanf.New(".")
	if l.path != "" {
		if err := k.Load(file.Provider(l.path), yaml.Parser()); err != nil {
			return apis.Config{}, fmt.Errorf("load file %s: %w", l.path, err)
		}
	}
	prefix := l.envPrefix
	keyOf := func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, prefix))
	}
	if err := k.Load(env.Provider(prefix, ".", keyOf), nil); err != nil {
		return apis.Config{}, fmt.Errorf("load env: %w", err)
	}

	doc := document{Config: NewConfig(l.base...)}
	if err := k.Unmarshal("", &doc); err != nil {
		return apis.Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg := NewConfig(func(c *apis.Config) { *c = doc.Config })

	if doc.LogLevel != "" {
		level := hclog.LevelFromString(doc.LogLevel)
		if level == hclog.NoLevel {
			return apis.Config{}, fmt.Errorf("%w: %q", ErrInvalidLogLevel, doc.LogLevel)
		}
		cfg.Logger = hclog.New(&hclog.LoggerOptions{
			Name:   "tcol",
			Level:  level,
			Output: l.logOutput,
		})
	}
	return cfg, nil
}
