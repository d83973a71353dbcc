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

package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/tcol/apis"
	"dirpx.dev/tcol/config"
)

func TestDefaultConfig(t *testing.T) {
	got := config.DefaultConfig()
	assert.Equal(t, apis.Config{
		IncludeBuiltins: config.DefaultIncludeBuiltins,
		MaxUnwrap:       config.DefaultMaxUnwrap,
		MapPreferElem:   config.DefaultMapPreferElem,
	}, got)
	assert.Equal(t, got, config.NewConfig())
}

func TestNewConfig_Options(t *testing.T) {
	logger := hclog.NewNullLogger()
	c := config.NewConfig(
		config.WithIncludeBuiltins(false),
		config.WithMapPreferElem(false),
		config.WithMaxUnwrap(3),
		config.WithLogger(logger),
	)
	assert.False(t, c.IncludeBuiltins)
	assert.False(t, c.MapPreferElem)
	assert.Equal(t, 3, c.MaxUnwrap)
	assert.Same(t, logger, c.Logger)

	assert.Equal(t, config.DefaultMaxUnwrap, config.NewConfig(config.WithMaxUnwrap(-1)).MaxUnwrap)
	assert.Zero(t, config.NewConfig(config.WithMaxUnwrap(0)).MaxUnwrap)
}

func TestConfig_LogNeverNil(t *testing.T) {
	assert.NotNil(t, apis.Config{}.Log())
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tcol.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_DefaultsOnly(t *testing.T) {
	cfg, err := config.Load(config.WithEnvPrefix("TCOL_TEST_NONE_"))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := writeFile(t, "include_builtins: false\nmax_unwrap: 3\nmap_prefer_elem: false\n")
	t.Setenv("TCOL_MAX_UNWRAP", "5")

	cfg, err := config.Load(config.WithFile(path))
	require.NoError(t, err)
	assert.False(t, cfg.IncludeBuiltins)
	assert.False(t, cfg.MapPreferElem)
	assert.Equal(t, 5, cfg.MaxUnwrap, "environment overrides the file")
}

func TestLoad_BaseOptions(t *testing.T) {
	cfg, err := config.Load(
		config.WithEnvPrefix("TCOL_TEST_NONE_"),
		config.WithBase(config.WithMaxUnwrap(2)),
	)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.MaxUnwrap)
	assert.True(t, cfg.IncludeBuiltins)
}

func TestLoad_LogLevel(t *testing.T) {
	var buf bytes.Buffer
	t.Setenv("TCOL_LOG_LEVEL", "debug")

	cfg, err := config.Load(config.WithLogOutput(&buf))
	require.NoError(t, err)
	require.NotNil(t, cfg.Logger)
	assert.True(t, cfg.Logger.IsDebug())
	assert.False(t, cfg.Logger.IsTrace())

	cfg.Log().Debug("hello")
	assert.Contains(t, buf.String(), "tcol: hello")
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(config.WithFile(filepath.Join(t.TempDir(), "missing.yaml")))
	assert.ErrorContains(t, err, "load file")

	t.Setenv("TCOL_LOG_LEVEL", "loud")
	_, err = config.Load()
	assert.ErrorIs(t, err, config.ErrInvalidLogLevel)
}
