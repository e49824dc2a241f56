// Copyright 2026 EngFlow Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ppconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMacroDef(t *testing.T) {
	type testCase struct {
		def       string
		wantName  string
		wantValue int64
	}
	valid := []testCase{
		{"FOO", "FOO", 1},
		{"DEC=123", "DEC", 123},
		{"HEX=0x2A", "HEX", 42},
		{"OCT=0755", "OCT", 493},
		{"-D__ARM_ARCH=8", "__ARM_ARCH", 8},
	}
	for _, tc := range valid {
		name, value, err := ParseMacroDef(tc.def)
		require.NoError(t, err)
		assert.Equal(t, tc.wantName, name)
		assert.Equal(t, tc.wantValue, value)
	}

	invalid := []string{"FLT=3.14", "-DBAD-NAME=1", "SUFFIX=123XYZ"}
	for _, def := range invalid {
		_, _, err := ParseMacroDef(def)
		assert.Error(t, err, def)
	}
}

func TestLoadMissingFileIsNotError(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Empty(t, cfg.IncludePaths)
}

func TestLoadParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".rucc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("include_paths:\n  - ./vendor/include\nmacros:\n  - DEBUG=1\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"./vendor/include"}, cfg.IncludePaths)
	assert.Equal(t, []string{"DEBUG=1"}, cfg.Macros)
}

func TestMergeAppliesCommandLineAfterConfig(t *testing.T) {
	cfg := Config{IncludePaths: []string{"./a"}, Macros: []string{"X=1"}}
	includePaths, macros, err := Merge(cfg, []string{"./b"}, []string{"Y=2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"./a", "./b"}, includePaths)
	assert.Equal(t, []string{"X=1", "Y=2"}, macros)
}

func TestOptionsBuildsPredefinedMacros(t *testing.T) {
	cfg := Config{Macros: []string{"X=7"}}
	opts, err := cfg.Options(nil, []string{"Y"}, "")
	require.NoError(t, err)
	require.Len(t, opts, 2)
}

func TestOptionsSeedsPlatformMacrosBeforeOverrides(t *testing.T) {
	cfg := Config{}
	opts, err := cfg.Options(nil, nil, "linux/x86_64")
	require.NoError(t, err)
	assert.NotEmpty(t, opts)
}

func TestOptionsRejectsUnknownPlatform(t *testing.T) {
	cfg := Config{}
	_, err := cfg.Options(nil, nil, "beos/x86_64")
	assert.Error(t, err)
}
