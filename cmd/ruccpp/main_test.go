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

package main

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nacaclanga/rucc/internal/cc/preprocessor"
)

func TestExpandGlobsDeduplicatesAcrossPatterns(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.c"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "b.c"), nil, 0o644))

	files, err := expandGlobs([]string{
		filepath.Join(dir, "**", "*.c"),
		filepath.Join(dir, "a.c"),
	})
	require.NoError(t, err)
	sort.Strings(files)
	assert.Equal(t, []string{filepath.Join(dir, "a.c"), filepath.Join(dir, "sub", "b.c")}, files)
}

func TestExpandGlobsRejectsInvalidPattern(t *testing.T) {
	_, err := expandGlobs([]string{"["})
	assert.Error(t, err)
}

func TestPreprocessFileWritesExpandedTokens(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "t.c")
	require.NoError(t, os.WriteFile(path, []byte("#define X 1\nX + X"), 0o644))

	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	require.NoError(t, preprocessFile(w, path, nil))
	require.NoError(t, w.Flush())
	assert.Equal(t, "# "+path+"\n1 + 1\n", buf.String())
}

func TestPreprocessFileAppliesOptions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "t.c")
	require.NoError(t, os.WriteFile(path, []byte("VALUE"), 0o644))

	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	opts := []preprocessor.Option{preprocessor.WithPredefinedMacro("VALUE", 9)}
	require.NoError(t, preprocessFile(w, path, opts))
	require.NoError(t, w.Flush())
	assert.Equal(t, "# "+path+"\n9\n", buf.String())
}
