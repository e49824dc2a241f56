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

package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCanonicalizesAliases(t *testing.T) {
	p, err := Parse("macos/amd64")
	require.NoError(t, err)
	assert.Equal(t, Platform{OS: osx, Arch: x86_64}, p)
}

func TestParseRejectsUnknownOS(t *testing.T) {
	_, err := Parse("beos/x86_64")
	assert.Error(t, err)
}

func TestParseRejectsMissingSlash(t *testing.T) {
	_, err := Parse("linux")
	assert.Error(t, err)
}

func TestLookupLinuxX8664(t *testing.T) {
	p, err := New(linux, x86_64)
	require.NoError(t, err)
	env := Lookup(p)
	assert.Equal(t, 1, env["__linux__"])
	assert.Equal(t, 1, env["__x86_64__"])
	assert.Equal(t, 1, env["unix"])
	_, isWindows := env["_WIN32"]
	assert.False(t, isWindows)
}

func TestLookupWindowsI386DoesNotDefineUnix(t *testing.T) {
	p, err := New(windows, i386)
	require.NoError(t, err)
	env := Lookup(p)
	assert.Equal(t, 1, env["_WIN32"])
	assert.Equal(t, 1, env["_M_IX86"])
	_, isUnix := env["unix"]
	assert.False(t, isUnix)
}

func TestLookupAppleDoesNotDefineUnix(t *testing.T) {
	p, err := New(osx, x86_64)
	require.NoError(t, err)
	env := Lookup(p)
	assert.Equal(t, 1, env["__APPLE__"])
	_, isUnix := env["unix"]
	assert.False(t, isUnix, "Apple platforms are unix-like but do not predefine unix")
}

func TestLookupUnknownPlatformReturnsNil(t *testing.T) {
	assert.Nil(t, Lookup(Platform{OS: "none-such", Arch: "none-such"}))
}

func TestCompareOrdersByOSThenArch(t *testing.T) {
	a := Platform{OS: linux, Arch: x86_64}
	b := Platform{OS: linux, Arch: aarch64}
	c := Platform{OS: osx, Arch: x86_64}
	assert.True(t, Compare(a, b) > 0) // x86_64 > aarch64 lexically
	assert.True(t, Compare(a, c) < 0) // linux < osx lexically
}

func TestMacrosCloneIsIndependent(t *testing.T) {
	m := Macros{"X": 1}
	clone := m.Clone()
	clone["X"] = 2
	assert.Equal(t, 1, m["X"])
}
