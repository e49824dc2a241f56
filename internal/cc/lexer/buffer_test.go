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

package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferStackAdvanceTracksColumn(t *testing.T) {
	b := NewBufferStack("a.c", []byte("ab\ncd"))
	assert.Equal(t, 1, b.Column())
	b.Advance()
	b.Advance()
	assert.Equal(t, 3, b.Column())
	b.Advance()
	assert.Equal(t, 1, b.Column())
}

func TestBufferStackPushPopsOnExhaustion(t *testing.T) {
	b := NewBufferStack("outer.c", []byte("O"))
	b.Push("inner.h", []byte("I"))
	assert.Equal(t, byte('I'), b.Advance())
	c, ok := b.Peek()
	assert.True(t, ok)
	assert.Equal(t, byte('O'), c)
	assert.Equal(t, byte('O'), b.Advance())
	assert.True(t, b.AtEOF())
}

func TestBufferStackPushResetsColumn(t *testing.T) {
	b := NewBufferStack("outer.c", []byte("abc"))
	b.Advance()
	b.Advance()
	assert.Equal(t, 3, b.Column())
	b.Push("inner.h", []byte("xy"))
	assert.Equal(t, 1, b.Column())
}
