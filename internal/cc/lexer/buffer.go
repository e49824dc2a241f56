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

// source is one entry in a BufferStack: the raw bytes of a single file (or
// in-memory chunk, e.g. the replacement list of a macro whose expansion
// needs to be rescanned) plus the current read offset into it.
type source struct {
	name string
	data []byte
	pos  int
}

func (s *source) peek() (byte, bool) {
	if s.pos >= len(s.data) {
		return 0, false
	}
	return s.data[s.pos], true
}

func (s *source) peekAt(offset int) (byte, bool) {
	idx := s.pos + offset
	if idx < 0 || idx >= len(s.data) {
		return 0, false
	}
	return s.data[idx], true
}

func (s *source) advance() byte {
	c := s.data[s.pos]
	s.pos++
	return c
}

// BufferStack is the Scanner's source of raw bytes. Scanning an #include
// directive pushes the included file's bytes on top of the stack; reaching
// its end pops back to the including file, exactly like the original
// lexer's peek/peek_pos deque-of-buffers. BufferStack tracks only column
// position: the line counter is the Scanner's alone to advance, and only
// when it emits a Newline token (see Scanner.Next), so that a '\n' byte
// consumed silently inside a line splice or a comment never moves it.
type BufferStack struct {
	stack  []*source
	column int
}

// NewBufferStack creates a BufferStack with a single, bottom-level source.
func NewBufferStack(name string, data []byte) *BufferStack {
	return &BufferStack{
		stack:  []*source{{name: name, data: data}},
		column: 1,
	}
}

// Push makes data the active source; reading resumes from the innermost
// pushed source until it is exhausted, then automatically pops.
func (b *BufferStack) Push(name string, data []byte) {
	b.stack = append(b.stack, &source{name: name, data: data})
	b.column = 1
}

// Depth returns the number of sources currently on the stack, including the
// bottom-level one supplied to NewBufferStack.
func (b *BufferStack) Depth() int {
	return len(b.stack)
}

// Name returns the name of the innermost non-exhausted source, or the
// bottom-level source's name if every source is exhausted.
func (b *BufferStack) Name() string {
	for i := len(b.stack) - 1; i >= 0; i-- {
		if _, ok := b.stack[i].peek(); ok || i == 0 {
			return b.stack[i].name
		}
	}
	return ""
}

// Column returns the current 1-based column within whichever source is
// innermost. Unlike the line number, column is not tracked across an
// #include boundary: each pushed source starts back at column 1.
func (b *BufferStack) Column() int {
	return b.column
}

// popExhausted discards sources that have no bytes left to read, leaving at
// least the bottom-level source on the stack.
func (b *BufferStack) popExhausted() {
	for len(b.stack) > 1 {
		top := b.stack[len(b.stack)-1]
		if _, ok := top.peek(); ok {
			return
		}
		b.stack = b.stack[:len(b.stack)-1]
	}
}

// Peek returns the next unread byte without consuming it.
func (b *BufferStack) Peek() (byte, bool) {
	b.popExhausted()
	return b.stack[len(b.stack)-1].peek()
}

// PeekAt returns the byte offset positions ahead of the read cursor, within
// the innermost source only (it never looks across a buffer boundary).
func (b *BufferStack) PeekAt(offset int) (byte, bool) {
	b.popExhausted()
	return b.stack[len(b.stack)-1].peekAt(offset)
}

// Advance consumes and returns the next byte, tracking column only: the
// line number is the Scanner's responsibility (see Scanner.Next), since a
// raw '\n' byte consumed here may belong to a line splice or a comment that
// never surfaces as a Newline token.
func (b *BufferStack) Advance() byte {
	b.popExhausted()
	c := b.stack[len(b.stack)-1].advance()
	if c == '\n' {
		b.column = 1
	} else {
		b.column++
	}
	return c
}

// AtEOF reports whether every source on the stack is exhausted.
func (b *BufferStack) AtEOF() bool {
	_, ok := b.Peek()
	return !ok
}
