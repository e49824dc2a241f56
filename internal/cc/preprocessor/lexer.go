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

// Package preprocessor implements the C preprocessor: #include search,
// object-like and function-like macro definition and expansion with
// stringization, token pasting and hide-sets, and conditional compilation
// driven by an embedded integer constant-expression evaluator (package
// expr). Package lexer supplies the character-level scanning this package
// builds on; this package has no notion of the downstream C grammar.
package preprocessor

import (
	"os"

	"github.com/nacaclanga/rucc/internal/cc/lexer"
)

// Lexer is the subsystem's single entry point: construct one per
// compile, then drive it with Next/Peek. Its MacroStore is an instance
// field rather than process-wide state, so nothing stops a host from
// running several Lexers concurrently, each with its own macro namespace.
type Lexer struct {
	buf          *lexer.BufferStack
	scanner      *lexer.Scanner
	pushback     *Pushback
	macros       *MacroStore
	cond         []bool
	includePaths []string
	atLineStart  bool
	peeked       *lexer.Token
	parseExpr    ParseExpr
}

// Option configures a Lexer at construction time.
type Option func(*Lexer)

// WithIncludePaths overrides DefaultIncludePaths.
func WithIncludePaths(paths []string) Option {
	return func(l *Lexer) { l.includePaths = paths }
}

// WithParseExpr overrides the expression-parser entry point the Constexpr
// Bridge invokes; tests use this to capture the collected token line
// without running expr.Parse.
func WithParseExpr(p ParseExpr) Option {
	return func(l *Lexer) { l.parseExpr = p }
}

// WithPredefinedMacro registers name as an object-like macro whose body is
// the single IntNumber token value, before any source is read — the
// mechanism command-line `-D` flags and ppconfig use to seed a compile.
func WithPredefinedMacro(name string, value int) Option {
	return func(l *Lexer) {
		l.macros.Define(name, &Macro{
			Body: []lexer.Token{{Kind: lexer.IntNumber, Value: itoa(value)}},
		})
	}
}

func itoa(v int) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// New constructs a Lexer reading the primary source file at path.
func New(path string, opts ...Option) (*Lexer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewFromSource(path, data, opts...), nil
}

// NewFromSource constructs a Lexer over in-memory source, useful for tests
// and for embedding a preprocessor where the primary file is not backed
// by the filesystem.
func NewFromSource(name string, data []byte, opts ...Option) *Lexer {
	buf := lexer.NewBufferStack(name, data)
	l := &Lexer{
		buf:          buf,
		scanner:      lexer.NewScanner(buf),
		pushback:     NewPushback(),
		macros:       NewMacroStore(),
		includePaths: DefaultIncludePaths,
		atLineStart:  true,
		parseExpr:    defaultParseExpr,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Macros exposes the instance's macro store, for hosts that want to seed
// or inspect definitions directly (ppconfig uses this for command-line
// style `-D` macros).
func (l *Lexer) Macros() *MacroStore {
	return l.macros
}

// Skip consumes and returns true if the next token's text equals text;
// otherwise it leaves the stream untouched and returns false.
func (l *Lexer) Skip(text string) bool {
	tok, err := l.Peek()
	if err != nil || tok.Value != text {
		return false
	}
	_, _ = l.Next()
	return true
}

// ExpectSkip consumes the next token if its text equals text; otherwise
// it returns a fatal MalformedDirective error.
func (l *Lexer) ExpectSkip(text string) error {
	if l.Skip(text) {
		return nil
	}
	tok, err := l.Peek()
	line := 0
	if err == nil {
		line = tok.Line
	}
	return newError(MalformedDirective, line, "expected %q", text)
}

// PeekIs reports whether the next token's text equals text, without
// consuming it.
func (l *Lexer) PeekIs(text string) bool {
	tok, err := l.Peek()
	return err == nil && tok.Value == text
}

// NextIs reports whether the token after the next one's text equals text.
// Both tokens are read and then pushed back, so the stream is left
// exactly as it was found.
func (l *Lexer) NextIs(text string) bool {
	first, err := l.Next()
	if err != nil {
		return false
	}
	second, err2 := l.Next()
	result := err2 == nil && second.Value == text
	if err2 == nil {
		l.pushback.Unget(second)
	}
	l.pushback.Unget(first)
	return result
}
