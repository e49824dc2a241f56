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

package preprocessor

import "github.com/nacaclanga/rucc/internal/cc/lexer"

// Pushback is a stack of token deques. Unget pushes onto the top deque's
// tail; Pop draws from the top deque's tail, so the most recently ungotten
// token is read first. A new scope is pushed before a nested read loop
// (the constexpr bridge's embedded expression parse) and popped
// afterward, so state ungotten during that nested read cannot leak into
// the enclosing read.
type Pushback struct {
	scopes [][]lexer.Token
}

// NewPushback returns a Pushback with a single, bottom-level scope.
func NewPushback() *Pushback {
	return &Pushback{scopes: [][]lexer.Token{nil}}
}

// PushScope opens a new, empty scope on top of the stack.
func (p *Pushback) PushScope() {
	p.scopes = append(p.scopes, nil)
}

// PopScope discards the top scope and whatever tokens remain in it. It is
// a programming error to pop the bottom-level scope.
func (p *Pushback) PopScope() {
	if len(p.scopes) > 1 {
		p.scopes = p.scopes[:len(p.scopes)-1]
	}
}

// Unget pushes t onto the top scope; the next Pop returns t.
func (p *Pushback) Unget(t lexer.Token) {
	top := len(p.scopes) - 1
	p.scopes[top] = append(p.scopes[top], t)
}

// UngetAll pushes ts so that Pop drains them in their original order:
// ts[0] first, then ts[1], and so on.
func (p *Pushback) UngetAll(ts []lexer.Token) {
	for i := len(ts) - 1; i >= 0; i-- {
		p.Unget(ts[i])
	}
}

// Pop draws the next token from the top scope, reporting false if it is
// empty. Pop never crosses a scope boundary: an empty top scope means no
// token is available, even if an outer scope has queued tokens.
func (p *Pushback) Pop() (lexer.Token, bool) {
	top := len(p.scopes) - 1
	n := len(p.scopes[top])
	if n == 0 {
		return lexer.Token{}, false
	}
	t := p.scopes[top][n-1]
	p.scopes[top] = p.scopes[top][:n-1]
	return t, true
}
