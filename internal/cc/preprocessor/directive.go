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

// handleDirective is entered once the top-level reader has seen a `#`
// Symbol that started its source line. It raw-reads the directive name
// and dispatches; the terminating Newline is always consumed before
// returning, whichever branch is taken.
func (l *Lexer) handleDirective(hashLine int) error {
	nameTok, ok := l.nextRaw()
	if !ok {
		return newError(UnexpectedEOF, hashLine, "expected directive name after '#'")
	}
	if nameTok.Kind == lexer.Newline {
		// A bare '#' on its own line is a null directive; nothing to do.
		return nil
	}
	if nameTok.Kind != lexer.Identifier {
		return newError(MalformedDirective, hashLine, "expected directive name, got %q", nameTok.Value)
	}
	return l.dispatchDirective(nameTok.Value, hashLine)
}

// dispatchDirective handles a directive whose name has already been read,
// either by handleDirective for an ordinary `#`-at-line-start, or by
// skipToNextBranch re-entering directly on the `#elif`/`#else`/`#endif`
// that ended a skipped conditional branch.
func (l *Lexer) dispatchDirective(name string, hashLine int) error {
	switch name {
	case "include":
		return l.handleInclude(hashLine)
	case "define":
		return l.handleDefine(hashLine)
	case "undef":
		return l.handleUndef(hashLine)
	case "if":
		return l.handleIf(hashLine)
	case "ifdef":
		return l.handleIfdefIfndef(hashLine, true)
	case "ifndef":
		return l.handleIfdefIfndef(hashLine, false)
	case "elif":
		return l.handleElif(hashLine)
	case "else":
		return l.handleElse(hashLine)
	case "endif":
		return l.handleEndif(hashLine)
	default:
		return l.skipRestOfLine()
	}
}

// skipRestOfLine discards raw tokens through the next Newline; used for
// directives that are recognized but carry no semantics at this layer
// (#pragma, #line, #error, #warning are explicit non-goals).
func (l *Lexer) skipRestOfLine() error {
	for {
		tok, ok := l.nextRaw()
		if !ok {
			return nil
		}
		if tok.Kind == lexer.Newline {
			return nil
		}
	}
}

func (l *Lexer) handleInclude(line int) error {
	open, ok := l.nextRaw()
	if !ok {
		return newError(UnexpectedEOF, line, "unexpected end of file in #include")
	}
	var name string
	switch {
	case open.Kind == lexer.Symbol && open.Value == "<":
		var sb []byte
		for {
			tok, ok := l.nextRaw()
			if !ok {
				return newError(UnexpectedEOF, line, "unterminated #include")
			}
			if tok.Kind == lexer.Symbol && tok.Value == ">" {
				break
			}
			if tok.Kind == lexer.Newline {
				return newError(MalformedDirective, line, "unterminated #include")
			}
			sb = append(sb, tok.Value...)
		}
		name = string(sb)
	case open.Kind == lexer.String:
		name = open.Value
	default:
		return newError(MalformedDirective, line, "expected <FILE> or \"FILE\" after #include")
	}

	data, err := l.resolveInclude(name)
	if err != nil {
		return newError(IncludeNotFound, line, "%s: %v", name, err)
	}
	if err := l.skipRestOfLine(); err != nil {
		return err
	}
	l.buf.Push(name, data)
	// The included file's first token starts a line, even when the
	// #include line itself ended at end of file without a Newline.
	l.atLineStart = true
	return nil
}

func (l *Lexer) handleDefine(line int) error {
	nameTok, ok := l.nextRaw()
	if !ok || nameTok.Kind != lexer.Identifier {
		return newError(MalformedDirective, line, "expected macro name after #define")
	}

	paren, ok := l.nextRaw()
	if ok && paren.Kind == lexer.Symbol && paren.Value == "(" && !paren.LeadingSpace {
		return l.handleDefineFunctionLike(line, nameTok.Value)
	}
	if ok {
		l.pushback.Unget(paren)
	}
	return l.handleDefineObjectLike(line, nameTok.Value)
}

func (l *Lexer) handleDefineObjectLike(line int, name string) error {
	var body []lexer.Token
	for {
		tok, ok := l.nextRaw()
		if !ok || tok.Kind == lexer.Newline {
			break
		}
		body = append(body, stripHideSet(tok))
	}
	l.macros.Define(name, &Macro{IsFunction: false, Body: body})
	return nil
}

func (l *Lexer) handleDefineFunctionLike(line int, name string) error {
	var params []string
paramLoop:
	for {
		tok, ok := l.nextRaw()
		if !ok {
			return newError(UnexpectedEOF, line, "unexpected end of file in #define parameter list")
		}
		switch {
		case tok.Kind == lexer.Symbol && tok.Value == ")":
			break paramLoop
		case tok.Kind == lexer.Identifier:
			params = append(params, tok.Value)
			sep, ok := l.nextRaw()
			if !ok {
				return newError(UnexpectedEOF, line, "unexpected end of file in #define parameter list")
			}
			if sep.Kind == lexer.Symbol && sep.Value == ")" {
				break paramLoop
			}
			if !(sep.Kind == lexer.Symbol && sep.Value == ",") {
				return newError(MalformedDirective, line, "expected ',' or ')' in macro parameter list")
			}
		default:
			return newError(MalformedDirective, line, "expected parameter name, got %q", tok.Value)
		}
	}
	var rawBody []lexer.Token
	for {
		tok, ok := l.nextRaw()
		if !ok || tok.Kind == lexer.Newline {
			break
		}
		rawBody = append(rawBody, stripHideSet(tok))
	}
	l.macros.Define(name, &Macro{
		IsFunction: true,
		NumParams:  len(params),
		Body:       substituteParams(rawBody, params),
	})
	return nil
}

func stripHideSet(tok lexer.Token) lexer.Token {
	tok.HideSet = nil
	return tok
}

func (l *Lexer) handleUndef(line int) error {
	nameTok, ok := l.nextRaw()
	if !ok || nameTok.Kind != lexer.Identifier {
		return newError(MalformedDirective, line, "expected macro name after #undef")
	}
	l.macros.Undef(nameTok.Value)
	return l.skipRestOfLine()
}

func (l *Lexer) handleIf(line int) error {
	taken, err := l.evalConstexprLine(line)
	if err != nil {
		return err
	}
	l.cond = append(l.cond, taken)
	if !taken {
		return l.skipToNextBranch()
	}
	return nil
}

func (l *Lexer) handleIfdefIfndef(line int, wantDefined bool) error {
	nameTok, ok := l.nextRaw()
	if !ok || nameTok.Kind != lexer.Identifier {
		return newError(MalformedDirective, line, "expected macro name after #ifdef/#ifndef")
	}
	if err := l.skipRestOfLine(); err != nil {
		return err
	}
	defined := l.macros.IsDefined(nameTok.Value)
	taken := defined == wantDefined
	l.cond = append(l.cond, taken)
	if !taken {
		return l.skipToNextBranch()
	}
	return nil
}

func (l *Lexer) handleElif(line int) error {
	if len(l.cond) == 0 {
		return newError(MalformedDirective, line, "#elif without #if")
	}
	top := len(l.cond) - 1
	if l.cond[top] {
		// A branch already fired for this conditional group; skip,
		// regardless of this #elif's own condition.
		return l.skipToNextBranch()
	}
	taken, err := l.evalConstexprLine(line)
	if err != nil {
		return err
	}
	if !taken {
		return l.skipToNextBranch()
	}
	l.cond[top] = true
	return nil
}

func (l *Lexer) handleElse(line int) error {
	if len(l.cond) == 0 {
		return newError(MalformedDirective, line, "#else without #if")
	}
	if err := l.skipRestOfLine(); err != nil {
		return err
	}
	top := len(l.cond) - 1
	if l.cond[top] {
		return l.skipToNextBranch()
	}
	l.cond[top] = true
	return nil
}

func (l *Lexer) handleEndif(line int) error {
	if len(l.cond) == 0 {
		return newError(MalformedDirective, line, "#endif without #if")
	}
	l.cond = l.cond[:len(l.cond)-1]
	return l.skipRestOfLine()
}
