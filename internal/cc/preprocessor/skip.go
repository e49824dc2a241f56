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

// skipToNextBranch scans forward, discarding tokens, until it reaches a
// directive belonging to the current conditional group: `#elif`, `#else`
// or `#endif` at nest level zero. Nested `#if`/`#ifdef`/`#ifndef` groups
// are skipped whole by tracking nest; every other directive encountered
// while skipping is ignored. On finding the boundary directive, control is
// handed directly to the Directive Handler's dispatch, since by the time
// it is found its name has already been consumed off the raw stream.
func (l *Lexer) skipToNextBranch() error {
	nest := 0
	atLineStart := true
	for {
		tok, ok := l.nextRaw()
		if !ok {
			return newError(UnexpectedEOF, 0, "unterminated conditional block")
		}
		if tok.Kind == lexer.Newline {
			atLineStart = true
			continue
		}
		isHash := atLineStart && tok.Kind == lexer.Symbol && tok.Value == "#"
		atLineStart = false
		if !isHash {
			continue
		}

		nameTok, ok := l.nextRaw()
		if !ok {
			return newError(UnexpectedEOF, tok.Line, "unterminated conditional block")
		}
		if nameTok.Kind != lexer.Identifier {
			// A null directive's Newline still ends the line.
			atLineStart = nameTok.Kind == lexer.Newline
			continue
		}

		switch nameTok.Value {
		case "if", "ifdef", "ifndef":
			nest++
		case "endif":
			if nest == 0 {
				return l.dispatchDirective(nameTok.Value, tok.Line)
			}
			nest--
		case "elif", "else":
			if nest == 0 {
				return l.dispatchDirective(nameTok.Value, tok.Line)
			}
		}
	}
}
