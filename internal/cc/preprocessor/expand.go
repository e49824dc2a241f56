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

import (
	"errors"
	"strings"

	"github.com/nacaclanga/rucc/internal/cc/lexer"
	"github.com/nacaclanga/rucc/internal/collections"
)

// readScannerToken pulls the next token straight from the raw scanner,
// reporting false once it is exhausted.
func (l *Lexer) readScannerToken() (lexer.Token, bool) {
	t := l.scanner.Next()
	if t.IsEOF() {
		return lexer.Token{}, false
	}
	return t, true
}

// nextRaw drains the pushback buffer before falling through to the raw
// scanner. It is the single point every other reader in this package is
// built on, and the only reader (along with rawAtTop) that updates
// l.atLineStart, so that tracking stays correct regardless of which reader
// consumes a given Newline. handleInclude also sets it when it pushes an
// included file.
func (l *Lexer) nextRaw() (lexer.Token, bool) {
	if t, ok := l.pushback.Pop(); ok {
		return t, true
	}
	t, ok := l.readScannerToken()
	if ok {
		l.atLineStart = t.Kind == lexer.Newline
	}
	return t, ok
}

// rawAtTop behaves like nextRaw but additionally reports whether the
// returned token is the first non-whitespace token on its source line,
// which only the top-level Directive Handler trigger needs. Tokens drawn
// from the pushback buffer are never line-leading: by construction they
// originate mid-expansion, never from the start of a fresh source line.
func (l *Lexer) rawAtTop() (lexer.Token, bool, bool) {
	if t, ok := l.pushback.Pop(); ok {
		return t, false, true
	}
	wasAtLineStart := l.atLineStart
	t, ok := l.readScannerToken()
	if !ok {
		return lexer.Token{}, false, false
	}
	l.atLineStart = t.Kind == lexer.Newline
	return t, wasAtLineStart, true
}

// skipNewlines reads raw tokens, discarding Newlines, until a non-Newline
// token or EOF is reached. It is used wherever a token stream may span
// multiple physical lines without a directive boundary applying — macro
// argument lists, for instance.
func (l *Lexer) skipNewlines() (lexer.Token, bool) {
	for {
		t, ok := l.nextRaw()
		if !ok || t.Kind != lexer.Newline {
			return t, ok
		}
	}
}

// Next returns the next fully preprocessed, macro-expanded token, or
// ErrEOF once every source buffer is exhausted.
func (l *Lexer) Next() (lexer.Token, error) {
	if l.peeked != nil {
		t := *l.peeked
		l.peeked = nil
		return t, nil
	}
	return l.next()
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() (lexer.Token, error) {
	if l.peeked != nil {
		return *l.peeked, nil
	}
	t, err := l.next()
	if err != nil {
		return lexer.Token{}, err
	}
	l.peeked = &t
	return t, nil
}

// next implements the top-level cooked+expanded read: Newlines are
// filtered, `#` at the start of a line dispatches to the Directive
// Handler, everything else is run through macro expansion, and adjacent
// String tokens are concatenated.
func (l *Lexer) next() (lexer.Token, error) {
	for {
		tok, atLineStart, ok := l.rawAtTop()
		if !ok {
			return lexer.Token{}, ErrEOF
		}
		if tok.Kind == lexer.Newline {
			continue
		}
		if tok.Kind == lexer.Symbol && tok.Value == "#" && atLineStart {
			if err := l.handleDirective(tok.Line); err != nil {
				return lexer.Token{}, err
			}
			continue
		}

		expanded, err := l.expand(tok)
		if err != nil {
			return lexer.Token{}, err
		}
		if expanded.Kind == lexer.Newline {
			// A macro with an empty replacement left the line's Newline.
			continue
		}
		if expanded.Kind != lexer.String {
			return expanded, nil
		}
		return l.concatAdjacentStrings(expanded)
	}
}

// concatAdjacentStrings implements invariant 7 (adjacent string
// concatenation): a String token followed by another String token (after
// expansion) merges into one, repeating for three or more in a row.
func (l *Lexer) concatAdjacentStrings(first lexer.Token) (lexer.Token, error) {
	value := first.Value
	for {
		next, ok, err := l.peekExpandedString()
		if err != nil {
			return lexer.Token{}, err
		}
		if !ok {
			return lexer.Token{Kind: lexer.String, Value: value, LeadingSpace: first.LeadingSpace, Line: first.Line}, nil
		}
		value += next
	}
}

// peekExpandedString reports whether the next top-level token, after
// running the usual directive/expansion pipeline, is itself a String; if
// so it is consumed and its value returned. A fatal error from a directive
// or an expansion met on the way is returned.
func (l *Lexer) peekExpandedString() (string, bool, error) {
	tok, atLineStart, ok := l.rawAtTop()
	if !ok {
		return "", false, nil
	}
	for tok.Kind == lexer.Newline {
		tok, atLineStart, ok = l.rawAtTop()
		if !ok {
			return "", false, nil
		}
	}
	if tok.Kind == lexer.Symbol && tok.Value == "#" && atLineStart {
		// A directive cannot itself be part of a string concatenation
		// chain; handle it and stop looking further.
		return "", false, l.handleDirective(tok.Line)
	}
	expanded, err := l.expand(tok)
	if errors.Is(err, ErrEOF) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if expanded.Kind != lexer.String {
		l.pushback.Unget(expanded)
		return "", false, nil
	}
	return expanded.Value, true, nil
}

// expand applies macro expansion to a single already-read token, following
// invariant 1: any identifier left over either names no macro, or already
// carries its own name in its hide-set.
func (l *Lexer) expand(tok lexer.Token) (lexer.Token, error) {
	if tok.Kind != lexer.Identifier {
		return tok, nil
	}
	if tok.HideSet != nil && tok.HideSet.Contains(tok.Value) {
		return tok, nil
	}
	macro, found := l.macros.Lookup(tok.Value)
	if !found {
		return tok, nil
	}
	if !macro.IsFunction {
		body := hideBody(macro.Body, tok.Value)
		// The replacement also inherits the invoking token's hide-set, so
		// mutually referencing macros (A -> B -> A) stop expanding.
		for i := range body {
			body[i].HideSet.Join(tok.HideSet)
		}
		inheritLeadingSpace(body, tok.LeadingSpace)
		l.pushback.UngetAll(body)
		next, ok := l.nextRaw()
		if !ok {
			return lexer.Token{}, ErrEOF
		}
		return l.expand(next)
	}
	return l.expandFunctionLike(tok, macro)
}

// hideBody clones body, stamping name into every clone's hide-set, per the
// rule that a macro's expansion can never reintroduce itself.
func hideBody(body []lexer.Token, name string) []lexer.Token {
	out := make([]lexer.Token, len(body))
	for i, tok := range body {
		out[i] = tok.WithHidden(name)
	}
	return out
}

// inheritLeadingSpace overwrites the first token's LeadingSpace with the
// invocation site's, so a macro reference's surrounding whitespace is
// preserved in the output instead of leaking the #define line's own
// internal spacing.
func inheritLeadingSpace(body []lexer.Token, leadingSpace bool) {
	if len(body) > 0 {
		body[0].LeadingSpace = leadingSpace
	}
}

// expandFunctionLike requires an immediately following `(`, found via a
// fully expanded read so that the `(` may itself have been produced by a
// prior macro expansion. If no `(` follows, the macro name is emitted
// verbatim: referencing a function-like macro's name without calling it
// is legal and yields the bare identifier.
func (l *Lexer) expandFunctionLike(nameTok lexer.Token, macro *Macro) (lexer.Token, error) {
	next, ok := l.nextRaw()
	if !ok {
		return nameTok, nil
	}
	peeked, err := l.expand(next)
	if err != nil {
		return lexer.Token{}, err
	}
	if !(peeked.Kind == lexer.Symbol && peeked.Value == "(") {
		l.pushback.Unget(peeked)
		return nameTok, nil
	}

	args, err := l.collectArgs()
	if err != nil {
		return lexer.Token{}, err
	}
	substituted, err := substituteBody(macro, args, nameTok.Value)
	if err != nil {
		return lexer.Token{}, err
	}
	inheritLeadingSpace(substituted, nameTok.LeadingSpace)
	l.pushback.UngetAll(substituted)
	n, ok := l.nextRaw()
	if !ok {
		return lexer.Token{}, ErrEOF
	}
	return l.expand(n)
}

// collectArgs reads raw, unexpanded tokens up to the matching `)`,
// splitting on top-level commas. Arguments are not pre-expanded: they are
// expanded naturally once re-scanned after substitution.
func (l *Lexer) collectArgs() ([][]lexer.Token, error) {
	var args [][]lexer.Token
	var current []lexer.Token
	depth := 0
	for {
		tok, ok := l.nextRaw()
		if !ok {
			return nil, newError(UnexpectedEOF, 0, "unexpected end of file inside macro argument list")
		}
		if tok.Kind == lexer.Newline {
			continue
		}
		if tok.Kind == lexer.Symbol {
			switch tok.Value {
			case "(":
				depth++
			case ")":
				if depth == 0 {
					if len(current) > 0 || len(args) > 0 {
						args = append(args, current)
					}
					return args, nil
				}
				depth--
			case ",":
				if depth == 0 {
					args = append(args, current)
					current = nil
					continue
				}
			}
		}
		current = append(current, tok)
	}
}

// substituteBody walks a function-like macro's body with a two-position
// state machine tracking `#` (stringize) and `##` (paste, represented as
// two consecutive `#` Symbol tokens) prefixes.
func substituteBody(macro *Macro, args [][]lexer.Token, name string) ([]lexer.Token, error) {
	var out []lexer.Token
	body := macro.Body
	for i := 0; i < len(body); i++ {
		tok := body[i]

		if tok.Kind == lexer.Symbol && tok.Value == "#" {
			if i+1 < len(body) && body[i+1].Kind == lexer.Symbol && body[i+1].Value == "#" {
				if i+2 < len(body) && body[i+2].Kind == lexer.MacroParam {
					param := body[i+2]
					if param.ParamIndex >= len(args) {
						return nil, newError(MalformedDirective, 0, "## operand references missing argument %d of macro %s", param.ParamIndex, name)
					}
					if len(out) == 0 {
						return nil, newError(MalformedDirective, 0, "## has no preceding token in macro %s", name)
					}
					out[len(out)-1] = pasteToken(out[len(out)-1], args[param.ParamIndex])
					i += 2
					continue
				}
			}
			if i+1 < len(body) && body[i+1].Kind == lexer.MacroParam {
				param := body[i+1]
				if param.ParamIndex >= len(args) {
					return nil, newError(MalformedDirective, 0, "# operand references missing argument %d of macro %s", param.ParamIndex, name)
				}
				out = append(out, stringize(args[param.ParamIndex], tok))
				i++
				continue
			}
		}

		if tok.Kind == lexer.MacroParam {
			if tok.ParamIndex >= len(args) {
				return nil, newError(MalformedDirective, 0, "macro %s invoked with too few arguments", name)
			}
			for _, argTok := range args[tok.ParamIndex] {
				out = append(out, argTok.WithHidden(name))
			}
			continue
		}

		out = append(out, tok.WithHidden(name))
	}
	return out, nil
}

// stringize implements invariant 4: the produced String's value is the
// concatenation of arg's tokens' textual values, with a single space
// before every token after the first whose LeadingSpace is true.
func stringize(arg []lexer.Token, hashTok lexer.Token) lexer.Token {
	var sb strings.Builder
	for i, tok := range arg {
		if i > 0 && tok.LeadingSpace {
			sb.WriteByte(' ')
		}
		sb.WriteString(tok.Value)
	}
	return lexer.Token{Kind: lexer.String, Value: sb.String(), LeadingSpace: hashTok.LeadingSpace, Line: hashTok.Line}
}

// pasteToken implements invariant 5 (left-to-right paste associativity):
// the textual values of left and every token in right are concatenated
// into a single Identifier-kind token; the text is not re-lexed. An empty
// right-hand argument leaves left's text unchanged (its kind still becomes
// Identifier), matching `##`'s behavior when pasted
// against an empty variadic-style argument.
func pasteToken(left lexer.Token, right []lexer.Token) lexer.Token {
	value := left.Value
	for _, tok := range right {
		value += tok.Value
	}
	kind := left.Kind
	if kind != lexer.Identifier {
		kind = lexer.Identifier
	}
	return lexer.Token{Kind: kind, Value: value, LeadingSpace: left.LeadingSpace, Line: left.Line, HideSet: cloneHideSet(left.HideSet)}
}

func cloneHideSet(h collections.Set[string]) collections.Set[string] {
	if h == nil {
		return nil
	}
	return h.Clone()
}
