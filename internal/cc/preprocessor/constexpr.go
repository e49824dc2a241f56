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
	"github.com/nacaclanga/rucc/internal/cc/expr"
	"github.com/nacaclanga/rucc/internal/cc/lexer"
)

// ExprSource supplies the token text of a single, already-collected
// constant expression to the external expression parser. It exists as an
// interface — rather than handing the parser a concrete slice — so the
// parser stays decoupled from how this package assembles the line: the
// lexer depends on the expression parser only through ParseExpr's factory
// signature, never the other way around.
type ExprSource interface {
	// Tokens returns the expression's token text, in order.
	Tokens() []string
}

// sliceExprSource is the default ExprSource: the flat token text collected
// off a single #if/#elif line.
type sliceExprSource []string

func (s sliceExprSource) Tokens() []string { return []string(s) }

// ParseExpr builds an expr.Expr from an ExprSource. The default, wired by
// New, simply forwards to expr.Parse; WithParseExpr substitutes another
// function, which tests use to capture the collected line without running
// expr.Parse.
type ParseExpr func(ExprSource) (expr.Expr, error)

func defaultParseExpr(src ExprSource) (expr.Expr, error) {
	return expr.Parse(src.Tokens())
}

// evalConstexprLine implements the Constexpr Bridge (§4.7): it collects
// the macro-expanded token text of the current #if/#elif line, resolves
// `defined` before expanding its operand, replaces any identifier that
// survives expansion with literal 0, and hands the result to ParseExpr.
func (l *Lexer) evalConstexprLine(hashLine int) (bool, error) {
	l.pushback.PushScope()
	defer l.pushback.PopScope()

	var text []string
	for {
		tok, ok := l.nextRaw()
		if !ok || tok.Kind == lexer.Newline {
			// End of file ends the line just as a Newline does.
			break
		}

		if tok.Kind == lexer.Identifier && tok.Value == "defined" {
			val, err := l.readDefinedOperand(hashLine)
			if err != nil {
				return false, err
			}
			text = append(text, val)
			continue
		}

		expanded, err := l.expand(tok)
		if err != nil {
			return false, err
		}
		if expanded.Kind == lexer.Identifier {
			// Per the C rule for #if: any identifier that survives macro
			// expansion (i.e. names no macro) evaluates to 0.
			text = append(text, "0")
			continue
		}
		text = append(text, expanded.Value)
	}

	e, err := l.parseExpr(sliceExprSource(text))
	if err != nil {
		return false, newError(ConstexprError, hashLine, "%v", err)
	}
	v, err := e.Eval()
	if err != nil {
		return false, newError(ConstexprError, hashLine, "%v", err)
	}
	return v != 0, nil
}

// readDefinedOperand handles both `defined X` and `defined(X)`, consulting
// the macro store before any expansion of X is attempted — `defined`'s
// operand is never itself macro-expanded.
func (l *Lexer) readDefinedOperand(hashLine int) (string, error) {
	tok, ok := l.nextRaw()
	if !ok {
		return "", newError(UnexpectedEOF, hashLine, "unexpected end of file after 'defined'")
	}
	if tok.Kind == lexer.Symbol && tok.Value == "(" {
		nameTok, ok := l.nextRaw()
		if !ok || nameTok.Kind != lexer.Identifier {
			return "", newError(MalformedDirective, hashLine, "expected identifier after 'defined('")
		}
		closeTok, ok := l.nextRaw()
		if !ok || !(closeTok.Kind == lexer.Symbol && closeTok.Value == ")") {
			return "", newError(MalformedDirective, hashLine, "expected ')' after 'defined(%s'", nameTok.Value)
		}
		return boolDigit(l.macros.IsDefined(nameTok.Value)), nil
	}
	if tok.Kind != lexer.Identifier {
		return "", newError(MalformedDirective, hashLine, "expected identifier after 'defined'")
	}
	return boolDigit(l.macros.IsDefined(tok.Value)), nil
}

func boolDigit(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
