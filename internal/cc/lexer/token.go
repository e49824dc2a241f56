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

// Package lexer implements the character-level scanner for C/C++ source:
// it converts raw bytes into a flat stream of Tokens, with no knowledge of
// the preprocessor directives or macro expansion layered on top of it by
// package preprocessor.
package lexer

import "github.com/nacaclanga/rucc/internal/collections"

// Kind identifies the lexical category of a Token.
type Kind int

const (
	// Identifier matches [A-Za-z_][A-Za-z0-9_]*.
	Identifier Kind = iota
	// IntNumber is a numeric literal lexeme with no '.' in it.
	IntNumber
	// FloatNumber is a numeric literal lexeme containing a '.'.
	FloatNumber
	// String is the raw, unescaped content between a pair of '"'.
	String
	// Char is the raw, unescaped content between a pair of '\''.
	Char
	// Symbol is a punctuator: one character, or one of the fixed
	// multi-character forms listed in multiCharSymbols (scanner.go).
	Symbol
	// Newline marks the end of a source line; the preprocessor is
	// line-sensitive, so newlines are surfaced as explicit tokens rather
	// than being treated as whitespace.
	Newline
	// MacroParam is only produced by macro-body registration: it replaces
	// an identifier in a function-like macro's body that names one of its
	// parameters.
	MacroParam
)

func (k Kind) String() string {
	switch k {
	case Identifier:
		return "Identifier"
	case IntNumber:
		return "IntNumber"
	case FloatNumber:
		return "FloatNumber"
	case String:
		return "String"
	case Char:
		return "Char"
	case Symbol:
		return "Symbol"
	case Newline:
		return "Newline"
	case MacroParam:
		return "MacroParam"
	default:
		return "Unknown"
	}
}

// Token is a single lexeme produced by the scanner, and later annotated by
// the preprocessor's macro expander (HideSet).
//
// Tokens are values and are freely copied; HideSet is logically a set, not
// a sequence, so cloning a Token for hide-set mutation must clone its
// HideSet too (see Token.Clone).
type Token struct {
	Kind Kind
	// Value is the token's textual content: the identifier/number/symbol
	// text, or the raw (unescaped) bytes between quotes for String/Char.
	Value string
	// LeadingSpace is true iff at least one space or tab preceded this
	// token on its source line, before any macro expansion.
	LeadingSpace bool
	// Line is the 1-based source line this token started on.
	Line int
	// HideSet is the set of macro names currently forbidden from
	// expanding on this token. Populated only at expansion time; tokens
	// read directly from source, or registered in a macro body, start
	// with an empty (possibly nil) HideSet.
	HideSet collections.Set[string]
	// ParamIndex is only meaningful when Kind == MacroParam: the 0-based
	// position of the referenced parameter in the enclosing function-like
	// macro's parameter list.
	ParamIndex int
}

// EOF is the sentinel returned by readers when no more tokens are available.
var EOF = Token{Line: -1}

// IsEOF reports whether t is the EOF sentinel.
func (t Token) IsEOF() bool { return t.Line == -1 && t.Value == "" && t.Kind == Identifier }

// Clone returns a copy of t with its own independent HideSet, so that
// adding a macro name to the clone's hide-set does not affect t or any
// other clone taken from the same macro body.
func (t Token) Clone() Token {
	clone := t
	if t.HideSet != nil {
		clone.HideSet = t.HideSet.Clone()
	}
	return clone
}

// WithHidden returns a copy of t with name added to its hide-set.
func (t Token) WithHidden(name string) Token {
	clone := t.Clone()
	if clone.HideSet == nil {
		clone.HideSet = make(collections.Set[string], 1)
	}
	clone.HideSet.Add(name)
	return clone
}
