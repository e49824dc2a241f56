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

// Macro is a tagged variant: an object-like macro has IsFunction false and
// NumParams 0; a function-like macro has IsFunction true, and its Body has
// already had every token whose text matched a parameter name rewritten to
// lexer.MacroParam carrying that parameter's index. Body tokens never carry
// hide-set entries of their own — those are only added at expansion time.
type Macro struct {
	IsFunction bool
	NumParams  int
	Body       []lexer.Token
}

// MacroStore is an instance field on Lexer, not process-wide state: the
// source this is ported from kept a single lock-guarded global map, but
// nothing stops a host process from driving more than one compile
// concurrently, and each compile needs its own macro namespace.
type MacroStore struct {
	macros map[string]*Macro
}

// NewMacroStore returns an empty store.
func NewMacroStore() *MacroStore {
	return &MacroStore{macros: make(map[string]*Macro)}
}

// Define inserts or overwrites the macro named name.
func (s *MacroStore) Define(name string, m *Macro) {
	s.macros[name] = m
}

// Undef removes name from the store. Undefining a name that was never
// defined is a no-op.
func (s *MacroStore) Undef(name string) {
	delete(s.macros, name)
}

// Lookup returns the macro registered under name, if any.
func (s *MacroStore) Lookup(name string) (*Macro, bool) {
	m, ok := s.macros[name]
	return m, ok
}

// IsDefined reports whether name has a current definition; this is the
// `defined` operator's sole job in a constant expression.
func (s *MacroStore) IsDefined(name string) bool {
	_, ok := s.macros[name]
	return ok
}

// substituteParams rewrites body in place (on a fresh slice) so that every
// Identifier token whose Value names one of params becomes a MacroParam
// token carrying that parameter's 0-based index, as required before the
// body is stored in the MacroStore.
func substituteParams(body []lexer.Token, params []string) []lexer.Token {
	index := make(map[string]int, len(params))
	for i, p := range params {
		index[p] = i
	}
	out := make([]lexer.Token, len(body))
	for i, tok := range body {
		if tok.Kind == lexer.Identifier {
			if paramIdx, ok := index[tok.Value]; ok {
				tok.Kind = lexer.MacroParam
				tok.ParamIndex = paramIdx
			}
		}
		out[i] = tok
	}
	return out
}
