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
	"github.com/stretchr/testify/require"
)

func allTokens(src string) []Token {
	sc := NewScanner(NewBufferStack("test.c", []byte(src)))
	var toks []Token
	for {
		tok := sc.Next()
		if tok.IsEOF() {
			return toks
		}
		toks = append(toks, tok)
	}
}

func TestScannerIdentifierAndNumber(t *testing.T) {
	toks := allTokens("foo 123 3.14")
	assert.Equal(t, []Token{
		{Kind: Identifier, Value: "foo", Line: 1},
		{Kind: IntNumber, Value: "123", LeadingSpace: true, Line: 1},
		{Kind: FloatNumber, Value: "3.14", LeadingSpace: true, Line: 1},
	}, toks)
}

func TestScannerStringAndChar(t *testing.T) {
	toks := allTokens(`"hi" 'a'`)
	assert.Equal(t, []Token{
		{Kind: String, Value: "hi", Line: 1},
		{Kind: Char, Value: "a", LeadingSpace: true, Line: 1},
	}, toks)
}

func TestScannerStringScansVerbatimNoEscapeProcessing(t *testing.T) {
	// A backslash is just another byte between the quotes: it does not
	// prevent the following '"' from closing the literal, so `"a\"b"`
	// scans as the string "a\", then the identifier b, then the
	// unterminated string that consumes the rest of the input.
	toks := allTokens(`"a\"b"`)
	require.Len(t, toks, 3)
	assert.Equal(t, String, toks[0].Kind)
	assert.Equal(t, `a\`, toks[0].Value)
	assert.Equal(t, Identifier, toks[1].Kind)
	assert.Equal(t, "b", toks[1].Value)
	assert.Equal(t, String, toks[2].Kind)
	assert.Equal(t, "", toks[2].Value)
}

func TestScannerSymbolsGreedy(t *testing.T) {
	toks := allTokens("<<= << < # #")
	want := []string{"<<=", "<<", "<", "#", "#"}
	assert.Len(t, toks, len(want))
	for i, w := range want {
		assert.Equal(t, w, toks[i].Value)
	}
}

func TestScannerHashHashIsTwoTokens(t *testing.T) {
	toks := allTokens("##")
	require.Len(t, toks, 2)
	assert.Equal(t, "#", toks[0].Value)
	assert.Equal(t, "#", toks[1].Value)
}

func TestScannerNewlineEmitted(t *testing.T) {
	toks := allTokens("a\nb")
	assert.Equal(t, []Kind{Identifier, Newline, Identifier}, []Kind{toks[0].Kind, toks[1].Kind, toks[2].Kind})
	assert.Equal(t, 2, toks[2].Line)
}

func TestScannerCursorTracksLineAndColumn(t *testing.T) {
	sc := NewScanner(NewBufferStack("test.c", []byte("ab\ncd")))
	sc.Next() // "ab"
	assert.Equal(t, Cursor{Line: 1, Column: 3}, sc.Cursor())
	sc.Next() // Newline
	sc.Next() // "cd"
	assert.Equal(t, Cursor{Line: 2, Column: 3}, sc.Cursor())
}

func TestScannerLineSplice(t *testing.T) {
	// The spliced newline is consumed silently like whitespace: it never
	// surfaces as a Newline token, so it must not advance the line
	// counter either. "b" is still on line 1.
	toks := allTokens("a\\\nb")
	assert.Len(t, toks, 2)
	assert.Equal(t, "a", toks[0].Value)
	assert.Equal(t, "b", toks[1].Value)
	assert.True(t, toks[1].LeadingSpace)
	assert.Equal(t, 1, toks[1].Line)
}

func TestScannerLineCounterIgnoresSplicedAndCommentNewlines(t *testing.T) {
	toks := allTokens("a\\\nb /* x\ny */ c\nd")
	require.Len(t, toks, 5)
	assert.Equal(t, "a", toks[0].Value)
	assert.Equal(t, 1, toks[0].Line)
	assert.Equal(t, "b", toks[1].Value)
	assert.Equal(t, 1, toks[1].Line)
	assert.Equal(t, "c", toks[2].Value)
	assert.Equal(t, 1, toks[2].Line)
	assert.Equal(t, Newline, toks[3].Kind)
	assert.Equal(t, "d", toks[4].Value)
	assert.Equal(t, 2, toks[4].Line)
}

func TestScannerLineComment(t *testing.T) {
	toks := allTokens("a // comment\nb")
	assert.Len(t, toks, 3)
	assert.Equal(t, Newline, toks[1].Kind)
	assert.Equal(t, "b", toks[2].Value)
}

func TestScannerBlockComment(t *testing.T) {
	toks := allTokens("a /* c\nc */ b")
	assert.Len(t, toks, 2)
	assert.Equal(t, "a", toks[0].Value)
	assert.Equal(t, "b", toks[1].Value)
	assert.True(t, toks[1].LeadingSpace)
}
