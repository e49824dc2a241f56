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
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nacaclanga/rucc/internal/cc/expr"
)

// TestMockExprSourceWiring exercises the ExprSource seam directly through
// its generated mock, independent of how the lexer assembles a line's
// token text.
func TestMockExprSourceWiring(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := NewMockExprSource(ctrl)
	src.EXPECT().Tokens().Return([]string{"1", "+", "1"})

	got, err := defaultParseExpr(src)
	require.NoError(t, err)
	v, err := got.Eval()
	require.NoError(t, err)
	assert.EqualValues(t, 2, v)
}

func TestEvalConstexprLineDefinedOperator(t *testing.T) {
	l := NewFromSource("t.c", []byte("defined(A)"))
	l.macros.Define("A", &Macro{Body: nil})
	taken, err := l.evalConstexprLine(1)
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestEvalConstexprLineUndefinedIdentifierIsZero(t *testing.T) {
	l := NewFromSource("t.c", []byte("UNKNOWN"))
	taken, err := l.evalConstexprLine(1)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestEvalConstexprLineCustomParseExprHook(t *testing.T) {
	var captured []string
	l := NewFromSource("t.c", []byte("1 + 2"), WithParseExpr(func(src ExprSource) (expr.Expr, error) {
		captured = src.Tokens()
		return expr.ConstantInt(1), nil
	}))
	taken, err := l.evalConstexprLine(1)
	require.NoError(t, err)
	assert.True(t, taken)
	assert.Equal(t, []string{"1", "+", "2"}, captured)
}
