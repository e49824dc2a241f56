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

// Package expr is the integer constant-expression evaluator used to decide
// #if/#elif conditions. It is deliberately independent of package
// preprocessor: the preprocessor hands it an already-macro-expanded,
// already-`defined`-resolved token line and only needs a yes/no answer
// back, so expr is consumed through a small interface rather than a direct
// dependency (see preprocessor.ExprSource).
package expr

import (
	"fmt"
)

// Expr is a node of a parsed #if/#elif constant expression.
type Expr interface {
	fmt.Stringer
	// Eval computes the node's integer value. Division and modulo by zero
	// return a non-nil error; every other operator is total.
	Eval() (int64, error)
}

// Ident is a bare identifier in a constant expression. By the time a line
// reaches this package, "defined(X)" has already been reduced by the
// preprocessor to a ConstantInt(0) or ConstantInt(1); any identifier that
// still remains is, by the rule for unresolved identifiers in a constant
// expression, literal zero.
type Ident string

func (id Ident) String() string       { return string(id) }
func (id Ident) Eval() (int64, error) { return 0, nil }

// ConstantInt is an integer literal. Float literals are not valid in a
// preprocessor constant expression and are rejected by the parser before
// an Expr tree is ever built.
type ConstantInt int64

func (c ConstantInt) String() string       { return fmt.Sprintf("%d", int64(c)) }
func (c ConstantInt) Eval() (int64, error) { return int64(c), nil }

// UnaryOp is one of the prefix operators: "!", "~", "-", "+", "&", "*",
// "++", "--". The last four have no effect on a bare integer: there is no
// lvalue to take the address of, dereference, or step, so they evaluate
// as identity ("&", "*") or ±1 ("++", "--"), mirroring node.rs's
// CUnaryOps::{Addr,Deref,Inc,Dec}.
type UnaryOp struct {
	Op string
	X  Expr
}

func (u UnaryOp) String() string { return u.Op + "(" + u.X.String() + ")" }

func (u UnaryOp) Eval() (int64, error) {
	v, err := u.X.Eval()
	if err != nil {
		return 0, err
	}
	switch u.Op {
	case "!":
		return boolToInt(v == 0), nil
	case "~":
		return ^v, nil
	case "-":
		return -v, nil
	case "+", "&", "*":
		return v, nil
	case "++":
		return v + 1, nil
	case "--":
		return v - 1, nil
	default:
		return 0, fmt.Errorf("expr: unknown unary operator %q", u.Op)
	}
}

// BinaryOp covers every infix operator except the short-circuiting "&&"
// and "||", which get their own node so the right operand is only
// evaluated when it can affect the result.
type BinaryOp struct {
	Op   string
	L, R Expr
}

func (b BinaryOp) String() string { return fmt.Sprintf("(%s %s %s)", b.L, b.Op, b.R) }

func (b BinaryOp) Eval() (int64, error) {
	l, err := b.L.Eval()
	if err != nil {
		return 0, err
	}
	r, err := b.R.Eval()
	if err != nil {
		return 0, err
	}
	switch b.Op {
	case "+":
		return l + r, nil
	case "-":
		return l - r, nil
	case "*":
		return l * r, nil
	case "/":
		if r == 0 {
			return 0, fmt.Errorf("expr: division by zero in %s", b)
		}
		return l / r, nil
	case "%":
		if r == 0 {
			return 0, fmt.Errorf("expr: modulo by zero in %s", b)
		}
		return l % r, nil
	case "&":
		return l & r, nil
	case "|":
		return l | r, nil
	case "^":
		return l ^ r, nil
	case "<<":
		return l << uint64(r), nil
	case ">>":
		return l >> uint64(r), nil
	case "==":
		return boolToInt(l == r), nil
	case "!=":
		return boolToInt(l != r), nil
	case "<":
		return boolToInt(l < r), nil
	case ">":
		return boolToInt(l > r), nil
	case "<=":
		return boolToInt(l <= r), nil
	case ">=":
		return boolToInt(l >= r), nil
	default:
		return 0, fmt.Errorf("expr: unknown binary operator %q", b.Op)
	}
}

// LogicalAnd is "&&": short-circuits, never evaluating R when L is zero.
type LogicalAnd struct{ L, R Expr }

func (a LogicalAnd) String() string { return fmt.Sprintf("(%s && %s)", a.L, a.R) }

func (a LogicalAnd) Eval() (int64, error) {
	l, err := a.L.Eval()
	if err != nil {
		return 0, err
	}
	if l == 0 {
		return 0, nil
	}
	r, err := a.R.Eval()
	if err != nil {
		return 0, err
	}
	return boolToInt(r != 0), nil
}

// LogicalOr is "||": short-circuits, never evaluating R when L is nonzero.
type LogicalOr struct{ L, R Expr }

func (o LogicalOr) String() string { return fmt.Sprintf("(%s || %s)", o.L, o.R) }

func (o LogicalOr) Eval() (int64, error) {
	l, err := o.L.Eval()
	if err != nil {
		return 0, err
	}
	if l != 0 {
		return 1, nil
	}
	r, err := o.R.Eval()
	if err != nil {
		return 0, err
	}
	return boolToInt(r != 0), nil
}

// Ternary is "Cond ? Then : Else". Only the taken branch is evaluated.
type Ternary struct {
	Cond, Then, Else Expr
}

func (t Ternary) String() string { return fmt.Sprintf("(%s ? %s : %s)", t.Cond, t.Then, t.Else) }

func (t Ternary) Eval() (int64, error) {
	c, err := t.Cond.Eval()
	if err != nil {
		return 0, err
	}
	if c != 0 {
		return t.Then.Eval()
	}
	return t.Else.Eval()
}

// Comma is the sequencing operator "L , R": evaluates L for any side
// effects defined/err reporting, discards its value, and yields R's.
type Comma struct{ L, R Expr }

func (c Comma) String() string { return fmt.Sprintf("(%s , %s)", c.L, c.R) }

func (c Comma) Eval() (int64, error) {
	if _, err := c.L.Eval(); err != nil {
		return 0, err
	}
	return c.R.Eval()
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
