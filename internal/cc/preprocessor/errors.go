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
	"fmt"
	"io"
)

// ErrEOF is returned by Next/Peek once the primary source file and every
// included file have been fully consumed. It is distinct from io.EOF so
// callers can errors.Is against either without ambiguity, but it wraps
// io.EOF for convenience.
var ErrEOF = fmt.Errorf("preprocessor: %w", io.EOF)

// Kind classifies a fatal preprocessing error, mirroring the taxonomy a
// diagnostic-formatting layer further up the pipeline would branch on.
type Kind int

const (
	UnexpectedEOF Kind = iota
	ExpectedSymbol
	IncludeNotFound
	MalformedDirective
	ConstexprError
)

func (k Kind) String() string {
	switch k {
	case UnexpectedEOF:
		return "UnexpectedEOF"
	case ExpectedSymbol:
		return "ExpectedSymbol"
	case IncludeNotFound:
		return "IncludeNotFound"
	case MalformedDirective:
		return "MalformedDirective"
	case ConstexprError:
		return "ConstexprError"
	default:
		return "Unknown"
	}
}

// Error is a fatal preprocessing error. There is no local recovery: per the
// error-handling design, every Error aborts the compile.
type Error struct {
	Kind    Kind
	Line    int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s:%d: %s: %s", "line", e.Line, e.Kind, e.Message)
}

func newError(kind Kind, line int, format string, args ...any) *Error {
	return &Error{Kind: kind, Line: line, Message: fmt.Sprintf(format, args...)}
}

// IsFatal reports whether err is a preprocessing Error (as opposed to ErrEOF
// or a plain I/O error propagated from include resolution).
func IsFatal(err error) bool {
	var perr *Error
	return errors.As(err, &perr)
}
