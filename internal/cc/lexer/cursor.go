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

import "fmt"

// Cursor is a position in the source code. Line and Column are 1-based.
//
// Line is tracked as a single counter shared across the whole buffer stack
// (mirroring the original lexer's behavior of a single global line number
// across included files); Column is reset at the start of each line.
type Cursor struct {
	Line, Column int
}

// CursorInit is the initial cursor position, at the beginning of a file.
var CursorInit = Cursor{Line: 1, Column: 1}

func (c Cursor) String() string {
	return fmt.Sprintf("%d:%d", c.Line, c.Column)
}
