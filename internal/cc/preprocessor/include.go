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
	"fmt"
	"os"
	"path/filepath"
)

// DefaultIncludePaths is the fixed, ordered search path used to resolve
// `#include <name>`. The first existing file wins; the bare filename is
// tried last so a caller-relative include still resolves when none of the
// system directories exist (common when running outside a real target).
var DefaultIncludePaths = []string{
	"./include/",
	"/include/",
	"/usr/include/",
	"/usr/include/linux/",
	"/usr/include/x86_64-linux-gnu/",
}

// resolveInclude reads name off the first directory in l.includePaths that
// contains it, falling back to interpreting name as a path itself.
func (l *Lexer) resolveInclude(name string) ([]byte, error) {
	for _, dir := range l.includePaths {
		candidate := filepath.Join(dir, name)
		if data, err := os.ReadFile(candidate); err == nil {
			return data, nil
		}
	}
	if data, err := os.ReadFile(name); err == nil {
		return data, nil
	}
	return nil, fmt.Errorf("no file named %q found on the include search path", name)
}
