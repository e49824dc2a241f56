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

// Command ruccpp runs the preprocessor over a set of C source files and
// prints the resulting token stream. Source file arguments are glob
// patterns (e.g. "src/**/*.c"), resolved with doublestar so a single
// argument can sweep a whole tree.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/nacaclanga/rucc/internal/cc/lexer"
	"github.com/nacaclanga/rucc/internal/cc/preprocessor"
	"github.com/nacaclanga/rucc/internal/ppconfig"
)

func main() {
	var includePaths stringList
	var macroDefs stringList
	flag.Var(&includePaths, "I", "Additional include search path (repeatable)")
	flag.Var(&macroDefs, "D", "Predefined macro, NAME or NAME=VALUE (repeatable)")
	configPath := flag.String("config", ".rucc.yaml", "Path to an optional YAML config file with include_paths/macros")
	platformTarget := flag.String("platform", "", "Target platform (os/arch, e.g. linux/x86_64) whose predefined macros to seed")
	output := flag.String("output", "", "Output file path; defaults to stdout")
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		log.Fatalf("ruccpp requires at least one glob pattern naming source files")
	}

	cfg, err := ppconfig.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	opts, err := cfg.Options(includePaths.values, macroDefs.values, *platformTarget)
	if err != nil {
		log.Fatalf("building preprocessor options: %v", err)
	}

	files, err := expandGlobs(flag.Args())
	if err != nil {
		log.Fatalf("expanding source file patterns: %v", err)
	}
	if len(files) == 0 {
		log.Fatalf("no source files matched %v", flag.Args())
	}

	out := os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			log.Fatalf("creating %s: %v", *output, err)
		}
		defer f.Close()
		out = f
	}
	w := bufio.NewWriter(out)
	defer w.Flush()

	for _, file := range files {
		if err := preprocessFile(w, file, opts); err != nil {
			log.Fatalf("%s: %v", file, err)
		}
	}
}

// expandGlobs resolves each doublestar pattern, de-duplicating and
// preserving first-seen order so a file matched by two overlapping
// patterns is only preprocessed once.
func expandGlobs(patterns []string) ([]string, error) {
	seen := map[string]bool{}
	var files []string
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid glob pattern %q", pattern)
		}
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	return files, nil
}

// preprocessFile drives a single file's Lexer to completion, printing a
// "# path" header line and then every token's value on a single line,
// each preceded by a space where the expanded stream had whitespace.
func preprocessFile(w *bufio.Writer, path string, opts []preprocessor.Option) error {
	l, err := preprocessor.New(path, opts...)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "# %s\n", path)
	for {
		tok, err := l.Next()
		if errors.Is(err, preprocessor.ErrEOF) {
			w.WriteByte('\n')
			return nil
		}
		if err != nil {
			return err
		}
		writeToken(w, tok)
	}
}

// writeToken appends tok's text to the running line, inserting a single
// space where the expanded stream had one. Next never surfaces Newline
// tokens, so the whole preprocessed file prints as one line per source.
func writeToken(w *bufio.Writer, tok lexer.Token) {
	if tok.LeadingSpace {
		w.WriteByte(' ')
	}
	w.WriteString(tok.Value)
}

// stringList is a repeatable flag.Value collecting one string per
// occurrence, e.g. `-I a -I b` yields {"a", "b"}.
type stringList struct {
	values []string
}

func (s *stringList) String() string {
	return strings.Join(s.values, ",")
}

func (s *stringList) Set(value string) error {
	s.values = append(s.values, value)
	return nil
}
