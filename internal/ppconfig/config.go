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

// Package ppconfig loads driver-level preprocessor configuration — include
// search paths and predefined macros — from an optional YAML file plus
// command-line `-D`/`-I` style overrides. It has no dependency on
// internal/cc/preprocessor beyond the functional Options that package
// already exposes, so the lexer itself stays driver-agnostic.
package ppconfig

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nacaclanga/rucc/internal/cc/platform"
	"github.com/nacaclanga/rucc/internal/cc/preprocessor"
)

// Config is the on-disk shape of a `.rucc.yaml` file.
type Config struct {
	IncludePaths []string `yaml:"include_paths"`
	Macros       []string `yaml:"macros"`
}

// Load reads and parses a YAML config file at path. A missing file is not
// an error: it returns a zero-value Config, since the file is optional.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("ppconfig: reading %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("ppconfig: parsing %s: %w", path, err)
	}
	return cfg, nil
}

var macroIdentifierRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ParseMacroDef converts a single `-D`-style definition (`FOO`, `FOO=1`, or
// gcc-style `-DFOO=1`) into a name and integer value, defaulting a
// bare name's value to 1.
func ParseMacroDef(def string) (name string, value int64, err error) {
	d := strings.TrimPrefix(def, "-D")
	name, raw := d, ""
	if eq := strings.IndexByte(d, '='); eq >= 0 {
		name, raw = d[:eq], d[eq+1:]
	}
	if !macroIdentifierRegex.MatchString(name) {
		return "", 0, fmt.Errorf("ppconfig: invalid macro name %q", name)
	}
	if raw == "" {
		return name, 1, nil
	}
	value, err = strconv.ParseInt(raw, 0, 64)
	if err != nil {
		return "", 0, fmt.Errorf("ppconfig: macro %s=%s: %w", name, raw, err)
	}
	return name, value, nil
}

// Merge combines the YAML config with command-line `-I` and `-D` overrides,
// placing the command-line values after the config's. A later macro
// definition overrides an earlier one, so a command-line `-D` wins; include
// paths are searched in order, so the config's paths are searched before
// command-line `-I` ones.
func Merge(cfg Config, extraIncludePaths, extraMacroDefs []string) (includePaths []string, macros []string, err error) {
	includePaths = append(append([]string{}, cfg.IncludePaths...), extraIncludePaths...)
	macros = append(append([]string{}, cfg.Macros...), extraMacroDefs...)
	for _, m := range macros {
		if _, _, err := ParseMacroDef(m); err != nil {
			return nil, nil, err
		}
	}
	return includePaths, macros, nil
}

// Options builds the preprocessor.Option slice this config implies: an
// include-path override (only if any were configured) followed by one
// WithPredefinedMacro per parsed macro definition. platformTarget, if
// non-empty (an "os/arch" pair per platform.Parse), seeds the compiler's
// usual predefined macros (__linux__, _WIN32, __x86_64__, ...) first, so
// later -D definitions in cfg or extraMacroDefs can still override them.
func (c Config) Options(extraIncludePaths, extraMacroDefs []string, platformTarget string) ([]preprocessor.Option, error) {
	includePaths, macroDefs, err := Merge(c, extraIncludePaths, extraMacroDefs)
	if err != nil {
		return nil, err
	}

	var opts []preprocessor.Option
	if len(includePaths) > 0 {
		opts = append(opts, preprocessor.WithIncludePaths(append(append([]string{}, includePaths...), preprocessor.DefaultIncludePaths...)))
	}
	if platformTarget != "" {
		p, err := platform.Parse(platformTarget)
		if err != nil {
			return nil, fmt.Errorf("ppconfig: %w", err)
		}
		for name, value := range platform.Lookup(p) {
			opts = append(opts, preprocessor.WithPredefinedMacro(name, value))
		}
	}
	for _, def := range macroDefs {
		name, value, err := ParseMacroDef(def)
		if err != nil {
			return nil, err
		}
		opts = append(opts, preprocessor.WithPredefinedMacro(name, int(value)))
	}
	return opts, nil
}
