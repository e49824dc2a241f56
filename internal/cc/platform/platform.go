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

// Package platform provides the predefined macro environment a real C
// toolchain injects before the first byte of a translation unit is read
// (_WIN32, __linux__, __APPLE__, __x86_64__, and friends), keyed by target
// OS/Arch pair. ppconfig and cmd/ruccpp use it to seed a Lexer's macro
// store for a `-platform os/arch` selection, so conditional compilation
// guarded on target platform evaluates the way it would under the
// compiler that platform actually ships.
package platform

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
)

// Macros maps a predefined macro name to its integer value.
type Macros map[string]int

// Clone returns an independent copy of m.
func (m Macros) Clone() Macros {
	return maps.Clone(m)
}

// Platform is an OS/Arch pair identifying a compilation target.
type Platform struct {
	OS   OS
	Arch Arch
}

func (p Platform) String() string {
	return fmt.Sprintf("%s/%s", p.OS, p.Arch)
}

// Compare orders first by OS, then by Arch, both by string value.
func Compare(a, b Platform) int {
	if d := cmp.Compare(a.OS, b.OS); d != 0 {
		return d
	}
	return cmp.Compare(a.Arch, b.Arch)
}

// New canonicalizes os/arch (resolving aliases like "macos" or "amd64")
// and validates the result is a known platform.
func New(os OS, arch Arch) (Platform, error) {
	p := Platform{OS: dealias(os, osAlias), Arch: dealias(arch, archAlias)}
	if !slices.Contains(allKnownOS, p.OS) {
		return p, fmt.Errorf("platform: unknown OS %q (known: %v, aliases: %v)", p.OS, allKnownOS, osAlias)
	}
	if !slices.Contains(allKnownArch, p.Arch) {
		return p, fmt.Errorf("platform: unknown architecture %q (known: %v, aliases: %v)", p.Arch, allKnownArch, archAlias)
	}
	return p, nil
}

// Parse splits a "os/arch" string (e.g. "linux/x86_64") and resolves it
// via New.
func Parse(s string) (Platform, error) {
	for i := 0; i < len(s); i++ {
		if s[i] == '/' {
			return New(OS(s[:i]), Arch(s[i+1:]))
		}
	}
	return Platform{}, fmt.Errorf("platform: %q is not in \"os/arch\" form", s)
}

// OS is an operating system identifier, matching the constraint value
// names under @platforms//os.
type OS string

const (
	android    OS = "android"
	chromiumos OS = "chromiumos"
	emscripten OS = "emscripten"
	freebsd    OS = "freebsd"
	fuchsia    OS = "fuchsia"
	haiku      OS = "haiku"
	ios        OS = "ios"
	linux      OS = "linux"
	netbsd     OS = "netbsd"
	nixos      OS = "nixos"
	none       OS = "none" // bare-metal
	openbsd    OS = "openbsd"
	osx        OS = "osx"
	qnx        OS = "qnx"
	tvos       OS = "tvos"
	uefi       OS = "uefi"
	visionos   OS = "visionos"
	vxworks    OS = "vxworks"
	wasi       OS = "wasi"
	watchos    OS = "watchos"
	windows    OS = "windows"
)

var osAlias = map[string]OS{"macos": osx}

var allKnownOS = []OS{
	android, chromiumos, emscripten, freebsd, fuchsia, haiku, ios,
	linux, netbsd, nixos, none, openbsd, osx, qnx, tvos,
	uefi, visionos, vxworks, wasi, watchos, windows,
}

// Arch is a CPU architecture identifier, matching the constraint value
// names under @platforms//cpu.
type Arch string

const (
	aarch32  Arch = "aarch32"
	aarch64  Arch = "aarch64"
	arm64_32 Arch = "arm64_32"
	arm64e   Arch = "arm64e"
	armv6m   Arch = "armv6-m"
	armv7    Arch = "armv7"
	armv7em  Arch = "armv7e-m"
	armv7k   Arch = "armv7k"
	armv7m   Arch = "armv7-m"
	armv8m   Arch = "armv8-m"
	i386     Arch = "i386"
	mips64   Arch = "mips64"
	ppc32    Arch = "ppc32"
	ppc64le  Arch = "ppc64le"
	riscv64  Arch = "riscv64"
	s390x    Arch = "s390x"
	wasm32   Arch = "wasm32"
	wasm64   Arch = "wasm64"
	x86_32   Arch = "x86_32"
	x86_64   Arch = "x86_64"
)

var archAlias = map[string]Arch{
	"arm":   aarch32,
	"arm64": aarch64,
	"amd64": x86_64,
}

var allKnownArch = []Arch{
	aarch32, aarch64, arm64_32, arm64e, armv6m, armv7, armv7em,
	armv7k, armv7m, armv8m, i386, mips64, ppc32, ppc64le,
	riscv64, s390x, wasm32, wasm64, x86_32, x86_64,
}

// KnownEnv holds the precomputed macro environment for every platform this
// package knows about, populated below. Lookup is the normal way to read
// it: absent platforms simply predefine nothing.
var KnownEnv = map[Platform]Macros{}

// Lookup returns p's predefined macro environment, or nil if p is not a
// platform this package has macros for (an unrecognized or underspecified
// target is not an error — it just predefines nothing).
func Lookup(p Platform) Macros {
	return KnownEnv[p]
}

func init() {
	// Windows
	windowsArchs := []Arch{i386, x86_32, x86_64, aarch32, aarch64}
	addMacro("_WIN32", matrix([]OS{windows}, windowsArchs))
	addMacro("_WIN64", matrix([]OS{windows}, []Arch{x86_64, aarch64}))
	addMacro("__MINGW32__", matrix([]OS{windows}, []Arch{i386}))
	addMacro("__MINGW64__", matrix([]OS{windows}, []Arch{x86_64}))
	addMacro("_M_IX86", matrix([]OS{windows}, []Arch{i386}))
	addMacro("_M_X64", matrix([]OS{windows}, []Arch{x86_64}))
	addMacro("_M_ARM", matrix([]OS{windows}, []Arch{aarch32}))
	addMacro("_M_ARM64", matrix([]OS{windows}, []Arch{aarch64}))

	// Linux / Android / ChromeOS / NixOS
	addMacros([]string{"linux", "__linux__", "__linux", "__gnu_linux__"}, matrix([]OS{linux}, allKnownArch))
	addMacros([]string{"__NIX__", "__NIXOS__"}, matrix([]OS{nixos}, allKnownArch))
	addMacro("__ANDROID__", matrix([]OS{android}, []Arch{aarch32, aarch64, x86_32, x86_64, riscv64}))
	addMacro("__CHROMEOS__", matrix([]OS{chromiumos}, []Arch{x86_64, aarch64, riscv64}))

	unixOS := []OS{linux, android, chromiumos, nixos, freebsd, netbsd, openbsd, haiku, qnx}
	addMacros([]string{"unix", "__unix", "__unix__"}, matrix(unixOS, allKnownArch))

	// WebAssembly
	addMacro("__EMSCRIPTEN__", matrix([]OS{emscripten}, []Arch{wasm32, wasm64}))
	addMacro("__wasi__", matrix([]OS{wasi}, []Arch{wasm32, wasm64}))
	addMacro("__wasm__", matrix([]OS{emscripten, wasi}, []Arch{wasm32, wasm64}))
	addMacro("__wasm32__", matrix([]OS{emscripten, wasi}, []Arch{wasm32}))
	addMacro("__wasm64__", matrix([]OS{emscripten, wasi}, []Arch{wasm64}))

	// BSD family
	bsdArchs := []Arch{i386, x86_64, aarch64, riscv64, ppc64le}
	addMacro("__FreeBSD__", matrix([]OS{freebsd}, bsdArchs))
	addMacro("__NetBSD__", matrix([]OS{netbsd}, bsdArchs))
	addMacro("__OpenBSD__", matrix([]OS{openbsd}, bsdArchs))

	// QNX, Haiku, Fuchsia, VxWorks, UEFI
	qnxArchs := []Arch{aarch32, aarch64, ppc32, ppc64le, x86_32, x86_64}
	addMacros([]string{"__QNX__", "__QNXNTO__"}, matrix([]OS{qnx}, qnxArchs))
	addMacro("__HAIKU__", matrix([]OS{haiku}, []Arch{x86_32, x86_64}))
	addMacros([]string{"__FUCHSIA__", "__Fuchsia__"}, matrix([]OS{fuchsia}, []Arch{aarch64, x86_64}))
	addMacros([]string{"__VXWORKS__", "__vxworks"}, matrix([]OS{vxworks}, qnxArchs))
	addMacros([]string{"__UEFI__", "__EFI__"}, matrix([]OS{uefi}, []Arch{aarch32, aarch64, x86_32, x86_64, riscv64}))

	// Apple family
	macArchs := []Arch{x86_64, aarch64, arm64e}
	applePlatforms := slices.Concat(
		matrix([]OS{osx}, macArchs),
		matrix([]OS{ios}, []Arch{aarch64, arm64e}),
		matrix([]OS{tvos}, []Arch{aarch64}),
		matrix([]OS{watchos}, []Arch{armv7k, arm64_32}),
		matrix([]OS{visionos}, []Arch{aarch64}),
	)
	addMacros([]string{"__APPLE__", "__MACH__"}, applePlatforms)
	addMacros([]string{"TARGET_OS_OSX", "TARGET_OS_MAC"}, matrix([]OS{osx}, macArchs))
	addMacros([]string{"TARGET_OS_IPHONE", "TARGET_OS_IOS"}, matrix([]OS{ios}, []Arch{aarch64, arm64e}))
	addMacro("TARGET_OS_TV", matrix([]OS{tvos}, []Arch{aarch64}))
	addMacro("TARGET_OS_WATCH", matrix([]OS{watchos}, []Arch{armv7k, arm64_32}))
	addMacro("TARGET_OS_VISION", matrix([]OS{visionos}, []Arch{aarch64}))

	// Generic CPU-only macros, any OS
	addMacros([]string{"__x86_64__", "__x86_64", "__amd64", "__amd64__"}, matrix(allKnownOS, []Arch{x86_64}))
	addMacros([]string{"__i386__", "__i386"}, matrix(allKnownOS, []Arch{i386}))
	addMacros([]string{"__arm__", "__arm", "__thumb__", "__thumb"}, matrix(allKnownOS, []Arch{aarch32}))
	addMacros([]string{"__aarch64__", "__arm64", "__arm64__"}, matrix(allKnownOS, []Arch{aarch64}))
	addMacros([]string{"__ARM64_32__", "__ARM64_32"}, matrix([]OS{watchos}, []Arch{arm64_32}))
	addMacros([]string{"__arm64e__", "__arm64e"}, matrix([]OS{osx, ios}, []Arch{arm64e}))

	// Fine-grained Arm bare-metal
	addMacro("__ARM_ARCH_6M__", matrix([]OS{none}, []Arch{armv6m}))
	addMacros([]string{"__ARM_ARCH_7__", "__ARM_ARCH_7A__"}, matrix([]OS{none}, []Arch{armv7}))
	addMacro("__ARM_ARCH_7M__", matrix([]OS{none}, []Arch{armv7m}))
	addMacro("__ARM_ARCH_7EM__", matrix([]OS{none}, []Arch{armv7em}))
	addMacros([]string{"__ARM_ARCH_8M_BASE__", "__ARM_ARCH_8M_MAIN__"}, matrix([]OS{none}, []Arch{armv8m}))

	// PowerPC, MIPS, s390, RISC-V
	ppcOS := []OS{linux, freebsd, netbsd, openbsd, qnx, vxworks}
	addMacros([]string{"__powerpc__", "__PPC__"}, matrix(ppcOS, []Arch{ppc32}))
	addMacros([]string{"__powerpc64__", "__ppc64__"}, matrix(ppcOS, []Arch{ppc64le}))
	addMacro("__mips64", matrix([]OS{linux, netbsd, openbsd, qnx, vxworks}, []Arch{mips64}))
	addMacros([]string{"__s390x__", "__s390__"}, matrix([]OS{linux}, []Arch{s390x}))
	addMacro("__riscv", matrix([]OS{linux, freebsd, netbsd, openbsd, qnx, vxworks, android, chromiumos, fuchsia, nixos}, []Arch{riscv64}))
}

func addMacro(name string, platforms []Platform) {
	for _, p := range platforms {
		env, ok := KnownEnv[p]
		if !ok {
			env = make(Macros, 8)
			KnownEnv[p] = env
		}
		env[name] = 1
	}
}

func addMacros(names []string, platforms []Platform) {
	for _, name := range names {
		addMacro(name, platforms)
	}
}

func matrix(oses []OS, arches []Arch) []Platform {
	out := make([]Platform, 0, len(oses)*len(arches))
	for _, o := range oses {
		for _, a := range arches {
			out = append(out, Platform{OS: o, Arch: a})
		}
	}
	return out
}

func dealias[T ~string](value T, aliases map[string]T) T {
	if canonical, ok := aliases[string(value)]; ok {
		return canonical
	}
	return value
}
