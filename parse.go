// Copyright 2026 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package semver

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// A ParseMode selects how strictly Parse treats its input. Strict accepts
// only the exact grammar of semver.org; the remaining values are flags that
// combine with bitwise OR to relax it.
type ParseMode uint

const (
	// AllowPrefix tolerates a single leading "v" or "V", as found in git
	// tags and Go module versions.
	AllowPrefix ParseMode = 1 << iota

	// OptionalPatch allows the patch component and its leading dot to be
	// omitted, defaulting patch to 0.
	OptionalPatch

	// Greedy stops at the first character that cannot extend the version
	// instead of rejecting the input. Parse discards the unconsumed
	// remainder; ParsePrefix reports it.
	Greedy

	// Strict applies no relaxations.
	Strict ParseMode = 0

	// Lenient enables every relaxation at once. This is the mode used by
	// Coerce.
	Lenient = AllowPrefix | OptionalPatch | Greedy
)

// Errors wrapped by everything Parse and New return. Test with errors.Is.
var (
	ErrEmptyVersion        = errors.New("empty version string")
	ErrUnexpectedCharacter = errors.New("unexpected character")
	ErrMissingComponent    = errors.New("missing version component")
	// ErrOverflow marks a numeric component that does not fit in 64 bits.
	// It is a resource limit rather than a syntax error, so Greedy parsing
	// does not recover from it.
	ErrOverflow          = errors.New("numeric overflow")
	ErrInvalidIdentifier = errors.New("invalid prerelease identifier")
	ErrInvalidMetadata   = errors.New("invalid build metadata")
)

// Parse reads str as a semantic version under the given mode. Leading and
// trailing whitespace is ignored; whitespace anywhere else is an error.
func Parse(str string, mode ParseMode) (*Version, error) {
	v, _, err := parseVersion(strings.TrimSpace(str), mode)

	return v, err
}

// ParsePrefix reads a version from the front of str, implying Greedy, and
// returns it together with the unconsumed remainder. Parsing
// "1.2.3-rc.1 linux/amd64" yields the version 1.2.3-rc.1 and the remainder
// " linux/amd64". The remainder is empty when the whole of str, less any
// surrounding whitespace, formed the version.
func ParsePrefix(str string, mode ParseMode) (*Version, string, error) {
	trimmed := strings.TrimSpace(str)

	v, end, err := parseVersion(trimmed, mode|Greedy)
	if err != nil {
		return nil, "", err
	}

	return v, trimmed[end:], nil
}

// MustParse is like Parse but panics if the string cannot be parsed. It
// simplifies initializing version tables in tests and package variables.
func MustParse(str string, mode ParseMode) *Version {
	v, err := Parse(str, mode)

	if err != nil {
		panic(err)
	}

	return v
}

// Coerce extracts a version from str with every relaxation enabled,
// accepting inputs like "v1.2" or "1.4.0-rc1 (stable)". It is the loosest
// way to turn a string into a version; prefer Parse with an explicit mode
// when the input format is known.
func Coerce(str string) (*Version, error) {
	return Parse(str, Lenient)
}

type parser struct {
	str  string
	pos  int
	mode ParseMode
}

// parseVersion scans str, already stripped of surrounding whitespace, and
// returns the version together with the position of the first byte it did
// not consume.
func parseVersion(str string, mode ParseMode) (*Version, int, error) {
	if str == "" {
		return nil, 0, ErrEmptyVersion
	}

	p := &parser{str: str, mode: mode}
	v := &Version{}

	if mode&AllowPrefix != 0 && (str[0] == 'v' || str[0] == 'V') {
		p.pos++
	}

	var err error
	if v.major, err = p.number("major"); err != nil {
		return nil, 0, err
	}
	if err = p.dot("minor"); err != nil {
		return nil, 0, err
	}
	if v.minor, err = p.number("minor"); err != nil {
		return nil, 0, err
	}

	switch {
	case !p.done() && p.str[p.pos] == '.':
		dot := p.pos
		p.pos++

		v.patch, err = p.number("patch")
		if err != nil {
			// "1.2.x" under OptionalPatch is a complete version
			// followed by trailing text, so the dot is handed back.
			if p.greedy() && mode&OptionalPatch != 0 && !errors.Is(err, ErrOverflow) {
				p.pos = dot

				return v, p.pos, nil
			}

			return nil, 0, err
		}
	case mode&OptionalPatch != 0:
		// patch omitted, stays 0
	case p.done():
		return nil, 0, fmt.Errorf("%w %s", ErrMissingComponent, "patch")
	default:
		return nil, 0, p.unexpected(p.pos)
	}

	if !p.done() && p.str[p.pos] == '-' {
		stopped, err := p.identifiers(&v.pre, true)
		if err != nil {
			return nil, 0, err
		}
		if stopped {
			return v, p.pos, nil
		}
	}

	if !p.done() && p.str[p.pos] == '+' {
		stopped, err := p.identifiers(&v.build, false)
		if err != nil {
			return nil, 0, err
		}
		if stopped {
			return v, p.pos, nil
		}
	}

	if !p.done() && !p.greedy() {
		return nil, 0, p.unexpected(p.pos)
	}

	return v, p.pos, nil
}

func (p *parser) done() bool {
	return p.pos >= len(p.str)
}

func (p *parser) greedy() bool {
	return p.mode&Greedy != 0
}

func (p *parser) unexpected(at int) error {
	r, _ := utf8.DecodeRuneInString(p.str[at:])

	return fmt.Errorf("%w %q at position %d", ErrUnexpectedCharacter, r, at)
}

// dot consumes the '.' that must precede the named component.
func (p *parser) dot(next string) error {
	if p.done() {
		return fmt.Errorf("%w %s", ErrMissingComponent, next)
	}
	if p.str[p.pos] != '.' {
		return p.unexpected(p.pos)
	}
	p.pos++

	return nil
}

// number consumes a run of digits and returns its value. Leading zeros are
// rejected; under Greedy the run instead ends after the lone zero, leaving
// the remaining digits as trailing text.
func (p *parser) number(name string) (uint64, error) {
	start := p.pos
	for !p.done() && isDigit(p.str[p.pos]) {
		p.pos++
	}

	if p.pos == start {
		if p.done() {
			return 0, fmt.Errorf("%w %s", ErrMissingComponent, name)
		}

		return 0, p.unexpected(p.pos)
	}

	if p.pos-start > 1 && p.str[start] == '0' {
		if !p.greedy() {
			return 0, p.unexpected(start + 1)
		}
		p.pos = start + 1

		return 0, nil
	}

	n, err := strconv.ParseUint(p.str[start:p.pos], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w in %s", ErrOverflow, name)
	}

	return n, nil
}

// identifiers consumes the separator at the current position followed by a
// dot-separated identifier list, appending each identifier to out. Under
// Greedy a rejected element rewinds to the boundary before its separator
// and stops the scan, reported through the first return value.
func (p *parser) identifiers(out *[]string, pre bool) (bool, error) {
	mark := p.pos // separator introducing the current element
	p.pos++

	for {
		start := p.pos
		for !p.done() && isIdentChar(p.str[p.pos]) {
			p.pos++
		}

		elem := p.str[start:p.pos]

		if elem == "" && !p.done() && p.str[p.pos] != '.' {
			if p.greedy() {
				p.pos = mark

				return true, nil
			}

			return false, p.unexpected(p.pos)
		}

		if elem == "" || (pre && !identifierOK(elem)) {
			if p.greedy() {
				p.pos = mark

				return true, nil
			}
			if pre {
				return false, fmt.Errorf("%w %q", ErrInvalidIdentifier, elem)
			}

			return false, fmt.Errorf("%w %q", ErrInvalidMetadata, elem)
		}

		*out = append(*out, elem)

		if p.done() || p.str[p.pos] != '.' {
			return false, nil
		}
		mark = p.pos
		p.pos++
	}
}

func isIdentChar(c byte) bool {
	return isDigit(c) || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '-'
}

// identifierOK reports whether str may serve as a prerelease identifier:
// drawn from [0-9A-Za-z-], and free of leading zeros when fully numeric.
func identifierOK(str string) bool {
	if !metadataOK(str) {
		return false
	}

	return !allDigits(str) || len(str) == 1 || str[0] != '0'
}

// metadataOK reports whether str may serve as a build metadata identifier;
// unlike prerelease identifiers, a numeric one may carry leading zeros.
func metadataOK(str string) bool {
	if str == "" {
		return false
	}
	for i := range len(str) {
		if !isIdentChar(str[i]) {
			return false
		}
	}

	return true
}
