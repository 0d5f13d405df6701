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
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Errors wrapped by everything ParseRange returns. Test with errors.Is.
var (
	ErrEmptyRange       = errors.New("empty range string")
	ErrEmptySet         = errors.New("empty comparator set")
	ErrOrphanedOperator = errors.New("operator without a version")
	// ErrInvalidVersion marks a version literal inside a range that could
	// not be parsed; the underlying parse error is attached as a second
	// cause, so errors.Is can test for both.
	ErrInvalidVersion   = errors.New("invalid version in range")
	ErrInvalidCharacter = errors.New("invalid character in range")
)

// ParseRange parses a version range in the syntax used by npm: comparator
// sets separated by "||", of which a version must satisfy at least one,
// each set a whitespace-separated conjunction of comparators. A comparator
// is an operator from <, <=, >, >=, = (the default) attached directly to a
// full version literal, a tilde or caret form, a hyphen pair "A - B", or an
// X-range like "1.2.x" standing for an interval. Two deliberate
// strictnesses: wildcards followed by anything at all are rejected rather
// than ignored, and an empty or whitespace-only string is an error rather
// than a match-all; write "*" to match every version.
func ParseRange(str string) (*Range, error) {
	trimmed := strings.TrimSpace(str)
	if trimmed == "" {
		return nil, ErrEmptyRange
	}

	segments := strings.Split(trimmed, "||")
	r := &Range{sets: make([]comparatorSet, 0, len(segments))}

	for _, segment := range segments {
		set, err := parseComparatorSet(segment)
		if err != nil {
			return nil, err
		}

		r.sets = append(r.sets, set)
	}

	return r, nil
}

// MustParseRange is like ParseRange but panics if the string cannot be
// parsed.
func MustParseRange(str string) *Range {
	r, err := ParseRange(str)

	if err != nil {
		panic(err)
	}

	return r
}

func parseComparatorSet(segment string) (comparatorSet, error) {
	tokens := strings.Fields(segment)
	if len(tokens) == 0 {
		return comparatorSet{}, ErrEmptySet
	}

	var set comparatorSet
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if err := checkToken(tok); err != nil {
			return comparatorSet{}, err
		}

		if tok == "-" {
			return comparatorSet{}, fmt.Errorf("%w %q", ErrOrphanedOperator, "-")
		}

		// "A - B" spans. The hyphen must stand alone: attached to a
		// version it would be a prerelease separator instead.
		if i+1 < len(tokens) && tokens[i+1] == "-" {
			if i+2 == len(tokens) {
				return comparatorSet{}, fmt.Errorf("%w %q", ErrOrphanedOperator, "-")
			}
			if err := checkToken(tokens[i+2]); err != nil {
				return comparatorSet{}, err
			}

			lo, err := parseRangeVersion(tok)
			if err != nil {
				return comparatorSet{}, err
			}
			hi, err := parseRangeVersion(tokens[i+2])
			if err != nil {
				return comparatorSet{}, err
			}

			set.comparators = append(set.comparators,
				comparator{op: opGreaterEqual, version: lo},
				comparator{op: opLessEqual, version: hi})
			i += 2

			continue
		}

		comparators, err := parseComparatorToken(tok)
		if err != nil {
			return comparatorSet{}, err
		}

		set.comparators = append(set.comparators, comparators...)
	}

	return set, nil
}

// checkToken rejects any byte outside the range token alphabet, catching
// strays like a lone "|" before they are misread as version text.
func checkToken(tok string) error {
	for i := range len(tok) {
		c := tok[i]
		if isIdentChar(c) || c == '.' || c == '+' || c == '*' ||
			c == '~' || c == '^' || c == '<' || c == '>' || c == '=' {
			continue
		}

		r, _ := utf8.DecodeRuneInString(tok[i:])

		return fmt.Errorf("%w %q", ErrInvalidCharacter, r)
	}

	return nil
}

// parseComparatorToken turns one token into its primitive comparators,
// desugaring the tilde and caret forms.
func parseComparatorToken(tok string) ([]comparator, error) {
	op, rest := splitOperator(tok)
	if op != "" && rest == "" {
		return nil, fmt.Errorf("%w %q", ErrOrphanedOperator, op)
	}

	switch op {
	case "":
		return parseBareToken(tok)
	case "~", "~>":
		return tildeComparators(tok, rest)
	case "^":
		return caretComparators(tok, rest)
	}

	v, err := parseRangeVersion(rest)
	if err != nil {
		return nil, err
	}

	return []comparator{{op: operatorFor(op), version: v}}, nil
}

func splitOperator(tok string) (string, string) {
	for _, op := range [...]string{"<=", ">=", "~>", "<", ">", "=", "~", "^"} {
		if rest, ok := strings.CutPrefix(tok, op); ok {
			return op, rest
		}
	}

	return "", tok
}

func operatorFor(op string) operator {
	switch op {
	case "<":
		return opLess
	case ">":
		return opGreater
	case "<=":
		return opLessEqual
	case ">=":
		return opGreaterEqual
	default:
		return opEqual
	}
}

// parseRangeVersion parses an embedded version literal. Literals are full
// versions relaxed only by an optional leading v; failures surface as a
// range-level error carrying the parse error as cause.
func parseRangeVersion(tok string) (*Version, error) {
	v, err := Parse(tok, AllowPrefix)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidVersion, tok, err)
	}

	return v, nil
}

// parseBareToken handles a token with no operator: an exact version
// ("1.2.3-rc.1"), or an X-range ("1", "1.2", "1.2.x", "*") standing for
// the interval spanning its omitted components, with a bare wildcard
// contributing no constraint at all. A wildcard anywhere but the tail of
// the trio, or a partial form carrying a prerelease or metadata suffix, is
// handed to the version parser so it fails with the verdict an ordinary
// literal would get.
func parseBareToken(tok string) ([]comparator, error) {
	body := tok
	if len(body) > 1 && (body[0] == 'v' || body[0] == 'V') {
		body = body[1:]
	}

	core := body
	suffix := ""
	if i := strings.IndexAny(body, "-+"); i >= 0 {
		core, suffix = body[:i], body[i:]
	}

	nums, ok := xrangeParts(strings.Split(core, "."))
	if !ok || len(nums) == 3 || suffix != "" {
		v, err := parseRangeVersion(tok)
		if err != nil {
			return nil, err
		}

		return []comparator{{op: opEqual, version: v}}, nil
	}

	switch len(nums) {
	case 0:
		return nil, nil
	case 1:
		major, err := increment(nums[0], tok, "major")
		if err != nil {
			return nil, err
		}

		return []comparator{
			{op: opGreaterEqual, version: &Version{major: nums[0]}},
			{op: opLess, version: &Version{major: major}},
		}, nil
	default:
		minor, err := increment(nums[1], tok, "minor")
		if err != nil {
			return nil, err
		}

		return []comparator{
			{op: opGreaterEqual, version: &Version{major: nums[0], minor: nums[1]}},
			{op: opLess, version: &Version{major: nums[0], minor: minor}},
		}, nil
	}
}

// xrangeParts classifies the dot-separated components of an X-range
// candidate: at most three parts, leading decimal numbers followed only by
// wildcard parts. It returns the concrete numbers and whether the shape
// held.
func xrangeParts(parts []string) ([]uint64, bool) {
	if len(parts) > 3 {
		return nil, false
	}

	var nums []uint64
	for i, part := range parts {
		if isWildcardPart(part) {
			for _, rest := range parts[i+1:] {
				if !isWildcardPart(rest) {
					return nil, false
				}
			}

			return nums, true
		}

		n, ok := xrangeNumber(part)
		if !ok {
			return nil, false
		}

		nums = append(nums, n)
	}

	return nums, true
}

func isWildcardPart(part string) bool {
	return part == "x" || part == "X" || part == "*"
}

// xrangeNumber parses a concrete X-range component, refusing leading zeros
// just like the version grammar.
func xrangeNumber(part string) (uint64, bool) {
	if !allDigits(part) || (len(part) > 1 && part[0] == '0') {
		return 0, false
	}

	n, err := strconv.ParseUint(part, 10, 64)
	if err != nil {
		return 0, false
	}

	return n, true
}

// tildeComparators desugars "~M.m.p" into the patch-level interval
// >=M.m.p <M.(m+1).0.
func tildeComparators(tok, rest string) ([]comparator, error) {
	v, err := parseRangeVersion(rest)
	if err != nil {
		return nil, err
	}

	minor, err := increment(v.minor, tok, "minor")
	if err != nil {
		return nil, err
	}

	return []comparator{
		{op: opGreaterEqual, version: v},
		{op: opLess, version: &Version{major: v.major, minor: minor}},
	}, nil
}

// caretComparators desugars "^M.m.p" by pinning the leftmost nonzero
// component: ^1.2.3 allows up to <2.0.0, ^0.2.3 up to <0.3.0, and ^0.0.3
// only 0.0.3 itself.
func caretComparators(tok, rest string) ([]comparator, error) {
	v, err := parseRangeVersion(rest)
	if err != nil {
		return nil, err
	}

	var upper *Version
	switch {
	case v.major > 0:
		major, err := increment(v.major, tok, "major")
		if err != nil {
			return nil, err
		}
		upper = &Version{major: major}
	case v.minor > 0:
		minor, err := increment(v.minor, tok, "minor")
		if err != nil {
			return nil, err
		}
		upper = &Version{minor: minor}
	default:
		patch, err := increment(v.patch, tok, "patch")
		if err != nil {
			return nil, err
		}
		upper = &Version{patch: patch}
	}

	return []comparator{
		{op: opGreaterEqual, version: v},
		{op: opLess, version: upper},
	}, nil
}

// increment returns n+1, reporting the same overflow failure as the
// version parser when the interval above n cannot be represented.
func increment(n uint64, tok, component string) (uint64, error) {
	if n == math.MaxUint64 {
		return 0, fmt.Errorf("%w %q: %w", ErrInvalidVersion, tok,
			fmt.Errorf("%w in %s", ErrOverflow, component))
	}

	return n + 1, nil
}
