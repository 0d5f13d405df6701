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

import "strings"

// A Range is a parsed version range: one or more comparator sets of which
// at least one must be satisfied. Ranges are immutable once parsed.
type Range struct {
	sets []comparatorSet
}

// A comparatorSet is a conjunction of comparators. A set with no
// comparators, produced by a bare wildcard, allows every version.
type comparatorSet struct {
	comparators []comparator
}

// A comparator constrains versions to one side of its operand under the
// precedence order.
type comparator struct {
	op      operator
	version *Version
}

type operator uint8

const (
	opEqual operator = iota
	opLess
	opGreater
	opLessEqual
	opGreaterEqual
)

func (o operator) String() string {
	switch o {
	case opLess:
		return "<"
	case opGreater:
		return ">"
	case opLessEqual:
		return "<="
	case opGreaterEqual:
		return ">="
	default:
		return "="
	}
}

// SatisfiedBy reports whether version matches at least one comparator set.
// A version carrying prerelease identifiers only matches a set holding a
// comparator whose operand shares its major.minor.patch trio and is itself
// a prerelease; everywhere else prereleases are excluded, so "^1.0.0" does
// not admit 1.2.0-rc.1. A nil version matches nothing.
func (r *Range) SatisfiedBy(version *Version) bool {
	if version == nil {
		return false
	}

	for _, s := range r.sets {
		if s.matches(version) {
			return true
		}
	}

	return false
}

// Compare classifies version against the bounds of the range: +1 when it
// lies strictly above every comparator set, -1 when strictly below every
// set, and 0 otherwise. The zero covers satisfaction, a version falling
// between disjoint sets, a nil version, and a range with no sets.
// Unlike SatisfiedBy the classification is purely positional: prerelease
// exclusion does not apply, so a version may classify as 0 and still not
// satisfy the range.
func (r *Range) Compare(version *Version) int {
	if version == nil || len(r.sets) == 0 {
		return 0
	}

	above, below := true, true
	for _, s := range r.sets {
		above = above && s.below(version)
		below = below && s.above(version)
	}

	switch {
	case above:
		return +1
	case below:
		return -1
	}

	return 0
}

// String renders the range in normalized form: desugared comparators
// joined by a space within each set and by " || " between sets, with a
// match-all set rendered as "*". ParseRange("1.2.x").String() returns
// ">=1.2.0 <1.3.0".
func (r *Range) String() string {
	parts := make([]string, len(r.sets))
	for i, s := range r.sets {
		parts[i] = s.String()
	}

	return strings.Join(parts, " || ")
}

// Satisfies reports whether the version string matches the range string.
// The version is parsed with AllowPrefix, mirroring how versions are
// written inside ranges.
func Satisfies(version, rng string) (bool, error) {
	r, err := ParseRange(rng)
	if err != nil {
		return false, err
	}

	v, err := Parse(version, AllowPrefix)
	if err != nil {
		return false, err
	}

	return r.SatisfiedBy(v), nil
}

func (s comparatorSet) matches(v *Version) bool {
	for _, c := range s.comparators {
		if !c.matches(v) {
			return false
		}
	}

	if v.IsPrerelease() && !s.admitsPrerelease(v) {
		return false
	}

	return true
}

// admitsPrerelease reports whether the set holds a comparator explicitly
// targeting the prerelease line of v.
func (s comparatorSet) admitsPrerelease(v *Version) bool {
	for _, c := range s.comparators {
		w := c.version
		if len(w.pre) > 0 && w.major == v.major && w.minor == v.minor && w.patch == v.patch {
			return true
		}
	}

	return false
}

// below reports whether every version the set allows is strictly lower
// than v. One exceeded upper bound suffices: the conjunction confines the
// set to that bound's underside.
func (s comparatorSet) below(v *Version) bool {
	for _, c := range s.comparators {
		d := Compare(v, c.version)

		switch c.op {
		case opLess:
			if d >= 0 {
				return true
			}
		case opLessEqual, opEqual:
			if d > 0 {
				return true
			}
		}
	}

	return false
}

// above reports whether every version the set allows is strictly higher
// than v.
func (s comparatorSet) above(v *Version) bool {
	for _, c := range s.comparators {
		d := Compare(v, c.version)

		switch c.op {
		case opGreater:
			if d <= 0 {
				return true
			}
		case opGreaterEqual, opEqual:
			if d < 0 {
				return true
			}
		}
	}

	return false
}

func (s comparatorSet) String() string {
	if len(s.comparators) == 0 {
		return "*"
	}

	parts := make([]string, len(s.comparators))
	for i, c := range s.comparators {
		parts[i] = c.String()
	}

	return strings.Join(parts, " ")
}

func (c comparator) matches(v *Version) bool {
	d := Compare(v, c.version)

	switch c.op {
	case opLess:
		return d < 0
	case opGreater:
		return d > 0
	case opLessEqual:
		return d <= 0
	case opGreaterEqual:
		return d >= 0
	default:
		return d == 0
	}
}

func (c comparator) String() string {
	return c.op.String() + c.version.String()
}
