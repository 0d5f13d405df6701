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

// Package semver parses, orders, and matches versions following the
// Semantic Versioning 2.0.0 specification at https://semver.org, together
// with the range syntax used by npm and similar tooling.
//
// Versions are obtained from Parse, Coerce, or New and are immutable;
// ranges are obtained from ParseRange. All values may be shared freely
// between goroutines. Precedence follows the specification exactly,
// including the rule that build metadata never influences ordering, so
// Compare reports 1.0.0+linux and 1.0.0+darwin as equal while Equal
// distinguishes them.
package semver

import (
	"fmt"
	"slices"
	"strings"
)

// A Version is an immutable semantic version. The zero value is the release
// 0.0.0; use New, Parse, or Coerce to obtain validated values beyond it.
type Version struct {
	major uint64
	minor uint64
	patch uint64
	pre   []string
	build []string
}

// New constructs a Version from its parts, validating every prerelease and
// build metadata identifier. Both slices are copied, so the caller may keep
// modifying its own.
func New(major, minor, patch uint64, prerelease, build []string) (*Version, error) {
	for _, id := range prerelease {
		if !identifierOK(id) {
			return nil, fmt.Errorf("%w %q", ErrInvalidIdentifier, id)
		}
	}
	for _, id := range build {
		if !metadataOK(id) {
			return nil, fmt.Errorf("%w %q", ErrInvalidMetadata, id)
		}
	}

	return &Version{
		major: major,
		minor: minor,
		patch: patch,
		pre:   slices.Clone(prerelease),
		build: slices.Clone(build),
	}, nil
}

// Major returns the major component.
func (v *Version) Major() uint64 { return v.major }

// Minor returns the minor component.
func (v *Version) Minor() uint64 { return v.minor }

// Patch returns the patch component.
func (v *Version) Patch() uint64 { return v.patch }

// Prerelease returns a copy of the prerelease identifiers, nil for a
// release.
func (v *Version) Prerelease() []string { return slices.Clone(v.pre) }

// Build returns a copy of the build metadata identifiers, nil when there
// are none.
func (v *Version) Build() []string { return slices.Clone(v.build) }

// IsPrerelease reports whether the version carries prerelease identifiers.
// A nil version does not.
func (v *Version) IsPrerelease() bool { return v != nil && len(v.pre) > 0 }

// Equal reports whether v and w match in every component, including build
// metadata. Two nil versions are equal.
func (v *Version) Equal(w *Version) bool {
	if v == nil || w == nil {
		return v == w
	}

	return v.major == w.major && v.minor == w.minor && v.patch == w.patch &&
		slices.Equal(v.pre, w.pre) && slices.Equal(v.build, w.build)
}

// EquivalentTo reports whether v and w hold the same precedence, meaning
// they differ at most in build metadata.
func (v *Version) EquivalentTo(w *Version) bool {
	return Compare(v, w) == 0
}

// String renders the version in canonical form with no leading "v",
// regardless of how it was parsed.
func (v *Version) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d.%d.%d", v.major, v.minor, v.patch)

	for i, id := range v.pre {
		if i == 0 {
			b.WriteByte('-')
		} else {
			b.WriteByte('.')
		}
		b.WriteString(id)
	}
	for i, id := range v.build {
		if i == 0 {
			b.WriteByte('+')
		} else {
			b.WriteByte('.')
		}
		b.WriteString(id)
	}

	return b.String()
}

// MarshalText implements encoding.TextMarshaler using the canonical form.
func (v *Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, accepting only the
// strict grammar.
func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text), Strict)
	if err != nil {
		return err
	}
	*v = *parsed

	return nil
}
