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
	"cmp"
	"slices"
	"strings"
)

// Compare orders v against w by precedence, returning -1, 0, or +1. A nil
// version sorts below every non-nil version and two nil versions compare
// equal. Build metadata is ignored, so versions differing only in metadata
// compare equal; use Equal to distinguish them.
func Compare(v, w *Version) int {
	if v == w {
		return 0
	}
	if v == nil {
		return -1
	}
	if w == nil {
		return +1
	}

	if d := cmp.Compare(v.major, w.major); d != 0 {
		return d
	}
	if d := cmp.Compare(v.minor, w.minor); d != 0 {
		return d
	}
	if d := cmp.Compare(v.patch, w.patch); d != 0 {
		return d
	}

	// a release outranks any prerelease sharing its trio
	// https://semver.org/spec/v2.0.0.html#spec-item-11
	switch {
	case len(v.pre) == 0 && len(w.pre) == 0:
		return 0
	case len(v.pre) == 0:
		return +1
	case len(w.pre) == 0:
		return -1
	}

	return comparePrerelease(v.pre, w.pre)
}

// Compare orders v against w by precedence. See the Compare function for
// the full semantics.
func (v *Version) Compare(w *Version) int {
	return Compare(v, w)
}

// comparePrerelease walks two identifier lists position by position. At
// each position a numeric identifier ranks below an alphanumeric one;
// numeric pairs order by magnitude and alphanumeric pairs byte-wise. When
// one list is a strict prefix of the other, the shorter ranks lower.
func comparePrerelease(a, b []string) int {
	for i := range min(len(a), len(b)) {
		an := allDigits(a[i])
		bn := allDigits(b[i])

		var d int
		switch {
		case an && bn:
			d = compareDigits(a[i], b[i])
		case an:
			d = -1
		case bn:
			d = +1
		default:
			d = strings.Compare(a[i], b[i])
		}

		if d != 0 {
			return d
		}
	}

	return cmp.Compare(len(a), len(b))
}

// Sort orders versions ascending by precedence with nil entries first. The
// sort is stable, so versions differing only in build metadata keep their
// relative order.
func Sort(versions []*Version) {
	slices.SortStableFunc(versions, Compare)
}
