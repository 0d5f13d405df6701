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
)

// ErrInvalidDigits is returned by CompareDigits when an argument is not a
// canonical decimal digit string.
var ErrInvalidDigits = errors.New("invalid digit string")

// CompareDigits orders two nonnegative integers given as decimal digit
// strings, returning -1, 0, or +1. The strings may hold arbitrarily many
// digits; no integer value is ever constructed. Each argument must be
// non-empty, contain only the characters '0' through '9', and have no
// leading zero unless it is exactly "0"; anything else fails with
// ErrInvalidDigits.
func CompareDigits(subject, against string) (int, error) {
	if err := checkDigits(subject); err != nil {
		return 0, err
	}
	if err := checkDigits(against); err != nil {
		return 0, err
	}

	return compareDigits(subject, against), nil
}

func checkDigits(str string) error {
	if str == "" || (len(str) > 1 && str[0] == '0') {
		return fmt.Errorf("%w %q", ErrInvalidDigits, str)
	}

	for i := range len(str) {
		if !isDigit(str[i]) {
			return fmt.Errorf("%w %q", ErrInvalidDigits, str)
		}
	}

	return nil
}

// compareDigits assumes both arguments are canonical digit strings. With
// leading zeros ruled out, a longer string always denotes a larger value,
// and equal-length strings order by their most significant differing digit.
func compareDigits(a, b string) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}

		return +1
	}

	for i := range len(a) {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}

			return +1
		}
	}

	return 0
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func allDigits(str string) bool {
	for i := range len(str) {
		if !isDigit(str[i]) {
			return false
		}
	}

	return len(str) > 0
}
