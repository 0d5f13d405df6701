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

package semver_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/semver"
)

func TestNew(t *testing.T) {
	v, err := semver.New(1, 2, 3, []string{"rc", "1"}, []string{"sha", "05114"})

	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if got := v.String(); got != "1.2.3-rc.1+sha.05114" {
		t.Errorf("String() = %s, want 1.2.3-rc.1+sha.05114", got)
	}

	if v.Major() != 1 || v.Minor() != 2 || v.Patch() != 3 {
		t.Errorf("components = %d.%d.%d, want 1.2.3", v.Major(), v.Minor(), v.Patch())
	}

	if diff := cmp.Diff([]string{"rc", "1"}, v.Prerelease()); diff != "" {
		t.Errorf("Prerelease() mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"sha", "05114"}, v.Build()); diff != "" {
		t.Errorf("Build() mismatch (-want +got):\n%s", diff)
	}
}

func TestNew_Invalid(t *testing.T) {
	type args struct {
		prerelease []string
		build      []string
	}
	tests := []struct {
		name string
		args args
		want error
	}{
		{
			name: "numeric_identifier_with_leading_zero",
			args: args{prerelease: []string{"01"}},
			want: semver.ErrInvalidIdentifier,
		},
		{
			name: "empty_identifier",
			args: args{prerelease: []string{"rc", ""}},
			want: semver.ErrInvalidIdentifier,
		},
		{
			name: "identifier_with_bad_character",
			args: args{prerelease: []string{"a_b"}},
			want: semver.ErrInvalidIdentifier,
		},
		{
			name: "empty_metadata",
			args: args{build: []string{""}},
			want: semver.ErrInvalidMetadata,
		},
		{
			name: "metadata_with_bad_character",
			args: args{build: []string{"x!"}},
			want: semver.ErrInvalidMetadata,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := semver.New(1, 0, 0, tt.args.prerelease, tt.args.build)

			if err == nil {
				t.Fatalf("expected error, got nil")
			}

			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got '%v'", tt.want, err)
			}
		})
	}
}

// New copies its slices and the accessors return copies, so neither side
// can mutate a Version after construction.
func TestVersion_Immutability(t *testing.T) {
	prerelease := []string{"rc", "1"}

	v, err := semver.New(1, 0, 0, prerelease, nil)

	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	prerelease[0] = "changed"

	if got := v.String(); got != "1.0.0-rc.1" {
		t.Errorf("String() = %s after mutating input slice, want 1.0.0-rc.1", got)
	}

	v.Prerelease()[0] = "changed"

	if got := v.String(); got != "1.0.0-rc.1" {
		t.Errorf("String() = %s after mutating accessor result, want 1.0.0-rc.1", got)
	}
}

func TestVersion_IsPrerelease(t *testing.T) {
	if semver.MustParse("1.0.0", semver.Strict).IsPrerelease() {
		t.Errorf("1.0.0 reported as a prerelease")
	}

	if !semver.MustParse("1.0.0-rc.1", semver.Strict).IsPrerelease() {
		t.Errorf("1.0.0-rc.1 not reported as a prerelease")
	}

	if semver.MustParse("1.0.0+build", semver.Strict).IsPrerelease() {
		t.Errorf("1.0.0+build reported as a prerelease")
	}

	var null *semver.Version
	if null.IsPrerelease() {
		t.Errorf("nil version reported as a prerelease")
	}
}

func TestVersion_Equal(t *testing.T) {
	type args struct {
		a string
		b string
	}
	tests := []struct {
		name string
		args args
		want bool
	}{
		{
			name: "identical",
			args: args{a: "1.2.3-rc.1+build", b: "1.2.3-rc.1+build"},
			want: true,
		},
		{
			name: "build_metadata_differs",
			args: args{a: "1.0.0+linux", b: "1.0.0+darwin"},
			want: false,
		},
		{
			name: "build_metadata_only_on_one",
			args: args{a: "1.0.0", b: "1.0.0+build"},
			want: false,
		},
		{
			name: "prerelease_differs",
			args: args{a: "1.0.0-alpha", b: "1.0.0-beta"},
			want: false,
		},
		{
			name: "trio_differs",
			args: args{a: "1.0.0", b: "1.0.1"},
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := semver.MustParse(tt.args.a, semver.Strict)
			b := semver.MustParse(tt.args.b, semver.Strict)

			if got := a.Equal(b); got != tt.want {
				t.Errorf("Equal(%s, %s) = %t, want %t", tt.args.a, tt.args.b, got, tt.want)
			}

			if got := b.Equal(a); got != tt.want {
				t.Errorf("Equal(%s, %s) = %t, want %t", tt.args.b, tt.args.a, got, tt.want)
			}
		})
	}
}

func TestVersion_Equal_Nil(t *testing.T) {
	var a, b *semver.Version

	if !a.Equal(b) {
		t.Errorf("two nil versions are not Equal")
	}

	v := semver.MustParse("1.0.0", semver.Strict)

	if a.Equal(v) || v.Equal(a) {
		t.Errorf("nil version Equal to 1.0.0")
	}
}

// EquivalentTo ignores build metadata where Equal does not.
func TestVersion_EquivalentTo(t *testing.T) {
	a := semver.MustParse("1.0.0+linux", semver.Strict)
	b := semver.MustParse("1.0.0+darwin", semver.Strict)

	if !a.EquivalentTo(b) {
		t.Errorf("versions differing only in build metadata are not EquivalentTo")
	}

	if a.Equal(b) {
		t.Errorf("versions differing in build metadata are Equal")
	}

	c := semver.MustParse("1.0.1", semver.Strict)

	if a.EquivalentTo(c) {
		t.Errorf("1.0.0 EquivalentTo 1.0.1")
	}

	var null *semver.Version
	if !null.EquivalentTo(nil) {
		t.Errorf("two nil versions are not EquivalentTo")
	}
}

func TestVersion_ZeroValue(t *testing.T) {
	var v semver.Version

	if got := v.String(); got != "0.0.0" {
		t.Errorf("zero value String() = %s, want 0.0.0", got)
	}

	if v.IsPrerelease() {
		t.Errorf("zero value reported as a prerelease")
	}
}

func TestVersion_JSONRoundTrip(t *testing.T) {
	type manifest struct {
		Pin *semver.Version `json:"pin"`
	}

	in := manifest{Pin: semver.MustParse("1.2.3-rc.1+sha.5114f85", semver.Strict)}

	data, err := json.Marshal(in)

	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}

	if got := string(data); got != `{"pin":"1.2.3-rc.1+sha.5114f85"}` {
		t.Errorf("Marshal = %s, want {\"pin\":\"1.2.3-rc.1+sha.5114f85\"}", got)
	}

	var out manifest
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}

	if !in.Pin.Equal(out.Pin) {
		t.Errorf("round trip changed the version: %s != %s", in.Pin, out.Pin)
	}
}

func TestVersion_UnmarshalText_Strict(t *testing.T) {
	type args struct {
		text string
	}
	tests := []struct {
		name string
		args args
		want error
	}{
		{
			name: "v_prefix_rejected",
			args: args{text: "v1.2.3"},
			want: semver.ErrUnexpectedCharacter,
		},
		{
			name: "partial_rejected",
			args: args{text: "1.2"},
			want: semver.ErrMissingComponent,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v semver.Version
			err := v.UnmarshalText([]byte(tt.args.text))

			if err == nil {
				t.Fatalf("expected error for '%s', got nil", tt.args.text)
			}

			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v for '%s', got '%v'", tt.want, tt.args.text, err)
			}
		})
	}
}
