// Copyright 2026 Ian Lewis
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

package mrd

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// TestParseFlexionGroup tests ParseFlexionGroup.
func TestParseFlexionGroup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string

		expected []*Flexion
		err      error
	}{
		{
			name: "single",
			line: "%NING*Bb",
			expected: []*Flexion{
				{Ending: "NING", Ancode: "Bb"},
			},
		},
		{
			name: "empty ending",
			line: "%*Aa%NING*Bb",
			expected: []*Flexion{
				{Ending: "", Ancode: "Aa"},
				{Ending: "NING", Ancode: "Bb"},
			},
		},
		{
			name: "prefix",
			line: "%ЕЙШИЙ*иа*НАИ",
			expected: []*Flexion{
				{Ending: "ЕЙШИЙ", Ancode: "иа", Prefix: "НАИ"},
			},
		},
		{
			name: "surrounding whitespace",
			line: " %A*Aa \t",
			expected: []*Flexion{
				{Ending: "A", Ancode: "Aa"},
			},
		},
		{
			name: "empty line",
			line: "",
			err:  errEmptyRecord,
		},
		{
			name: "missing leading percent",
			line: "A*Aa%B*Bb",
			err:  errInvalidFlexion,
		},
		{
			name: "missing ancode",
			line: "%A*Aa%B",
			err:  errInvalidFlexion,
		},
		{
			name: "empty ancode",
			line: "%A*",
			err:  errInvalidFlexion,
		},
		{
			name: "too many fields",
			line: "%A*Aa*P*Q",
			err:  errInvalidFlexion,
		},
		{
			name: "empty item",
			line: "%A*Aa%%B*Bb",
			err:  errInvalidFlexion,
		},
		{
			name: "nul byte",
			line: "%A\x00*Aa",
			err:  errNulByte,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			group, err := ParseFlexionGroup(test.line)
			if diff := cmp.Diff(test.err, err, cmpopts.EquateErrors()); diff != "" {
				t.Fatalf("ParseFlexionGroup (-want, +got):\n%s", diff)
			}
			if diff := cmp.Diff(test.expected, group); diff != "" {
				t.Fatalf("ParseFlexionGroup (-want, +got):\n%s", diff)
			}
		})
	}
}

// TestParseLemma tests ParseLemma.
func TestParseLemma(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string

		expected *Lemma
		err      error
	}{
		{
			name: "base and group",
			line: "RUN 3",
			expected: &Lemma{
				Base:         "RUN",
				FlexionGroup: 3,
				AccentModel:  -1,
				Session:      -1,
				PrefixSet:    -1,
			},
		},
		{
			name: "all fields",
			line: "АБАЖУР 1 2 3 Фа 4",
			expected: &Lemma{
				Base:         "АБАЖУР",
				FlexionGroup: 1,
				AccentModel:  2,
				Session:      3,
				Ancode:       "Фа",
				PrefixSet:    4,
			},
		},
		{
			name: "absent fields",
			line: "# 7 - - - -",
			expected: &Lemma{
				Base:         NoBase,
				FlexionGroup: 7,
				AccentModel:  -1,
				Session:      -1,
				PrefixSet:    -1,
			},
		},
		{
			name: "tab separated",
			line: "RUN\t0\t12",
			expected: &Lemma{
				Base:         "RUN",
				FlexionGroup: 0,
				AccentModel:  12,
				Session:      -1,
				PrefixSet:    -1,
			},
		},
		{
			name: "empty",
			line: "  ",
			err:  errEmptyRecord,
		},
		{
			name: "missing group",
			line: "RUN",
			err:  errMissingField,
		},
		{
			name: "non numeric group",
			line: "RUN x",
			err:  errInvalidNumber,
		},
		{
			name: "negative group",
			line: "RUN -2",
			err:  errInvalidNumber,
		},
		{
			name: "absent group",
			line: "RUN -",
			err:  errInvalidNumber,
		},
		{
			name: "non numeric accent model",
			line: "RUN 1 x",
			err:  errInvalidNumber,
		},
		{
			name: "non numeric prefix set",
			line: "RUN 1 2 3 Фа x",
			err:  errInvalidNumber,
		},
		{
			name: "nul byte",
			line: "RU\x00N 1",
			err:  errNulByte,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			l, err := ParseLemma(test.line)
			if diff := cmp.Diff(test.err, err, cmpopts.EquateErrors()); diff != "" {
				t.Fatalf("ParseLemma (-want, +got):\n%s", diff)
			}
			if diff := cmp.Diff(test.expected, l); diff != "" {
				t.Fatalf("ParseLemma (-want, +got):\n%s", diff)
			}
		})
	}
}

// TestNewLemmaMapper tests that lemma IDs follow mapping order.
func TestNewLemmaMapper(t *testing.T) {
	t.Parallel()

	m := NewLemmaMapper()
	var ids []int
	for _, line := range []string{"A 0", "B 1", "C 0"} {
		l, err := m(line)
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, l.ID)
	}

	// A rejected line does not consume an ID.
	if _, err := m("D"); err == nil {
		t.Fatal("expected error")
	}
	l, err := m("E 2")
	if err != nil {
		t.Fatal(err)
	}
	ids = append(ids, l.ID)

	if diff := cmp.Diff([]int{0, 1, 2, 3}, ids); diff != "" {
		t.Fatalf("IDs (-want, +got):\n%s", diff)
	}
}
