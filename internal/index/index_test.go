// Copyright 2025 Ian Lewis
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

package index

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type word struct {
	text string
	id   int
}

func wordKey(w word) string {
	return strings.ToLower(w.text)
}

func byID(a, b word) int {
	return a.id - b.id
}

// TestIndex_Values tests index ordering.
func TestIndex_Values(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		values   []word
		tiebreak func(a, b word) int
		expected []word
	}{
		{
			name:     "empty",
			values:   nil,
			tiebreak: byID,
			expected: []word{},
		},
		{
			name:     "distinct keys",
			values:   []word{{"foo", 1}, {"Bar", 2}, {"baz", 3}},
			tiebreak: byID,
			expected: []word{{"Bar", 2}, {"baz", 3}, {"foo", 1}},
		},
		{
			name:     "tiebreak",
			values:   []word{{"foo", 3}, {"FOO", 1}, {"Foo", 2}},
			tiebreak: byID,
			expected: []word{{"FOO", 1}, {"Foo", 2}, {"foo", 3}},
		},
		{
			name:     "stable without tiebreak",
			values:   []word{{"foo", 3}, {"FOO", 1}, {"bar", 4}, {"Foo", 2}},
			expected: []word{{"bar", 4}, {"foo", 3}, {"FOO", 1}, {"Foo", 2}},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			idx := NewIndex(test.values, wordKey, test.tiebreak)
			if diff := cmp.Diff(test.expected, idx.Values(), cmp.AllowUnexported(word{})); diff != "" {
				t.Fatalf("Values (-want, +got):\n%s", diff)
			}
			if diff := cmp.Diff(len(test.expected), idx.Len()); diff != "" {
				t.Fatalf("Len (-want, +got):\n%s", diff)
			}
			for i, w := range test.expected {
				if got := idx.Value(i); got != w {
					t.Errorf("Value(%d): got %v, want %v", i, got, w)
				}
			}
		})
	}
}

// TestIndex_Search tests Index.Search.
func TestIndex_Search(t *testing.T) {
	t.Parallel()

	values := []word{
		{"bar", 1},
		{"Foo", 2},
		{"baz", 3},
		{"foo", 4},
		{"FOO", 5},
		{"hoge", 6},
	}

	tests := []struct {
		name     string
		query    string
		expected []word
	}{
		{
			name:     "single result",
			query:    "baz",
			expected: []word{{"baz", 3}},
		},
		{
			name:     "multiple results",
			query:    "foo",
			expected: []word{{"Foo", 2}, {"foo", 4}, {"FOO", 5}},
		},
		{
			name:     "first",
			query:    "bar",
			expected: []word{{"bar", 1}},
		},
		{
			name:     "last",
			query:    "hoge",
			expected: []word{{"hoge", 6}},
		},
		{
			name:     "no results",
			query:    "fuga",
			expected: nil,
		},
		{
			name:     "key is not folded",
			query:    "FOO",
			expected: nil,
		},
	}

	idx := NewIndex(values, wordKey, byID)
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(test.expected, idx.Search(test.query), cmp.AllowUnexported(word{})); diff != "" {
				t.Fatalf("Search (-want, +got):\n%s", diff)
			}
		})
	}
}

// TestIndex_Floor tests Index.Floor.
func TestIndex_Floor(t *testing.T) {
	t.Parallel()

	idx := NewIndex([]word{{"c", 1}, {"a", 2}, {"e", 3}}, wordKey, byID)

	tests := []struct {
		key      string
		expected int
		found    bool
	}{
		{"0", 0, false},
		{"a", 0, true},
		{"b", 0, true},
		{"c", 1, true},
		{"d", 1, true},
		{"e", 2, true},
		{"z", 2, true},
	}

	for _, test := range tests {
		t.Run(test.key, func(t *testing.T) {
			t.Parallel()

			i, found := idx.Floor(test.key)
			if diff := cmp.Diff(test.found, found); diff != "" {
				t.Fatalf("Floor found (-want, +got):\n%s", diff)
			}
			if diff := cmp.Diff(test.expected, i); diff != "" {
				t.Fatalf("Floor (-want, +got):\n%s", diff)
			}
			if found {
				if diff := cmp.Diff(true, idx.Key(i) <= test.key); diff != "" {
					t.Fatalf("Key (-want, +got):\n%s", diff)
				}
			}
		})
	}
}
