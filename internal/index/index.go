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
	"slices"
	"sort"
	"strings"
)

type entry[V any] struct {
	key   string
	value V
}

// Index is a generic array index sorted by a string key.
type Index[V any] struct {
	entries []entry[V]
}

// NewIndex creates an index from the given values. Values are ordered by
// key(v) and values with equal keys by tiebreak. tiebreak(a, b) should return
// a negative number when a < b, a positive number when a > b and zero when
// a == b. A nil tiebreak keeps values with equal keys in input order.
//
// key is called exactly once per value.
func NewIndex[V any](values []V, key func(V) string, tiebreak func(a, b V) int) *Index[V] {
	entries := make([]entry[V], len(values))
	for i, v := range values {
		entries[i] = entry[V]{key: key(v), value: v}
	}
	slices.SortStableFunc(entries, func(a, b entry[V]) int {
		if c := strings.Compare(a.key, b.key); c != 0 || tiebreak == nil {
			return c
		}
		return tiebreak(a.value, b.value)
	})

	return &Index[V]{
		entries: entries,
	}
}

// Len returns the number of values in the index.
func (idx *Index[V]) Len() int {
	return len(idx.entries)
}

// Values returns the values in index order.
func (idx *Index[V]) Values() []V {
	values := make([]V, len(idx.entries))
	for i := range idx.entries {
		values[i] = idx.entries[i].value
	}
	return values
}

// Value returns the i-th value.
func (idx *Index[V]) Value(i int) V {
	return idx.entries[i].value
}

// Key returns the key of the i-th value.
func (idx *Index[V]) Key(i int) string {
	return idx.entries[i].key
}

// Search performs a binary search over the index and returns the values whose
// key equals key.
func (idx *Index[V]) Search(key string) []V {
	i, found := sort.Find(len(idx.entries), func(i int) int {
		return strings.Compare(key, idx.entries[i].key)
	})
	if !found {
		return nil
	}

	var values []V
	for ; i < len(idx.entries) && idx.entries[i].key == key; i++ {
		values = append(values, idx.entries[i].value)
	}
	return values
}

// Floor returns the position of the last value whose key is less than or
// equal to key. It returns false if every key is greater than key.
func (idx *Index[V]) Floor(key string) (int, bool) {
	// i is the first position with a key greater than key.
	i := sort.Search(len(idx.entries), func(i int) bool {
		return idx.entries[i].key > key
	})
	if i == 0 {
		return 0, false
	}
	return i - 1, true
}
