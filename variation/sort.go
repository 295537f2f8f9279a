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

package variation

import (
	"cmp"

	"github.com/ianlewis/go-aot/internal/folding"
	"github.com/ianlewis/go-aot/internal/index"
)

// Sort returns the variations ordered by case folded Word and, among equal
// words, by ascending ID. The input slice is not modified.
func Sort(variations []*Variation) []*Variation {
	return index.NewIndex(variations, Key, byID).Values()
}

// Key returns the comparison key of v.
func Key(v *Variation) string {
	return folding.Key(v.Word)
}

func byID(a, b *Variation) int {
	return cmp.Compare(a.ID, b.ID)
}
