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

package block

import (
	"errors"
	"fmt"

	"github.com/ianlewis/go-aot/variation"
)

// DefaultSize is the default target block size.
const DefaultSize = 16

// ErrInvalidBlockSize indicates a block size less than one.
var ErrInvalidBlockSize = errors.New("invalid block size")

// Partition groups sorted word forms into blocks. A block is closed only
// once it holds at least size word forms and the next word differs, ignoring
// case, from the previous one, so that no run of equal words is split
// between blocks. The last block holds whatever remains. An empty input
// yields a single empty block.
func Partition(sorted []*variation.Variation, size int) ([]*Block, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBlockSize, size)
	}

	var blocks []*Block
	current := make([]*variation.Variation, 0, size)
	prevKey := ""
	for _, v := range sorted {
		key := variation.Key(v)
		if len(current) >= size && key != prevKey {
			blocks = append(blocks, &Block{Variations: current})
			current = make([]*variation.Variation, 0, size)
		}
		current = append(current, v)
		prevKey = key
	}
	blocks = append(blocks, &Block{Variations: current})

	return blocks, nil
}
