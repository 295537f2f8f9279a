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
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Index maps word form ids to the ordinal of the block holding them. Entry 0
// is unused because ids start at 1.
type Index []uint32

// BuildIndex builds the index of blocks. Its length is one more than the
// largest id in blocks.
func BuildIndex(blocks []*Block) Index {
	var maxID uint32
	for _, b := range blocks {
		for _, v := range b.Variations {
			maxID = max(maxID, v.ID)
		}
	}

	idx := make(Index, int(maxID)+1)
	for i, b := range blocks {
		for _, v := range b.Variations {
			//nolint:gosec // block count is bounded by the id space.
			idx[v.ID] = uint32(i)
		}
	}
	return idx
}

// Lookup returns the ordinal of the block holding the word form with the
// given id.
func (idx Index) Lookup(id uint32) (int, bool) {
	if id == 0 || int64(id) >= int64(len(idx)) {
		return 0, false
	}
	return int(idx[id]), true
}

// AppendBinary appends the encoded index to buf.
func (idx Index) AppendBinary(buf []byte) ([]byte, error) {
	if len(idx) > math.MaxUint32 {
		return buf, fmt.Errorf("%w: %d", errTooLarge, len(idx))
	}
	//nolint:gosec // bounds checked above.
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(idx)))
	for _, v := range idx {
		buf = binary.BigEndian.AppendUint32(buf, v)
	}
	return buf, nil
}

// WriteTo writes the encoded index to w.
func (idx Index) WriteTo(w io.Writer) (int64, error) {
	buf, err := idx.AppendBinary(make([]byte, 0, 4*(len(idx)+1)))
	if err != nil {
		return 0, err
	}
	n, err := w.Write(buf)
	if err != nil {
		return int64(n), fmt.Errorf("writing index: %w", err)
	}
	return int64(n), nil
}
