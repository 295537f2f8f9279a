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

package container

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ianlewis/go-aot/block"
	"github.com/ianlewis/go-aot/internal/folding"
	"github.com/ianlewis/go-aot/internal/index"
	"github.com/ianlewis/go-aot/variation"
)

// ErrCorrupt indicates that a compiled dictionary is malformed. Errors
// decoding the mrd entry also match block.ErrCorrupt.
var ErrCorrupt = errors.New("corrupt container")

// Reader is an in-memory compiled dictionary.
type Reader struct {
	blocks []*block.Block
	idx    block.Index
	tab    []byte

	// firsts holds the ordinals of non-empty blocks keyed by the folded
	// word of their first entry.
	firsts *index.Index[int]
}

// Open reads the compiled dictionary at path.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening %q: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}

	r, err := NewReader(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return r, nil
}

// NewReader reads a compiled dictionary of the given size from r.
func NewReader(r io.ReaderAt, size int64) (*Reader, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	if len(names) != 2 || names[0] != MRDEntry || names[1] != TabEntry {
		return nil, fmt.Errorf("%w: unexpected entries %q", ErrCorrupt, names)
	}

	c := &Reader{}
	if err := c.readMRD(zr.File[0]); err != nil {
		if errors.Is(err, block.ErrCorrupt) || errors.Is(err, zip.ErrChecksum) || errors.Is(err, zip.ErrFormat) {
			return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		return nil, err
	}
	if c.tab, err = readAll(zr.File[1]); err != nil {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}

	c.firsts = index.NewIndex(nonEmpty(c.blocks), func(i int) string {
		return variation.Key(c.blocks[i].First())
	}, nil)

	return c, nil
}

func (c *Reader) readMRD(f *zip.File) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("%w: opening %s entry: %w", ErrCorrupt, f.Name, err)
	}
	defer rc.Close()

	d := block.NewDecoder(rc)
	n, err := d.Uint32()
	if err != nil {
		return fmt.Errorf("reading block count: %w", err)
	}
	c.blocks = make([]*block.Block, 0, min(n, 1<<16))
	for i := range n {
		b, err := d.Block()
		if err != nil {
			return fmt.Errorf("reading block %d: %w", i, err)
		}
		c.blocks = append(c.blocks, b)
	}
	if c.idx, err = d.Index(); err != nil {
		return fmt.Errorf("reading index: %w", err)
	}
	if err := d.EOF(); err != nil {
		return fmt.Errorf("reading %s entry: %w", f.Name, err)
	}
	return nil
}

func readAll(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s entry: %w", ErrCorrupt, f.Name, err)
	}
	defer rc.Close()

	var b bytes.Buffer
	if _, err := io.Copy(&b, rc); err != nil {
		return nil, fmt.Errorf("%w: reading %s entry: %w", ErrCorrupt, f.Name, err)
	}
	return b.Bytes(), nil
}

// validate checks that the blocks are sorted, that no run of equal words
// spans two blocks and that the index agrees with the blocks.
func (c *Reader) validate() error {
	if len(c.blocks) == 0 {
		return fmt.Errorf("%w: no blocks", ErrCorrupt)
	}

	var prev *variation.Variation
	seen := 0
	for i, b := range c.blocks {
		for j, v := range b.Variations {
			if prev != nil {
				pk, k := variation.Key(prev), variation.Key(v)
				switch {
				case k < pk, k == pk && v.ID <= prev.ID:
					return fmt.Errorf("%w: block %d entry %d out of order", ErrCorrupt, i, j)
				case j == 0 && k == pk:
					return fmt.Errorf("%w: %q split between blocks %d and %d", ErrCorrupt, v.Word, i-1, i)
				}
			}
			got, ok := c.idx.Lookup(v.ID)
			if !ok || got != i {
				return fmt.Errorf("%w: index entry for id %d does not point at block %d", ErrCorrupt, v.ID, i)
			}
			prev = v
			seen++
		}
	}

	if seen != len(c.idx)-1 {
		return fmt.Errorf("%w: index has %d entries for %d word forms", ErrCorrupt, len(c.idx), seen)
	}
	return nil
}

func nonEmpty(blocks []*block.Block) []int {
	var ordinals []int
	for i, b := range blocks {
		if b.Len() > 0 {
			ordinals = append(ordinals, i)
		}
	}
	return ordinals
}

// Blocks returns the dictionary's blocks in order.
func (c *Reader) Blocks() []*block.Block {
	return c.blocks
}

// Index returns the dictionary's id index.
func (c *Reader) Index() block.Index {
	return c.idx
}

// Tab returns the contents of the grammatical table.
func (c *Reader) Tab() []byte {
	return c.tab
}

// Len returns the number of word forms in the dictionary.
func (c *Reader) Len() int {
	return len(c.idx) - 1
}

// Variation returns the word form with the given id.
func (c *Reader) Variation(id uint32) (*variation.Variation, bool) {
	i, ok := c.idx.Lookup(id)
	if !ok {
		return nil, false
	}
	for _, v := range c.blocks[i].Variations {
		if v.ID == id {
			return v, true
		}
	}
	return nil, false
}

// Lookup returns the word forms equal to word ignoring case, in id order.
// Surrounding whitespace in word is ignored.
func (c *Reader) Lookup(word string) ([]*variation.Variation, error) {
	key, err := folding.QueryKey(word)
	if err != nil {
		return nil, err
	}

	i, ok := c.firsts.Floor(key)
	if !ok {
		return nil, nil
	}

	var matches []*variation.Variation
	for _, v := range c.blocks[c.firsts.Value(i)].Variations {
		if variation.Key(v) == key {
			matches = append(matches, v)
		}
	}
	return matches, nil
}
