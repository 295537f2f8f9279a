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
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/ianlewis/go-aot/variation"
)

var (
	// ErrCorrupt indicates that encoded data could not be decoded.
	ErrCorrupt = errors.New("corrupt block data")

	errTooLarge = errors.New("too many entries")
	errNulByte  = errors.New("unexpected NUL byte")
)

// Block is a run of word forms in sorted order.
type Block struct {
	Variations []*variation.Variation
}

// Len returns the number of word forms in the block.
func (b *Block) Len() int {
	return len(b.Variations)
}

// First returns the block's first word form, or nil if the block is empty.
func (b *Block) First() *variation.Variation {
	if len(b.Variations) == 0 {
		return nil
	}
	return b.Variations[0]
}

// AppendBinary appends the encoded block to buf.
func (b *Block) AppendBinary(buf []byte) ([]byte, error) {
	if len(b.Variations) > math.MaxUint32 {
		return buf, fmt.Errorf("%w: %d", errTooLarge, len(b.Variations))
	}
	//nolint:gosec // bounds checked above.
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(b.Variations)))
	for _, v := range b.Variations {
		if strings.IndexByte(v.Word, 0) >= 0 || strings.IndexByte(v.Ancode, 0) >= 0 {
			return buf, fmt.Errorf("%w: word form %d", errNulByte, v.ID)
		}
		buf = append(buf, v.Word...)
		buf = append(buf, 0)
		buf = append(buf, v.Ancode...)
		buf = append(buf, 0)
		buf = binary.BigEndian.AppendUint32(buf, v.ID)
		buf = binary.BigEndian.AppendUint32(buf, v.LemmaID)
	}
	return buf, nil
}

// WriteTo writes the encoded block to w.
func (b *Block) WriteTo(w io.Writer) (int64, error) {
	buf, err := b.AppendBinary(nil)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(buf)
	if err != nil {
		return int64(n), fmt.Errorf("writing block: %w", err)
	}
	return int64(n), nil
}

// Decoder reads blocks and integers from an encoded stream.
type Decoder struct {
	r *bufio.Reader
}

// NewDecoder returns a new Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r)}
}

// Uint32 reads a single integer.
func (d *Decoder) Uint32() (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(d.r, b[:]); err != nil {
		return 0, corrupt(err)
	}
	return binary.BigEndian.Uint32(b[:]), nil
}

// Block reads a single block.
func (d *Decoder) Block() (*Block, error) {
	n, err := d.Uint32()
	if err != nil {
		return nil, err
	}

	b := &Block{
		Variations: make([]*variation.Variation, 0, min(n, 1<<12)),
	}
	for range n {
		word, err := d.cstring()
		if err != nil {
			return nil, err
		}
		ancode, err := d.cstring()
		if err != nil {
			return nil, err
		}
		id, err := d.Uint32()
		if err != nil {
			return nil, err
		}
		lemmaID, err := d.Uint32()
		if err != nil {
			return nil, err
		}
		b.Variations = append(b.Variations, &variation.Variation{
			Word:    word,
			Ancode:  ancode,
			ID:      id,
			LemmaID: lemmaID,
		})
	}
	return b, nil
}

// Index reads an index.
func (d *Decoder) Index() (Index, error) {
	n, err := d.Uint32()
	if err != nil {
		return nil, err
	}
	idx := make(Index, 0, min(n, 1<<16))
	for range n {
		v, err := d.Uint32()
		if err != nil {
			return nil, err
		}
		idx = append(idx, v)
	}
	return idx, nil
}

// EOF returns an error unless the stream has been fully consumed.
func (d *Decoder) EOF() error {
	if _, err := d.r.ReadByte(); !errors.Is(err, io.EOF) {
		if err != nil {
			return fmt.Errorf("reading block data: %w", err)
		}
		return fmt.Errorf("%w: trailing data", ErrCorrupt)
	}
	return nil
}

// cstring reads a null terminated string.
func (d *Decoder) cstring() (string, error) {
	s, err := d.r.ReadString(0)
	if err != nil {
		return "", corrupt(err)
	}
	return s[:len(s)-1], nil
}

// corrupt reports a premature end of data as ErrCorrupt. Other errors are
// returned as read errors.
func corrupt(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %w", ErrCorrupt, io.ErrUnexpectedEOF)
	}
	return fmt.Errorf("reading block data: %w", err)
}
