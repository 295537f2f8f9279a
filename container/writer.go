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
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/ianlewis/go-aot/block"
)

// Entry names.
const (
	MRDEntry = "mrd"
	TabEntry = "tab"
)

var (
	errOrder    = errors.New("entries written out of order")
	errTooLarge = errors.New("too many blocks")
)

const (
	stateMRD = iota
	stateTab
	stateDone
)

// Writer writes a compiled dictionary. WriteMRD must be called before
// WriteTab, and each only once.
type Writer struct {
	zw    *zip.Writer
	state int
}

// NewWriter returns a new Writer writing a compiled dictionary to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		zw: zip.NewWriter(w),
	}
}

// WriteMRD writes the "mrd" entry holding blocks followed by idx. It returns
// the uncompressed size of the entry.
func (w *Writer) WriteMRD(blocks []*block.Block, idx block.Index) (int64, error) {
	if w.state != stateMRD {
		return 0, fmt.Errorf("%w: %s", errOrder, MRDEntry)
	}
	w.state = stateTab

	if len(blocks) > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %d", errTooLarge, len(blocks))
	}

	f, err := w.zw.Create(MRDEntry)
	if err != nil {
		return 0, fmt.Errorf("creating %s entry: %w", MRDEntry, err)
	}
	bw := bufio.NewWriter(f)

	var size int64
	var count [4]byte
	//nolint:gosec // bounds checked above.
	binary.BigEndian.PutUint32(count[:], uint32(len(blocks)))
	n, err := bw.Write(count[:])
	size += int64(n)
	if err != nil {
		return size, fmt.Errorf("writing %s entry: %w", MRDEntry, err)
	}

	for i, b := range blocks {
		n, err := b.WriteTo(bw)
		size += n
		if err != nil {
			return size, fmt.Errorf("writing %s entry: block %d: %w", MRDEntry, i, err)
		}
	}

	n64, err := idx.WriteTo(bw)
	size += n64
	if err != nil {
		return size, fmt.Errorf("writing %s entry: %w", MRDEntry, err)
	}

	if err := bw.Flush(); err != nil {
		return size, fmt.Errorf("writing %s entry: %w", MRDEntry, err)
	}
	return size, nil
}

// WriteTab writes the "tab" entry, copying r byte for byte. It returns the
// number of bytes copied.
func (w *Writer) WriteTab(r io.Reader) (int64, error) {
	if w.state != stateTab {
		return 0, fmt.Errorf("%w: %s", errOrder, TabEntry)
	}
	w.state = stateDone

	f, err := w.zw.Create(TabEntry)
	if err != nil {
		return 0, fmt.Errorf("creating %s entry: %w", TabEntry, err)
	}
	n, err := io.Copy(f, r)
	if err != nil {
		return n, fmt.Errorf("copying %s entry: %w", TabEntry, err)
	}
	return n, nil
}

// Close finishes writing the archive. It does not close the underlying
// writer.
func (w *Writer) Close() error {
	if w.state != stateDone {
		return fmt.Errorf("%w: closed before %s entry", errOrder, TabEntry)
	}
	if err := w.zw.Close(); err != nil {
		return fmt.Errorf("closing archive: %w", err)
	}
	return nil
}

// Write writes a complete compiled dictionary to out. It returns the number
// of bytes copied from tab.
func Write(out io.Writer, blocks []*block.Block, idx block.Index, tab io.Reader) (int64, error) {
	w := NewWriter(out)
	if _, err := w.WriteMRD(blocks, idx); err != nil {
		return 0, err
	}
	n, err := w.WriteTab(tab)
	if err != nil {
		return n, err
	}
	if err := w.Close(); err != nil {
		return n, err
	}
	return n, nil
}
