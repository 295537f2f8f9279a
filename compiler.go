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

package aot

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"github.com/ianlewis/go-aot/block"
	"github.com/ianlewis/go-aot/container"
	"github.com/ianlewis/go-aot/internal/sequence"
	"github.com/ianlewis/go-aot/mrd"
	"github.com/ianlewis/go-aot/variation"
)

var (
	// ErrParse indicates that the .mrd source is malformed. Errors also match
	// mrd.ErrParse when the location of the problem is known.
	ErrParse = errors.New("invalid source")

	// ErrIO indicates a failure reading an input or writing the output.
	ErrIO = errors.New("i/o error")

	// ErrConfig indicates invalid compiler options.
	ErrConfig = errors.New("invalid configuration")
)

// firstID is the id of the first word form.
const firstID = 1

// Options are options for the Compiler.
type Options struct {
	// BlockSize is the minimum number of word forms in a block before a new
	// block may be started. Every block but the last holds at least
	// BlockSize word forms.
	BlockSize int

	// Concurrency is the number of goroutines used to expand lemmas.
	Concurrency int

	// Encoding is the name of the character encoding of the .mrd source, as
	// understood by the WHATWG Encoding Standard (e.g. "windows-1251"). The
	// empty string means UTF-8. The .tab table is never decoded.
	Encoding string

	// Logger receives progress records. A nil Logger discards them.
	Logger *slog.Logger
}

// DefaultOptions is the default options for the Compiler.
var DefaultOptions = &Options{
	BlockSize:   block.DefaultSize,
	Concurrency: 1,
}

// Stats describes a compiled dictionary.
type Stats struct {
	// Lemmas is the number of lemmas read.
	Lemmas int

	// FlexionGroups is the number of flexion groups read.
	FlexionGroups int

	// Variations is the number of word forms produced.
	Variations int

	// Blocks is the number of blocks written.
	Blocks int

	// LargestBlock is the number of word forms in the largest block.
	LargestBlock int

	// MRDBytes is the uncompressed size of the mrd entry.
	MRDBytes int64

	// TabBytes is the number of bytes copied from the .tab table.
	TabBytes int64
}

// Compiler compiles .mrd sources. A Compiler may be used for several
// compilations, including concurrently.
type Compiler struct {
	opts     Options
	encoding encoding.Encoding
	log      *slog.Logger
}

// NewCompiler returns a new Compiler. If opts is nil DefaultOptions is used.
func NewCompiler(opts *Options) (*Compiler, error) {
	if opts == nil {
		opts = DefaultOptions
	}

	if opts.BlockSize < 1 {
		return nil, fmt.Errorf("%w: %w: %d", ErrConfig, block.ErrInvalidBlockSize, opts.BlockSize)
	}
	if opts.Concurrency < 1 {
		return nil, fmt.Errorf("%w: concurrency must be at least 1: %d", ErrConfig, opts.Concurrency)
	}

	c := &Compiler{
		opts: *opts,
		log:  opts.Logger,
	}
	if c.log == nil {
		c.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if name := strings.TrimSpace(opts.Encoding); name != "" {
		enc, err := htmlindex.Get(name)
		if err != nil {
			return nil, fmt.Errorf("%w: encoding %q: %w", ErrConfig, name, err)
		}
		c.encoding = enc
	}

	return c, nil
}

// Compile reads the .mrd source from src and the grammatical table from tab
// and writes the compiled dictionary to out. Nothing is written to out
// unless src has been read and expanded successfully. On error out may hold
// a partial archive and should be discarded.
func (c *Compiler) Compile(src, tab io.Reader, out io.Writer) (*Stats, error) {
	if c.encoding != nil {
		src = transform.NewReader(src, c.encoding.NewDecoder())
	}

	source, err := mrd.Read(src)
	if err != nil {
		return nil, classify(err)
	}
	c.log.Debug("read source",
		"flexion_groups", len(source.Flexions),
		"lemmas", len(source.Lemmas),
	)

	seq := sequence.New(firstID)
	vs, err := variation.ExpandAll(source, seq, &variation.Options{
		Concurrency: c.opts.Concurrency,
	})
	if err != nil {
		return nil, classify(err)
	}
	c.log.Debug("expanded lemmas", "variations", len(vs))

	sorted := variation.Sort(vs)
	blocks, err := block.Partition(sorted, c.opts.BlockSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	idx := block.BuildIndex(blocks)

	stats := &Stats{
		Lemmas:        len(source.Lemmas),
		FlexionGroups: len(source.Flexions),
		Variations:    len(vs),
		Blocks:        len(blocks),
	}
	for _, b := range blocks {
		stats.LargestBlock = max(stats.LargestBlock, b.Len())
	}
	c.log.Debug("partitioned word forms",
		"blocks", stats.Blocks,
		"largest_block", stats.LargestBlock,
		"block_size", c.opts.BlockSize,
	)

	w := container.NewWriter(out)
	if stats.MRDBytes, err = w.WriteMRD(blocks, idx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	if stats.TabBytes, err = w.WriteTab(tab); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}

	c.log.Info("compiled dictionary",
		"lemmas", stats.Lemmas,
		"variations", stats.Variations,
		"blocks", stats.Blocks,
		"mrd_bytes", stats.MRDBytes,
		"tab_bytes", stats.TabBytes,
	)
	return stats, nil
}

// Compile compiles the .mrd source in src with the given options. See
// Compiler.Compile.
func Compile(src, tab io.Reader, out io.Writer, opts *Options) (*Stats, error) {
	c, err := NewCompiler(opts)
	if err != nil {
		return nil, err
	}
	return c.Compile(src, tab, out)
}

// classify wraps an error from reading or expanding the source with ErrParse
// or ErrIO.
func classify(err error) error {
	var parseErr *mrd.ParseError
	switch {
	case errors.As(err, &parseErr):
		return fmt.Errorf("%w: %w", ErrParse, err)
	case errors.Is(err, sequence.ErrExhausted):
		return fmt.Errorf("%w: %w", ErrParse, err)
	default:
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
}
