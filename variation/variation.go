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

// Package variation implements expanding lemmas into their inflected word
// forms (variations) and ordering them.
package variation

import (
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ianlewis/go-aot/internal/sequence"
	"github.com/ianlewis/go-aot/mrd"
)

var (
	// ErrRangeMismatch indicates that a reserved id range does not match the
	// number of flexions being expanded.
	ErrRangeMismatch = errors.New("id range does not match flexion count")

	errInvalidGroup = errors.New("flexion group out of range")
)

// Variation is a single inflected word form.
type Variation struct {
	// Word is the surface text.
	Word string

	// Ancode is the grammatical code of the word form.
	Ancode string

	// ID is the globally unique id of the word form. IDs start at 1.
	ID uint32

	// LemmaID is the ID of the first word form of the same lemma.
	LemmaID uint32
}

// Options are options for ExpandAll.
type Options struct {
	// Concurrency is the maximum number of goroutines expanding lemmas. Values
	// less than 2 expand on the calling goroutine.
	Concurrency int
}

// DefaultOptions is the default options for ExpandAll.
var DefaultOptions = &Options{
	Concurrency: 1,
}

// Expand produces one Variation per flexion in group, in group order, using
// the ids in r. The surface text is the flexion's ending alone if the
// lemma's base is mrd.NoBase and the base followed by the ending otherwise.
// Every produced Variation's LemmaID is the ID of the first one.
func Expand(l *mrd.Lemma, group []*mrd.Flexion, r sequence.Range) ([]*Variation, error) {
	if r.Len() != len(group) {
		return nil, fmt.Errorf("%w: lemma %d: %d ids for %d flexions", ErrRangeMismatch, l.ID, r.Len(), len(group))
	}

	base := l.Base
	if base == mrd.NoBase {
		base = ""
	}

	variations := make([]*Variation, len(group))
	id := r.Start
	for i, f := range group {
		variations[i] = &Variation{
			Word:   base + f.Ending,
			Ancode: f.Ancode,
			ID:     id,
		}
		id++
	}

	for _, v := range variations {
		v.LemmaID = variations[0].ID
	}
	return variations, nil
}

// ExpandAll expands every lemma of src. IDs are reserved from seq in lemma
// order, one contiguous range per lemma, before any expansion happens, so
// the result is the same whatever the concurrency. The returned variations
// are in lemma order.
func ExpandAll(src *mrd.Source, seq *sequence.Sequence, opts *Options) ([]*Variation, error) {
	if opts == nil {
		opts = DefaultOptions
	}

	ranges := make([]sequence.Range, len(src.Lemmas))
	offsets := make([]int, len(src.Lemmas))
	total := 0
	for i, l := range src.Lemmas {
		if l.FlexionGroup >= len(src.Flexions) {
			return nil, &mrd.ParseError{
				Section: mrd.LemmaSection,
				Err: fmt.Errorf("%w: lemma %d %q: group %d, have %d",
					errInvalidGroup, l.ID, l.Base, l.FlexionGroup, len(src.Flexions)),
			}
		}
		r, err := seq.Reserve(len(src.Flexions[l.FlexionGroup]))
		if err != nil {
			return nil, fmt.Errorf("reserving ids for lemma %d %q: %w", l.ID, l.Base, err)
		}
		ranges[i] = r
		offsets[i] = total
		total += r.Len()
	}

	variations := make([]*Variation, total)
	expand := func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			l := src.Lemmas[i]
			vs, err := Expand(l, src.Flexions[l.FlexionGroup], ranges[i])
			if err != nil {
				return err
			}
			copy(variations[offsets[i]:], vs)
		}
		return nil
	}

	if opts.Concurrency < 2 {
		if err := expand(0, len(src.Lemmas)); err != nil {
			return nil, err
		}
		return variations, nil
	}

	var g errgroup.Group
	g.SetLimit(opts.Concurrency)
	chunk := max(1, len(src.Lemmas)/(opts.Concurrency*4))
	for lo := 0; lo < len(src.Lemmas); lo += chunk {
		hi := min(lo+chunk, len(src.Lemmas))
		g.Go(func() error {
			return expand(lo, hi)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("expanding lemmas: %w", err)
	}
	return variations, nil
}
