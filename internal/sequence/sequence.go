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

// Package sequence implements allocation of contiguous identifier ranges.
package sequence

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"
)

var (
	// ErrExhausted indicates that a reservation would overflow the
	// identifier space.
	ErrExhausted = errors.New("identifier space exhausted")

	errNegativeCount = errors.New("negative count")
)

// Range is the half open range of identifiers [Start, End).
type Range struct {
	Start uint32
	End   uint32
}

// Len returns the number of identifiers in the range.
func (r Range) Len() int {
	return int(r.End - r.Start)
}

// Sequence hands out contiguous identifier ranges. It is safe for concurrent
// use. Ranges returned by successive calls to Reserve never overlap and leave
// no gaps.
type Sequence struct {
	next atomic.Uint32
}

// New returns a Sequence whose first reserved identifier is first.
func New(first uint32) *Sequence {
	s := &Sequence{}
	s.next.Store(first)
	return s
}

// Next returns the identifier the next reservation will start at.
func (s *Sequence) Next() uint32 {
	return s.next.Load()
}

// Reserve reserves n identifiers.
func (s *Sequence) Reserve(n int) (Range, error) {
	if n < 0 {
		return Range{}, fmt.Errorf("%w: %d", errNegativeCount, n)
	}
	for {
		start := s.next.Load()
		if uint64(start)+uint64(n) > math.MaxUint32 {
			return Range{}, fmt.Errorf("%w: cannot reserve %d identifiers after %d", ErrExhausted, n, start)
		}
		//nolint:gosec // bounds checked above.
		end := start + uint32(n)
		if s.next.CompareAndSwap(start, end) {
			return Range{Start: start, End: end}, nil
		}
	}
}
