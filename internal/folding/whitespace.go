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

package folding

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/transform"
)

// whitespaceFolder trims leading and trailing whitespace and replaces every
// internal whitespace span with a single ASCII space.
type whitespaceFolder struct {
	// seenText is set once the first non-space rune has been written.
	seenText bool

	// pendingSpace is set when whitespace follows text and its replacement
	// space has not been written yet.
	pendingSpace bool
}

// Transform implements [transform.Transformer.Transform].
func (w *whitespaceFolder) Transform(dst, src []byte, atEOF bool) (int, int, error) {
	var nDst, nSrc int
	for nSrc < len(src) {
		if !atEOF && !utf8.FullRune(src[nSrc:]) {
			return nDst, nSrc, transform.ErrShortSrc
		}

		r, size := utf8.DecodeRune(src[nSrc:])
		if unicode.IsSpace(r) {
			w.pendingSpace = w.seenText
			nSrc += size
			continue
		}

		// NOTE: an invalid byte decodes to utf8.RuneError which is written
		// as three bytes even though size is one.
		need := utf8.RuneLen(r)
		if w.pendingSpace {
			need++
		}
		if nDst+need > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}

		if w.pendingSpace {
			dst[nDst] = ' '
			nDst++
			w.pendingSpace = false
		}
		nDst += utf8.EncodeRune(dst[nDst:], r)
		w.seenText = true
		nSrc += size
	}

	return nDst, nSrc, nil
}

// Reset implements [transform.Transformer.Reset].
func (w *whitespaceFolder) Reset() {
	*w = whitespaceFolder{}
}
