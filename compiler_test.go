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

package aot_test

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"golang.org/x/text/encoding/charmap"

	aot "github.com/ianlewis/go-aot"
	"github.com/ianlewis/go-aot/block"
	"github.com/ianlewis/go-aot/container"
	"github.com/ianlewis/go-aot/internal/testutil"
	"github.com/ianlewis/go-aot/mrd"
	"github.com/ianlewis/go-aot/variation"
)

var testTab = []byte("А NOUN м,ед,им\r\nБ VERB\n\xff\x00binary")

// compile compiles src and reads the result back.
func compile(t *testing.T, src, tab []byte, opts *aot.Options) (*container.Reader, *aot.Stats) {
	t.Helper()

	var out bytes.Buffer
	stats, err := aot.Compile(bytes.NewReader(src), bytes.NewReader(tab), &out, opts)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	r, err := container.NewReader(bytes.NewReader(out.Bytes()), int64(out.Len()))
	if err != nil {
		t.Fatalf("container.NewReader: %v", err)
	}
	return r, stats
}

// allVariations returns the word forms of every block in order.
func allVariations(r *container.Reader) []*variation.Variation {
	var vs []*variation.Variation
	for _, b := range r.Blocks() {
		vs = append(vs, b.Variations...)
	}
	return vs
}

// TestCompile tests compiling small dictionaries.
func TestCompile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		groups [][]*mrd.Flexion
		lemmas []*mrd.Lemma
		opts   *aot.Options

		expected [][]*variation.Variation
		index    block.Index
	}{
		{
			name: "base and endings",
			groups: [][]*mrd.Flexion{
				{{Ending: "", Ancode: "A"}, {Ending: "ning", Ancode: "B"}},
			},
			lemmas: []*mrd.Lemma{testutil.Lemma(0, "run", 0)},
			expected: [][]*variation.Variation{
				{
					{Word: "run", Ancode: "A", ID: 1, LemmaID: 1},
					{Word: "running", Ancode: "B", ID: 2, LemmaID: 1},
				},
			},
			index: block.Index{0, 0, 0},
		},
		{
			name: "no base",
			groups: [][]*mrd.Flexion{
				{{Ending: "the", Ancode: "C"}},
			},
			lemmas: []*mrd.Lemma{testutil.Lemma(0, mrd.NoBase, 0)},
			expected: [][]*variation.Variation{
				{
					{Word: "the", Ancode: "C", ID: 1, LemmaID: 1},
				},
			},
			index: block.Index{0, 0},
		},
		{
			name:     "empty",
			groups:   nil,
			lemmas:   nil,
			expected: [][]*variation.Variation{{}},
			index:    block.Index{0},
		},
		{
			name: "shared groups",
			groups: [][]*mrd.Flexion{
				{{Ending: "", Ancode: "A"}, {Ending: "s", Ancode: "B"}},
				{{Ending: "a", Ancode: "C"}},
			},
			lemmas: []*mrd.Lemma{
				testutil.Lemma(0, "walk", 0),
				testutil.Lemma(1, "cas", 1),
				testutil.Lemma(2, "Walk", 0),
			},
			opts: &aot.Options{BlockSize: 2, Concurrency: 1},
			expected: [][]*variation.Variation{
				{
					{Word: "casa", Ancode: "C", ID: 3, LemmaID: 3},
					{Word: "walk", Ancode: "A", ID: 1, LemmaID: 1},
					{Word: "Walk", Ancode: "A", ID: 4, LemmaID: 4},
				},
				{
					{Word: "walks", Ancode: "B", ID: 2, LemmaID: 1},
					{Word: "Walks", Ancode: "B", ID: 5, LemmaID: 4},
				},
			},
			index: block.Index{0, 0, 1, 0, 0, 1},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			r, _ := compile(t, testutil.MakeMRD(test.groups, test.lemmas), testTab, test.opts)

			var got [][]*variation.Variation
			for _, b := range r.Blocks() {
				got = append(got, b.Variations)
			}
			if diff := cmp.Diff(test.expected, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("blocks (-want, +got):\n%s", diff)
			}
			if diff := cmp.Diff(test.index, r.Index()); diff != "" {
				t.Errorf("index (-want, +got):\n%s", diff)
			}
			if !bytes.Equal(testTab, r.Tab()) {
				t.Errorf("tab: got %q, want %q", r.Tab(), testTab)
			}
		})
	}
}

// distinctWords returns a source with n lemmas each with a single ending
// producing distinct words.
func distinctWords(n int) []byte {
	groups := [][]*mrd.Flexion{{{Ending: "", Ancode: "A"}}}
	lemmas := make([]*mrd.Lemma, n)
	for i := range lemmas {
		lemmas[i] = testutil.Lemma(i, fmt.Sprintf("word%02d", n-i), 0)
	}
	return testutil.MakeMRD(groups, lemmas)
}

// TestCompile_blocks tests block boundaries of a compiled dictionary.
func TestCompile_blocks(t *testing.T) {
	t.Parallel()

	r, stats := compile(t, distinctWords(20), testTab, nil)

	var sizes []int
	for _, b := range r.Blocks() {
		sizes = append(sizes, b.Len())
	}
	if diff := cmp.Diff([]int{16, 4}, sizes); diff != "" {
		t.Fatalf("block sizes (-want, +got):\n%s", diff)
	}

	expected := &aot.Stats{
		Lemmas:        20,
		FlexionGroups: 1,
		Variations:    20,
		Blocks:        2,
		LargestBlock:  16,
		TabBytes:      int64(len(testTab)),
	}
	if diff := cmp.Diff(expected, stats, cmpopts.IgnoreFields(aot.Stats{}, "MRDBytes")); diff != "" {
		t.Errorf("Stats (-want, +got):\n%s", diff)
	}
	if stats.MRDBytes <= 0 {
		t.Errorf("Stats.MRDBytes: got %d", stats.MRDBytes)
	}
}

// makeLargeSource returns a source with many lemmas sharing words in
// different cases so that runs of equal words occur.
func makeLargeSource() []byte {
	groups := [][]*mrd.Flexion{
		{{Ending: "", Ancode: "A"}, {Ending: "s", Ancode: "B"}, {Ending: "ed", Ancode: "C"}},
		{{Ending: "e", Ancode: "D"}},
		{{Ending: "", Ancode: "E"}, {Ending: "", Ancode: "F"}},
		{{Ending: "ing", Ancode: "G"}, {Ending: "s", Ancode: "H"}},
	}
	var lemmas []*mrd.Lemma
	for i := range 300 {
		base := fmt.Sprintf("w%03d", i%97)
		if i%3 == 0 {
			base = strings.ToUpper(base)
		}
		if i%50 == 0 {
			base = mrd.NoBase
		}
		lemmas = append(lemmas, testutil.Lemma(i, base, i%len(groups)))
	}
	return testutil.MakeMRD(groups, lemmas)
}

// TestCompile_properties checks the properties of a compiled dictionary
// with many equal words.
func TestCompile_properties(t *testing.T) {
	t.Parallel()

	src := makeLargeSource()
	for _, size := range []int{1, 5, 16, 1000} {
		r, stats := compile(t, src, testTab, &aot.Options{BlockSize: size, Concurrency: 1})
		vs := allVariations(r)

		// Ids are exactly 1..N.
		seen := make(map[uint32]bool)
		for _, v := range vs {
			if seen[v.ID] {
				t.Fatalf("size %d: duplicate id %d", size, v.ID)
			}
			seen[v.ID] = true
		}
		for id := uint32(1); id <= uint32(len(vs)); id++ {
			if !seen[id] {
				t.Fatalf("size %d: missing id %d", size, id)
			}
		}
		if stats.Variations != len(vs) {
			t.Errorf("size %d: Stats.Variations: got %d, want %d", size, stats.Variations, len(vs))
		}

		// Concatenated blocks are globally sorted.
		if diff := cmp.Diff(variation.Sort(vs), vs); diff != "" {
			t.Errorf("size %d: blocks are not sorted (-want, +got):\n%s", size, diff)
		}

		// A lemma's word forms share the smallest id.
		for _, v := range vs {
			lemma, ok := r.Variation(v.LemmaID)
			if !ok {
				t.Fatalf("size %d: lemma id %d not found", size, v.LemmaID)
			}
			if lemma.LemmaID != v.LemmaID || v.ID < v.LemmaID {
				t.Errorf("size %d: word form %d has lemma id %d", size, v.ID, v.LemmaID)
			}
		}

		// Every lookup finds every form.
		for _, v := range vs {
			matches, err := r.Lookup(v.Word)
			if err != nil {
				t.Fatalf("Lookup: %v", err)
			}
			found := false
			for _, m := range matches {
				found = found || m.ID == v.ID
			}
			if !found {
				t.Errorf("size %d: Lookup(%q) did not find id %d", size, v.Word, v.ID)
			}
		}
	}
}

// TestCompile_concurrency tests that the output does not depend on the
// concurrency.
func TestCompile_concurrency(t *testing.T) {
	t.Parallel()

	src := makeLargeSource()

	var want bytes.Buffer
	if _, err := aot.Compile(bytes.NewReader(src), bytes.NewReader(testTab), &want, nil); err != nil {
		t.Fatalf("Compile: %v", err)
	}

	for _, c := range []int{2, 8, 64} {
		var got bytes.Buffer
		opts := &aot.Options{BlockSize: block.DefaultSize, Concurrency: c}
		if _, err := aot.Compile(bytes.NewReader(src), bytes.NewReader(testTab), &got, opts); err != nil {
			t.Fatalf("Compile: %v", err)
		}
		if !bytes.Equal(want.Bytes(), got.Bytes()) {
			t.Errorf("concurrency %d: output differs", c)
		}
	}
}

// TestCompile_encoding tests decoding a windows-1251 source.
func TestCompile_encoding(t *testing.T) {
	t.Parallel()

	src := testutil.MakeMRD(
		[][]*mrd.Flexion{{{Ending: "", Ancode: "аа"}, {Ending: "а", Ancode: "аб"}}},
		[]*mrd.Lemma{testutil.Lemma(0, "ДОМ", 0)},
	)
	encoded, err := charmap.Windows1251.NewEncoder().Bytes(src)
	if err != nil {
		t.Fatalf("encoding source: %v", err)
	}

	r, _ := compile(t, encoded, testTab, &aot.Options{
		BlockSize:   block.DefaultSize,
		Concurrency: 1,
		Encoding:    "windows-1251",
	})

	vs, err := r.Lookup("дома")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	expected := []*variation.Variation{
		{Word: "ДОМа", Ancode: "аб", ID: 2, LemmaID: 1},
	}
	if diff := cmp.Diff(expected, vs); diff != "" {
		t.Fatalf("Lookup (-want, +got):\n%s", diff)
	}
}

// TestCompile_logger tests that progress is logged.
func TestCompile_logger(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	opts := &aot.Options{
		BlockSize:   block.DefaultSize,
		Concurrency: 1,
		Logger:      slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})),
	}
	compile(t, distinctWords(3), testTab, opts)

	for _, msg := range []string{"read source", "expanded lemmas", "partitioned word forms", "compiled dictionary"} {
		if !strings.Contains(logs.String(), msg) {
			t.Errorf("log does not contain %q:\n%s", msg, logs.String())
		}
	}
}

// TestCompile_errors tests error classification.
func TestCompile_errors(t *testing.T) {
	t.Parallel()

	errFailed := errors.New("failed")
	valid := distinctWords(3)

	tests := []struct {
		name string
		src  func() []byte
		opts *aot.Options

		srcErr error
		tabErr error
		outErr error

		err []error
	}{
		{
			name: "invalid block size",
			opts: &aot.Options{BlockSize: 0, Concurrency: 1},
			err:  []error{aot.ErrConfig, block.ErrInvalidBlockSize},
		},
		{
			name: "invalid concurrency",
			opts: &aot.Options{BlockSize: 1, Concurrency: 0},
			err:  []error{aot.ErrConfig},
		},
		{
			name: "unknown encoding",
			opts: &aot.Options{BlockSize: 1, Concurrency: 1, Encoding: "no-such-encoding"},
			err:  []error{aot.ErrConfig},
		},
		{
			name: "invalid header",
			src:  func() []byte { return []byte("x\n") },
			err:  []error{aot.ErrParse, mrd.ErrParse},
		},
		{
			name: "overlong line",
			src: func() []byte {
				return []byte("1\n%" + strings.Repeat("x", 1<<20) + "*A\n")
			},
			err: []error{aot.ErrParse, mrd.ErrParse},
		},
		{
			name: "truncated source",
			src: func() []byte {
				// Drop the last lemma line.
				return valid[:bytes.LastIndexByte(valid[:len(valid)-1], '\n')+1]
			},
			err: []error{aot.ErrParse, mrd.ErrUnexpectedEOF},
		},
		{
			name: "unknown flexion group",
			src: func() []byte {
				return testutil.MakeMRD(nil, []*mrd.Lemma{testutil.Lemma(0, "run", 0)})
			},
			err: []error{aot.ErrParse, mrd.ErrParse},
		},
		{
			name:   "source read error",
			srcErr: errFailed,
			err:    []error{aot.ErrIO, errFailed},
		},
		{
			name:   "tab read error",
			tabErr: errFailed,
			err:    []error{aot.ErrIO, errFailed},
		},
		{
			name:   "write error",
			outErr: errFailed,
			err:    []error{aot.ErrIO, errFailed},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			src := valid
			if test.src != nil {
				src = test.src()
			}

			var srcReader io.Reader = bytes.NewReader(src)
			if test.srcErr != nil {
				srcReader = iotest.ErrReader(test.srcErr)
			}
			var tabReader io.Reader = bytes.NewReader(testTab)
			if test.tabErr != nil {
				tabReader = iotest.ErrReader(test.tabErr)
			}

			var w io.Writer = &bytes.Buffer{}
			if test.outErr != nil {
				w = failingWriter{test.outErr}
			}

			opts := test.opts
			if opts == nil {
				opts = aot.DefaultOptions
			}

			_, err := aot.Compile(srcReader, tabReader, w, opts)
			if err == nil {
				t.Fatalf("Compile: expected error")
			}
			for _, want := range test.err {
				if !errors.Is(err, want) {
					t.Errorf("Compile: got %v, want %v", err, want)
				}
			}
		})
	}
}

type failingWriter struct {
	err error
}

func (w failingWriter) Write([]byte) (int, error) {
	return 0, w.err
}

// TestCompile_parseErrorLocation tests that parse errors name the section
// and line.
func TestCompile_parseErrorLocation(t *testing.T) {
	t.Parallel()

	src := testutil.MakeMRD(
		[][]*mrd.Flexion{{{Ending: "", Ancode: "A"}}},
		[]*mrd.Lemma{testutil.Lemma(0, "run", 0)},
	)
	src = bytes.Replace(src, []byte("%*A"), []byte("%A"), 1)

	_, err := aot.Compile(bytes.NewReader(src), bytes.NewReader(testTab), &bytes.Buffer{}, nil)

	var parseErr *mrd.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Compile: got %v, want %T", err, parseErr)
	}
	if parseErr.Section != mrd.FlexionSection || parseErr.Line != 2 {
		t.Errorf("ParseError: got section %q line %d, want %q line 2", parseErr.Section, parseErr.Line, mrd.FlexionSection)
	}
}
