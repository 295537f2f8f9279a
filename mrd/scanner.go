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

package mrd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// maxLineSize is the longest line the scanner accepts. Flexion group lines
// for highly inflected paradigms run to several kilobytes.
const maxLineSize = 1 << 20

var (
	// ErrParse is matched by every *ParseError.
	ErrParse = errors.New("parse error")

	// ErrUnexpectedEOF indicates that the input ended inside a section.
	ErrUnexpectedEOF = errors.New("unexpected end of input")

	errInvalidHeader = errors.New("invalid section header")
)

// ParseError describes a malformed section header or record line.
type ParseError struct {
	// Section is the name of the section being read.
	Section string

	// Line is the 1-based line number in the source. Zero if the error is not
	// tied to a single line.
	Line int

	// Err is the underlying cause.
	Err error
}

// Error implements [error.Error].
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%v: %s section, line %d: %v", ErrParse, e.Section, e.Line, e.Err)
	}
	return fmt.Sprintf("%v: %s section: %v", ErrParse, e.Section, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is reports whether target is [ErrParse].
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// Mapper interprets a single record line of a section.
type Mapper[T any] func(line string) (T, error)

// Discard is a Mapper that accepts any line and produces nothing. It is used
// for sections that are irrelevant to compilation.
func Discard(string) (struct{}, error) {
	return struct{}{}, nil
}

// Scanner reads an .mrd source line by line while tracking the current line
// number.
type Scanner struct {
	s    *bufio.Scanner
	line int
}

// NewScanner returns a new Scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Scanner{s: s}
}

// Line returns the 1-based number of the last line read.
func (s *Scanner) Line() int {
	return s.line
}

// next returns the next line. It returns false at the end of input or when a
// read error occurs, in which case Err returns the error.
func (s *Scanner) next() (string, bool) {
	if !s.s.Scan() {
		return "", false
	}
	s.line++
	return s.s.Text(), true
}

// Err returns the first non-EOF error encountered while reading.
func (s *Scanner) Err() error {
	//nolint:wrapcheck // error should not be wrapped
	return s.s.Err()
}

// endOfInput returns the error for input that ended inside a section. Read
// errors take priority over parse errors. An overlong line is a parse error
// on the line after the last one read.
func (s *Scanner) endOfInput(section string, cause error) error {
	if err := s.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return &ParseError{
				Section: section,
				Line:    s.line + 1,
				Err:     fmt.Errorf("line longer than %d bytes: %w", maxLineSize, err),
			}
		}
		return fmt.Errorf("reading %s section: %w", section, err)
	}
	return &ParseError{
		Section: section,
		Line:    s.line + 1,
		Err:     cause,
	}
}

// ReadSection reads a section header and then exactly as many lines as the
// header declares, mapping each one with m. Results are returned in file
// order.
func ReadSection[T any](s *Scanner, section string, m Mapper[T]) ([]T, error) {
	header, ok := s.next()
	if !ok {
		return nil, s.endOfInput(section, fmt.Errorf("%w: missing section header", ErrUnexpectedEOF))
	}

	n, err := strconv.Atoi(strings.TrimSpace(header))
	if err != nil || n < 0 {
		return nil, &ParseError{
			Section: section,
			Line:    s.line,
			Err:     fmt.Errorf("%w: %q", errInvalidHeader, header),
		}
	}

	// The header is untrusted so don't let it size the allocation alone.
	records := make([]T, 0, min(n, 1<<16))
	for i := range n {
		line, ok := s.next()
		if !ok {
			return nil, s.endOfInput(section, fmt.Errorf("%w: got %d of %d records", ErrUnexpectedEOF, i, n))
		}
		v, err := m(line)
		if err != nil {
			return nil, &ParseError{
				Section: section,
				Line:    s.line,
				Err:     err,
			}
		}
		records = append(records, v)
	}
	return records, nil
}
