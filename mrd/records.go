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
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// NoBase is the lemma base text meaning that the lemma's endings stand
// alone.
const NoBase = "#"

// absent marks an unset optional field in a lemma line.
const absent = "-"

var (
	errEmptyRecord    = errors.New("empty record")
	errMissingField   = errors.New("missing field")
	errInvalidNumber  = errors.New("invalid number")
	errInvalidFlexion = errors.New("invalid flexion")
	errNulByte        = errors.New("unexpected NUL byte")
)

// Flexion is an inflection ending: a suffix appended to a lemma's base text
// together with the grammatical code of the resulting word form.
type Flexion struct {
	// Ending is the suffix appended to the base text. It may be empty.
	Ending string

	// Ancode is the opaque grammatical code of the word form.
	Ancode string

	// Prefix is the optional prefix of the word form.
	Prefix string
}

// Lemma is a dictionary headword.
type Lemma struct {
	// ID is the 0-based position of the lemma in the lemma section.
	ID int

	// Base is the uninflected base text, or NoBase.
	Base string

	// FlexionGroup indexes the flexion group table.
	FlexionGroup int

	// AccentModel, Session and PrefixSet are -1 when absent.
	AccentModel int
	Session     int
	PrefixSet   int

	// Ancode is the common grammatical code of the lemma, if any.
	Ancode string
}

// ParseFlexionGroup parses a flexion group line of the form
// "%ENDING*ANCODE[*PREFIX]%ENDING*ANCODE...".
func ParseFlexionGroup(line string) ([]*Flexion, error) {
	if strings.IndexByte(line, 0) >= 0 {
		return nil, errNulByte
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, errEmptyRecord
	}

	items := strings.Split(line, "%")
	if items[0] != "" {
		return nil, fmt.Errorf("%w: %q: missing leading '%%'", errInvalidFlexion, items[0])
	}

	group := make([]*Flexion, 0, len(items)-1)
	for _, item := range items[1:] {
		fields := strings.Split(item, "*")
		if len(fields) < 2 || len(fields) > 3 || fields[1] == "" {
			return nil, fmt.Errorf("%w: %q", errInvalidFlexion, item)
		}
		f := &Flexion{
			Ending: fields[0],
			Ancode: fields[1],
		}
		if len(fields) == 3 {
			f.Prefix = fields[2]
		}
		group = append(group, f)
	}
	return group, nil
}

// NewLemmaMapper returns a Mapper that parses lemma lines and assigns IDs in
// the order lines are mapped.
func NewLemmaMapper() Mapper[*Lemma] {
	id := 0
	return func(line string) (*Lemma, error) {
		l, err := ParseLemma(line)
		if err != nil {
			return nil, err
		}
		l.ID = id
		id++
		return l, nil
	}
}

// ParseLemma parses a lemma line of the form
// "BASE GROUP [ACCENT SESSION ANCODE PREFIXSET]". The returned Lemma has a
// zero ID.
func ParseLemma(line string) (*Lemma, error) {
	if strings.IndexByte(line, 0) >= 0 {
		return nil, errNulByte
	}
	fields := strings.Fields(line)
	switch len(fields) {
	case 0:
		return nil, errEmptyRecord
	case 1:
		return nil, fmt.Errorf("%w: flexion group of %q", errMissingField, fields[0])
	}

	group, err := strconv.Atoi(fields[1])
	if err != nil || group < 0 {
		return nil, fmt.Errorf("%w: flexion group %q", errInvalidNumber, fields[1])
	}

	l := &Lemma{
		Base:         fields[0],
		FlexionGroup: group,
	}
	if l.AccentModel, err = optionalNumber(fields, 2); err != nil {
		return nil, fmt.Errorf("accent model: %w", err)
	}
	if l.Session, err = optionalNumber(fields, 3); err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	if len(fields) > 4 && fields[4] != absent {
		l.Ancode = fields[4]
	}
	if l.PrefixSet, err = optionalNumber(fields, 5); err != nil {
		return nil, fmt.Errorf("prefix set: %w", err)
	}
	return l, nil
}

// optionalNumber parses fields[i] as a non-negative number returning -1 if
// the field is missing or absent.
func optionalNumber(fields []string, i int) (int, error) {
	if i >= len(fields) || fields[i] == absent {
		return -1, nil
	}
	n, err := strconv.Atoi(fields[i])
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", errInvalidNumber, fields[i])
	}
	return n, nil
}
