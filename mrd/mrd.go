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
	"io"
)

// Section names as reported in errors.
const (
	FlexionSection = "flexion groups"
	AccentSection  = "accent models"
	SessionSection = "user sessions"
	PrefixSection  = "prefix sets"
	LemmaSection   = "lemmas"
)

// Source is the part of an .mrd source needed for compilation.
type Source struct {
	// Flexions is the flexion group table indexed by Lemma.FlexionGroup.
	Flexions [][]*Flexion

	// Lemmas are the lemmas in file order.
	Lemmas []*Lemma
}

// Read reads all five sections of an .mrd source from r.
func Read(r io.Reader) (*Source, error) {
	s := NewScanner(r)

	flexions, err := ReadSection(s, FlexionSection, ParseFlexionGroup)
	if err != nil {
		return nil, err
	}
	for _, section := range []string{AccentSection, SessionSection, PrefixSection} {
		if _, err := ReadSection(s, section, Discard); err != nil {
			return nil, err
		}
	}
	lemmas, err := ReadSection(s, LemmaSection, NewLemmaMapper())
	if err != nil {
		return nil, err
	}

	return &Source{
		Flexions: flexions,
		Lemmas:   lemmas,
	}, nil
}
