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

// Package mrd implements reading .mrd morphological dictionary sources.
//
// An .mrd file is line oriented text made of five sections, always in the
// same order. Each section starts with a header line holding the decimal
// number of record lines that follow it.
//  1. Flexion groups: one line per group, each group a list of
//     "%ENDING*ANCODE" items with an optional "*PREFIX" suffix.
//  2. Accent models.
//  3. User sessions.
//  4. Prefix sets.
//  5. Lemmas: whitespace separated "BASE GROUP ACCENT SESSION ANCODE
//     PREFIXSET" where only BASE and GROUP are required. A BASE of "#"
//     means the lemma has no base text and its endings stand alone.
//
// Only the flexion groups and lemmas are interpreted. The other sections are
// read and discarded.
package mrd
