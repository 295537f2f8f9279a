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

// Package aot implements a compiler for AOT morphological dictionaries in
// pure Go.
//
// The compiler reads two inputs:
//  1. An .mrd source holding five sections: flexion groups, accent models,
//     user sessions, prefix sets and lemmas. Each section is a line holding
//     the number of records followed by one record per line.
//  2. A .tab grammatical table describing the ancodes. It is copied into the
//     output unchanged.
//
// Every lemma is expanded into its word forms by appending each ending of
// its flexion group to its base text. Word forms are numbered, sorted by
// their case folded text, grouped into blocks and written to a zip archive
// together with an index from word form id to block. See package container
// for reading compiled dictionaries.
package aot
