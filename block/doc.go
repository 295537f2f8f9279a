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

// Package block implements partitioning sorted word forms into blocks, the
// block binary encoding and the id to block index.
//
// All integers are unsigned 32 bit integers in network byte order.
//
// A block is encoded as the number of entries followed by each entry. Each
// entry comes in four parts:
//  1. The word: a utf-8 string terminated by a null terminator ('\0').
//  2. The ancode: a utf-8 string terminated by a null terminator ('\0').
//  3. The id of the word form.
//  4. The id of the first word form of the word form's lemma.
//
// An index is encoded as its length followed by each entry, the ordinal of
// the block holding the word form whose id is the entry's position.
package block
