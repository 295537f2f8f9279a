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

// Package container implements writing and reading compiled dictionaries.
//
// A compiled dictionary is a zip archive holding exactly two entries in
// order. The "mrd" entry holds the number of blocks, the blocks, and the id
// index as encoded by package block. The "tab" entry holds the grammatical
// table exactly as it was given to the compiler.
package container
