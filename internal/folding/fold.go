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

// Package folding implements the text folding used to compare word forms.
package folding

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/transform"
)

// Key returns the case folded form of s. Two words are equal ignoring case
// exactly when their keys are equal, and word forms are ordered by key.
func Key(s string) string {
	return cases.Fold().String(s)
}

// Equal reports whether a and b are equal ignoring case.
func Equal(a, b string) bool {
	return a == b || Key(a) == Key(b)
}

// Query returns a [transform.Transformer] for normalizing user supplied
// lookup queries. It removes leading and trailing whitespace, collapses
// internal whitespace and then case folds.
func Query() transform.Transformer {
	return transform.Chain(&whitespaceFolder{}, cases.Fold())
}

// QueryKey applies Query to q.
func QueryKey(q string) (string, error) {
	k, _, err := transform.String(Query(), q)
	if err != nil {
		return "", fmt.Errorf("folding query %q: %w", q, err)
	}
	return k, nil
}
