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

package testutil

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/ianlewis/go-aot/mrd"
)

// Contents of the sections the compiler ignores. They are not empty so that
// tests exercise skipping over them.
var (
	accentModels = []string{"%2%255%0", "%255"}
	userSessions = []string{"admin;2026-10-19 10:00;2026-10-19 11:00"}
	prefixSets   = []string{"ПО,НАИ"}
)

// MakeMRD makes a test .mrd source given the flexion groups and lemmas.
func MakeMRD(groups [][]*mrd.Flexion, lemmas []*mrd.Lemma) []byte {
	var b bytes.Buffer

	fmt.Fprintf(&b, "%d\n", len(groups))
	for _, g := range groups {
		for _, f := range g {
			b.WriteString("%" + f.Ending + "*" + f.Ancode)
			if f.Prefix != "" {
				b.WriteString("*" + f.Prefix)
			}
		}
		b.WriteByte('\n')
	}

	for _, section := range [][]string{accentModels, userSessions, prefixSets} {
		fmt.Fprintf(&b, "%d\n", len(section))
		for _, line := range section {
			b.WriteString(line + "\n")
		}
	}

	fmt.Fprintf(&b, "%d\n", len(lemmas))
	for _, l := range lemmas {
		ancode := l.Ancode
		if ancode == "" {
			ancode = "-"
		}
		fmt.Fprintf(&b, "%s %d %s %s %s %s\n",
			l.Base,
			l.FlexionGroup,
			optional(l.AccentModel),
			optional(l.Session),
			ancode,
			optional(l.PrefixSet),
		)
	}

	return b.Bytes()
}

// Lemma returns a lemma with all optional fields absent.
func Lemma(id int, base string, group int) *mrd.Lemma {
	return &mrd.Lemma{
		ID:           id,
		Base:         base,
		FlexionGroup: group,
		AccentModel:  -1,
		Session:      -1,
		PrefixSet:    -1,
	}
}

func optional(n int) string {
	if n < 0 {
		return "-"
	}
	return strconv.Itoa(n)
}
