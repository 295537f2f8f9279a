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

package main

import (
	"fmt"
	"io"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-aot/container"
)

func inspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "print information about a compiled dictionary",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "word",
				Usage:   "print the word forms matching `WORD` ignoring case",
				Aliases: []string{"w"},
			},
			&cli.BoolFlag{
				Name:               "blocks",
				Usage:              "print every block",
				DisableDefaultText: true,
			},
			helpFlag(),
		},
		HideHelp: true,
		OnUsageError: func(_ *cli.Context, err error, _ bool) error {
			return fmt.Errorf("%w: %w", ErrFlagParse, err)
		},
		Action: runInspect,
	}
}

func runInspect(c *cli.Context) error {
	if c.Bool("help") {
		check(cli.ShowSubcommandHelp(c))
		return nil
	}

	if c.Args().Len() != 1 {
		return fmt.Errorf("%w: expected one FILE argument", ErrFlagParse)
	}

	r, err := container.Open(c.Args().First())
	if err != nil {
		return err
	}

	w := c.App.Writer
	if c.IsSet("word") {
		return printLookup(w, r, c.String("word"))
	}

	printSummary(w, r)
	if c.Bool("blocks") {
		fmt.Fprintln(w)
		printBlocks(w, r)
	}
	return nil
}

func printSummary(w io.Writer, r *container.Reader) {
	largest := 0
	for _, b := range r.Blocks() {
		largest = max(largest, b.Len())
	}

	tbl := table.New("Property", "Value").WithWriter(w)
	tbl.AddRow("Word forms", r.Len())
	tbl.AddRow("Blocks", len(r.Blocks()))
	tbl.AddRow("Largest block", largest)
	tbl.AddRow("Tab bytes", len(r.Tab()))
	tbl.Print()
}

func printBlocks(w io.Writer, r *container.Reader) {
	tbl := table.New("Block", "Entries", "First", "Last").WithWriter(w)
	for i, b := range r.Blocks() {
		first, last := "", ""
		if b.Len() > 0 {
			first = b.First().Word
			last = b.Variations[b.Len()-1].Word
		}
		tbl.AddRow(i, b.Len(), first, last)
	}
	tbl.Print()
}

func printLookup(w io.Writer, r *container.Reader, word string) error {
	vs, err := r.Lookup(word)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAotc, err)
	}
	if len(vs) == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, word)
	}

	tbl := table.New("ID", "Word", "Ancode", "Lemma ID", "Lemma", "Block").WithWriter(w)
	for _, v := range vs {
		lemma := ""
		if l, ok := r.Variation(v.LemmaID); ok {
			lemma = l.Word
		}
		block, _ := r.Index().Lookup(v.ID)
		tbl.AddRow(v.ID, v.Word, v.Ancode, v.LemmaID, lemma, block)
	}
	tbl.Print()
	return nil
}
