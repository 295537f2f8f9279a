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

	"github.com/urfave/cli/v2"

	aot "github.com/ianlewis/go-aot"
)

func compileCommand() *cli.Command {
	return &cli.Command{
		Name:      "compile",
		Usage:     "compile an .mrd source and .tab table into a dictionary",
		ArgsUsage: " ",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "mrd",
				Usage: "read the .mrd source from `FILE` (.gz and .dz are decompressed)",
			},
			&cli.StringFlag{
				Name:  "tab",
				Usage: "read the grammatical table from `FILE` (.gz and .dz are decompressed)",
			},
			&cli.StringFlag{
				Name:    "out",
				Usage:   "write the compiled dictionary to `FILE`",
				Aliases: []string{"o"},
			},
			&cli.IntFlag{
				Name:  "block-size",
				Usage: "minimum number of word forms per block",
			},
			&cli.IntFlag{
				Name:  "concurrency",
				Usage: "number of goroutines expanding lemmas",
			},
			&cli.StringFlag{
				Name:  "encoding",
				Usage: "character `ENCODING` of the .mrd source (e.g. windows-1251)",
			},
			helpFlag(),
		},
		HideHelp: true,
		OnUsageError: func(_ *cli.Context, err error, _ bool) error {
			return fmt.Errorf("%w: %w", ErrFlagParse, err)
		},
		Action: runCompile,
	}
}

func runCompile(c *cli.Context) error {
	if c.Bool("help") {
		check(cli.ShowSubcommandHelp(c))
		return nil
	}

	for _, name := range []string{"mrd", "tab", "out"} {
		if c.String(name) == "" {
			return fmt.Errorf("%w: missing required flag --%s", ErrFlagParse, name)
		}
	}
	if c.Args().Len() > 0 {
		return fmt.Errorf("%w: unexpected arguments: %q", ErrFlagParse, c.Args().Slice())
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if c.IsSet("block-size") {
		cfg.Compile.BlockSize = c.Int("block-size")
	}
	if c.IsSet("concurrency") {
		cfg.Compile.Concurrency = c.Int("concurrency")
	}
	if c.IsSet("encoding") {
		cfg.Compile.Encoding = c.String("encoding")
	}
	logger := newLogger(cfg.Log, c.App.ErrWriter)

	compiler, err := aot.NewCompiler(&aot.Options{
		BlockSize:   cfg.Compile.BlockSize,
		Concurrency: cfg.Compile.Concurrency,
		Encoding:    cfg.Compile.Encoding,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	src, err := openInput(c.String("mrd"))
	if err != nil {
		return err
	}
	defer src.Close()

	tab, err := openInput(c.String("tab"))
	if err != nil {
		return err
	}
	defer tab.Close()

	out := c.String("out")
	var stats *aot.Stats
	if err := writeAtomic(out, func(w io.Writer) error {
		var err error
		stats, err = compiler.Compile(src, tab, w)
		return err
	}); err != nil {
		return fmt.Errorf("compiling %q: %w", out, err)
	}

	logger.Info("wrote dictionary",
		"path", out,
		"variations", stats.Variations,
		"blocks", stats.Blocks,
	)
	return nil
}
