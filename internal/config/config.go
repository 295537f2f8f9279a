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

// Package config loads the aotc configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"golang.org/x/text/encoding/htmlindex"
)

// PathEnv is the environment variable naming the configuration file.
const PathEnv = "AOTC_CONFIG"

// ErrInvalid indicates an invalid configuration.
var ErrInvalid = errors.New("invalid configuration")

// Config is the aotc configuration.
type Config struct {
	Compile CompileConfig `yaml:"compile"`
	Log     LogConfig     `yaml:"log"`
}

// CompileConfig holds compiler settings.
type CompileConfig struct {
	// BlockSize is the minimum number of entries before a block boundary may
	// be cut.
	BlockSize   int    `yaml:"blockSize"   env:"AOTC_BLOCK_SIZE"  env-default:"16"`
	Concurrency int    `yaml:"concurrency" env:"AOTC_CONCURRENCY" env-default:"1"`
	Encoding    string `yaml:"encoding"    env:"AOTC_ENCODING"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"AOTC_LOG_LEVEL"  env-default:"warn"`
	Format string `yaml:"format" env:"AOTC_LOG_FORMAT" env-default:"text"`
}

// Load reads the configuration from the YAML file at path and environment
// variables. Environment variables take priority over the file, and the file
// over defaults. If path is empty the file named by AOTC_CONFIG is read, and
// if that is unset only the environment and defaults are used.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		path = os.Getenv(PathEnv)
	}

	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, readError(path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, readError("env", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

// readError wraps a cleanenv error. Failures to open the file are returned
// as is and everything else is an invalid configuration.
func readError(source string, err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return fmt.Errorf("config: read %s: %w", source, err)
	}
	return fmt.Errorf("config: read %s: %w: %w", source, ErrInvalid, err)
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if c.Compile.BlockSize < 1 {
		return fmt.Errorf("%w: blockSize must be >= 1 (got %d)", ErrInvalid, c.Compile.BlockSize)
	}
	if c.Compile.Concurrency < 1 {
		return fmt.Errorf("%w: concurrency must be >= 1 (got %d)", ErrInvalid, c.Compile.Concurrency)
	}
	if c.Compile.Encoding != "" {
		if _, err := htmlindex.Get(c.Compile.Encoding); err != nil {
			return fmt.Errorf("%w: encoding %q: %w", ErrInvalid, c.Compile.Encoding, err)
		}
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log format must be text or json (got %q)", ErrInvalid, c.Log.Format)
	}
	return nil
}

// ParseLevel parses a log level name. The empty string is the info level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: unknown log level %q", ErrInvalid, s)
	}
}
