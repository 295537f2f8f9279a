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
	"bufio"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ianlewis/go-dictzip"
)

// input is an opened input file.
type input struct {
	io.Reader
	closers []io.Closer
}

// Close closes the input and any decompressor.
func (in *input) Close() error {
	var errs []error
	for i := len(in.closers) - 1; i >= 0; i-- {
		errs = append(errs, in.closers[i].Close())
	}
	return errors.Join(errs...)
}

// openInput opens the file at path for reading. Files ending in .gz are
// decompressed with gzip and files ending in .dz with dictzip.
func openInput(path string) (*input, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening %q: %w", path, err)
	}
	in := &input{
		Reader:  f,
		closers: []io.Closer{f},
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		z, err := gzip.NewReader(f)
		if err != nil {
			_ = in.Close()
			return nil, fmt.Errorf("error opening %q: %w", path, err)
		}
		in.Reader = z
		in.closers = append(in.closers, z)
	case ".dz":
		z, err := dictzip.NewReader(f)
		if err != nil {
			_ = in.Close()
			return nil, fmt.Errorf("error opening %q: %w", path, err)
		}
		in.Reader = z
		in.closers = append(in.closers, z)
	}

	return in, nil
}

// writeAtomic calls write with a writer to a temporary file in the same
// directory as path. The temporary file is renamed to path only if write
// succeeds, and is removed otherwise, so that path never holds partial
// output.
func writeAtomic(path string, write func(io.Writer) error) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("error creating %q: %w", path, err)
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	w := bufio.NewWriter(f)
	if err := write(w); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("error writing %q: %w", tmp, err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("error writing %q: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("error writing %q: %w", tmp, err)
	}
	//nolint:gosec // compiled dictionaries are not secret.
	if err := os.Chmod(tmp, 0o644); err != nil {
		return fmt.Errorf("error writing %q: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("error writing %q: %w", path, err)
	}
	return nil
}
