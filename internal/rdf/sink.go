// Copyright 2017-25 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rdf

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// Sink owns one spool file per worker. Each worker writes its triples to
// its own file through its own Writer so that no two goroutines ever
// contend on the same io.Writer; once every worker has finished, Merge
// concatenates the spool files, in ascending worker-id order, onto the
// final output. This mirrors the teacher's temp-file-then-io.Copy shape
// for assembling a PBF blob's body before its header is known, generalized
// from "one body file" to "one file per worker, ordered by worker id" so
// that no worker blocks on another's writes.
type Sink struct {
	dir   string
	files []*os.File
}

// NewSink creates a Sink with workers spool files inside dir. dir is
// created if it doesn't already exist and is removed by Close.
func NewSink(dir string, workers int) (*Sink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating spool directory: %w", err)
	}

	s := &Sink{dir: dir, files: make([]*os.File, workers)}

	for i := range s.files {
		f, err := os.Create(filepath.Join(dir, fmt.Sprintf("worker-%04d.part", i)))
		if err != nil {
			s.closeAll()

			return nil, fmt.Errorf("creating spool file for worker %d: %w", i, err)
		}

		s.files[i] = f
	}

	return s, nil
}

// WriterFor returns the spool file for worker id, so the caller can wrap
// it in a Writer.
func (s *Sink) WriterFor(id int) io.Writer {
	return s.files[id]
}

// Merge concatenates every worker's spool file, in ascending worker-id
// order, onto out. It seeks each spool file back to its start first.
func (s *Sink) Merge(ctx context.Context, out io.Writer) error {
	ids := make([]int, len(s.files))
	for i := range ids {
		ids[i] = i
	}

	sort.Ints(ids)

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return err
		}

		f := s.files[id]

		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return fmt.Errorf("seeking spool file for worker %d: %w", id, err)
		}

		if _, err := io.Copy(out, f); err != nil {
			return fmt.Errorf("copying spool file for worker %d: %w", id, err)
		}
	}

	return nil
}

// Close closes and removes every spool file and the spool directory.
func (s *Sink) Close() error {
	s.closeAll()

	return os.RemoveAll(s.dir)
}

func (s *Sink) closeAll() {
	for _, f := range s.files {
		if f != nil {
			_ = f.Close()
		}
	}
}
