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

package sink

import (
	"fmt"
	"io"
	"os"
)

// Output is the final destination of a run's merged RDF document: a file
// or stdout, wrapped in the configured compression codec.
type Output struct {
	file   *os.File
	writer io.WriteCloser
}

// Open creates path (appending c's extension unless path is empty, which
// means stdout) and wraps it with c's compressor.
func Open(path string, c Codec) (*Output, error) {
	if path == "" {
		w, err := NewWriter(os.Stdout, c)
		if err != nil {
			return nil, err
		}

		return &Output{writer: w}, nil
	}

	f, err := os.Create(path + c.Extension())
	if err != nil {
		return nil, fmt.Errorf("sink: cannot create output file: %w", err)
	}

	w, err := NewWriter(f, c)
	if err != nil {
		f.Close()
		return nil, err
	}

	return &Output{file: f, writer: w}, nil
}

func (o *Output) Write(p []byte) (int, error) {
	return o.writer.Write(p)
}

// Close flushes and closes the compressor, then the underlying file if
// this Output owns one.
func (o *Output) Close() error {
	if err := o.writer.Close(); err != nil {
		return err
	}

	if o.file != nil {
		return o.file.Close()
	}

	return nil
}
