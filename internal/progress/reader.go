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

// Package progress wraps the OSM source reader's input in a terminal
// progress bar and exposes a coarse RAM probe, the two run-time reporting
// concerns spec.md §1 names as out-of-scope external collaborators but
// that a runnable CLI still needs a concrete implementation of.
package progress

import (
	"fmt"
	"io"
	"os"

	pb "gopkg.in/cheggaaa/pb.v1"
)

// reader wraps a ReadCloser with a byte-count progress bar. Closing it
// closes the delegate and clears the terminal line.
type reader struct {
	r   io.ReadCloser
	bar *pb.ProgressBar
}

// WrapInputFile wraps f so that reading from it drives a progress bar
// sized to the file's length. Stdin is returned unwrapped since its total
// size is unknown. Grounded on the teacher's cmd/pbf/cli/pb.go, which does
// exactly this for an encoder's PBF input file.
func WrapInputFile(f *os.File) (io.ReadCloser, error) {
	if f == os.Stdin {
		return os.Stdin, nil
	}

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}

	bar := pb.New(int(fi.Size())).SetUnits(pb.U_BYTES_DEC).SetWidth(79)
	bar.Output = os.Stderr
	bar.Start()

	return reader{r: bar.NewProxyReader(f), bar: bar}, nil
}

func (r reader) Read(p []byte) (int, error) {
	return r.r.Read(p)
}

func (r reader) Close() error {
	r.bar.Output = nil
	r.bar.NotPrint = true
	r.bar.Finish()

	fmt.Fprint(os.Stderr, "\033[2K\r")

	return r.r.Close()
}
