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
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSinkMergeOrdersByWorkerID(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "spool")

	sink, err := NewSink(dir, 3)
	require.NoError(t, err)

	defer sink.Close()

	for i := 0; i < 3; i++ {
		_, err := fmt.Fprintf(sink.WriterFor(i), "worker-%d\n", i)
		require.NoError(t, err)
	}

	var out bytes.Buffer
	require.NoError(t, sink.Merge(context.Background(), &out))

	require.Equal(t, "worker-0\nworker-1\nworker-2\n", out.String())
}

func TestSinkMergeRespectsCancellation(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "spool")

	sink, err := NewSink(dir, 2)
	require.NoError(t, err)

	defer sink.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err = sink.Merge(ctx, &out)
	require.Error(t, err)
}
