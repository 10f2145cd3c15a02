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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsTriples(t *testing.T) {
	s := Stats{Lines: 10, HeaderLines: 3}
	assert.Equal(t, uint64(7), s.Triples())
}

func TestStatsAddSumsAcrossWorkers(t *testing.T) {
	// Invariant 7: combined blankNodes equals the sum over all workers.
	a := Stats{BlankNodes: 2, HeaderLines: 1, Lines: 5}
	b := Stats{BlankNodes: 3, HeaderLines: 1, Lines: 8}

	total := a.Add(b)
	assert.Equal(t, uint64(5), total.BlankNodes)
	assert.Equal(t, uint64(2), total.HeaderLines)
	assert.Equal(t, uint64(13), total.Lines)
	assert.Equal(t, total.HeaderLines+total.Triples(), total.Lines)
}

func TestWriteStatsJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteStatsJSON(&buf, Stats{BlankNodes: 1, HeaderLines: 2, Lines: 10}))

	assert.JSONEq(t, `{"blankNodes":1,"header":2,"lines":10,"triples":8}`, buf.String())
}
