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
	"encoding/json"
	"io"
)

// Stats tracks per-worker output counters. Each worker goroutine owns
// exactly one Stats value as part of its Writer; nothing here is ever
// touched by more than one goroutine, so there are no atomics to pay for
// and no false sharing to worry about. The driver sums every worker's
// Stats once all workers have finished.
type Stats struct {
	BlankNodes  uint64
	HeaderLines uint64
	Lines       uint64
}

// Triples returns the number of non-header lines written, i.e. the actual
// RDF triple count.
func (s Stats) Triples() uint64 {
	return s.Lines - s.HeaderLines
}

// Add returns the element-wise sum of s and o.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		BlankNodes:  s.BlankNodes + o.BlankNodes,
		HeaderLines: s.HeaderLines + o.HeaderLines,
		Lines:       s.Lines + o.Lines,
	}
}

// summaryJSON is the on-disk shape of the run's combined statistics file,
// field order and names matching the osm2rdf statistics.json convention.
type summaryJSON struct {
	BlankNodes uint64 `json:"blankNodes"`
	Header     uint64 `json:"header"`
	Lines      uint64 `json:"lines"`
	Triples    uint64 `json:"triples"`
}

func (s Stats) toSummary() summaryJSON {
	return summaryJSON{
		BlankNodes: s.BlankNodes,
		Header:     s.HeaderLines,
		Lines:      s.Lines,
		Triples:    s.Triples(),
	}
}

// WriteStatsJSON writes the combined statistics document for a completed
// run, matching the field names and ordering of the stats file osm2rdf
// writes alongside its output.
func WriteStatsJSON(w io.Writer, s Stats) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(s.toSummary())
}
