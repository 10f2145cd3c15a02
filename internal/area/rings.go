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

package area

import "github.com/maguro/osm2rdf/model"

// assembleRings chains segments end-to-end by shared endpoints into closed
// rings, the way a multipolygon relation's member ways are joined into its
// outer or inner boundary. It reports false if any segment cannot be
// chained into a closed ring, leaving ring assembly to a future, fuller
// DAG solver (out of scope per spec.md §1) rather than guessing.
func assembleRings(segments []model.LineString) ([]model.LineString, bool) {
	remaining := make([]model.LineString, 0, len(segments))

	for _, s := range segments {
		if len(s) > 0 {
			remaining = append(remaining, s)
		}
	}

	var rings []model.LineString

	for len(remaining) > 0 {
		chain := remaining[0]
		remaining = remaining[1:]

		for !chain.Closed() {
			idx, next, ok := findAndJoin(chain, remaining)
			if !ok {
				return nil, false
			}

			chain = next
			remaining = append(remaining[:idx], remaining[idx+1:]...)
		}

		rings = append(rings, chain)
	}

	return rings, true
}

// findAndJoin looks for a segment in remaining that shares an endpoint with
// chain and joins it, returning the segment's index, the extended chain,
// and whether a match was found.
func findAndJoin(chain model.LineString, remaining []model.LineString) (int, model.LineString, bool) {
	head, tail := chain[0], chain[len(chain)-1]

	for i, seg := range remaining {
		switch {
		case tail == seg[0]:
			return i, append(chain, seg[1:]...), true
		case tail == seg[len(seg)-1]:
			return i, append(chain, reversed(seg[:len(seg)-1])...), true
		case head == seg[len(seg)-1]:
			return i, append(append(model.LineString{}, seg[:len(seg)-1]...), chain...), true
		case head == seg[0]:
			return i, append(reversed(seg[1:]), chain...), true
		}
	}

	return 0, nil, false
}

func reversed(pts model.LineString) model.LineString {
	out := make(model.LineString, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}

	return out
}
