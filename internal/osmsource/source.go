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

package osmsource

import (
	"context"

	"github.com/maguro/osm2rdf/model"
)

// Buffer is one round-robin unit of work the two-pass driver hands to a
// worker: a contiguous slice of the source file containing whichever of
// Nodes, Ways, and Relations appeared in that span. A real OSM file groups
// all nodes before all ways before all relations, so most buffers carry
// exactly one of the three slices populated; boundary buffers may carry
// two.
type Buffer struct {
	Nodes     []model.Node
	Ways      []model.Way
	Relations []model.Relation
}

// Empty reports whether the buffer carries no entities at all.
func (b Buffer) Empty() bool {
	return len(b.Nodes) == 0 && len(b.Ways) == 0 && len(b.Relations) == 0
}

// Source streams an OSM dataset as successive Buffers in file order. The
// two-pass driver calls Stream twice on the same Source — once to populate
// the node-location index and register multipolygon candidates, once to
// resolve geometry and emit triples — so every implementation must restart
// from the beginning on each call rather than treating itself as single-
// use.
type Source interface {
	// Stream sends Buffers on the returned channel until the source is
	// exhausted or ctx is canceled, then closes it. Any read or decode
	// error is sent on the error channel and ends the stream early. Both
	// channels are closed before Stream's goroutine returns.
	Stream(ctx context.Context) (<-chan Buffer, <-chan error)
}
