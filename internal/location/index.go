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

// Package location resolves the node IDs a way refers to into the points
// that make up its geometry. It is populated by a single writer during pass
// one of the conversion and read concurrently by every worker during pass
// two; callers are responsible for that ordering, the index itself applies
// no locking on the read path.
package location

import (
	"strconv"

	"github.com/maguro/osm2rdf/model"
)

// Index maps node IDs to their resolved location. Put is only ever called
// from the pass-one populating goroutine; Get is safe to call from any
// number of goroutines once population has finished.
type Index interface {
	Put(id model.NodeID, p model.Point) error
	Get(id model.NodeID) (model.Point, bool)
	Close() error
}

// Resolve looks up every node ID in ids, in order, and returns their
// points. It reports the first unresolved ID it encounters, matching the
// teacher's fail-fast style over silently skipping missing nodes.
func Resolve(idx Index, ids []model.NodeID) ([]model.Point, error) {
	pts := make([]model.Point, len(ids))

	for i, id := range ids {
		p, ok := idx.Get(id)
		if !ok {
			return nil, &UnresolvedNodeError{ID: id}
		}

		pts[i] = p
	}

	return pts, nil
}

// UnresolvedNodeError reports a way node reference the location index has
// no entry for, typically because the referenced node lies outside an
// extract's bounding box.
type UnresolvedNodeError struct {
	ID model.NodeID
}

func (e *UnresolvedNodeError) Error() string {
	return "location: no entry for node " + strconv.FormatUint(uint64(e.ID), 10)
}
