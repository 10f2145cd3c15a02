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

package location

import "github.com/maguro/osm2rdf/model"

// DenseIndex keeps node locations in a flat, directly-indexed slice, the
// right structure when an extract's node IDs are mostly contiguous: lookup
// and insertion are both O(1) with no hashing, at the cost of allocating a
// slot for every ID up to the largest one seen, present or not.
type DenseIndex struct {
	points  []model.Point
	present []bool
}

// NewDenseIndex creates an empty in-memory dense index, preallocated to
// hold capacityHint entries without regrowing.
func NewDenseIndex(capacityHint int) *DenseIndex {
	return &DenseIndex{
		points:  make([]model.Point, 0, capacityHint),
		present: make([]bool, 0, capacityHint),
	}
}

func (d *DenseIndex) Put(id model.NodeID, p model.Point) error {
	d.ensure(id)
	d.points[id] = p
	d.present[id] = true

	return nil
}

func (d *DenseIndex) Get(id model.NodeID) (model.Point, bool) {
	if uint64(id) >= uint64(len(d.points)) || !d.present[id] {
		return model.Point{}, false
	}

	return d.points[id], true
}

func (d *DenseIndex) Close() error {
	return nil
}

func (d *DenseIndex) ensure(id model.NodeID) {
	if uint64(id) < uint64(len(d.points)) {
		return
	}

	grown := make([]model.Point, id+1)
	copy(grown, d.points)
	d.points = grown

	grownPresent := make([]bool, id+1)
	copy(grownPresent, d.present)
	d.present = grownPresent
}
