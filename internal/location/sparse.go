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

// SparseIndex keeps node locations in a map, the right structure when the
// node ID space an extract touches is a small, scattered subset of the
// full OSM ID range.
type SparseIndex struct {
	points map[model.NodeID]model.Point
}

// NewSparseIndex creates an empty in-memory sparse index.
func NewSparseIndex() *SparseIndex {
	return &SparseIndex{points: make(map[model.NodeID]model.Point)}
}

func (s *SparseIndex) Put(id model.NodeID, p model.Point) error {
	s.points[id] = p
	return nil
}

func (s *SparseIndex) Get(id model.NodeID) (model.Point, bool) {
	p, ok := s.points[id]
	return p, ok
}

func (s *SparseIndex) Close() error {
	return nil
}

// Len reports how many node locations are stored.
func (s *SparseIndex) Len() int {
	return len(s.points)
}
