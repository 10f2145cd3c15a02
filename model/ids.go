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

package model

// NodeID, WayID, and RelationID are the primary keys OSM assigns to its
// three entity kinds. They share a single numbering space in the OSM data
// model but are kept as distinct Go types so a value of one kind can never
// be passed where another is expected.
type (
	NodeID     uint64
	WayID      uint64
	RelationID uint64
)

// AreaID is the identifier space areas are assigned into once a way or a
// relation has been recognized as an area. Ways and relations both have
// their own numbering, so AreaID doubles the source ID and uses the low bit
// to tell the two apart: even values come from ways, odd values from
// relations. This mirrors the doubling osm2rdf's area assembler uses so
// that an AreaID never collides between the two source kinds.
type AreaID uint64

// AreaIDFromWay derives the AreaID a way's area contributes.
func AreaIDFromWay(id WayID) AreaID {
	return AreaID(2 * uint64(id))
}

// AreaIDFromRelation derives the AreaID a relation's area contributes.
func AreaIDFromRelation(id RelationID) AreaID {
	return AreaID(2*uint64(id) + 1)
}

// FromWay reports whether the AreaID was derived from a way.
func (id AreaID) FromWay() bool {
	return id%2 == 0
}

// FromRelation reports whether the AreaID was derived from a relation.
func (id AreaID) FromRelation() bool {
	return id%2 == 1
}
