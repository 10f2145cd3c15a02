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

package geom

import "github.com/maguro/osm2rdf/model"

// GeometryKind is the WKT shape a way's resolved node list is emitted as.
type GeometryKind int

const (
	PointKind GeometryKind = iota
	LineStringKind
	PolygonKind
)

func (k GeometryKind) String() string {
	switch k {
	case PointKind:
		return "POINT"
	case LineStringKind:
		return "LINESTRING"
	case PolygonKind:
		return "POLYGON"
	default:
		return "UNKNOWN"
	}
}

// DedupeConsecutive drops each point that is identical to the point before
// it, leaving the unique consecutive positions a way's node list resolves
// to. A closed way's repeated last point is preserved so callers can still
// detect closure on the deduplicated slice.
func DedupeConsecutive(pts []model.Point) []model.Point {
	if len(pts) == 0 {
		return nil
	}

	out := make([]model.Point, 0, len(pts))
	out = append(out, pts[0])

	for _, p := range pts[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}

	return out
}

// ClassifyWayGeometry chooses the WKT shape for a way's resolved node
// list, following the unique-consecutive-node-count rule: more than three
// unique points on a closed way is a polygon, more than one unique point is
// a line string, otherwise it is a point at the first node. Closure is
// judged on the deduplicated points, not the raw input, so a way whose
// duplicate final node collapses into its neighbor is still classified
// correctly.
func ClassifyWayGeometry(pts []model.Point, closed bool) GeometryKind {
	unique := DedupeConsecutive(pts)

	uniqueCount := len(unique)
	if closed && uniqueCount > 1 && unique[0] == unique[uniqueCount-1] {
		uniqueCount--
	}

	switch {
	case uniqueCount > 3 && closed:
		return PolygonKind
	case uniqueCount > 1:
		return LineStringKind
	default:
		return PointKind
	}
}
