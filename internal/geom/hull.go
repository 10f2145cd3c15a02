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

import (
	"github.com/golang/geo/s2"

	"github.com/maguro/osm2rdf/model"
)

// ConvexHull computes the convex hull of pts, closing the ring so it can be
// rendered directly as a WKT polygon for the --add-{node,way}-convex-hull
// flags.
func ConvexHull(pts []model.Point) (model.Polygon, error) {
	unique := DedupeConsecutive(pts)
	if len(unique) < 3 {
		return model.Polygon{}, ErrEmptyGeometry
	}

	var query s2.ConvexHullQuery
	for _, p := range unique {
		query.AddPoint(toS2Point(p))
	}

	loop := query.ConvexHull()
	if loop == nil || loop.NumVertices() < 3 {
		return model.Polygon{}, ErrEmptyGeometry
	}

	ring := make(model.LineString, 0, loop.NumVertices()+1)
	for i := 0; i < loop.NumVertices(); i++ {
		ring = append(ring, toModelPoint(s2.LatLngFromPoint(loop.Vertex(i))))
	}

	ring = append(ring, ring[0])

	return model.Polygon{Outer: ring}, nil
}
