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
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"

	"github.com/maguro/osm2rdf/model"
)

func toS2Point(p model.Point) s2.Point {
	return s2.PointFromLatLng(s2.LatLngFromDegrees(float64(p.Lat), float64(p.Lon)))
}

func toModelPoint(ll s2.LatLng) model.Point {
	return model.Point{Lat: model.Degrees(ll.Lat.Degrees()), Lon: model.Degrees(ll.Lng.Degrees())}
}

func toS2Loop(pts []model.Point) (*s2.Loop, error) {
	unique := DedupeConsecutive(pts)
	if len(unique) > 1 && unique[0] == unique[len(unique)-1] {
		unique = unique[:len(unique)-1]
	}

	if len(unique) < 3 {
		return nil, ErrEmptyGeometry
	}

	s2pts := make([]s2.Point, len(unique))
	for i, p := range unique {
		s2pts[i] = toS2Point(p)
	}

	return s2.LoopFromPoints(s2pts), nil
}

// SimplifyLineString reduces pts to a coarser vertex chain using s2's
// polyline vertex subsampler, dropping vertices that deviate from the
// simplified chain by less than toleranceDegrees. Chains shorter than 3
// points pass through unchanged, since there is nothing to simplify.
func SimplifyLineString(pts []model.Point, toleranceDegrees float64) []model.Point {
	if len(pts) < 3 {
		return pts
	}

	s2pts := make([]s2.Point, len(pts))
	for i, p := range pts {
		s2pts[i] = toS2Point(p)
	}

	tolerance := s1.Angle(toleranceDegrees) * s1.Degree

	polyline := s2.Polyline(s2pts)
	indices := polyline.SubsampleVertices(tolerance)

	out := make([]model.Point, len(indices))
	for i, idx := range indices {
		out[i] = toModelPoint(s2.LatLngFromPoint(s2pts[idx]))
	}

	return out
}

// earthRadiusMeters is the IUGG mean radius, the same sphere approximation
// s2 itself uses for angle-to-distance conversions.
const earthRadiusMeters = 6371010.0

// DistanceMeters returns the great-circle distance between a and b along
// earthRadiusMeters, using s2's angular distance between the two points.
func DistanceMeters(a, b model.Point) float64 {
	return float64(toS2Point(a).Distance(toS2Point(b))) * earthRadiusMeters
}

// rectPolygon turns a lat/lng rectangle into the closed four-corner ring an
// envelope or oriented-bounding-box triple is rendered from.
func rectPolygon(rect s2.Rect) model.Polygon {
	lo, hi := rect.Lo(), rect.Hi()

	corners := model.LineString{
		{Lat: model.Degrees(lo.Lat.Degrees()), Lon: model.Degrees(lo.Lng.Degrees())},
		{Lat: model.Degrees(lo.Lat.Degrees()), Lon: model.Degrees(hi.Lng.Degrees())},
		{Lat: model.Degrees(hi.Lat.Degrees()), Lon: model.Degrees(hi.Lng.Degrees())},
		{Lat: model.Degrees(hi.Lat.Degrees()), Lon: model.Degrees(lo.Lng.Degrees())},
	}
	corners = append(corners, corners[0])

	return model.Polygon{Outer: corners}
}
