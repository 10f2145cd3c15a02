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
	"errors"
	"strconv"
	"strings"

	"github.com/maguro/osm2rdf/model"
)

// ErrEmptyGeometry is returned when a WKT function is asked to render a
// point, line string, or polygon with no coordinates.
var ErrEmptyGeometry = errors.New("geom: empty geometry")

// PointWKT renders a single point as WKT, e.g. "POINT(7.84 47.99)", in its
// shortest round-trip form.
func PointWKT(p model.Point) string {
	return PointWKTPrecision(p, -1)
}

// PointWKTPrecision renders p as WKT with each coordinate rounded to
// precision decimal digits (trailing zeros trimmed). A negative precision
// renders the shortest round-trip form instead, same as PointWKT.
func PointWKTPrecision(p model.Point, precision int) string {
	return "POINT(" + coord(p, precision) + ")"
}

// LineStringWKT renders a resolved way's node list as WKT.
func LineStringWKT(ls model.LineString) (string, error) {
	return LineStringWKTPrecision(ls, -1)
}

// LineStringWKTPrecision is LineStringWKT with explicit coordinate
// precision; see PointWKTPrecision.
func LineStringWKTPrecision(ls model.LineString, precision int) (string, error) {
	if len(ls) == 0 {
		return "", ErrEmptyGeometry
	}

	return "LINESTRING(" + coordList(ls, precision) + ")", nil
}

// PolygonWKT renders a polygon's outer ring and any inner rings as WKT.
func PolygonWKT(poly model.Polygon) (string, error) {
	return PolygonWKTPrecision(poly, -1)
}

// PolygonWKTPrecision is PolygonWKT with explicit coordinate precision; see
// PointWKTPrecision.
func PolygonWKTPrecision(poly model.Polygon, precision int) (string, error) {
	if len(poly.Outer) == 0 {
		return "", ErrEmptyGeometry
	}

	rings := make([]string, 0, len(poly.Inner)+1)
	rings = append(rings, "("+coordList(poly.Outer, precision)+")")

	for _, inner := range poly.Inner {
		if len(inner) == 0 {
			continue
		}

		rings = append(rings, "("+coordList(inner, precision)+")")
	}

	return "POLYGON(" + strings.Join(rings, ",") + ")", nil
}

// WayWKT renders a way's resolved geometry as the shape ClassifyWayGeometry
// selects for it.
func WayWKT(pts []model.Point, closed bool) (string, GeometryKind, error) {
	return WayWKTPrecision(pts, closed, -1)
}

// WayWKTPrecision is WayWKT with explicit coordinate precision; see
// PointWKTPrecision.
func WayWKTPrecision(pts []model.Point, closed bool, precision int) (string, GeometryKind, error) {
	switch ClassifyWayGeometry(pts, closed) {
	case PolygonKind:
		wkt, err := PolygonWKTPrecision(model.Polygon{Outer: model.LineString(pts)}, precision)
		return wkt, PolygonKind, err
	case LineStringKind:
		wkt, err := LineStringWKTPrecision(pts, precision)
		return wkt, LineStringKind, err
	default:
		if len(pts) == 0 {
			return "", PointKind, ErrEmptyGeometry
		}

		return PointWKTPrecision(pts[0], precision), PointKind, nil
	}
}

// coord renders p's longitude and latitude (WKT's x-before-y order) at the
// given decimal precision, or in shortest round-trip form when precision is
// negative.
func coord(p model.Point, precision int) string {
	return formatDegree(float64(p.Lon), precision) + " " + formatDegree(float64(p.Lat), precision)
}

func coordList(pts []model.Point, precision int) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = coord(p, precision)
	}

	return strings.Join(parts, ",")
}

// formatDegree renders f the way OSM coordinate values are rendered
// elsewhere in this module: shortest round-trip form, no exponent, unless
// precision selects a fixed number of decimal digits, in which case
// trailing zeros are trimmed back off afterward.
func formatDegree(f float64, precision int) string {
	if precision < 0 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	s := strconv.FormatFloat(f, 'f', precision, 64)
	if precision == 0 {
		return s
	}

	s = strings.TrimRight(s, "0")

	return strings.TrimSuffix(s, ".")
}
