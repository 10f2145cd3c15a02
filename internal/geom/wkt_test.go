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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maguro/osm2rdf/model"
)

func TestPointWKT(t *testing.T) {
	assert.Equal(t, "POINT(7.84 47.99)", PointWKT(pt(47.99, 7.84)))
}

func TestLineStringWKT(t *testing.T) {
	ls := model.LineString{pt(0, 0), pt(0, 1), pt(1, 1)}

	wkt, err := LineStringWKT(ls)
	require.NoError(t, err)
	assert.Equal(t, "LINESTRING(0 0,1 0,1 1)", wkt)
}

func TestLineStringWKTEmptyErrors(t *testing.T) {
	_, err := LineStringWKT(nil)
	assert.ErrorIs(t, err, ErrEmptyGeometry)
}

func TestPolygonWKTWithHole(t *testing.T) {
	outer := model.LineString{pt(0, 0), pt(0, 3), pt(3, 3), pt(3, 0), pt(0, 0)}
	inner := model.LineString{pt(1, 1), pt(1, 2), pt(2, 2), pt(2, 1), pt(1, 1)}

	wkt, err := PolygonWKT(model.Polygon{Outer: outer, Inner: []model.LineString{inner}})
	require.NoError(t, err)
	assert.Equal(t,
		"POLYGON((0 0,3 0,3 3,0 3,0 0),(1 1,2 1,2 2,1 2,1 1))",
		wkt)
}

func TestWayWKTSelectsShapeByClassification(t *testing.T) {
	a, b, c, d := pt(0, 0), pt(0, 1), pt(1, 1), pt(1, 0)

	wkt, kind, err := WayWKT([]model.Point{a, b, c, d, a}, true)
	require.NoError(t, err)
	assert.Equal(t, PolygonKind, kind)
	assert.Equal(t, "POLYGON((0 0,1 0,1 1,0 1,0 0))", wkt)

	wkt, kind, err = WayWKT([]model.Point{a, b, c, a}, true)
	require.NoError(t, err)
	assert.Equal(t, LineStringKind, kind)
	assert.Equal(t, "LINESTRING(0 0,1 0,1 1,0 0)", wkt)

	wkt, kind, err = WayWKT([]model.Point{a}, false)
	require.NoError(t, err)
	assert.Equal(t, PointKind, kind)
	assert.Equal(t, "POINT(0 0)", wkt)
}
