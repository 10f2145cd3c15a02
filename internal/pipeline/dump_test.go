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

package pipeline

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maguro/osm2rdf/internal/config"
	"github.com/maguro/osm2rdf/internal/rdf"
	"github.com/maguro/osm2rdf/model"
)

func TestDumpNodeBareInNT(t *testing.T) {
	// S1.
	var buf bytes.Buffer
	w := rdf.NewWriter(0, rdf.NT{}, rdf.NewPrefixTable(), &buf)
	h := NewDumpHandler(config.New())

	n := model.Node{ID: 42, Point: model.Point{Lat: 47.99, Lon: 7.84}}
	require.NoError(t, h.Dump(w, n))
	require.NoError(t, w.Flush())

	out := buf.String()
	assert.Contains(t, out, "<https://www.openstreetmap.org/node/42> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <https://www.openstreetmap.org/node> .\n")
	assert.Contains(t, out, `<https://www.openstreetmap.org/node/42> <http://www.opengis.net/ont/geosparql#hasGeometry> "POINT(7.84 47.99)"^^<http://www.opengis.net/ont/geosparql#wktLiteral> .`)
}

func TestDumpNodeBareInTTL(t *testing.T) {
	// S2.
	var buf bytes.Buffer
	w := rdf.NewWriter(0, rdf.TTL{}, rdf.NewPrefixTable(), &buf)
	h := NewDumpHandler(config.New())

	n := model.Node{ID: 42, Point: model.Point{Lat: 47.99, Lon: 7.84}}
	require.NoError(t, h.Dump(w, n))
	require.NoError(t, w.Flush())

	out := buf.String()
	assert.Contains(t, out, "osmnode:42 rdf:type osm:node .\n")
	assert.Contains(t, out, `osmnode:42 geo:hasGeometry "POINT(7.84 47.99)"^^geo:wktLiteral .`)
}

func TestDumpNodeSkippedWhenEntityDisabled(t *testing.T) {
	var buf bytes.Buffer
	w := rdf.NewWriter(0, rdf.NT{}, rdf.NewPrefixTable(), &buf)
	h := NewDumpHandler(config.New(config.WithSkipEntity(config.Node)))

	n := model.Node{ID: 1, Point: model.Point{Lat: 1, Lon: 2}}
	require.NoError(t, h.Dump(w, n))
	require.NoError(t, w.Flush())

	assert.Empty(t, buf.String())
}

func TestDumpNodeFactsSkippedLeavesNothing(t *testing.T) {
	var buf bytes.Buffer
	w := rdf.NewWriter(0, rdf.NT{}, rdf.NewPrefixTable(), &buf)
	h := NewDumpHandler(config.New(config.WithSkipFacts(config.Node)))

	n := model.Node{ID: 1, Point: model.Point{Lat: 1, Lon: 2}}
	require.NoError(t, h.Dump(w, n))
	require.NoError(t, w.Flush())

	assert.Empty(t, buf.String())
}

func TestDumpNodeHasGeometryAsWKTFalseUsesIndirectPattern(t *testing.T) {
	var buf bytes.Buffer
	w := rdf.NewWriter(0, rdf.NT{}, rdf.NewPrefixTable(), &buf)
	cfg := config.New()
	cfg.HasGeometryAsWKT = false
	h := NewDumpHandler(cfg)

	n := model.Node{ID: 1, Point: model.Point{Lat: 1, Lon: 2}}
	require.NoError(t, h.Dump(w, n))
	require.NoError(t, w.Flush())

	out := buf.String()
	assert.Contains(t, out, "hasSerialization")
	assert.Contains(t, out, "_:")
}

func TestDumpWayClosedThreeUniqueIsLineString(t *testing.T) {
	// S6.
	var buf bytes.Buffer
	w := rdf.NewWriter(0, rdf.NT{}, rdf.NewPrefixTable(), &buf)
	h := NewDumpHandler(config.New())

	a := model.Point{Lat: 0, Lon: 0}
	b := model.Point{Lat: 0, Lon: 1}
	c := model.Point{Lat: 1, Lon: 1}

	wy := model.Way{ID: 7, Geometry: model.LineString{a, b, c, a}}
	require.NoError(t, h.Dump(w, wy))
	require.NoError(t, w.Flush())

	assert.Contains(t, buf.String(), "LINESTRING(")
	assert.NotContains(t, buf.String(), "POLYGON(")
}

func TestDumpWayClosedFourUniqueIsPolygon(t *testing.T) {
	// S6.
	var buf bytes.Buffer
	w := rdf.NewWriter(0, rdf.NT{}, rdf.NewPrefixTable(), &buf)
	h := NewDumpHandler(config.New())

	a := model.Point{Lat: 0, Lon: 0}
	b := model.Point{Lat: 0, Lon: 1}
	c := model.Point{Lat: 1, Lon: 1}
	d := model.Point{Lat: 1, Lon: 0}

	wy := model.Way{ID: 8, Geometry: model.LineString{a, b, c, d, a}}
	require.NoError(t, h.Dump(w, wy))
	require.NoError(t, w.Flush())

	assert.Contains(t, buf.String(), "POLYGON(")
}

func TestDumpWayNodeGeometryEmitsPerNodePointAndImpliesOrder(t *testing.T) {
	var buf bytes.Buffer
	w := rdf.NewWriter(0, rdf.NT{}, rdf.NewPrefixTable(), &buf)
	h := NewDumpHandler(config.New(config.WithAddWayNodeGeometry(true)))

	a := model.Point{Lat: 0, Lon: 0}
	b := model.Point{Lat: 0, Lon: 1}

	wy := model.Way{ID: 10, NodeIDs: []model.NodeID{1, 2}, Geometry: model.LineString{a, b}}
	require.NoError(t, h.Dump(w, wy))
	require.NoError(t, w.Flush())

	out := buf.String()
	assert.Contains(t, out, "POINT(0 0)")
	assert.Contains(t, out, "POINT(1 0)")
	assert.Contains(t, out, "rdf#pos")
}

func TestDumpWayNodeSpatialMetadataEmitsDistanceFromPrevNode(t *testing.T) {
	var buf bytes.Buffer
	w := rdf.NewWriter(0, rdf.NT{}, rdf.NewPrefixTable(), &buf)
	h := NewDumpHandler(config.New(config.WithAddWayNodeSpatialMetadata(true)))

	a := model.Point{Lat: 0, Lon: 0}
	b := model.Point{Lat: 0, Lon: 1}

	wy := model.Way{ID: 11, NodeIDs: []model.NodeID{1, 2}, Geometry: model.LineString{a, b}}
	require.NoError(t, h.Dump(w, wy))
	require.NoError(t, w.Flush())

	out := buf.String()
	assert.Contains(t, out, "dist_from_prev_node")
	assert.Contains(t, out, "rdf#pos")
}

func TestDumpWayNodeRecordsSkippedWithoutAnyFlag(t *testing.T) {
	var buf bytes.Buffer
	w := rdf.NewWriter(0, rdf.NT{}, rdf.NewPrefixTable(), &buf)
	h := NewDumpHandler(config.New())

	a := model.Point{Lat: 0, Lon: 0}
	b := model.Point{Lat: 0, Lon: 1}

	wy := model.Way{ID: 12, NodeIDs: []model.NodeID{1, 2}, Geometry: model.LineString{a, b}}
	require.NoError(t, h.Dump(w, wy))
	require.NoError(t, w.Flush())

	assert.NotContains(t, buf.String(), "way/node")
}

func TestDumpRelationEmitsMemberTripleForNonInOutRole(t *testing.T) {
	var buf bytes.Buffer
	w := rdf.NewWriter(0, rdf.NT{}, rdf.NewPrefixTable(), &buf)
	h := NewDumpHandler(config.New())

	r := model.Relation{
		ID: 5,
		Members: []model.RelationMember{
			{ID: 1, Kind: model.MemberWay, Role: "outer"},
			{ID: 2, Kind: model.MemberNode, Role: "label"},
		},
	}
	require.NoError(t, h.Dump(w, r))
	require.NoError(t, w.Flush())

	out := buf.String()
	assert.Contains(t, out, "relation/5")
	assert.Contains(t, out, "node/2")
	assert.NotContains(t, out, "way/1")
}

func TestDumpAreaFromWayUsesWaySubject(t *testing.T) {
	var buf bytes.Buffer
	w := rdf.NewWriter(0, rdf.NT{}, rdf.NewPrefixTable(), &buf)
	h := NewDumpHandler(config.New())

	a := model.Area{
		ID:      model.AreaIDFromWay(9),
		FromWay: 9,
		Geometry: model.Polygon{Outer: model.LineString{
			{Lat: 0, Lon: 0}, {Lat: 0, Lon: 1}, {Lat: 1, Lon: 1}, {Lat: 1, Lon: 0}, {Lat: 0, Lon: 0},
		}},
	}
	require.NoError(t, h.Dump(w, a))
	require.NoError(t, w.Flush())

	out := buf.String()
	assert.Contains(t, out, "way/9")
	assert.Contains(t, out, "POLYGON(")
}

func TestDumpAreaFromRelationUsesRelationSubject(t *testing.T) {
	var buf bytes.Buffer
	w := rdf.NewWriter(0, rdf.NT{}, rdf.NewPrefixTable(), &buf)
	h := NewDumpHandler(config.New())

	a := model.Area{
		ID:           model.AreaIDFromRelation(3),
		FromRelation: 3,
		Geometry: model.Polygon{Outer: model.LineString{
			{Lat: 0, Lon: 0}, {Lat: 0, Lon: 1}, {Lat: 1, Lon: 1}, {Lat: 1, Lon: 0}, {Lat: 0, Lon: 0},
		}},
	}
	require.NoError(t, h.Dump(w, a))
	require.NoError(t, w.Flush())

	assert.Contains(t, buf.String(), "relation/3")
}

func TestDumpAreaRecordsIntoRelationsWhenApproximateEnabled(t *testing.T) {
	var buf bytes.Buffer
	w := rdf.NewWriter(0, rdf.NT{}, rdf.NewPrefixTable(), &buf)
	cfg := config.New(config.WithApproximateSpatialRels(true))
	h := NewDumpHandler(cfg)
	h.relations = newAreaRelations()

	a := model.Area{
		ID:      model.AreaIDFromWay(9),
		FromWay: 9,
		Geometry: model.Polygon{Outer: model.LineString{
			{Lat: 0, Lon: 0}, {Lat: 0, Lon: 1}, {Lat: 1, Lon: 1}, {Lat: 1, Lon: 0}, {Lat: 0, Lon: 0},
		}},
		Envelope: model.Box{Top: 1, Right: 1, Bottom: 0, Left: 0},
	}
	require.NoError(t, h.Dump(w, a))
	require.NoError(t, w.Flush())

	require.Len(t, h.relations.records, 1)
	assert.Equal(t, waySubject(9), h.relations.records[0].subject)
}

func TestDumpAreaSkipsRelationsWithoutApproximateFlag(t *testing.T) {
	var buf bytes.Buffer
	w := rdf.NewWriter(0, rdf.NT{}, rdf.NewPrefixTable(), &buf)
	h := NewDumpHandler(config.New())
	h.relations = newAreaRelations()

	a := model.Area{
		ID:      model.AreaIDFromWay(9),
		FromWay: 9,
		Geometry: model.Polygon{Outer: model.LineString{
			{Lat: 0, Lon: 0}, {Lat: 0, Lon: 1}, {Lat: 1, Lon: 1}, {Lat: 1, Lon: 0}, {Lat: 0, Lon: 0},
		}},
		Envelope: model.Box{Top: 1, Right: 1, Bottom: 0, Left: 0},
	}
	require.NoError(t, h.Dump(w, a))
	require.NoError(t, w.Flush())

	assert.Empty(t, h.relations.records)
}

func TestDumpNodeRecordsIntoRelationsAsNonArea(t *testing.T) {
	var buf bytes.Buffer
	w := rdf.NewWriter(0, rdf.NT{}, rdf.NewPrefixTable(), &buf)
	h := NewDumpHandler(config.New(config.WithApproximateSpatialRels(true)))
	h.relations = newAreaRelations()

	require.NoError(t, h.Dump(w, model.Node{ID: 1, Point: model.Point{Lat: 1, Lon: 2}}))
	require.NoError(t, w.Flush())

	require.Len(t, h.relations.records, 1)
	rec := h.relations.records[0]
	assert.Equal(t, nodeSubject(1), rec.subject)
	assert.False(t, rec.isArea)
}

func TestDumpWayRecordsIntoRelationsAsNonArea(t *testing.T) {
	var buf bytes.Buffer
	w := rdf.NewWriter(0, rdf.NT{}, rdf.NewPrefixTable(), &buf)
	h := NewDumpHandler(config.New(config.WithApproximateSpatialRels(true)))
	h.relations = newAreaRelations()

	wy := model.Way{
		ID:      5,
		NodeIDs: []model.NodeID{1, 2},
		Geometry: model.LineString{
			{Lat: 0, Lon: 0}, {Lat: 0, Lon: 1},
		},
	}
	require.NoError(t, h.Dump(w, wy))
	require.NoError(t, w.Flush())

	require.Len(t, h.relations.records, 1)
	rec := h.relations.records[0]
	assert.Equal(t, waySubject(5), rec.subject)
	assert.False(t, rec.isArea)
}

func TestDumpWayWithDerivedEnvelope(t *testing.T) {
	var buf bytes.Buffer
	w := rdf.NewWriter(0, rdf.NT{}, rdf.NewPrefixTable(), &buf)
	h := NewDumpHandler(config.New(config.WithDerivedGeometry(config.Way, config.Envelope)))

	wy := model.Way{ID: 1, Geometry: model.LineString{
		{Lat: 0, Lon: 0}, {Lat: 0, Lon: 1}, {Lat: 1, Lon: 1},
	}}
	require.NoError(t, h.Dump(w, wy))
	require.NoError(t, w.Flush())

	assert.Contains(t, buf.String(), "rdf/geom#envelope")
}
