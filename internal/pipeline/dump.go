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
	"fmt"
	"log/slog"
	"strconv"

	"github.com/maguro/osm2rdf/internal/config"
	"github.com/maguro/osm2rdf/internal/geom"
	"github.com/maguro/osm2rdf/internal/rdf"
	"github.com/maguro/osm2rdf/model"
)

// DumpHandler projects a resolved entity into the triples spec.md §4.8
// describes for its kind, writing them to a worker's *rdf.Writer.
type DumpHandler struct {
	cfg       *config.Config
	tags      TagProjector
	relations *areaRelations
}

// NewDumpHandler returns a handler bound to cfg's entity/derived-geometry
// flags.
func NewDumpHandler(cfg *config.Config) *DumpHandler {
	return &DumpHandler{cfg: cfg}
}

// writeTriple writes s p o, treating one of the four recoverable
// term-encoding errors (spec.md §6) the way cfg.Strict says to: logged and
// skipped by default, or propagated to abort the run when Strict is set.
// Anything else w.WriteTriple can fail with (a write error on the
// underlying spool file, for instance) always propagates.
func writeTriple(w *rdf.Writer, cfg *config.Config, s, p, o rdf.Term) error {
	err := w.WriteTriple(s, p, o)
	if err == nil {
		return nil
	}

	if !rdf.IsEncodingError(err) || cfg.Strict {
		return err
	}

	slog.Warn("skipping triple with invalid encoding", "error", err)

	return nil
}

var (
	rdfType   = rdf.IRI{PrefixLabel: rdf.PrefixRDF, Local: "type"}
	hasGeom   = rdf.IRI{PrefixLabel: rdf.PrefixGeoSPARQL, Local: "hasGeometry"}
	hasSer    = rdf.IRI{PrefixLabel: rdf.PrefixGeoSPARQL, Local: "hasSerialization"}
	wktDType  = rdf.IRI{PrefixLabel: rdf.PrefixGeoSPARQL, Local: "wktLiteral"}
	xsdInt    = rdf.IRI{PrefixLabel: rdf.PrefixXMLSchema, Local: "integer"}
	osmNodeTy = rdf.IRI{PrefixLabel: rdf.PrefixOSM, Local: "node"}
	osmWayTy  = rdf.IRI{PrefixLabel: rdf.PrefixOSM, Local: "way"}
	osmRelTy  = rdf.IRI{PrefixLabel: rdf.PrefixOSM, Local: "relation"}

	envelopeIRI = rdf.IRI{PrefixLabel: rdf.PrefixOSM2RDFGeom, Local: "envelope"}
	hullIRI     = rdf.IRI{PrefixLabel: rdf.PrefixOSM2RDFGeom, Local: "convex_hull"}
	obbIRI      = rdf.IRI{PrefixLabel: rdf.PrefixOSM2RDFGeom, Local: "obb"}
	ratioIRI    = rdf.IRI{PrefixLabel: rdf.PrefixOSM2RDF, Local: "envelope_area_ratio"}

	wayIsClosed    = rdf.IRI{PrefixLabel: rdf.PrefixOSMWay, Local: "is_closed"}
	wayNodeCount   = rdf.IRI{PrefixLabel: rdf.PrefixOSMWay, Local: "nodeCount"}
	wayUniqueCount = rdf.IRI{PrefixLabel: rdf.PrefixOSMWay, Local: "uniqueNodeCount"}
	wayNode        = rdf.IRI{PrefixLabel: rdf.PrefixOSMWay, Local: "node"}
	posIRI         = rdf.IRI{PrefixLabel: rdf.PrefixOSM2RDF, Local: "pos"}
	distPrevIRI    = rdf.IRI{PrefixLabel: rdf.PrefixOSM2RDFGeom, Local: "dist_from_prev_node"}
	xsdDouble      = rdf.IRI{PrefixLabel: rdf.PrefixXMLSchema, Local: "double"}
)

// Dump writes every triple spec.md §4.8 defines for e.
func (h *DumpHandler) Dump(w *rdf.Writer, e model.Entity) error {
	switch v := e.(type) {
	case model.Node:
		return h.dumpNode(w, v)
	case model.Way:
		return h.dumpWay(w, v)
	case model.Relation:
		return h.dumpRelation(w, v)
	case model.Area:
		return h.dumpArea(w, v)
	default:
		return fmt.Errorf("pipeline: unknown entity type %T", e)
	}
}

func nodeSubject(id model.NodeID) rdf.IRI {
	return rdf.IRI{PrefixLabel: rdf.PrefixOSMNode, Local: strconv.FormatUint(uint64(id), 10)}
}

func waySubject(id model.WayID) rdf.IRI {
	return rdf.IRI{PrefixLabel: rdf.PrefixOSMWay, Local: strconv.FormatUint(uint64(id), 10)}
}

func relationSubject(id model.RelationID) rdf.IRI {
	return rdf.IRI{PrefixLabel: rdf.PrefixOSMRelation, Local: strconv.FormatUint(uint64(id), 10)}
}

func memberSubject(kind model.RelationMemberKind, id uint64) rdf.Term {
	switch kind {
	case model.MemberNode:
		return nodeSubject(model.NodeID(id))
	case model.MemberWay:
		return waySubject(model.WayID(id))
	case model.MemberRelation:
		return relationSubject(model.RelationID(id))
	default:
		return rdf.IRI{PrefixLabel: rdf.PrefixOSM, Local: strconv.FormatUint(id, 10)}
	}
}

// simplified reduces pts through geom.SimplifyLineString when
// --simplify-wkt is set, leaving pts untouched otherwise.
func (h *DumpHandler) simplified(pts []model.Point) []model.Point {
	if !h.cfg.SimplifyWKT {
		return pts
	}

	return geom.SimplifyLineString(pts, h.cfg.WKTDeviation)
}

// writeGeometry emits the hasGeometry triple for subject's WKT value,
// either directly (config.Config.HasGeometryAsWKT) or through the
// indirect geo:hasSerialization pattern via a fresh blank node.
func (h *DumpHandler) writeGeometry(w *rdf.Writer, subject rdf.Term, wkt string) error {
	literal := rdf.TypedLiteral(wkt, wktDType)

	if h.cfg.HasGeometryAsWKT {
		return writeTriple(w, h.cfg, subject, hasGeom, literal)
	}

	bn := w.NewBlankNode()
	if err := writeTriple(w, h.cfg, subject, hasGeom, bn); err != nil {
		return err
	}

	return writeTriple(w, h.cfg, bn, hasSer, literal)
}

func (h *DumpHandler) dumpNode(w *rdf.Writer, n model.Node) error {
	if !h.cfg.IncludeEntity(config.Node) {
		return nil
	}

	subject := nodeSubject(n.ID)

	if h.cfg.IncludeFacts(config.Node) {
		if err := writeTriple(w, h.cfg, subject, rdfType, osmNodeTy); err != nil {
			return err
		}

		if err := h.writeGeometry(w, subject, geom.PointWKTPrecision(n.Point, h.cfg.WKTPrecision)); err != nil {
			return err
		}

		if err := h.tags.Project(w, subject, n.Tags, h.cfg); err != nil {
			return err
		}

		if err := h.writeDerivedGeometry(w, config.Node, subject, []model.Point{n.Point}); err != nil {
			return err
		}

		if h.relations != nil && h.cfg.ApproximateSpatialRels && h.cfg.IncludeGeomRelations(config.Node) {
			h.relations.record(subject, *model.LineString{n.Point}.Envelope(), false)
		}
	}

	return nil
}

func (h *DumpHandler) dumpWay(w *rdf.Writer, wy model.Way) error {
	if !h.cfg.IncludeEntity(config.Way) {
		return nil
	}

	subject := waySubject(wy.ID)

	if !h.cfg.IncludeFacts(config.Way) {
		return nil
	}

	if err := writeTriple(w, h.cfg, subject, rdfType, osmWayTy); err != nil {
		return err
	}

	closed := wy.Closed()

	wkt, _, err := geom.WayWKTPrecision(h.simplified(wy.Geometry), closed, h.cfg.WKTPrecision)
	if err != nil {
		return fmt.Errorf("way %d: %w", wy.ID, err)
	}

	if err := h.writeGeometry(w, subject, wkt); err != nil {
		return err
	}

	if err := h.tags.Project(w, subject, wy.Tags, h.cfg); err != nil {
		return err
	}

	if h.cfg.AddWayMetadata {
		unique := len(geom.DedupeConsecutive(wy.Geometry))

		yesNo := "no"
		if closed {
			yesNo = "yes"
		}

		if err := writeTriple(w, h.cfg, subject, wayIsClosed, rdf.PlainLiteral(yesNo)); err != nil {
			return err
		}

		if err := writeTriple(w, h.cfg, subject, wayNodeCount, rdf.TypedLiteral(strconv.Itoa(len(wy.NodeIDs)), xsdInt)); err != nil {
			return err
		}

		if err := writeTriple(w, h.cfg, subject, wayUniqueCount, rdf.TypedLiteral(strconv.Itoa(unique), xsdInt)); err != nil {
			return err
		}
	}

	if h.cfg.AddWayNodeGeometry || h.cfg.AddWayNodeOrder || h.cfg.AddWayNodeSpatialMetadata {
		if err := h.writeWayNodeRecords(w, subject, wy); err != nil {
			return err
		}
	}

	if h.relations != nil && h.cfg.ApproximateSpatialRels && h.cfg.IncludeGeomRelations(config.Way) {
		if env := wy.Geometry.Envelope(); env != nil {
			h.relations.record(subject, *env, false)
		}
	}

	return h.writeDerivedGeometry(w, config.Way, subject, wy.Geometry)
}

// writeWayNodeRecords emits one blank-node record per referenced node,
// carrying osmway:node and, depending on which flags are set,
// osm2rdf:pos (starting at 1), the node's own point geometry, and its
// great-circle distance from the previous node on the way. Requesting
// either geometry or spatial metadata also orders the records, since
// both are only meaningful relative to a node's position on the way.
func (h *DumpHandler) writeWayNodeRecords(w *rdf.Writer, subject rdf.IRI, wy model.Way) error {
	order := h.cfg.AddWayNodeOrder || h.cfg.AddWayNodeGeometry || h.cfg.AddWayNodeSpatialMetadata

	for i, id := range wy.NodeIDs {
		bn := w.NewBlankNode()

		if err := writeTriple(w, h.cfg, subject, wayNode, bn); err != nil {
			return err
		}

		if err := writeTriple(w, h.cfg, bn, wayNode, nodeSubject(id)); err != nil {
			return err
		}

		if order {
			if err := writeTriple(w, h.cfg, bn, posIRI, rdf.TypedLiteral(strconv.Itoa(i+1), xsdInt)); err != nil {
				return err
			}
		}

		if h.cfg.AddWayNodeGeometry && i < len(wy.Geometry) {
			if err := h.writeGeometry(w, bn, geom.PointWKTPrecision(wy.Geometry[i], h.cfg.WKTPrecision)); err != nil {
				return err
			}
		}

		if h.cfg.AddWayNodeSpatialMetadata && i > 0 && i < len(wy.Geometry) {
			dist := geom.DistanceMeters(wy.Geometry[i-1], wy.Geometry[i])
			if err := writeTriple(w, h.cfg, bn, distPrevIRI, rdf.TypedLiteral(strconv.FormatFloat(dist, 'f', -1, 64), xsdDouble)); err != nil {
				return err
			}
		}
	}

	return nil
}

func (h *DumpHandler) dumpRelation(w *rdf.Writer, r model.Relation) error {
	if !h.cfg.IncludeEntity(config.Relation) {
		return nil
	}

	subject := relationSubject(r.ID)

	if !h.cfg.IncludeFacts(config.Relation) {
		return nil
	}

	if err := writeTriple(w, h.cfg, subject, rdfType, osmRelTy); err != nil {
		return err
	}

	if err := h.tags.Project(w, subject, r.Tags, h.cfg); err != nil {
		return err
	}

	for i, m := range r.Members {
		if m.Role == "" || m.Role == "outer" || m.Role == "inner" {
			continue
		}

		predicate := rdf.IRI{PrefixLabel: rdf.PrefixOSMRelation, Local: m.Role}

		if err := writeTriple(w, h.cfg, subject, predicate, memberSubject(m.Kind, m.ID)); err != nil {
			return err
		}

		if h.cfg.AddRelationBorderMembers {
			bn := w.NewBlankNode()

			if err := writeTriple(w, h.cfg, subject, predicate, bn); err != nil {
				return err
			}

			if err := writeTriple(w, h.cfg, bn, posIRI, rdf.TypedLiteral(strconv.Itoa(i+1), xsdInt)); err != nil {
				return err
			}
		}
	}

	return nil
}

func (h *DumpHandler) dumpArea(w *rdf.Writer, a model.Area) error {
	if !h.cfg.IncludeEntity(config.Area) {
		return nil
	}

	if !h.cfg.IncludeFacts(config.Area) {
		return nil
	}

	var subject rdf.IRI
	if a.ID.FromWay() {
		subject = waySubject(a.FromWay)
	} else {
		subject = relationSubject(a.FromRelation)
	}

	poly := a.Geometry
	if h.cfg.SimplifyWKT {
		inner := make([]model.LineString, len(poly.Inner))
		for i, ring := range poly.Inner {
			inner[i] = h.simplified(ring)
		}

		poly = model.Polygon{Outer: h.simplified(poly.Outer), Inner: inner}
	}

	wkt, err := geom.PolygonWKTPrecision(poly, h.cfg.WKTPrecision)
	if err != nil {
		return fmt.Errorf("area %d: %w", a.ID, err)
	}

	if err := h.writeGeometry(w, subject, wkt); err != nil {
		return err
	}

	if err := h.tags.Project(w, subject, a.Tags, h.cfg); err != nil {
		return err
	}

	if h.relations != nil && h.cfg.ApproximateSpatialRels && h.cfg.IncludeGeomRelations(config.Area) {
		h.relations.record(subject, a.Envelope, true)
	}

	if !h.cfg.AddAreaEnvelopeRatio {
		return nil
	}

	return h.writeAreaEnvelopeRatio(w, subject, a)
}

func (h *DumpHandler) writeAreaEnvelopeRatio(w *rdf.Writer, subject rdf.IRI, a model.Area) error {
	env, err := geom.Envelope(a.Geometry.Outer)
	if err != nil {
		return nil //nolint:nilerr // too few points to form an envelope; skip the optional ratio
	}

	ratio := polygonArea(env.Outer) / polygonArea(a.Geometry.Outer)

	return writeTriple(w, h.cfg, subject, ratioIRI, rdf.TypedLiteral(strconv.FormatFloat(ratio, 'f', -1, 64), xsdDouble))
}

// polygonArea computes the shoelace-formula area of a closed ring in
// degree-squared units; good enough for the envelope/area ratio, which is
// a dimensionless comparison and cancels the degree-to-distance factor.
func polygonArea(ring model.LineString) float64 {
	if len(ring) < 3 {
		return 0
	}

	var sum float64
	for i := 0; i < len(ring)-1; i++ {
		sum += float64(ring[i].Lon)*float64(ring[i+1].Lat) - float64(ring[i+1].Lon)*float64(ring[i].Lat)
	}

	if sum < 0 {
		sum = -sum
	}

	return sum / 2
}

func (h *DumpHandler) writeDerivedGeometry(w *rdf.Writer, kind config.EntityKind, subject rdf.Term, pts []model.Point) error {
	if h.cfg.IncludeDerivedGeometry(kind, config.Envelope) {
		if err := h.writeDerivedWKT(w, subject, envelopeIRI, pts, geom.Envelope); err != nil {
			return err
		}
	}

	if h.cfg.IncludeDerivedGeometry(kind, config.ConvexHull) {
		if err := h.writeDerivedWKT(w, subject, hullIRI, pts, geom.ConvexHull); err != nil {
			return err
		}
	}

	if h.cfg.IncludeDerivedGeometry(kind, config.OrientedBoundingBox) {
		if err := h.writeDerivedWKT(w, subject, obbIRI, pts, geom.OrientedBoundingBox); err != nil {
			return err
		}
	}

	return nil
}

func (h *DumpHandler) writeDerivedWKT(
	w *rdf.Writer,
	subject rdf.Term,
	predicate rdf.IRI,
	pts []model.Point,
	derive func([]model.Point) (model.Polygon, error),
) error {
	poly, err := derive(pts)
	if err != nil {
		return nil //nolint:nilerr // too few points for this derivation; skip it rather than fail the whole entity
	}

	wkt, err := geom.PolygonWKTPrecision(poly, h.cfg.WKTPrecision)
	if err != nil {
		return err
	}

	return writeTriple(w, h.cfg, subject, predicate, rdf.TypedLiteral(wkt, wktDType))
}
