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

package area

import (
	"sync"

	"github.com/maguro/osm2rdf/internal/geom"
	"github.com/maguro/osm2rdf/model"
)

// Assembler tracks multipolygon/boundary relation candidates found during
// pass one and assembles their member ways into model.Area values once all
// of them have been resolved during pass two. It also turns any closed way
// whose own geometry classifies as a polygon into a way-sourced Area,
// independent of relation membership.
//
// Observe is called only from the single pass-one goroutine. ObserveWay and
// CompletedAreas may be called concurrently by pass-two workers; both take
// the same lock, so neither is on the hot path for entities that touch no
// pending candidate.
type Assembler struct {
	mu sync.Mutex

	pending map[model.RelationID]*candidate
	wayRefs map[model.WayID][]model.RelationID

	adminOnly         bool
	dontSplitRoles    bool
	simplify          bool
	simplifyPerRing   bool
	simplifyDeviation float64
}

// Option configures an Assembler under construction.
type Option func(*Assembler)

// WithAdminRelationsOnly restricts Observe to relations tagged
// boundary=administrative, discarding every other multipolygon/boundary
// candidate.
func WithAdminRelationsOnly(only bool) Option {
	return func(a *Assembler) { a.adminOnly = only }
}

// WithDontUseInnerOuterGeometries makes Observe ignore each member way's
// role, joining every member into the same ring-assembly pool instead of
// splitting outer from inner.
func WithDontUseInnerOuterGeometries(dont bool) Option {
	return func(a *Assembler) { a.dontSplitRoles = dont }
}

// WithSimplifyGeometries enables ring simplification on assembled areas,
// using deviation (in degrees) as the tolerance passed to
// geom.SimplifyLineString.
func WithSimplifyGeometries(deviation float64) Option {
	return func(a *Assembler) {
		a.simplify = true
		a.simplifyDeviation = deviation
	}
}

// WithSimplifyGeometriesInnerOuter extends ring simplification, when
// enabled, to an assembled area's inner rings as well as its outer ring.
// Without it, simplification (and its deviation tolerance) only ever
// touches the outer boundary.
func WithSimplifyGeometriesInnerOuter(separate bool) Option {
	return func(a *Assembler) { a.simplifyPerRing = separate }
}

type candidate struct {
	relation *model.Relation
	outer    []model.WayID
	inner    []model.WayID
	geometry map[model.WayID]model.LineString
}

// NewAssembler creates an empty assembler configured by opts.
func NewAssembler(opts ...Option) *Assembler {
	a := &Assembler{
		pending: make(map[model.RelationID]*candidate),
		wayRefs: make(map[model.WayID][]model.RelationID),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Observe registers r as a multipolygon/boundary candidate if its "type"
// tag says so, recording which ways it references. With
// WithAdminRelationsOnly, a relation additionally has to carry
// boundary=administrative to be recorded. It reports whether r was
// recorded.
func (a *Assembler) Observe(r *model.Relation) bool {
	t, _ := r.Tags.Get("type")
	if t != "multipolygon" && t != "boundary" {
		return false
	}

	if a.adminOnly {
		if b, _ := r.Tags.Get("boundary"); b != "administrative" {
			return false
		}
	}

	c := &candidate{relation: r, geometry: make(map[model.WayID]model.LineString)}

	for _, m := range r.Members {
		if m.Kind != model.MemberWay {
			continue
		}

		wayID := model.WayID(m.ID)

		if a.dontSplitRoles {
			c.outer = append(c.outer, wayID)
			continue
		}

		switch m.Role {
		case "inner":
			c.inner = append(c.inner, wayID)
		default:
			// spec.md §4.8: any role other than exactly "inner" joins the
			// outer assembly, "outer" and "" included.
			c.outer = append(c.outer, wayID)
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.pending[r.ID] = c

	for _, wayID := range append(append([]model.WayID{}, c.outer...), c.inner...) {
		a.wayRefs[wayID] = append(a.wayRefs[wayID], r.ID)
	}

	return true
}

// ObserveWay records w's resolved geometry against any pending relation
// candidate that references it, and returns the way-sourced Area for w
// when w is itself closed and classifies as a polygon.
func (a *Assembler) ObserveWay(w *model.Way) (model.Area, bool) {
	a.mu.Lock()

	for _, relID := range a.wayRefs[w.ID] {
		if c, ok := a.pending[relID]; ok {
			c.geometry[w.ID] = w.Geometry
		}
	}

	a.mu.Unlock()

	if geom.ClassifyWayGeometry(w.Geometry, w.Closed()) != geom.PolygonKind {
		return model.Area{}, false
	}

	outer := model.LineString(w.Geometry)
	if a.simplify {
		outer = model.LineString(geom.SimplifyLineString(outer, a.simplifyDeviation))
	}

	envelope := outer.Envelope()
	if envelope == nil {
		return model.Area{}, false
	}

	return model.Area{
		ID:       model.AreaIDFromWay(w.ID),
		Tags:     w.Tags,
		Geometry: model.Polygon{Outer: outer},
		Envelope: *envelope,
		FromWay:  w.ID,
	}, true
}

// CompletedAreas drains and returns every pending relation candidate whose
// member ways have all been observed, assembling each into a model.Area.
// Candidates that fail to assemble into closed rings are dropped; a
// production DAG solver would report them, but that solver is out of scope
// (spec.md §1).
func (a *Assembler) CompletedAreas() []model.Area {
	a.mu.Lock()
	defer a.mu.Unlock()

	var areas []model.Area

	for id, c := range a.pending {
		if !c.complete() {
			continue
		}

		if area, ok := c.assemble(a.simplify, a.simplifyPerRing, a.simplifyDeviation); ok {
			areas = append(areas, area)
		}

		delete(a.pending, id)

		for wayID, refs := range a.wayRefs {
			a.wayRefs[wayID] = removeRelationID(refs, id)
		}
	}

	return areas
}

func (c *candidate) complete() bool {
	for _, wayID := range c.outer {
		if _, ok := c.geometry[wayID]; !ok {
			return false
		}
	}

	for _, wayID := range c.inner {
		if _, ok := c.geometry[wayID]; !ok {
			return false
		}
	}

	return true
}

func (c *candidate) assemble(simplify, simplifyPerRing bool, deviation float64) (model.Area, bool) {
	outerSegments := make([]model.LineString, 0, len(c.outer))
	for _, wayID := range c.outer {
		outerSegments = append(outerSegments, c.geometry[wayID])
	}

	outerRings, ok := assembleRings(outerSegments)
	if !ok || len(outerRings) == 0 {
		return model.Area{}, false
	}

	var innerRings []model.LineString

	if len(c.inner) > 0 {
		innerSegments := make([]model.LineString, 0, len(c.inner))
		for _, wayID := range c.inner {
			innerSegments = append(innerSegments, c.geometry[wayID])
		}

		rings, ok := assembleRings(innerSegments)
		if !ok {
			return model.Area{}, false
		}

		innerRings = rings
	}

	outer := outerRings[0]

	if simplify {
		outer = model.LineString(geom.SimplifyLineString(outer, deviation))

		if simplifyPerRing {
			for i, ring := range innerRings {
				innerRings[i] = model.LineString(geom.SimplifyLineString(ring, deviation))
			}
		}
	}

	envelope := model.LineString(outer).Envelope()
	if envelope == nil {
		return model.Area{}, false
	}

	return model.Area{
		ID:           model.AreaIDFromRelation(c.relation.ID),
		Tags:         c.relation.Tags,
		Geometry:     model.Polygon{Outer: outer, Inner: innerRings},
		Envelope:     *envelope,
		FromRelation: c.relation.ID,
	}, true
}

func removeRelationID(refs []model.RelationID, id model.RelationID) []model.RelationID {
	out := refs[:0]

	for _, r := range refs {
		if r != id {
			out = append(out, r)
		}
	}

	return out
}
