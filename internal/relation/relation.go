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

// Package relation exposes the osm2rdf geometric-relation predicate
// vocabulary (contains/intersects, area and non-area variants) and a
// bounding-box-only approximation of the two predicates. A precise
// containment/intersection engine walks a spatial DAG built from every
// entity's exact geometry; that solver is out of scope (spec.md §1), but
// the vocabulary it would populate, and a coarse stand-in for it, are not.
package relation

import (
	"github.com/maguro/osm2rdf/internal/rdf"
	"github.com/maguro/osm2rdf/model"
)

// Predicate IRIs, grounded on the C++ writer's IRI__OSM2RDF_* constant
// generation block.
var (
	ContainsArea      = rdf.IRI{PrefixLabel: rdf.PrefixOSM2RDF, Local: "contains_area"}
	ContainsNonArea   = rdf.IRI{PrefixLabel: rdf.PrefixOSM2RDF, Local: "contains_nonarea"}
	IntersectsArea    = rdf.IRI{PrefixLabel: rdf.PrefixOSM2RDF, Local: "intersects_area"}
	IntersectsNonArea = rdf.IRI{PrefixLabel: rdf.PrefixOSM2RDF, Local: "intersects_nonarea"}
)

// Contains reports whether outer's envelope fully covers inner's, the
// coarse bounding-box stand-in for the real geometric containment test.
// A true positive here is not a guarantee the finer geometry actually
// nests; a negative is, since a box that doesn't contain another box's
// envelope certainly doesn't contain its geometry.
func Contains(outer, inner *model.Box) bool {
	return outer.Top >= inner.Top && outer.Bottom <= inner.Bottom &&
		outer.Left <= inner.Left && outer.Right >= inner.Right
}

// Intersects reports whether two envelopes overlap. It is a thin wrapper
// over model.Box.Intersects, kept here so callers reason about the
// contains/intersects predicate pair through one package.
func Intersects(a, b *model.Box) bool {
	return a.Intersects(b)
}
