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

package rdf

import "sort"

// Well-known prefix labels, mirroring the namespace table every osm2rdf
// writer starts from.
const (
	PrefixGeoSPARQL      = "geo"
	PrefixWikidataEntity = "wd"
	PrefixXMLSchema      = "xsd"
	PrefixRDF            = "rdf"
	PrefixOpenGIS        = "ogc"
	PrefixOSM2RDF        = "osm2rdf"
	PrefixOSM2RDFGeom    = "osm2rdfgeom"
	PrefixOSM            = "osm"
	PrefixOSMNode        = "osmnode"
	PrefixOSMRelation    = "osmrel"
	PrefixOSMTag         = "osmt"
	PrefixOSMWay         = "osmway"
)

// PrefixTable maps short prefix labels to the IRI namespace they stand
// for. It is built once per run and shared, read-only, across every
// worker's Writer.
type PrefixTable struct {
	byLabel map[string]string
}

// NewPrefixTable returns a PrefixTable preloaded with the namespaces this
// system always emits.
func NewPrefixTable() *PrefixTable {
	t := &PrefixTable{byLabel: make(map[string]string, 16)}

	t.mustAdd(PrefixGeoSPARQL, "http://www.opengis.net/ont/geosparql#")
	t.mustAdd(PrefixWikidataEntity, "http://www.wikidata.org/entity/")
	t.mustAdd(PrefixXMLSchema, "http://www.w3.org/2001/XMLSchema#")
	t.mustAdd(PrefixRDF, "http://www.w3.org/1999/02/22-rdf-syntax-ns#")
	t.mustAdd(PrefixOpenGIS, "http://www.opengis.net/rdf#")
	t.mustAdd(PrefixOSM2RDF, "https://osm2rdf.cs.uni-freiburg.de/rdf#")
	t.mustAdd(PrefixOSM2RDFGeom, "https://osm2rdf.cs.uni-freiburg.de/rdf/geom#")
	t.mustAdd(PrefixOSM, "https://www.openstreetmap.org/")
	t.mustAdd(PrefixOSMNode, "https://www.openstreetmap.org/node/")
	t.mustAdd(PrefixOSMRelation, "https://www.openstreetmap.org/relation/")
	t.mustAdd(PrefixOSMTag, "https://www.openstreetmap.org/wiki/Key:")
	t.mustAdd(PrefixOSMWay, "https://www.openstreetmap.org/way/")

	return t
}

func (t *PrefixTable) mustAdd(label, namespace string) {
	if !t.Add(label, namespace) {
		panic("rdf: duplicate well-known prefix " + label)
	}
}

// Add registers a new prefix. It reports false, without overwriting
// anything, if the label is already taken.
func (t *PrefixTable) Add(label, namespace string) bool {
	if _, ok := t.byLabel[label]; ok {
		return false
	}

	t.byLabel[label] = namespace

	return true
}

// Resolve returns the namespace a label stands for, and whether it is
// known.
func (t *PrefixTable) Resolve(label string) (string, bool) {
	ns, ok := t.byLabel[label]

	return ns, ok
}

// Labels returns every registered label in sorted order, so header output
// is deterministic across runs.
func (t *PrefixTable) Labels() []string {
	labels := make([]string, 0, len(t.byLabel))
	for label := range t.byLabel {
		labels = append(labels, label)
	}

	sort.Strings(labels)

	return labels
}
