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
	"os"
	"sync"

	"github.com/maguro/osm2rdf/internal/rdf"
	"github.com/maguro/osm2rdf/internal/relation"
	"github.com/maguro/osm2rdf/model"
)

// areaRecord is one entity's subject and bounding envelope, captured at
// dump time so the driver can compare every pair once pass 2 finishes.
// isArea distinguishes an area (a relation/way-sourced polygon) from a
// non-area (a plain node or way), which decides whether a qualifying pair
// gets the _area or _nonarea predicate.
type areaRecord struct {
	subject  rdf.IRI
	envelope model.Box
	isArea   bool
}

// areaRelations collects area records across every pass-2 worker and turns
// them into contains/intersects triples. A precise version of this would
// walk a spatial DAG of the areas as they complete; this instead buffers
// every area's envelope and compares pairs once the run is otherwise done,
// which is the bounding-box approximation --approximate-spatial-rels asks
// for rather than the real thing.
type areaRelations struct {
	mu      sync.Mutex
	records []areaRecord
}

func newAreaRelations() *areaRelations {
	return &areaRelations{}
}

func (a *areaRelations) record(subject rdf.IRI, envelope model.Box, isArea bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.records = append(a.records, areaRecord{subject: subject, envelope: envelope, isArea: isArea})
}

// writeTriples runs the pairwise comparison and writes one contains or
// intersects triple per qualifying ordered pair, picking the _area or
// _nonarea predicate variant by the contained (inner) record's own kind.
// Called after every pass-2 worker has finished, so w can be any one
// worker's writer without a race.
func (a *areaRelations) writeTriples(w *rdf.Writer) error {
	a.mu.Lock()
	records := a.records
	a.mu.Unlock()

	for i := range records {
		for j := range records {
			if i == j {
				continue
			}

			outer, inner := records[i], records[j]

			contains, intersects := relation.ContainsArea, relation.IntersectsArea
			if !inner.isArea {
				contains, intersects = relation.ContainsNonArea, relation.IntersectsNonArea
			}

			switch {
			case relation.Contains(&outer.envelope, &inner.envelope):
				if err := w.WriteTriple(outer.subject, contains, inner.subject); err != nil {
					return err
				}
			case relation.Intersects(&outer.envelope, &inner.envelope):
				if err := w.WriteTriple(outer.subject, intersects, inner.subject); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// writeDotFile renders the same pairwise comparison as a Graphviz digraph,
// one solid edge per contains pair and one dashed edge per intersects pair,
// for --write-dag-dot-files. Nothing in the retrieved dependency set speaks
// Graphviz, so this writes the text format directly rather than through a
// library.
func (a *areaRelations) writeDotFile(path string) error {
	a.mu.Lock()
	records := a.records
	a.mu.Unlock()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing DAG dot file: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, "digraph relations {"); err != nil {
		return err
	}

	for i := range records {
		for j := range records {
			if i == j {
				continue
			}

			outer, inner := records[i], records[j]

			switch {
			case relation.Contains(&outer.envelope, &inner.envelope):
				if _, err := fmt.Fprintf(f, "  %q -> %q;\n", dotLabel(outer.subject), dotLabel(inner.subject)); err != nil {
					return err
				}
			case relation.Intersects(&outer.envelope, &inner.envelope):
				if _, err := fmt.Fprintf(f, "  %q -> %q [style=dashed];\n", dotLabel(outer.subject), dotLabel(inner.subject)); err != nil {
					return err
				}
			}
		}
	}

	if _, err := fmt.Fprintln(f, "}"); err != nil {
		return err
	}

	return f.Close()
}

func dotLabel(subject rdf.IRI) string {
	return subject.PrefixLabel + ":" + subject.Local
}
