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

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterWriteTripleNT(t *testing.T) {
	// S1.
	var buf bytes.Buffer
	w := NewWriter(0, NT{}, NewPrefixTable(), &buf)

	subject := IRI{PrefixLabel: PrefixOSMNode, Local: "42"}
	require.NoError(t, w.WriteTriple(
		subject,
		IRI{PrefixLabel: PrefixRDF, Local: "type"},
		IRI{PrefixLabel: PrefixOSM, Local: "node"},
	))
	require.NoError(t, w.Flush())

	assert.Equal(t,
		"<https://www.openstreetmap.org/node/42> "+
			"<http://www.w3.org/1999/02/22-rdf-syntax-ns#type> "+
			"<https://www.openstreetmap.org/node> .\n",
		buf.String())
}

func TestWriterWriteTripleTTL(t *testing.T) {
	// S2.
	var buf bytes.Buffer
	w := NewWriter(0, TTL{}, NewPrefixTable(), &buf)

	require.NoError(t, w.WriteTriple(
		IRI{PrefixLabel: PrefixOSMNode, Local: "42"},
		IRI{PrefixLabel: PrefixRDF, Local: "type"},
		IRI{PrefixLabel: PrefixOSM, Local: "node"},
	))
	require.NoError(t, w.Flush())

	assert.Equal(t, "osmnode:42 rdf:type osm:node .\n", buf.String())
}

func TestWriterWriteTripleWithWKTLiteral(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(0, TTL{}, NewPrefixTable(), &buf)

	wkt := TypedLiteral("POINT(7.84 47.99)", IRI{PrefixLabel: PrefixGeoSPARQL, Local: "wktLiteral"})

	require.NoError(t, w.WriteTriple(
		IRI{PrefixLabel: PrefixOSMNode, Local: "42"},
		IRI{PrefixLabel: PrefixGeoSPARQL, Local: "hasGeometry"},
		wkt,
	))
	require.NoError(t, w.Flush())

	assert.Equal(t, `osmnode:42 geo:hasGeometry "POINT(7.84 47.99)"^^geo:wktLiteral .`+"\n", buf.String())
}

func TestWriterLiteralEscaping(t *testing.T) {
	// S3.
	var buf bytes.Buffer
	w := NewWriter(0, TTL{}, NewPrefixTable(), &buf)

	require.NoError(t, w.WriteTriple(
		IRI{PrefixLabel: PrefixOSMNode, Local: "1"},
		IRI{PrefixLabel: PrefixOSMTag, Local: "note"},
		PlainLiteral("line1\nline2"),
	))
	require.NoError(t, w.Flush())

	assert.Contains(t, buf.String(), `"line1\nline2"`)
}

func TestWriterNewBlankNodeIncrementsStats(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(2, NT{}, NewPrefixTable(), &buf)

	b0 := w.NewBlankNode()
	b1 := w.NewBlankNode()

	assert.Equal(t, BlankNode{ThreadID: 2, Counter: 0}, b0)
	assert.Equal(t, BlankNode{ThreadID: 2, Counter: 1}, b1)
	assert.Equal(t, uint64(2), w.Stats().BlankNodes)
}

func TestWriterHeaderCountsTowardLineStats(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(0, TTL{}, NewPrefixTable(), &buf)

	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteTriple(
		IRI{PrefixLabel: PrefixOSMNode, Local: "1"},
		IRI{PrefixLabel: PrefixRDF, Local: "type"},
		IRI{PrefixLabel: PrefixOSM, Local: "node"},
	))

	stats := w.Stats()
	assert.Equal(t, stats.HeaderLines+stats.Triples(), stats.Lines) // invariant 7
	assert.Equal(t, uint64(1), stats.Triples())
}
