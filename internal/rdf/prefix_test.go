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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrefixTableAddAndResolve(t *testing.T) {
	// Invariant 6.
	tbl := &PrefixTable{byLabel: make(map[string]string)}

	assert.True(t, tbl.Add("ex", "http://example.com/"))

	ns, ok := tbl.Resolve("ex")
	assert.True(t, ok)
	assert.Equal(t, "http://example.com/", ns)

	assert.False(t, tbl.Add("ex", "http://other.example.com/"))

	ns, ok = tbl.Resolve("ex")
	assert.True(t, ok)
	assert.Equal(t, "http://example.com/", ns)
}

func TestPrefixTableResolveUnknown(t *testing.T) {
	tbl := &PrefixTable{byLabel: make(map[string]string)}
	_, ok := tbl.Resolve("missing")
	assert.False(t, ok)
}

func TestNewPrefixTableWellKnownPrefixes(t *testing.T) {
	tbl := NewPrefixTable()

	ns, ok := tbl.Resolve(PrefixOSMNode)
	assert.True(t, ok)
	assert.Equal(t, "https://www.openstreetmap.org/node/", ns)

	ns, ok = tbl.Resolve(PrefixGeoSPARQL)
	assert.True(t, ok)
	assert.Equal(t, "http://www.opengis.net/ont/geosparql#", ns)
}

func TestPrefixTableLabelsSorted(t *testing.T) {
	tbl := &PrefixTable{byLabel: make(map[string]string)}
	tbl.Add("z", "http://z/")
	tbl.Add("a", "http://a/")
	tbl.Add("m", "http://m/")

	assert.Equal(t, []string{"a", "m", "z"}, tbl.Labels())
}
