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

package location

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maguro/osm2rdf/model"
)

func TestDenseIndexGrowsToFitLargeIDs(t *testing.T) {
	d := NewDenseIndex(0)

	p := model.Point{Lat: 1, Lon: 2}
	require.NoError(t, d.Put(1000, p))

	got, ok := d.Get(1000)
	assert.True(t, ok)
	assert.Equal(t, p, got)

	_, ok = d.Get(500)
	assert.False(t, ok, "an unset slot below a later, larger id must read as absent")
}
