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

func TestEnvelopeCoversAllPoints(t *testing.T) {
	a, b, c := pt(0, 0), pt(1, 2), pt(-1, -2)

	env, err := Envelope([]model.Point{a, b, c})
	require.NoError(t, err)
	require.Len(t, env.Outer, 5)

	box := model.InitialBox()
	for _, p := range env.Outer {
		box.ExpandWithPoint(p)
	}

	for _, p := range []model.Point{a, b, c} {
		assert.True(t, box.Contains(p.Lat, p.Lon))
	}
}

func TestEnvelopeTooFewPointsErrors(t *testing.T) {
	_, err := Envelope([]model.Point{pt(0, 0), pt(0, 0)})
	assert.ErrorIs(t, err, ErrEmptyGeometry)
}
