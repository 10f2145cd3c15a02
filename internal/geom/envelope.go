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

import "github.com/maguro/osm2rdf/model"

// Envelope computes the geographic bounding rectangle of pts as a closed
// four-corner polygon, via the s2.Loop built from pts rather than the plain
// min/max arithmetic model.LineString.Envelope uses for its Box — this is
// the WKT-rendering path the --add-{node,way}-envelope flags drive.
func Envelope(pts []model.Point) (model.Polygon, error) {
	loop, err := toS2Loop(pts)
	if err != nil {
		return model.Polygon{}, err
	}

	return rectPolygon(loop.RectBound()), nil
}
