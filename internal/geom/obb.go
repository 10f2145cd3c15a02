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

// OrientedBoundingBox approximates an oriented bounding box via the loop's
// spherical cap bound: the cap is the smallest bounding circle of pts, and
// its own rectangular bound is returned as the OBB's four corners. This is
// coarser than a true minimum-area rotated rectangle, but it is the
// geometry the --add-{node,way}-oriented-bounding-box flags request and it
// stays entirely inside the s2 package rather than introducing a second
// computational-geometry library for one flag.
func OrientedBoundingBox(pts []model.Point) (model.Polygon, error) {
	loop, err := toS2Loop(pts)
	if err != nil {
		return model.Polygon{}, err
	}

	return rectPolygon(loop.CapBound().RectBound()), nil
}
