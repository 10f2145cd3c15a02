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

package model

import "fmt"

// Point is a single WGS84 coordinate.
type Point struct {
	Lat Degrees
	Lon Degrees
}

func (p Point) String() string {
	return fmt.Sprintf("%s %s", ftoa(float64(p.Lon)), ftoa(float64(p.Lat)))
}

// LineString is an ordered sequence of points, the resolved geometry of a
// way or the boundary of one ring of a polygon.
type LineString []Point

// Closed reports whether the line string's first and last points coincide.
func (ls LineString) Closed() bool {
	return len(ls) > 1 && ls[0] == ls[len(ls)-1]
}

// Envelope returns the bounding box of the line string. It returns nil for
// an empty line string.
func (ls LineString) Envelope() *Box {
	if len(ls) == 0 {
		return nil
	}

	box := InitialBox()
	for _, p := range ls {
		box.ExpandWithPoint(p)
	}

	return box
}

// Polygon is a single-outer, multi-inner ring area geometry, the resolved
// shape of a closed way or an assembled multipolygon relation.
type Polygon struct {
	Outer LineString
	Inner []LineString
}

// Envelope returns the bounding box of the polygon's outer ring.
func (p Polygon) Envelope() *Box {
	return p.Outer.Envelope()
}
