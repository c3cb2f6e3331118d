// Copyright 2025 the original author or authors.
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

package topojson

import (
	"errors"
	"fmt"
)

// Document-level parse errors.
var (
	// ErrNotTopology is returned when the document's type member is not
	// "Topology".
	ErrNotTopology = errors.New("topojson: document is not a Topology")

	// ErrUnknownGeometryType is returned when a geometry object carries a
	// type tag outside the closed TopoJSON variant set.
	ErrUnknownGeometryType = errors.New("topojson: unknown geometry type")
)

// ObjectNotFoundError is returned by the conversion API when the requested
// object name is absent from the topology.
type ObjectNotFoundError struct {
	Name string
}

func (e *ObjectNotFoundError) Error() string {
	return fmt.Sprintf("topojson: object %q not found", e.Name)
}

// IndexOutOfRangeError reports an arc reference whose magnitude lies
// outside the arc table. Index is the signed reference as it appeared in
// the document.
type IndexOutOfRangeError struct {
	Index    int
	ArcCount int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("topojson: arc index %d out of range for %d arcs", e.Index, e.ArcCount)
}

// EmptyLineStringError reports a line string whose arcs decode to fewer
// than two points. Object names the object being reconstructed.
type EmptyLineStringError struct {
	Object string
}

func (e *EmptyLineStringError) Error() string {
	return fmt.Sprintf("topojson: object %q: line string has fewer than two points", e.Object)
}

// DegenerateRingError reports a polygon ring with fewer than three
// distinct points after closure.
type DegenerateRingError struct {
	Object string
}

func (e *DegenerateRingError) Error() string {
	return fmt.Sprintf("topojson: object %q: ring has fewer than three distinct points", e.Object)
}

// RecursionLimitError reports a GeometryCollection nested more deeply than
// the configured bound. It is surfaced instead of letting pathological
// nesting exhaust the stack.
type RecursionLimitError struct {
	Object string
	Depth  int
}

func (e *RecursionLimitError) Error() string {
	return fmt.Sprintf("topojson: object %q: geometry collection nesting exceeds %d levels", e.Object, e.Depth)
}
