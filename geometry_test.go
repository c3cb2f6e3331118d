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
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeometryUnmarshalPoint(t *testing.T) {
	doc := `{
		"type": "Point",
		"id": "centroid",
		"bbox": [1, 2, 1, 2],
		"properties": {"name": "somewhere"},
		"coordinates": [1, 2]
	}`

	g := &Geometry{}
	require.NoError(t, json.Unmarshal([]byte(doc), g))

	assert.Equal(t, TypePoint, g.Type)
	assert.Equal(t, "centroid", g.ID)
	assert.Equal(t, []float64{1, 2, 1, 2}, g.BBox)
	assert.Equal(t, "somewhere", g.Properties["name"])
	assert.Equal(t, Position{1, 2}, g.Point)
}

func TestGeometryUnmarshalMultiPoint(t *testing.T) {
	g := &Geometry{}
	require.NoError(t, json.Unmarshal([]byte(`{"type": "MultiPoint", "coordinates": [[1, 2], [3, 4]]}`), g))

	assert.Equal(t, []Position{{1, 2}, {3, 4}}, g.MultiPoint)
}

func TestGeometryUnmarshalLineString(t *testing.T) {
	g := &Geometry{}
	require.NoError(t, json.Unmarshal([]byte(`{"type": "LineString", "arcs": [0, -2]}`), g))

	assert.Equal(t, []int{0, -2}, g.LineString)
}

func TestGeometryUnmarshalMultiLineString(t *testing.T) {
	g := &Geometry{}
	require.NoError(t, json.Unmarshal([]byte(`{"type": "MultiLineString", "arcs": [[0], [1, 2]]}`), g))

	assert.Equal(t, [][]int{{0}, {1, 2}}, g.MultiLineString)
}

func TestGeometryUnmarshalMultiPolygon(t *testing.T) {
	g := &Geometry{}
	require.NoError(t, json.Unmarshal([]byte(`{"type": "MultiPolygon", "arcs": [[[0]], [[1], [2]]]}`), g))

	assert.Equal(t, [][][]int{{{0}}, {{1}, {2}}}, g.MultiPolygon)
}

func TestGeometryUnmarshalCollection(t *testing.T) {
	doc := `{
		"type": "GeometryCollection",
		"geometries": [
			{"type": "Point", "coordinates": [1, 2]},
			{"type": "LineString", "arcs": [0]}
		]
	}`

	g := &Geometry{}
	require.NoError(t, json.Unmarshal([]byte(doc), g))

	require.Len(t, g.Geometries, 2)
	assert.Equal(t, TypePoint, g.Geometries[0].Type)
	assert.Equal(t, TypeLineString, g.Geometries[1].Type)
}

func TestGeometryUnmarshalUnknownType(t *testing.T) {
	g := &Geometry{}
	err := json.Unmarshal([]byte(`{"type": "Funky", "arcs": [0]}`), g)

	assert.ErrorIs(t, err, ErrUnknownGeometryType)
}

func TestGeometryUnmarshalMissingType(t *testing.T) {
	g := &Geometry{}

	assert.Error(t, json.Unmarshal([]byte(`{"arcs": [0]}`), g))
}

func TestGeometryUnmarshalFractionalArcIndex(t *testing.T) {
	g := &Geometry{}

	assert.Error(t, json.Unmarshal([]byte(`{"type": "LineString", "arcs": [0.5]}`), g))
}

func TestGeometryMarshalPoint(t *testing.T) {
	g := &Geometry{Type: TypePoint, Point: Position{1, 2}}

	data, err := json.Marshal(g)
	require.NoError(t, err)

	assert.JSONEq(t, `{"type": "Point", "coordinates": [1, 2]}`, string(data))
}

func TestGeometryMarshalLineString(t *testing.T) {
	g := &Geometry{Type: TypeLineString, LineString: []int{0, -2}}

	data, err := json.Marshal(g)
	require.NoError(t, err)

	assert.JSONEq(t, `{"type": "LineString", "arcs": [0, -2]}`, string(data))
}

func TestGeometryMarshalCollection(t *testing.T) {
	g := &Geometry{
		Type: TypeGeometryCollection,
		Geometries: []*Geometry{
			{Type: TypePolygon, Polygon: [][]int{{0}}},
		},
	}

	data, err := json.Marshal(g)
	require.NoError(t, err)

	assert.JSONEq(t, `{"type": "GeometryCollection", "geometries": [{"type": "Polygon", "arcs": [[0]]}]}`, string(data))
}

func TestGeometryMarshalUnknownType(t *testing.T) {
	g := &Geometry{Type: "Funky"}

	_, err := json.Marshal(g)

	assert.ErrorIs(t, err, ErrUnknownGeometryType)
}

func TestGeometryRoundtrip(t *testing.T) {
	doc := `{
		"type": "Polygon",
		"id": 42,
		"properties": {"prop0": "value0"},
		"arcs": [[0, -2], [1]]
	}`

	g := &Geometry{}
	require.NoError(t, json.Unmarshal([]byte(doc), g))

	data, err := json.Marshal(g)
	require.NoError(t, err)

	again := &Geometry{}
	require.NoError(t, json.Unmarshal(data, again))

	assert.Equal(t, g, again)
}
