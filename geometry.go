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
	"errors"
	"fmt"
	"math"
)

// GeometryType is the type tag of a TopoJSON geometry object.
type GeometryType string

// The closed set of TopoJSON geometry kinds.
const (
	TypePoint              GeometryType = "Point"
	TypeMultiPoint         GeometryType = "MultiPoint"
	TypeLineString         GeometryType = "LineString"
	TypeMultiLineString    GeometryType = "MultiLineString"
	TypePolygon            GeometryType = "Polygon"
	TypeMultiPolygon       GeometryType = "MultiPolygon"
	TypeGeometryCollection GeometryType = "GeometryCollection"
)

// Geometry is a TopoJSON geometry object. Point and MultiPoint carry
// absolute positions; the line and polygon kinds carry signed arc indexes
// into the topology's arcs; GeometryCollection nests further geometries.
// Exactly one of the per-kind fields is populated, selected by Type.
//
// [TopoJSON Format Specification § 2.2](https://github.com/topojson/topojson-specification#22-geometry-objects)
type Geometry struct {
	Type       GeometryType
	ID         interface{}
	Properties map[string]interface{}
	BBox       []float64

	Point           Position
	MultiPoint      []Position
	LineString      []int
	MultiLineString [][]int
	Polygon         [][]int
	MultiPolygon    [][][]int
	Geometries      []*Geometry
}

// MarshalJSON converts the geometry object into the correct JSON.
// This fulfills the json.Marshaler interface.
func (g *Geometry) MarshalJSON() ([]byte, error) {
	// defining a struct here lets us define the order of the JSON elements.
	type geometry struct {
		Type        GeometryType           `json:"type"`
		ID          interface{}            `json:"id,omitempty"`
		BBox        []float64              `json:"bbox,omitempty"`
		Properties  map[string]interface{} `json:"properties,omitempty"`
		Coordinates interface{}            `json:"coordinates,omitempty"`
		Arcs        interface{}            `json:"arcs,omitempty"`
		Geometries  interface{}            `json:"geometries,omitempty"`
	}

	geo := &geometry{
		Type:       g.Type,
		ID:         g.ID,
		BBox:       g.BBox,
		Properties: g.Properties,
	}

	switch g.Type {
	case TypePoint:
		geo.Coordinates = g.Point
	case TypeMultiPoint:
		geo.Coordinates = g.MultiPoint
	case TypeLineString:
		geo.Arcs = g.LineString
	case TypeMultiLineString:
		geo.Arcs = g.MultiLineString
	case TypePolygon:
		geo.Arcs = g.Polygon
	case TypeMultiPolygon:
		geo.Arcs = g.MultiPolygon
	case TypeGeometryCollection:
		geo.Geometries = g.Geometries
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownGeometryType, g.Type)
	}

	return json.Marshal(geo)
}

// UnmarshalJSON decodes the data into a TopoJSON geometry.
// This fulfills the json.Unmarshaler interface.
func (g *Geometry) UnmarshalJSON(data []byte) error {
	var object map[string]interface{}
	if err := json.Unmarshal(data, &object); err != nil {
		return err
	}

	return decodeGeometry(g, object)
}

func decodeGeometry(g *Geometry, object map[string]interface{}) error {
	t, ok := object["type"]
	if !ok {
		return errors.New("topojson: type property not defined")
	}

	if s, ok := t.(string); ok {
		g.Type = GeometryType(s)
	} else {
		return errors.New("topojson: type property not a string")
	}

	g.ID = object["id"]

	if props, ok := object["properties"].(map[string]interface{}); ok {
		g.Properties = props
	}

	if bbox, ok := object["bbox"]; ok {
		coords, err := decodeFloats(bbox)
		if err != nil {
			return err
		}

		g.BBox = coords
	}

	var err error

	switch g.Type {
	case TypePoint:
		g.Point, err = decodePosition(object["coordinates"])
	case TypeMultiPoint:
		g.MultiPoint, err = decodePositionSet(object["coordinates"])
	case TypeLineString:
		g.LineString, err = decodeArcIndexes(object["arcs"])
	case TypeMultiLineString:
		g.MultiLineString, err = decodeArcIndexSets(object["arcs"])
	case TypePolygon:
		g.Polygon, err = decodeArcIndexSets(object["arcs"])
	case TypeMultiPolygon:
		g.MultiPolygon, err = decodePolygonArcs(object["arcs"])
	case TypeGeometryCollection:
		g.Geometries, err = decodeGeometries(object["geometries"])
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownGeometryType, g.Type)
	}

	return err
}

func decodeFloats(data interface{}) ([]float64, error) {
	values, ok := data.([]interface{})
	if !ok {
		return nil, fmt.Errorf("topojson: not a valid number array, got %v", data)
	}

	result := make([]float64, 0, len(values))

	for _, value := range values {
		f, ok := value.(float64)
		if !ok {
			return nil, fmt.Errorf("topojson: not a valid coordinate, got %v", value)
		}

		result = append(result, f)
	}

	return result, nil
}

func decodePosition(data interface{}) (Position, error) {
	coords, err := decodeFloats(data)
	if err != nil {
		return nil, err
	}

	if len(coords) < 2 {
		return nil, fmt.Errorf("topojson: position needs at least two elements, got %d", len(coords))
	}

	return Position(coords), nil
}

func decodePositionSet(data interface{}) ([]Position, error) {
	points, ok := data.([]interface{})
	if !ok {
		return nil, fmt.Errorf("topojson: not a valid set of positions, got %v", data)
	}

	result := make([]Position, 0, len(points))

	for _, point := range points {
		pos, err := decodePosition(point)
		if err != nil {
			return nil, err
		}

		result = append(result, pos)
	}

	return result, nil
}

func decodeArcIndexes(data interface{}) ([]int, error) {
	arcs, ok := data.([]interface{})
	if !ok {
		return nil, fmt.Errorf("topojson: not a valid set of arcs, got %v", data)
	}

	result := make([]int, 0, len(arcs))

	for _, arc := range arcs {
		f, ok := arc.(float64)
		if !ok || f != math.Trunc(f) {
			return nil, fmt.Errorf("topojson: not a valid arc index, got %v", arc)
		}

		result = append(result, int(f))
	}

	return result, nil
}

func decodeArcIndexSets(data interface{}) ([][]int, error) {
	sets, ok := data.([]interface{})
	if !ok {
		return nil, fmt.Errorf("topojson: not a valid set of arcs, got %v", data)
	}

	result := make([][]int, 0, len(sets))

	for _, arcs := range sets {
		s, err := decodeArcIndexes(arcs)
		if err != nil {
			return nil, err
		}

		result = append(result, s)
	}

	return result, nil
}

func decodePolygonArcs(data interface{}) ([][][]int, error) {
	polygons, ok := data.([]interface{})
	if !ok {
		return nil, fmt.Errorf("topojson: not a valid set of rings, got %v", data)
	}

	result := make([][][]int, 0, len(polygons))

	for _, sets := range polygons {
		s, err := decodeArcIndexSets(sets)
		if err != nil {
			return nil, err
		}

		result = append(result, s)
	}

	return result, nil
}

func decodeGeometries(data interface{}) ([]*Geometry, error) {
	values, ok := data.([]interface{})
	if !ok {
		return nil, fmt.Errorf("topojson: not a valid set of geometries, got %v", data)
	}

	geometries := make([]*Geometry, 0, len(values))

	for _, value := range values {
		object, ok := value.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("topojson: not a valid geometry, got %v", value)
		}

		g := &Geometry{}
		if err := decodeGeometry(g, object); err != nil {
			return nil, err
		}

		geometries = append(geometries, g)
	}

	return geometries, nil
}
