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

// Package topojson converts TopoJSON topology documents into GeoJSON
// compatible geometries.
//
// A topology stores shared boundaries once, as quantized, delta-encoded
// arcs, and its geometry objects reference those arcs by signed index.
// Convert and ConvertAll resolve the references back into standalone
// github.com/paulmach/orb geometry values; FeatureCollection mirrors the
// topojson-client feature function and produces GeoJSON features with ids
// and properties carried over.
package topojson

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/paulmach/orb"

	"github.com/georust/topojson/internal/unpack"
)

// Position is an absolute coordinate pair, as used by Point and MultiPoint
// geometries. Dimensions beyond the first two survive parsing but are
// ignored during conversion.
type Position []float64

// Delta is a single step of a delta-encoded arc: the first element of an
// arc is an absolute grid position, every subsequent element is an offset
// from the previous one.
type Delta [2]int64

// Arc is one delta-encoded edge of the topology.
type Arc []Delta

// UnmarshalJSON decodes an arc element. Arc coordinates are integers on the
// quantization grid; non-integral JSON numbers are rounded to nearest.
func (d *Delta) UnmarshalJSON(data []byte) error {
	var coords []float64
	if err := json.Unmarshal(data, &coords); err != nil {
		return err
	}

	if len(coords) < 2 {
		return fmt.Errorf("topojson: arc position needs at least two elements, got %d", len(coords))
	}

	d[0] = int64(math.Round(coords[0]))
	d[1] = int64(math.Round(coords[1]))

	return nil
}

// MarshalJSON encodes the arc element as a two-element JSON array.
func (d Delta) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int64(d))
}

// Transform is the quantization transform of a topology: the scale and
// translate pair that maps integer grid positions back to real-valued
// coordinates.
//
// [TopoJSON Format Specification § 2.1.2](https://github.com/topojson/topojson-specification#212-transforms)
type Transform struct {
	Scale     [2]float64 `json:"scale"`
	Translate [2]float64 `json:"translate"`
}

// Apply maps a quantized grid position to its real-valued coordinate. A nil
// transform is the identity: the grid position reinterpreted as floating
// point.
func (tr *Transform) Apply(x, y int64) orb.Point {
	if tr == nil {
		return orb.Point{float64(x), float64(y)}
	}

	return orb.Point{
		float64(x)*tr.Scale[0] + tr.Translate[0],
		float64(y)*tr.Scale[1] + tr.Translate[1],
	}
}

// applyPosition maps an already-absolute position. Point and MultiPoint
// coordinates are stored on the quantization grid but are not
// delta-encoded.
func (tr *Transform) applyPosition(pos Position) orb.Point {
	if tr == nil {
		return orb.Point{pos[0], pos[1]}
	}

	return orb.Point{
		pos[0]*tr.Scale[0] + tr.Translate[0],
		pos[1]*tr.Scale[1] + tr.Translate[1],
	}
}

// Parse decodes a TopoJSON document.
func Parse(data []byte) (*Topology, error) {
	topo := &Topology{}
	if err := json.Unmarshal(data, topo); err != nil {
		return nil, err
	}

	return topo, nil
}

// Decode reads a TopoJSON document from rdr, transparently decompressing
// gzip, zlib, zstd, lz4 and xz streams.
func Decode(rdr io.Reader) (*Topology, error) {
	in, err := unpack.Wrap(rdr)
	if err != nil {
		return nil, fmt.Errorf("topojson: unable to unpack input: %w", err)
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("topojson: unable to read input: %w", err)
	}

	return Parse(data)
}
