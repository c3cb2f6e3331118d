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
	"log/slog"

	"github.com/destel/rill"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// ConvertedObject pairs an object name with its reconstructed geometry.
type ConvertedObject struct {
	Name     string
	Geometry orb.Geometry
}

// Convert reconstructs the named object into a standalone orb geometry.
// The result holds no references into the topology.
func (t *Topology) Convert(name string, opts ...ConvertOption) (orb.Geometry, error) {
	cfg := defaultConvertConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	g := t.Object(name)
	if g == nil {
		return nil, &ObjectNotFoundError{Name: name}
	}

	c := &converter{
		table:  NewArcTable(t.Arcs, t.Transform),
		tf:     t.Transform,
		cfg:    cfg,
		object: name,
	}

	return c.geometry(g, 0)
}

// ConvertAll reconstructs every named object, returned in document order.
// Objects are converted in parallel: the arc table is decoded once and
// shared read-only across workers, and reconstruction never writes to it.
func (t *Topology) ConvertAll(opts ...ConvertOption) ([]ConvertedObject, error) {
	cfg := defaultConvertConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	table := NewArcTable(t.Arcs, t.Transform)

	objects := rill.FromSlice(t.Objects, nil)

	converted := rill.OrderedMap(objects, int(cfg.nCPU), func(ng NamedGeometry) (ConvertedObject, error) {
		c := &converter{table: table, tf: t.Transform, cfg: cfg, object: ng.Name}

		geom, err := c.geometry(ng.Geometry, 0)
		if err != nil {
			return ConvertedObject{}, err
		}

		return ConvertedObject{Name: ng.Name, Geometry: geom}, nil
	})

	return rill.ToSlice(converted)
}

// FeatureCollection converts the named object into a GeoJSON feature
// collection, the way the topojson-client feature function does: a
// GeometryCollection object becomes one feature per member, any other
// object becomes a single feature, with ids, properties and bounding
// boxes carried over.
func (t *Topology) FeatureCollection(name string, opts ...ConvertOption) (*geojson.FeatureCollection, error) {
	cfg := defaultConvertConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	g := t.Object(name)
	if g == nil {
		return nil, &ObjectNotFoundError{Name: name}
	}

	c := &converter{
		table:  NewArcTable(t.Arcs, t.Transform),
		tf:     t.Transform,
		cfg:    cfg,
		object: name,
	}

	fc := geojson.NewFeatureCollection()

	if g.Type == TypeGeometryCollection {
		for _, member := range g.Geometries {
			f, err := c.feature(member, 1)
			if err != nil {
				return nil, err
			}

			fc.Append(f)
		}
	} else {
		f, err := c.feature(g, 0)
		if err != nil {
			return nil, err
		}

		fc.Append(f)
	}

	return fc, nil
}

// converter reconstructs the geometries of a single named object.
type converter struct {
	table  *ArcTable
	tf     *Transform
	cfg    convertOptions
	object string
}

func (c *converter) feature(g *Geometry, depth int) (*geojson.Feature, error) {
	geom, err := c.geometry(g, depth)
	if err != nil {
		return nil, err
	}

	f := geojson.NewFeature(geom)
	f.ID = g.ID

	if len(g.BBox) > 0 {
		f.BBox = g.BBox
	}

	if len(g.Properties) > 0 {
		f.Properties = geojson.Properties(g.Properties)
	}

	return f, nil
}

// geometry dispatches on the geometry kind, recursing for collections.
func (c *converter) geometry(g *Geometry, depth int) (orb.Geometry, error) {
	if depth > c.cfg.maxDepth {
		return nil, &RecursionLimitError{Object: c.object, Depth: c.cfg.maxDepth}
	}

	switch g.Type {
	case TypePoint:
		return c.point(g.Point)

	case TypeMultiPoint:
		mp := make(orb.MultiPoint, 0, len(g.MultiPoint))

		for _, pos := range g.MultiPoint {
			pt, err := c.point(pos)
			if err != nil {
				return nil, err
			}

			mp = append(mp, pt)
		}

		return mp, nil

	case TypeLineString:
		return c.lineString(g.LineString)

	case TypeMultiLineString:
		mls := make(orb.MultiLineString, 0, len(g.MultiLineString))

		for _, refs := range g.MultiLineString {
			ls, err := c.lineString(refs)
			if err != nil {
				if c.skippable(err) {
					continue
				}

				return nil, err
			}

			mls = append(mls, ls)
		}

		return mls, nil

	case TypePolygon:
		return c.polygon(g.Polygon)

	case TypeMultiPolygon:
		mp := make(orb.MultiPolygon, 0, len(g.MultiPolygon))

		for _, rings := range g.MultiPolygon {
			poly, err := c.polygon(rings)
			if err != nil {
				if c.skippable(err) {
					continue
				}

				return nil, err
			}

			mp = append(mp, poly)
		}

		return mp, nil

	case TypeGeometryCollection:
		coll := make(orb.Collection, 0, len(g.Geometries))

		for _, member := range g.Geometries {
			geom, err := c.geometry(member, depth+1)
			if err != nil {
				return nil, err
			}

			coll = append(coll, geom)
		}

		return coll, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownGeometryType, g.Type)
	}
}

func (c *converter) point(pos Position) (orb.Point, error) {
	if len(pos) < 2 {
		return orb.Point{}, fmt.Errorf("topojson: object %q: position needs two coordinates, got %d", c.object, len(pos))
	}

	return c.tf.applyPosition(pos), nil
}

func (c *converter) lineString(refs []int) (orb.LineString, error) {
	line, err := c.table.line(refs)
	if err != nil {
		return nil, err
	}

	if len(line) < 2 {
		return nil, &EmptyLineStringError{Object: c.object}
	}

	return line, nil
}

// polygon reconstructs each ring like a line string and then closes it
// explicitly. Shared arcs are not guaranteed to close exactly at the float
// level once the transform has been applied, so closure is a coordinate
// copy, never an assumption.
func (c *converter) polygon(ringRefs [][]int) (orb.Polygon, error) {
	poly := make(orb.Polygon, 0, len(ringRefs))

	for _, refs := range ringRefs {
		ring, err := c.ring(refs)
		if err != nil {
			if c.skippable(err) {
				continue
			}

			return nil, err
		}

		poly = append(poly, ring)
	}

	return poly, nil
}

func (c *converter) ring(refs []int) (orb.Ring, error) {
	line, err := c.table.line(refs)
	if err != nil {
		return nil, err
	}

	ring := orb.Ring(line)
	if len(ring) > 0 && ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}

	if distinctPoints(ring) < 3 {
		return nil, &DegenerateRingError{Object: c.object}
	}

	return ring, nil
}

// skippable reports whether a member error may be dropped under the
// lenient policy. Only geometric errors qualify; structural errors always
// fail the conversion.
func (c *converter) skippable(err error) bool {
	if !c.cfg.skipDegenerate {
		return false
	}

	var elsErr *EmptyLineStringError

	var ringErr *DegenerateRingError

	if errors.As(err, &elsErr) || errors.As(err, &ringErr) {
		slog.Warn("skipping degenerate geometry member", "object", c.object, "error", err)

		return true
	}

	return false
}

// distinctPoints counts unique coordinates in a ring.
func distinctPoints(ring orb.Ring) int {
	seen := make(map[orb.Point]struct{}, len(ring))
	for _, pt := range ring {
		seen[pt] = struct{}{}
	}

	return len(seen)
}
