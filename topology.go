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
	"bytes"
	"encoding/json"
	"fmt"
)

// NamedGeometry is one entry of a topology's objects member.
type NamedGeometry struct {
	Name     string
	Geometry *Geometry
}

// Topology is the root TopoJSON document: the shared arcs, an optional
// quantization transform and the named geometry objects referencing the
// arcs by signed index.
//
// Objects is a slice rather than a map so that iteration is stable and
// matches document order.
//
// [TopoJSON Format Specification § 2.1](https://github.com/topojson/topojson-specification#21-topology-objects)
type Topology struct {
	BBox      []float64
	Transform *Transform
	Arcs      []Arc
	Objects   []NamedGeometry
}

// Object returns the named geometry object, or nil when absent.
func (t *Topology) Object(name string) *Geometry {
	for _, ng := range t.Objects {
		if ng.Name == name {
			return ng.Geometry
		}
	}

	return nil
}

// Names returns the object names in document order.
func (t *Topology) Names() []string {
	names := make([]string, len(t.Objects))
	for i, ng := range t.Objects {
		names[i] = ng.Name
	}

	return names
}

// UnmarshalJSON decodes a TopoJSON Topology document.
// This fulfills the json.Unmarshaler interface.
func (t *Topology) UnmarshalJSON(data []byte) error {
	var doc struct {
		Type      string          `json:"type"`
		BBox      []float64       `json:"bbox"`
		Transform *Transform      `json:"transform"`
		Arcs      []Arc           `json:"arcs"`
		Objects   json.RawMessage `json:"objects"`
	}

	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	if doc.Type != "Topology" {
		return fmt.Errorf("%w, got type %q", ErrNotTopology, doc.Type)
	}

	objects, err := decodeObjects(doc.Objects)
	if err != nil {
		return err
	}

	t.BBox = doc.BBox
	t.Transform = doc.Transform
	t.Arcs = doc.Arcs
	t.Objects = objects

	return nil
}

// decodeObjects walks the objects member token by token so that document
// order survives; unmarshaling into a Go map would randomize it.
func decodeObjects(raw json.RawMessage) ([]NamedGeometry, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("topojson: objects member is not a JSON object")
	}

	var objects []NamedGeometry

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}

		name, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("topojson: objects member has a non-string key %v", keyTok)
		}

		g := &Geometry{}
		if err := dec.Decode(g); err != nil {
			return nil, fmt.Errorf("topojson: object %q: %w", name, err)
		}

		objects = append(objects, NamedGeometry{Name: name, Geometry: g})
	}

	return objects, nil
}

// MarshalJSON encodes the topology, emitting objects in document order.
// This fulfills the json.Marshaler interface.
func (t *Topology) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(`{"type":"Topology"`)

	if t.Transform != nil {
		b, err := json.Marshal(t.Transform)
		if err != nil {
			return nil, err
		}

		buf.WriteString(`,"transform":`)
		buf.Write(b)
	}

	if len(t.BBox) > 0 {
		b, err := json.Marshal(t.BBox)
		if err != nil {
			return nil, err
		}

		buf.WriteString(`,"bbox":`)
		buf.Write(b)
	}

	buf.WriteString(`,"objects":{`)

	for i, ng := range t.Objects {
		if i > 0 {
			buf.WriteByte(',')
		}

		name, err := json.Marshal(ng.Name)
		if err != nil {
			return nil, err
		}

		buf.Write(name)
		buf.WriteByte(':')

		geom, err := json.Marshal(ng.Geometry)
		if err != nil {
			return nil, err
		}

		buf.Write(geom)
	}

	buf.WriteString(`},"arcs":`)

	if t.Arcs == nil {
		buf.WriteString(`[]`)
	} else {
		arcs, err := json.Marshal(t.Arcs)
		if err != nil {
			return nil, err
		}

		buf.Write(arcs)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}
