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

package convert

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georust/topojson"
)

const topologyDoc = `{
	"type": "Topology",
	"objects": {
		"line": {
			"type": "LineString",
			"properties": {"name": "boundary"},
			"arcs": [0]
		},
		"pt": {"type": "Point", "coordinates": [1, 2]}
	},
	"arcs": [[[0, 0], [1, 0]]]
}`

func TestRunConvertSingleObject(t *testing.T) {
	fc := runConvert(strings.NewReader(topologyDoc), "line", nil)

	require.Len(t, fc.Features, 1)

	f := fc.Features[0]
	assert.Equal(t, orb.LineString{{0, 0}, {1, 0}}, f.Geometry)
	assert.Equal(t, "boundary", f.Properties["name"])
}

func TestRunConvertAllObjects(t *testing.T) {
	// no object selected merges every object, in document order
	fc := runConvert(strings.NewReader(topologyDoc), "", nil)

	require.Len(t, fc.Features, 2)
	assert.Equal(t, orb.LineString{{0, 0}, {1, 0}}, fc.Features[0].Geometry)
	assert.Equal(t, orb.Point{1, 2}, fc.Features[1].Geometry)
}

func TestRunConvertWithOptions(t *testing.T) {
	doc := `{
		"type": "Topology",
		"objects": {"mls": {"type": "MultiLineString", "arcs": [[0], [1]]}},
		"arcs": [
			[[7, 7]],
			[[0, 0], [1, 0]]
		]
	}`

	opts := []topojson.ConvertOption{topojson.WithSkipDegenerate()}

	fc := runConvert(strings.NewReader(doc), "mls", opts)

	require.Len(t, fc.Features, 1)

	mls, ok := fc.Features[0].Geometry.(orb.MultiLineString)
	require.True(t, ok)
	assert.Len(t, mls, 1)
}

func TestRenderToFile(t *testing.T) {
	fc := geojson.NewFeatureCollection()
	fc.Append(geojson.NewFeature(orb.Point{1, 2}))

	path := filepath.Join(t.TempDir(), "out.geojson")

	render(fc, path, true)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	parsed := &geojson.FeatureCollection{}
	require.NoError(t, json.Unmarshal(data, parsed))

	require.Len(t, parsed.Features, 1)
	assert.Equal(t, orb.Point{1, 2}, parsed.Features[0].Geometry)
}
