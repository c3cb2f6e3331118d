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
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArcTableDecodeNoTransform(t *testing.T) {
	table := NewArcTable([]Arc{{{0, 0}, {1, 0}, {-1, 1}}}, nil)

	line, err := table.Resolve(0)
	require.NoError(t, err)

	assert.Equal(t, orb.LineString{{0, 0}, {1, 0}, {0, 1}}, line)
}

func TestArcTableDecodeWithTransform(t *testing.T) {
	tf := &Transform{Scale: [2]float64{1, 1}, Translate: [2]float64{100, 200}}
	table := NewArcTable([]Arc{{{0, 0}, {1, 0}, {-1, 1}}}, tf)

	line, err := table.Resolve(0)
	require.NoError(t, err)

	assert.Equal(t, orb.LineString{{100, 200}, {101, 200}, {100, 201}}, line)
}

func TestArcTableResolveReversed(t *testing.T) {
	table := NewArcTable([]Arc{{{0, 0}, {1, 0}, {-1, 1}}}, nil)

	forward, err := table.Resolve(0)
	require.NoError(t, err)

	backward, err := table.Resolve(^0)
	require.NoError(t, err)

	require.Len(t, backward, len(forward))
	for i, pt := range forward {
		assert.Equal(t, pt, backward[len(backward)-1-i])
	}
}

func TestArcTableResolveCopies(t *testing.T) {
	table := NewArcTable([]Arc{{{0, 0}, {1, 1}}}, nil)

	line, err := table.Resolve(0)
	require.NoError(t, err)

	line[0] = orb.Point{99, 99}

	again, err := table.Resolve(0)
	require.NoError(t, err)

	assert.Equal(t, orb.Point{0, 0}, again[0])
}

func TestArcTableResolveOutOfRange(t *testing.T) {
	table := NewArcTable([]Arc{{{0, 0}, {1, 1}}}, nil)

	_, err := table.Resolve(2)

	var oor *IndexOutOfRangeError

	require.ErrorAs(t, err, &oor)
	assert.Equal(t, 2, oor.Index)
	assert.Equal(t, 1, oor.ArcCount)

	_, err = table.Resolve(^2)

	require.ErrorAs(t, err, &oor)
	assert.Equal(t, ^2, oor.Index)
}

func TestArcTableLineSharedJoint(t *testing.T) {
	// arc 0 ends at (1,1) and arc 1 starts there; the joint point must
	// appear once in the stitched line.
	table := NewArcTable([]Arc{
		{{0, 0}, {1, 1}},
		{{1, 1}, {2, 2}},
	}, nil)

	line, err := table.line([]int{0, 1})
	require.NoError(t, err)

	assert.Equal(t, orb.LineString{{0, 0}, {1, 1}, {3, 3}}, line)
}

func TestArcTableLineReversedJoint(t *testing.T) {
	table := NewArcTable([]Arc{
		{{0, 0}, {1, 0}},
		{{2, 0}, {-1, 0}},
	}, nil)

	// arc 1 runs (2,0) to (1,0); traversed in reverse it starts at (1,0),
	// the endpoint of arc 0.
	line, err := table.line([]int{0, ^1})
	require.NoError(t, err)

	assert.Equal(t, orb.LineString{{0, 0}, {1, 0}, {2, 0}}, line)
}

func TestArcTableLinePalindrome(t *testing.T) {
	table := NewArcTable([]Arc{{{0, 0}, {1, 0}}}, nil)

	line, err := table.line([]int{0, ^0})
	require.NoError(t, err)

	assert.Equal(t, orb.LineString{{0, 0}, {1, 0}, {0, 0}}, line)
}

func TestArcTableLineEmptyLeadingArc(t *testing.T) {
	// an empty arc contributes no points, so the next arc has no joint to
	// de-duplicate and keeps its leading point
	table := NewArcTable([]Arc{
		{},
		{{0, 0}, {1, 0}},
	}, nil)

	line, err := table.line([]int{0, 1})
	require.NoError(t, err)

	assert.Equal(t, orb.LineString{{0, 0}, {1, 0}}, line)
}

func TestArcTableRetainsDegenerateArcs(t *testing.T) {
	// a single-point arc must keep its slot so later references stay valid
	table := NewArcTable([]Arc{
		{{5, 5}},
		{{0, 0}, {1, 0}},
	}, nil)

	require.Equal(t, 2, table.Len())

	line, err := table.Resolve(1)
	require.NoError(t, err)

	assert.Equal(t, orb.LineString{{0, 0}, {1, 0}}, line)

	short, err := table.Resolve(0)
	require.NoError(t, err)

	assert.Equal(t, orb.LineString{{5, 5}}, short)
}
