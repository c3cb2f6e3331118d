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
	"github.com/paulmach/orb"
)

// ArcTable holds every arc of a topology decoded to absolute coordinates.
// It is built once per topology and never written afterwards, so a single
// table may serve concurrent reconstructions.
type ArcTable struct {
	arcs []orb.LineString
}

// NewArcTable decodes every arc exactly once; later lookups are pure
// indexed reads. Arcs that decode to fewer than two points are retained
// as-is, since filtering them would shift the positions every other arc
// reference depends on.
func NewArcTable(arcs []Arc, tf *Transform) *ArcTable {
	decoded := make([]orb.LineString, len(arcs))
	for i, arc := range arcs {
		decoded[i] = decodeArc(arc, tf)
	}

	return &ArcTable{arcs: decoded}
}

// decodeArc reverses the delta encoding of a single arc. The running
// position accumulates in integer space; accumulating after the float
// conversion compounds rounding error over long arcs.
func decodeArc(arc Arc, tf *Transform) orb.LineString {
	line := make(orb.LineString, 0, len(arc))

	var x, y int64
	for _, delta := range arc {
		x += delta[0]
		y += delta[1]

		line = append(line, tf.Apply(x, y))
	}

	return line
}

// Len returns the number of arcs in the table.
func (t *ArcTable) Len() int {
	return len(t.arcs)
}

// arc returns the decoded arc for a signed reference in forward storage
// order, plus whether the caller must traverse it back to front. A
// negative reference addresses arc ^ref traversed in reverse; this is the
// TopoJSON wire contract.
func (t *ArcTable) arc(ref int) (orb.LineString, bool, error) {
	ix, reversed := ref, false
	if ref < 0 {
		ix, reversed = ^ref, true
	}

	if ix >= len(t.arcs) {
		return nil, false, &IndexOutOfRangeError{Index: ref, ArcCount: len(t.arcs)}
	}

	return t.arcs[ix], reversed, nil
}

// Resolve returns a copy of the referenced arc in traversal order. The
// copy shares nothing with the table.
func (t *ArcTable) Resolve(ref int) (orb.LineString, error) {
	arc, reversed, err := t.arc(ref)
	if err != nil {
		return nil, err
	}

	line := make(orb.LineString, len(arc))

	if reversed {
		for i, pt := range arc {
			line[len(arc)-1-i] = pt
		}
	} else {
		copy(line, arc)
	}

	return line, nil
}

// line stitches a sequence of signed arc references into one coordinate
// sequence. Consecutive arcs share their joint point, so the leading point
// of an arc is dropped whenever points have already accumulated; keeping
// it would double every shared vertex. An empty arc accumulates nothing,
// so the arc after it keeps its leading point.
func (t *ArcTable) line(refs []int) (orb.LineString, error) {
	var out orb.LineString

	for _, ref := range refs {
		arc, reversed, err := t.arc(ref)
		if err != nil {
			return nil, err
		}

		skip := 0
		if len(out) > 0 && len(arc) > 0 {
			skip = 1
		}

		if reversed {
			for j := len(arc) - 1 - skip; j >= 0; j-- {
				out = append(out, arc[j])
			}
		} else {
			out = append(out, arc[skip:]...)
		}
	}

	return out, nil
}
