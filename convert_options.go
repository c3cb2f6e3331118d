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
	"runtime"
)

// DefaultMaxDepth bounds GeometryCollection nesting. The format never
// nests this deeply in practice; the bound exists so that a pathological
// document surfaces a RecursionLimitError instead of exhausting the stack.
const DefaultMaxDepth = 1000

// DefaultNCpu provides the default number of CPUs used to convert objects
// in parallel.
func DefaultNCpu() uint16 {
	cpus := uint16(runtime.GOMAXPROCS(-1))

	return max(cpus-1, 1)
}

// convertOptions provides optional configuration parameters for geometry
// reconstruction.
type convertOptions struct {
	maxDepth       int    // bound on GeometryCollection nesting
	skipDegenerate bool   // drop degenerate members instead of failing
	nCPU           uint16 // the number of CPUs used by ConvertAll
}

// ConvertOption configures how geometries are reconstructed.
type ConvertOption func(*convertOptions)

// WithMaxDepth lets you bound GeometryCollection recursion. Exceeding the
// bound surfaces a RecursionLimitError.
func WithMaxDepth(n int) ConvertOption {
	return func(o *convertOptions) {
		o.maxDepth = n
	}
}

// WithSkipDegenerate drops degenerate members with a warning instead of
// failing the whole conversion. The policy applies uniformly to
// MultiLineString members, Polygon rings and MultiPolygon members. A
// top-level LineString that decodes to fewer than two points still fails:
// there is no sibling collection to drop it from. Structural errors, such
// as an out-of-range arc index, are never skipped.
func WithSkipDegenerate() ConvertOption {
	return func(o *convertOptions) {
		o.skipDegenerate = true
	}
}

// WithNCpus lets you set the number of CPUs ConvertAll uses to convert
// objects in parallel.
func WithNCpus(n uint16) ConvertOption {
	return func(o *convertOptions) {
		o.nCPU = n
	}
}

// defaultConvertConfig provides a default configuration for conversions.
var defaultConvertConfig = convertOptions{
	maxDepth: DefaultMaxDepth,
	nCPU:     DefaultNCpu(),
}
