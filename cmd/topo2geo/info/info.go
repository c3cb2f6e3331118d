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

package info

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	humanize "github.com/dustin/go-humanize"
	"github.com/georust/topojson"
	"github.com/georust/topojson/cmd/topo2geo/cli"
	"github.com/paulmach/orb"
	"github.com/spf13/cobra"
)

var out io.Writer = os.Stdout

type objectInfo struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	PointCount int64  `json:"pointCount,omitempty"`
}

type topologyInfo struct {
	BBox       []float64           `json:"bbox,omitempty"`
	Quantized  bool                `json:"quantized"`
	Transform  *topojson.Transform `json:"transform,omitempty"`
	ArcCount   int64               `json:"arcCount"`
	DeltaCount int64               `json:"deltaCount"`
	Objects    []objectInfo        `json:"objects"`
}

func init() {
	cli.RootCmd.AddCommand(infoCmd)

	flags := infoCmd.Flags()
	flags.BoolP("json", "j", false, "format information in JSON")
	flags.Uint16P("cpu", "c", topojson.DefaultNCpu(), "number of CPUs to use for conversion")
	flags.BoolP("extended", "e", false, "provide extended information (converts every object)")
}

var infoCmd = &cobra.Command{
	Use:   "info [<TopoJSON file>]",
	Short: "Print information about a TopoJSON file",
	Long:  "Print information about a TopoJSON file",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		f, err := cli.Input(args)
		if err != nil {
			log.Fatal(err)
		}

		in, err := cli.WrapInputFile(f)
		if err != nil {
			log.Fatal(err)
		}

		flags := cmd.Flags()

		ncpu, err := flags.GetUint16("cpu")
		if err != nil {
			log.Fatal(err)
		}

		extended, err := flags.GetBool("extended")
		if err != nil {
			log.Fatal(err)
		}

		info := runInfo(in, ncpu, extended)

		if err := in.Close(); err != nil {
			log.Fatal(err)
		}

		jsonfmt, err := flags.GetBool("json")
		if err != nil {
			log.Fatal(err)
		}
		if jsonfmt {
			renderJSON(info)
		} else {
			renderTxt(info, extended)
		}
	},
}

func runInfo(in io.Reader, ncpu uint16, extended bool) *topologyInfo {
	t, err := topojson.Decode(in)
	if err != nil {
		log.Fatal(err)
	}

	info := &topologyInfo{
		BBox:      t.BBox,
		Quantized: t.Transform != nil,
		Transform: t.Transform,
		ArcCount:  int64(len(t.Arcs)),
	}

	for _, arc := range t.Arcs {
		info.DeltaCount += int64(len(arc))
	}

	for _, ng := range t.Objects {
		info.Objects = append(info.Objects, objectInfo{
			Name: ng.Name,
			Type: string(ng.Geometry.Type),
		})
	}

	if extended {
		converted, err := t.ConvertAll(topojson.WithNCpus(ncpu))
		if err != nil {
			log.Fatal(err)
		}

		for i, co := range converted {
			info.Objects[i].PointCount = pointCount(co.Geometry)
		}
	}

	return info
}

// pointCount tallies the vertices of a reconstructed geometry.
func pointCount(g orb.Geometry) int64 {
	var n int64

	switch g := g.(type) {
	case orb.Point:
		n = 1
	case orb.MultiPoint:
		n = int64(len(g))
	case orb.LineString:
		n = int64(len(g))
	case orb.MultiLineString:
		for _, ls := range g {
			n += int64(len(ls))
		}
	case orb.Ring:
		n = int64(len(g))
	case orb.Polygon:
		for _, r := range g {
			n += int64(len(r))
		}
	case orb.MultiPolygon:
		for _, p := range g {
			n += pointCount(p)
		}
	case orb.Collection:
		for _, member := range g {
			n += pointCount(member)
		}
	}

	return n
}

func renderJSON(info *topologyInfo) {
	b, err := json.Marshal(info)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Fprint(out, string(b))
}

func renderTxt(info *topologyInfo, extended bool) {
	fmt.Fprintf(out, "BoundingBox: %v\n", info.BBox)
	fmt.Fprintf(out, "Quantized: %t\n", info.Quantized)
	if info.Transform != nil {
		fmt.Fprintf(out, "Scale: %v\n", info.Transform.Scale)
		fmt.Fprintf(out, "Translate: %v\n", info.Transform.Translate)
	}
	fmt.Fprintf(out, "ArcCount: %s\n", humanize.Comma(info.ArcCount))
	fmt.Fprintf(out, "DeltaCount: %s\n", humanize.Comma(info.DeltaCount))
	for _, o := range info.Objects {
		if extended {
			fmt.Fprintf(out, "Object: %s %s %s points\n", o.Name, o.Type, humanize.Comma(o.PointCount))
		} else {
			fmt.Fprintf(out, "Object: %s %s\n", o.Name, o.Type)
		}
	}
}
