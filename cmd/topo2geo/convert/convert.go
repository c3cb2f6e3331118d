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
	"io"
	"log"
	"os"

	"github.com/georust/topojson"
	"github.com/georust/topojson/cmd/topo2geo/cli"
	"github.com/paulmach/orb/geojson"
	"github.com/spf13/cobra"
)

func init() {
	cli.RootCmd.AddCommand(convertCmd)

	flags := convertCmd.Flags()
	flags.StringP("object", "o", "", "convert only the named object (default: all objects)")
	flags.String("out", "", "write GeoJSON to this file instead of stdout")
	flags.BoolP("indent", "i", false, "indent the GeoJSON output")
	flags.Bool("skip-degenerate", false, "drop degenerate rings and empty line strings instead of failing")
	flags.Int("max-depth", topojson.DefaultMaxDepth, "maximum geometry collection nesting depth")
	flags.Uint16P("cpu", "c", topojson.DefaultNCpu(), "number of CPUs to use for conversion")
}

var convertCmd = &cobra.Command{
	Use:   "convert [<TopoJSON file>]",
	Short: "Convert a TopoJSON file to GeoJSON",
	Long:  "Convert a TopoJSON file to a GeoJSON feature collection",
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

		object, err := flags.GetString("object")
		if err != nil {
			log.Fatal(err)
		}

		skip, err := flags.GetBool("skip-degenerate")
		if err != nil {
			log.Fatal(err)
		}

		maxDepth, err := flags.GetInt("max-depth")
		if err != nil {
			log.Fatal(err)
		}

		ncpu, err := flags.GetUint16("cpu")
		if err != nil {
			log.Fatal(err)
		}

		opts := []topojson.ConvertOption{
			topojson.WithMaxDepth(maxDepth),
			topojson.WithNCpus(ncpu),
		}
		if skip {
			opts = append(opts, topojson.WithSkipDegenerate())
		}

		fc := runConvert(in, object, opts)

		if err := in.Close(); err != nil {
			log.Fatal(err)
		}

		indent, err := flags.GetBool("indent")
		if err != nil {
			log.Fatal(err)
		}

		outPath, err := flags.GetString("out")
		if err != nil {
			log.Fatal(err)
		}

		render(fc, outPath, indent)
	},
}

func runConvert(in io.Reader, object string, opts []topojson.ConvertOption) *geojson.FeatureCollection {
	t, err := topojson.Decode(in)
	if err != nil {
		log.Fatal(err)
	}

	if object != "" {
		fc, err := t.FeatureCollection(object, opts...)
		if err != nil {
			log.Fatal(err)
		}

		return fc
	}

	// no object selected, merge every object in document order
	fc := geojson.NewFeatureCollection()

	for _, name := range t.Names() {
		part, err := t.FeatureCollection(name, opts...)
		if err != nil {
			log.Fatal(err)
		}

		for _, f := range part.Features {
			fc.Append(f)
		}
	}

	return fc
}

func render(fc *geojson.FeatureCollection, outPath string, indent bool) {
	var b []byte

	var err error

	if indent {
		b, err = json.MarshalIndent(fc, "", "  ")
	} else {
		b, err = json.Marshal(fc)
	}

	if err != nil {
		log.Fatal(err)
	}

	out := os.Stdout
	if outPath != "" {
		out, err = os.Create(outPath)
		if err != nil {
			log.Fatal(err)
		}
		defer out.Close()
	}

	if _, err := out.Write(append(b, '\n')); err != nil {
		log.Fatal(err)
	}
}
