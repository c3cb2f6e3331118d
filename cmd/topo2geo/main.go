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

// topo2geo converts TopoJSON topology documents into GeoJSON feature
// collections.
package main

import (
	"github.com/georust/topojson/cmd/topo2geo/cli"
	_ "github.com/georust/topojson/cmd/topo2geo/convert"
	_ "github.com/georust/topojson/cmd/topo2geo/info"
)

func main() {
	cli.Execute()
}
