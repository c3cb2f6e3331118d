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

// Package cli holds the shared plumbing of the topo2geo command tree.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// RootCmd is the root of the topo2geo command tree; subcommands register
// themselves against it from their package init functions.
var RootCmd = &cobra.Command{
	Use:   "topo2geo",
	Short: "Convert TopoJSON topologies to GeoJSON",
	Long:  "Convert TopoJSON topology documents into GeoJSON feature collections.",
}

// Execute runs the root command.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Input opens the input file named by args, falling back to stdin.
func Input(args []string) (*os.File, error) {
	if len(args) == 0 {
		return os.Stdin, nil
	}

	return os.Open(args[0])
}
