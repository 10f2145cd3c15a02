// Copyright 2017-25 the original author or authors.
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

// Package cli assembles the osm2rdf root command, the same shape
// cmd/pbf/cli builds its RootCmd in: one package-level *cobra.Command
// other commands and flag registration attach to from init().
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// RootCmd is the command tree's entry point. convert.go's init() installs
// runConvert as its RunE and registers every convert flag onto it; osm2rdf
// has no subcommands, so the conversion itself runs at the root.
var RootCmd = &cobra.Command{
	Use:   "osm2rdf <input>",
	Short: "Convert an OSM entity stream to RDF triples",
	Long: "osm2rdf reads a stream of OSM nodes, ways, and relations and " +
		"projects them to RDF triples serialized as N-Triples, Turtle, " +
		"or the QLever Turtle dialect.",
}

// Execute runs the command tree, printing any error to stderr and
// returning the process exit code the caller should use.
func Execute() int {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		if ec, ok := exitCodeFor(err); ok {
			return int(ec)
		}

		return 1
	}

	return 0
}
