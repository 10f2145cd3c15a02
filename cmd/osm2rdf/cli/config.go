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

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/maguro/osm2rdf/internal/config"
	"github.com/maguro/osm2rdf/internal/location"
	"github.com/maguro/osm2rdf/internal/rdf"
	"github.com/maguro/osm2rdf/internal/sink"
)

var entityKinds = map[string]config.EntityKind{
	"area":     config.Area,
	"node":     config.Node,
	"relation": config.Relation,
	"way":      config.Way,
}

var derivations = map[string]config.Derivation{
	"convex-hull":           config.ConvexHull,
	"envelope":              config.Envelope,
	"oriented-bounding-box": config.OrientedBoundingBox,
}

// buildConfig translates the resolved flag set plus the input positional
// argument into a *config.Config, the same binding step cmd/pbf's info
// command performs by hand for its own, much smaller flag set.
func buildConfig(cmd *cobra.Command, input string) (*config.Config, bool, error) {
	flags := cmd.Flags()

	var opts []config.Option

	opts = append(opts, config.WithOutput(mustString(flags, "output")))

	format, err := parseFormat(mustString(flags, "output-format"))
	if err != nil {
		return nil, false, err
	}

	opts = append(opts, config.WithFormat(format))

	noCompress, _ := flags.GetBool("output-no-compress")

	codec := sink.None

	if !noCompress {
		codec, err = sink.ParseCodec(mustString(flags, "compress-codec"))
		if err != nil {
			return nil, false, err
		}
	}

	opts = append(opts, config.WithCodec(codec))

	opts = append(opts,
		config.WithOutputKeepFiles(mustBool(flags, "output-keep-files")),
		config.WithWriteStatistics(mustBool(flags, "write-rdf-statistics")),
		config.WithWriteDAGDotFiles(mustBool(flags, "write-dag-dot-files")),
		config.WithCacheDir(mustString(flags, "cache")),
		config.WithStrict(mustBool(flags, "strict")),
		config.WithWorkers(mustInt(flags, "workers")),
		config.WithHasGeometryAsWKT(mustBool(flags, "hasgeometry-as-wkt")),
		config.WithAdminRelationsOnly(mustBool(flags, "admin-relations-only")),
		config.WithSkipWikiLinks(mustBool(flags, "skip-wiki-links")),
		config.WithAddAreaEnvelopeRatio(mustBool(flags, "add-area-envelope-ratio")),
		config.WithAddRelationBorderMembers(mustBool(flags, "add-relation-border-members")),
		config.WithAddWayMetadata(mustBool(flags, "add-way-metadata")),
		config.WithAddWayNodeGeometry(mustBool(flags, "add-way-node-geometry")),
		config.WithAddWayNodeOrder(mustBool(flags, "add-way-node-order")),
		config.WithAddWayNodeSpatialMetadata(mustBool(flags, "add-way-node-spatial-metadata")),
		config.WithSimplifyWKT(mustBool(flags, "simplify-wkt")),
		config.WithWKTDeviation(mustFloat64(flags, "wkt-deviation")),
		config.WithWKTPrecision(mustInt(flags, "wkt-precision")),
		config.WithSimplifyGeometries(mustBool(flags, "simplify-geometries")),
		config.WithSimplifyGeometriesInnerOuter(mustBool(flags, "simplify-geometries-inner-outer")),
		config.WithDontUseInnerOuterGeometries(mustBool(flags, "dont-use-inner-outer-geometries")),
		config.WithApproximateSpatialRels(mustBool(flags, "approximate-spatial-rels")),
	)

	backing, err := parseBacking(mustString(flags, "store-locations-on-disk"))
	if err != nil {
		return nil, false, err
	}

	if backing != nil {
		opts = append(opts, config.WithLocationBacking(backing))
	}

	for name, kind := range entityKinds {
		if mustBool(flags, "no-"+name) {
			opts = append(opts, config.WithSkipEntity(kind))
		}

		if mustBool(flags, "no-"+name+"-facts") {
			opts = append(opts, config.WithSkipFacts(kind))
		}

		if mustBool(flags, "no-"+name+"-geom-relations") {
			opts = append(opts, config.WithSkipGeomRelations(kind))
		}

		for dname, d := range derivations {
			if mustBool(flags, "add-"+name+"-"+dname) {
				opts = append(opts, config.WithDerivedGeometry(kind, d))
			}
		}
	}

	keys, err := flags.GetStringSlice("semicolon-tag-keys")
	if err != nil {
		return nil, false, err
	}

	if len(keys) > 0 {
		opts = append(opts, config.WithSemicolonTagKeys(keys...))
	}

	cfg := config.New(opts...)
	cfg.Input = input

	return cfg, mustBool(flags, "json"), nil
}

func parseFormat(name string) (rdf.Format, error) {
	switch name {
	case "nt":
		return rdf.NT{}, nil
	case "ttl", "":
		return rdf.TTL{}, nil
	case "qlever":
		return rdf.QLever{}, nil
	default:
		return nil, fmt.Errorf("osm2rdf: unknown output format %q", name)
	}
}

func parseBacking(name string) (*location.Backing, error) {
	switch name {
	case "":
		return nil, nil
	case "sparse":
		b := location.BackingSparse

		return &b, nil
	case "dense":
		b := location.BackingDense

		return &b, nil
	default:
		return nil, fmt.Errorf("osm2rdf: unknown location backing %q", name)
	}
}

func mustString(flags *pflag.FlagSet, name string) string {
	v, _ := flags.GetString(name)

	return v
}

func mustBool(flags *pflag.FlagSet, name string) bool {
	v, _ := flags.GetBool(name)

	return v
}

func mustInt(flags *pflag.FlagSet, name string) int {
	v, _ := flags.GetInt(name)

	return v
}

func mustFloat64(flags *pflag.FlagSet, name string) float64 {
	v, _ := flags.GetFloat64(name)

	return v
}
