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
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/maguro/osm2rdf/internal/config"
	"github.com/maguro/osm2rdf/internal/osmsource"
	"github.com/maguro/osm2rdf/internal/pipeline"
	"github.com/maguro/osm2rdf/internal/progress"
	"github.com/maguro/osm2rdf/internal/rdf"
	"github.com/maguro/osm2rdf/internal/sink"
)

func init() {
	RootCmd.Args = cobra.ExactArgs(1)
	RootCmd.RunE = runConvert

	registerFlags(RootCmd.Flags())
}

// registerFlags declares every convert flag on flags. Factored out of
// init() so tests can register the same flags onto a throwaway
// *pflag.FlagSet instead of mutating the package-level RootCmd.
func registerFlags(flags *pflag.FlagSet) {
	flags.StringP("output", "o", "", "output file path (default: stdout)")
	flags.String("output-format", "ttl", "output serialization: nt, ttl, or qlever")
	flags.Bool("output-no-compress", false, "write the merged output uncompressed")
	flags.String("compress-codec", "zstd", "compression codec for the merged output: none, zstd, lz4, or lzma")
	flags.Bool("output-keep-files", false, "keep per-worker spool files after merging")
	flags.Bool("write-rdf-statistics", false, "write a <output>.stats.json sidecar")
	flags.Bool("write-dag-dot-files", false, "write the area-containment DAG as Graphviz .dot files")

	flags.String("cache", "", "directory for the node-location index and other temporary files")
	flags.String("store-locations-on-disk", "", "back the node-location index with a disk index: sparse or dense")

	flags.Bool("no-area", false, "skip area entities entirely")
	flags.Bool("no-node", false, "skip node entities entirely")
	flags.Bool("no-relation", false, "skip relation entities entirely")
	flags.Bool("no-way", false, "skip way entities entirely")

	flags.Bool("no-area-facts", false, "skip area fact triples")
	flags.Bool("no-node-facts", false, "skip node fact triples")
	flags.Bool("no-relation-facts", false, "skip relation fact triples")
	flags.Bool("no-way-facts", false, "skip way fact triples")

	flags.Bool("no-area-geom-relations", false, "skip area geometric-relation triples")
	flags.Bool("no-node-geom-relations", false, "skip node geometric-relation triples")
	flags.Bool("no-relation-geom-relations", false, "skip relation geometric-relation triples")
	flags.Bool("no-way-geom-relations", false, "skip way geometric-relation triples")

	for _, kind := range []string{"area", "node", "way", "relation"} {
		flags.Bool("add-"+kind+"-convex-hull", false, "add a convex-hull geometry for "+kind+" entities")
		flags.Bool("add-"+kind+"-envelope", false, "add an envelope geometry for "+kind+" entities")
		flags.Bool("add-"+kind+"-oriented-bounding-box", false, "add an oriented-bounding-box geometry for "+kind+" entities")
	}

	flags.Bool("add-area-envelope-ratio", false, "add the area/envelope area ratio fact")
	flags.Bool("add-relation-border-members", false, "add border-member triples for boundary relations")
	flags.Bool("add-way-metadata", false, "add way metadata facts")
	flags.Bool("add-way-node-geometry", false, "add per-node geometry triples for way nodes")
	flags.Bool("add-way-node-order", false, "add node-order triples for way nodes")
	flags.Bool("add-way-node-spatial-metadata", false, "add spatial metadata triples for way nodes")

	flags.Bool("hasgeometry-as-wkt", true, "emit geo:hasGeometry as a direct WKT literal instead of an indirect node")
	flags.Bool("admin-relations-only", false, "only assemble areas from relations tagged boundary=administrative")
	flags.Bool("skip-wiki-links", false, "skip wikidata/wikipedia tag triples")
	flags.StringSlice("semicolon-tag-keys", nil, "tag keys whose values split into multiple triples on ';' (repeatable)")

	flags.Bool("simplify-wkt", false, "simplify WKT geometries before serialization")
	flags.Float64("wkt-deviation", 0.05, "maximum deviation allowed when simplifying WKT geometries")
	flags.Int("wkt-precision", 7, "decimal digits of precision for WKT coordinates")

	flags.Bool("simplify-geometries", false, "simplify assembled area geometries")
	flags.Bool("simplify-geometries-inner-outer", false, "with --simplify-geometries, also simplify the inner rings of assembled areas, not only the outer ring")
	flags.Bool("dont-use-inner-outer-geometries", false, "assemble areas from relation members without inner/outer role splitting")
	flags.Bool("approximate-spatial-rels", false, "use approximate bounding geometry for spatial-relation triples")

	flags.Bool("strict", false, "treat recoverable encoding errors as fatal")
	flags.IntP("workers", "w", config.DefaultNWorkers(), "number of pass-2 worker goroutines")
	flags.Bool("json", false, "print the run summary as JSON")
	flags.CountP("verbose", "v", "increase log verbosity (-v info, -vv debug)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	verbosity, _ := cmd.Flags().GetCount("verbose")
	configureLogging(verbosity)

	cfg, jsonSummary, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	out, err := sink.Open(cfg.Output, cfg.Codec)
	if err != nil {
		return fmt.Errorf("opening output: %w", err)
	}
	defer out.Close()

	spoolDir := cfg.CacheDir
	if spoolDir == "" {
		spoolDir = os.TempDir()
	}

	spoolDir = filepath.Join(spoolDir, fmt.Sprintf("osm2rdf-spool-%d", os.Getpid()))

	s, err := rdf.NewSink(spoolDir, cfg.Workers)
	if err != nil {
		return fmt.Errorf("creating spool sink: %w", err)
	}
	defer func() {
		if !cfg.OutputKeepFiles {
			s.Close()
		}
	}()

	src := osmsource.NewNDJSONSource(cfg.Input, osmsource.DefaultBatchSize, osmsource.WithReaderWrap(progress.WrapInputFile))

	driver := pipeline.NewDriver(s, rdf.NewPrefixTable())

	stats, err := driver.Run(cmd.Context(), src, cfg)
	if err != nil {
		slog.Error("conversion failed", "error", err)

		return err
	}

	if err := s.Merge(cmd.Context(), out); err != nil {
		return fmt.Errorf("merging worker output: %w", err)
	}

	if cfg.WriteStatistics {
		if err := writeStatisticsSidecar(cfg.Output, stats); err != nil {
			return err
		}
	}

	if cfg.OutputKeepFiles {
		slog.Info("keeping spool files", "dir", spoolDir)
	}

	printSummary(cmd.OutOrStdout(), cfg, stats, jsonSummary)

	return nil
}

// configureLogging sets log/slog's default handler level from the
// repeated -v flag: unset is Warn, -v is Info, -vv and above is Debug,
// the same coarse level escalation cmd/pbf leaves to its default logger
// but osm2rdf actually exposes on the command line.
func configureLogging(verbosity int) {
	level := slog.LevelWarn

	switch {
	case verbosity >= 2:
		level = slog.LevelDebug
	case verbosity == 1:
		level = slog.LevelInfo
	}

	slog.SetLogLoggerLevel(level)
}

func writeStatisticsSidecar(output string, stats rdf.Stats) error {
	path := output + ".stats.json"
	if output == "" {
		path = "stdout.stats.json"
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating statistics sidecar: %w", err)
	}
	defer f.Close()

	return rdf.WriteStatsJSON(f, stats)
}

type summary struct {
	Input          string `json:"input"`
	Output         string `json:"output"`
	Format         string `json:"format"`
	Workers        int    `json:"workers"`
	Triples        string `json:"triples"`
	BlankNodes     string `json:"blankNodes"`
	HeapAllocBytes uint64 `json:"heapAllocBytes"`
}

func printSummary(w io.Writer, cfg *config.Config, stats rdf.Stats, asJSON bool) {
	ram := progress.SampleRAM()

	s := summary{
		Input:          cfg.Input,
		Output:         cfg.Output,
		Format:         formatName(cfg.Format),
		Workers:        cfg.Workers,
		Triples:        humanize.Comma(int64(stats.Triples())),
		BlankNodes:     humanize.Comma(int64(stats.BlankNodes)),
		HeapAllocBytes: ram.HeapAllocBytes,
	}

	if asJSON {
		b, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return
		}

		fmt.Fprintln(w, string(b))

		return
	}

	fmt.Fprintf(w, "Input: %s\n", s.Input)
	fmt.Fprintf(w, "Output: %s\n", outputOrStdout(s.Output))
	fmt.Fprintf(w, "Format: %s\n", s.Format)
	fmt.Fprintf(w, "Workers: %d\n", s.Workers)
	fmt.Fprintf(w, "Triples: %s\n", s.Triples)
	fmt.Fprintf(w, "BlankNodes: %s\n", s.BlankNodes)
	fmt.Fprintf(w, "HeapAllocBytes: %s\n", humanize.Comma(int64(s.HeapAllocBytes)))
}

func outputOrStdout(path string) string {
	if path == "" {
		return "<stdout>"
	}

	return path
}

func formatName(f rdf.Format) string {
	switch f.(type) {
	case rdf.NT:
		return "nt"
	case rdf.QLever:
		return "qlever"
	default:
		return "ttl"
	}
}

func exitCodeFor(err error) (config.ExitCode, bool) {
	var ve *config.ValidationError
	if ok := asValidationError(err, &ve); ok {
		return ve.Code, true
	}

	return 0, false
}

func asValidationError(err error, target **config.ValidationError) bool {
	for err != nil {
		if ve, ok := err.(*config.ValidationError); ok {
			*target = ve

			return true
		}

		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}

		err = u.Unwrap()
	}

	return false
}
