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

package config

import (
	"fmt"
	"os"
	"runtime"

	"github.com/maguro/osm2rdf/internal/location"
	"github.com/maguro/osm2rdf/internal/rdf"
	"github.com/maguro/osm2rdf/internal/sink"
)

// EntityKind identifies one of the four entity kinds the dump handler
// projects to triples, the unit the --no-{area,node,relation,way} family
// of flags is scoped to.
type EntityKind int

const (
	Area EntityKind = iota
	Node
	Relation
	Way
)

func (k EntityKind) String() string {
	switch k {
	case Area:
		return "area"
	case Node:
		return "node"
	case Relation:
		return "relation"
	case Way:
		return "way"
	default:
		return "unknown"
	}
}

// Derivation identifies one of the derived-geometry triples
// --add-{kind}-{derivation} can request.
type Derivation int

const (
	ConvexHull Derivation = iota
	Envelope
	OrientedBoundingBox
)

// entityFlags holds the finer-grained skips scoped to one EntityKind.
type entityFlags struct {
	skip              bool
	skipFacts         bool
	skipGeomRelations bool
}

// DefaultNWorkers mirrors the teacher's DefaultNCpu: GOMAXPROCS minus one,
// floored at one, so the conversion leaves a core free for the OS and the
// progress bar goroutine.
func DefaultNWorkers() int {
	n := runtime.GOMAXPROCS(-1) - 1
	if n < 1 {
		n = 1
	}

	return n
}

// Config is the fully resolved set of options a conversion run uses. It is
// built once via New and never mutated afterward; internal/pipeline and
// internal/rdf read it but never write it, matching spec.md §5's "config
// parse + canonical entries ... populated single-threaded at startup"
// note.
type Config struct {
	Input  string
	Output string

	Format          rdf.Format
	Codec           sink.Codec
	OutputKeepFiles bool
	WriteStatistics bool

	CacheDir        string
	LocationBacking *location.Backing // nil => in-memory only

	Workers int
	Strict  bool

	entities map[EntityKind]*entityFlags
	derived  map[EntityKind]map[Derivation]bool

	AddAreaEnvelopeRatio     bool
	AddRelationBorderMembers bool

	AddWayMetadata            bool
	AddWayNodeGeometry        bool
	AddWayNodeOrder           bool
	AddWayNodeSpatialMetadata bool

	HasGeometryAsWKT   bool
	AdminRelationsOnly bool
	SkipWikiLinks      bool
	SemicolonTagKeys   map[string]bool
	TagDatatypes       map[string]rdf.IRI

	SimplifyWKT  bool
	WKTDeviation float64
	WKTPrecision int

	SimplifyGeometries           bool
	SimplifyGeometriesInnerOuter bool
	DontUseInnerOuterGeometries  bool
	ApproximateSpatialRels       bool

	WriteDAGDotFiles bool
}

// Option configures a Config under construction, the same shape as the
// teacher's EncoderOption/DecoderOption.
type Option func(*Config)

// WithOutput sets the output path. An empty path means stdout.
func WithOutput(path string) Option {
	return func(c *Config) { c.Output = path }
}

// WithFormat selects the serialization grammar.
func WithFormat(f rdf.Format) Option {
	return func(c *Config) { c.Format = f }
}

// WithCodec selects the compression codec wrapping the merged output.
func WithCodec(codec sink.Codec) Option {
	return func(c *Config) { c.Codec = codec }
}

// WithOutputKeepFiles retains per-worker intermediate spool files after
// Sink.Merge instead of deleting them.
func WithOutputKeepFiles(keep bool) Option {
	return func(c *Config) { c.OutputKeepFiles = keep }
}

// WithWriteStatistics enables the <output>.stats.json sidecar.
func WithWriteStatistics(write bool) Option {
	return func(c *Config) { c.WriteStatistics = write }
}

// WithCacheDir sets the directory used for the location index and other
// temporary files.
func WithCacheDir(dir string) Option {
	return func(c *Config) { c.CacheDir = dir }
}

// WithLocationBacking selects a disk-backed node-location index of the
// given backing. Passing nil keeps the index entirely in memory.
func WithLocationBacking(backing *location.Backing) Option {
	return func(c *Config) { c.LocationBacking = backing }
}

// WithWorkers overrides the worker pool size. n <= 0 falls back to
// DefaultNWorkers.
func WithWorkers(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.Workers = n
		}
	}
}

// WithStrict makes recoverable encoding errors fatal instead of being
// logged and skipped.
func WithStrict(strict bool) Option {
	return func(c *Config) { c.Strict = strict }
}

// WithSkipEntity excludes an entity kind entirely (facts and geometric
// relations both).
func WithSkipEntity(kind EntityKind) Option {
	return func(c *Config) { c.entityFlags(kind).skip = true }
}

// WithSkipFacts excludes only the fact triples for an entity kind;
// geometric-relation triples, if otherwise enabled, are unaffected.
func WithSkipFacts(kind EntityKind) Option {
	return func(c *Config) { c.entityFlags(kind).skipFacts = true }
}

// WithSkipGeomRelations excludes only the geometric-relation triples for
// an entity kind.
func WithSkipGeomRelations(kind EntityKind) Option {
	return func(c *Config) { c.entityFlags(kind).skipGeomRelations = true }
}

// WithDerivedGeometry enables an --add-{kind}-{derivation} triple.
func WithDerivedGeometry(kind EntityKind, d Derivation) Option {
	return func(c *Config) {
		if c.derived[kind] == nil {
			c.derived[kind] = make(map[Derivation]bool)
		}

		c.derived[kind][d] = true
	}
}

// WithSemicolonTagKeys adds keys whose tag values split into multiple
// triples on ';'.
func WithSemicolonTagKeys(keys ...string) Option {
	return func(c *Config) {
		for _, k := range keys {
			c.SemicolonTagKeys[k] = true
		}
	}
}

// WithTagDatatype assigns an explicit datatype IRI to a tag key, so that
// key's values are emitted as typed literals instead of plain strings.
func WithTagDatatype(key string, datatype rdf.IRI) Option {
	return func(c *Config) { c.TagDatatypes[key] = datatype }
}

// WithHasGeometryAsWKT selects between the direct pattern (a literal WKT
// object on geo:hasGeometry) and the indirect pattern (a blank
// node carrying hasSerialization). Defaults to the direct pattern.
func WithHasGeometryAsWKT(direct bool) Option {
	return func(c *Config) { c.HasGeometryAsWKT = direct }
}

// WithAdminRelationsOnly restricts area assembly from relations to those
// tagged boundary=administrative.
func WithAdminRelationsOnly(only bool) Option {
	return func(c *Config) { c.AdminRelationsOnly = only }
}

// WithSkipWikiLinks disables wikidata/wikipedia tag projection.
func WithSkipWikiLinks(skip bool) Option {
	return func(c *Config) { c.SkipWikiLinks = skip }
}

// WithAddAreaEnvelopeRatio enables the area/envelope area-ratio fact.
func WithAddAreaEnvelopeRatio(add bool) Option {
	return func(c *Config) { c.AddAreaEnvelopeRatio = add }
}

// WithAddRelationBorderMembers enables border-member triples for boundary
// relations.
func WithAddRelationBorderMembers(add bool) Option {
	return func(c *Config) { c.AddRelationBorderMembers = add }
}

// WithAddWayMetadata enables way metadata facts.
func WithAddWayMetadata(add bool) Option {
	return func(c *Config) { c.AddWayMetadata = add }
}

// WithAddWayNodeGeometry enables per-node geometry triples for way nodes.
func WithAddWayNodeGeometry(add bool) Option {
	return func(c *Config) { c.AddWayNodeGeometry = add }
}

// WithAddWayNodeOrder enables node-order triples for way nodes.
func WithAddWayNodeOrder(add bool) Option {
	return func(c *Config) { c.AddWayNodeOrder = add }
}

// WithAddWayNodeSpatialMetadata enables spatial metadata triples for way
// nodes.
func WithAddWayNodeSpatialMetadata(add bool) Option {
	return func(c *Config) { c.AddWayNodeSpatialMetadata = add }
}

// WithSimplifyWKT enables WKT geometry simplification before
// serialization, governed by WithWKTDeviation.
func WithSimplifyWKT(simplify bool) Option {
	return func(c *Config) { c.SimplifyWKT = simplify }
}

// WithWKTDeviation sets the maximum deviation allowed when simplifying
// WKT geometries.
func WithWKTDeviation(deviation float64) Option {
	return func(c *Config) { c.WKTDeviation = deviation }
}

// WithWKTPrecision sets the decimal digits of precision WKT coordinates
// are rendered with.
func WithWKTPrecision(precision int) Option {
	return func(c *Config) { c.WKTPrecision = precision }
}

// WithSimplifyGeometries enables assembled-area geometry simplification.
func WithSimplifyGeometries(simplify bool) Option {
	return func(c *Config) { c.SimplifyGeometries = simplify }
}

// WithSimplifyGeometriesInnerOuter extends assembled-area simplification
// (WithSimplifyGeometries) to inner rings; without it only the outer ring
// is simplified.
func WithSimplifyGeometriesInnerOuter(separate bool) Option {
	return func(c *Config) { c.SimplifyGeometriesInnerOuter = separate }
}

// WithDontUseInnerOuterGeometries assembles areas from relation members
// without splitting by inner/outer role.
func WithDontUseInnerOuterGeometries(dont bool) Option {
	return func(c *Config) { c.DontUseInnerOuterGeometries = dont }
}

// WithApproximateSpatialRels uses approximate bounding geometry when
// computing spatial-relation triples, trading accuracy for speed.
func WithApproximateSpatialRels(approximate bool) Option {
	return func(c *Config) { c.ApproximateSpatialRels = approximate }
}

// WithWriteDAGDotFiles writes the area-containment DAG as Graphviz .dot
// files alongside the output.
func WithWriteDAGDotFiles(write bool) Option {
	return func(c *Config) { c.WriteDAGDotFiles = write }
}

// New builds a Config from defaults plus the given options, the same
// pattern the teacher's pbf.NewEncoder/pbf.NewDecoder use.
func New(opts ...Option) *Config {
	c := &Config{
		Format:           rdf.TTL{},
		Codec:            sink.None,
		Workers:          DefaultNWorkers(),
		WKTPrecision:     7,
		HasGeometryAsWKT: true,

		entities:         make(map[EntityKind]*entityFlags),
		derived:          make(map[EntityKind]map[Derivation]bool),
		SemicolonTagKeys: make(map[string]bool),
		TagDatatypes:     make(map[string]rdf.IRI),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Config) entityFlags(kind EntityKind) *entityFlags {
	f, ok := c.entities[kind]
	if !ok {
		f = &entityFlags{}
		c.entities[kind] = f
	}

	return f
}

// IncludeEntity reports whether kind should be processed at all.
func (c *Config) IncludeEntity(kind EntityKind) bool {
	f, ok := c.entities[kind]

	return !ok || !f.skip
}

// IncludeFacts reports whether fact triples should be emitted for kind.
func (c *Config) IncludeFacts(kind EntityKind) bool {
	if !c.IncludeEntity(kind) {
		return false
	}

	f, ok := c.entities[kind]

	return !ok || !f.skipFacts
}

// IncludeGeomRelations reports whether geometric-relation triples should
// be emitted for kind.
func (c *Config) IncludeGeomRelations(kind EntityKind) bool {
	if !c.IncludeEntity(kind) {
		return false
	}

	f, ok := c.entities[kind]

	return !ok || !f.skipGeomRelations
}

// IncludeDerivedGeometry reports whether derivation d was requested for
// kind via --add-{kind}-{derivation}.
func (c *Config) IncludeDerivedGeometry(kind EntityKind, d Derivation) bool {
	return c.derived[kind][d]
}

// Validate checks the input path and cache directory against the exit-code
// conditions spec.md §6 documents, returning a *ValidationError carrying
// the matching ExitCode on failure.
func (c *Config) Validate() error {
	if c.Input == "" {
		return &ValidationError{Code: ExitInputMissing, Msg: "input path is required"}
	}

	info, err := os.Stat(c.Input)
	if err != nil {
		return &ValidationError{Code: ExitInputNotExists, Msg: fmt.Sprintf("input %q does not exist", c.Input)}
	}

	if info.IsDir() {
		return &ValidationError{Code: ExitInputIsDirectory, Msg: fmt.Sprintf("input %q is a directory", c.Input)}
	}

	if c.CacheDir == "" {
		return nil
	}

	info, err = os.Stat(c.CacheDir)
	if err != nil {
		return &ValidationError{Code: ExitCacheNotExists, Msg: fmt.Sprintf("cache directory %q does not exist", c.CacheDir)}
	}

	if !info.IsDir() {
		return &ValidationError{Code: ExitCacheNotDirectory, Msg: fmt.Sprintf("cache path %q is not a directory", c.CacheDir)}
	}

	return nil
}
