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

package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/destel/rill"

	"github.com/maguro/osm2rdf/internal/area"
	"github.com/maguro/osm2rdf/internal/config"
	"github.com/maguro/osm2rdf/internal/location"
	"github.com/maguro/osm2rdf/internal/osmsource"
	"github.com/maguro/osm2rdf/internal/rdf"
)

// sealer is implemented by location.Index backings that need an explicit
// switch from populate to read mode (location.DiskIndex) between pass 1
// and pass 2. In-memory backings satisfy location.Index without it.
type sealer interface {
	Seal() error
}

// Driver runs the two-pass conversion spec.md §4.7 describes over one
// rdf.Sink's worker writers.
type Driver struct {
	sink     *rdf.Sink
	prefixes *rdf.PrefixTable
}

// NewDriver returns a Driver that writes its output through sink, using
// prefixes for every worker's Writer.
func NewDriver(sink *rdf.Sink, prefixes *rdf.PrefixTable) *Driver {
	return &Driver{sink: sink, prefixes: prefixes}
}

// Run streams src twice: pass 1 populates the node-location index and
// registers multipolygon candidates; pass 2 resolves geometry and projects
// every entity to triples across cfg.Workers worker goroutines, each
// owning one of the sink's spool files for its entire lifetime. It returns
// the combined Stats across every worker's Writer, for the optional
// statistics sidecar.
func (d *Driver) Run(ctx context.Context, src osmsource.Source, cfg *config.Config) (rdf.Stats, error) {
	idx, err := newLocationIndex(cfg)
	if err != nil {
		return rdf.Stats{}, fmt.Errorf("pipeline: building location index: %w", err)
	}
	defer idx.Close()

	asm := area.NewAssembler(assemblerOptions(cfg)...)

	if err := d.runPass1(ctx, src, idx, asm); err != nil {
		return rdf.Stats{}, fmt.Errorf("pipeline: pass 1: %w", err)
	}

	if s, ok := idx.(sealer); ok {
		if err := s.Seal(); err != nil {
			return rdf.Stats{}, fmt.Errorf("pipeline: sealing location index: %w", err)
		}
	}

	stats, err := d.runPass2(ctx, src, idx, asm, cfg)
	if err != nil {
		return rdf.Stats{}, fmt.Errorf("pipeline: pass 2: %w", err)
	}

	return stats, nil
}

// assemblerOptions translates cfg's area-assembly flags into area.Options.
func assemblerOptions(cfg *config.Config) []area.Option {
	opts := []area.Option{
		area.WithAdminRelationsOnly(cfg.AdminRelationsOnly),
		area.WithDontUseInnerOuterGeometries(cfg.DontUseInnerOuterGeometries),
		area.WithSimplifyGeometriesInnerOuter(cfg.SimplifyGeometriesInnerOuter),
	}

	if cfg.SimplifyGeometries {
		opts = append(opts, area.WithSimplifyGeometries(cfg.WKTDeviation))
	}

	return opts
}

func newLocationIndex(cfg *config.Config) (location.Index, error) {
	if cfg.LocationBacking == nil {
		return location.NewSparseIndex(), nil
	}

	return location.NewDiskIndex(cfg.CacheDir, *cfg.LocationBacking)
}

// runPass1 is a single sequential stream of src: spec.md §5 requires the
// location index have exactly one writer, so this never fans out across
// goroutines the way pass 2 does.
func (d *Driver) runPass1(ctx context.Context, src osmsource.Source, idx location.Index, asm *area.Assembler) error {
	buffers, errs := src.Stream(ctx)

	for buf := range buffers {
		for _, n := range buf.Nodes {
			if err := idx.Put(n.ID, n.Point); err != nil {
				return err
			}
		}

		for i := range buf.Relations {
			asm.Observe(&buf.Relations[i])
		}
	}

	return <-errs
}

// runPass2 dispatches buffers round-robin to cfg.Workers goroutines, each
// bound to one rdf.Writer for the run's whole duration so that, per
// spec.md §5, "no triple crosses thread boundaries during generation."
func (d *Driver) runPass2(
	ctx context.Context,
	src osmsource.Source,
	idx location.Index,
	asm *area.Assembler,
	cfg *config.Config,
) (rdf.Stats, error) {
	n := cfg.Workers
	if n < 1 {
		n = 1
	}

	writers := make([]*rdf.Writer, n)
	queues := make([]chan osmsource.Buffer, n)
	errCh := make([]<-chan error, n)

	var relations *areaRelations
	if cfg.ApproximateSpatialRels && cfg.IncludeGeomRelations(config.Area) {
		relations = newAreaRelations()
	}

	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		writers[i] = rdf.NewWriter(i, cfg.Format, d.prefixes, d.sink.WriterFor(i))
		if err := writers[i].WriteHeader(); err != nil {
			return rdf.Stats{}, fmt.Errorf("writing header for worker %d: %w", i, err)
		}

		queues[i] = make(chan osmsource.Buffer, 1)

		out := make(chan error, 1)
		errCh[i] = out

		wg.Add(1)

		go func(worker int) {
			defer wg.Done()
			defer close(out)

			out <- d.processQueue(ctx, writers[worker], idx, asm, cfg, relations, queues[worker])
		}(i)
	}

	dispatchErr := dispatchBuffers(ctx, src, queues)

	wg.Wait()

	if relations != nil {
		if err := relations.writeTriples(writers[0]); err != nil {
			return rdf.Stats{}, fmt.Errorf("writing geometric-relation triples: %w", err)
		}

		if cfg.WriteDAGDotFiles {
			path := filepath.Join(cfg.CacheDir, "osm2rdf-relations.dot")
			if err := relations.writeDotFile(path); err != nil {
				return rdf.Stats{}, fmt.Errorf("writing DAG dot file: %w", err)
			}
		}
	}

	var stats rdf.Stats

	for _, w := range writers {
		if err := w.Flush(); err != nil {
			return rdf.Stats{}, fmt.Errorf("flushing worker writer: %w", err)
		}

		stats = stats.Add(w.Stats())
	}

	if dispatchErr != nil {
		return rdf.Stats{}, dispatchErr
	}

	for err := range rill.Merge(errCh...) {
		if err != nil {
			return rdf.Stats{}, err
		}
	}

	return stats, nil
}

// dispatchBuffers reads src once, in order, and sends each buffer to
// queues[bufferIndex % len(queues)], preserving per-worker order since
// each queue only ever receives buffers in increasing original sequence.
func dispatchBuffers(ctx context.Context, src osmsource.Source, queues []chan osmsource.Buffer) error {
	defer func() {
		for _, q := range queues {
			close(q)
		}
	}()

	buffers, errs := src.Stream(ctx)

	i := 0

	for buf := range buffers {
		select {
		case queues[i%len(queues)] <- buf:
		case <-ctx.Done():
			return ctx.Err()
		}

		i++
	}

	return <-errs
}

func (d *Driver) processQueue(
	ctx context.Context,
	w *rdf.Writer,
	idx location.Index,
	asm *area.Assembler,
	cfg *config.Config,
	relations *areaRelations,
	queue <-chan osmsource.Buffer,
) error {
	dump := NewDumpHandler(cfg)
	dump.relations = relations

	for buf := range queue {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := d.processBuffer(w, dump, idx, asm, buf); err != nil {
			return err
		}
	}

	return nil
}

func (d *Driver) processBuffer(
	w *rdf.Writer,
	dump *DumpHandler,
	idx location.Index,
	asm *area.Assembler,
	buf osmsource.Buffer,
) error {
	for _, n := range buf.Nodes {
		if err := dump.Dump(w, n); err != nil {
			return fmt.Errorf("node %d: %w", n.ID, err)
		}
	}

	for i := range buf.Ways {
		wy := buf.Ways[i]

		pts, err := location.Resolve(idx, wy.NodeIDs)
		if err != nil {
			return fmt.Errorf("way %d: %w", wy.ID, err)
		}

		wy.Geometry = pts

		if a, ok := asm.ObserveWay(&wy); ok {
			if err := dump.Dump(w, a); err != nil {
				return fmt.Errorf("way-sourced area %d: %w", a.ID, err)
			}
		}

		if err := dump.Dump(w, wy); err != nil {
			return fmt.Errorf("way %d: %w", wy.ID, err)
		}
	}

	for i := range buf.Relations {
		r := buf.Relations[i]

		if err := dump.Dump(w, r); err != nil {
			return fmt.Errorf("relation %d: %w", r.ID, err)
		}

		for _, a := range asm.CompletedAreas() {
			if err := dump.Dump(w, a); err != nil {
				return fmt.Errorf("relation-sourced area %d: %w", a.ID, err)
			}
		}
	}

	return nil
}
