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

package osmsource

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/maguro/osm2rdf/model"
)

// DefaultBatchSize is the number of entities ndjsonSource accumulates into
// one Buffer before handing it to the driver, mirroring the "buffer" unit
// spec.md §5 schedules work by.
const DefaultBatchSize = 4096

// record is the on-disk shape of one NDJSON line. Fields are a superset of
// all three entity kinds; only the ones matching Type are populated.
type record struct {
	Type string `json:"type"`

	ID   uint64            `json:"id"`
	Tags map[string]string `json:"tags,omitempty"`

	// node
	Lat float64 `json:"lat,omitempty"`
	Lon float64 `json:"lon,omitempty"`

	// way
	Nodes []uint64 `json:"nodes,omitempty"`

	// relation
	Members []recordMember `json:"members,omitempty"`
}

type recordMember struct {
	Type string `json:"type"`
	ID   uint64 `json:"id"`
	Role string `json:"role"`
}

// ndjsonSource reads one entity per line from a file at path, in the
// teacher's domain the rough JSON analogue of the osmpbf scanner: a flat
// record stream with no cross-record state.
type ndjsonSource struct {
	path      string
	batchSize int
	wrap      func(*os.File) (io.ReadCloser, error)
}

var _ Source = (*ndjsonSource)(nil)

// Option configures an ndjsonSource under construction.
type Option func(*ndjsonSource)

// WithReaderWrap installs a hook Stream runs the freshly opened file
// through before scanning it, the seam internal/progress's WrapInputFile
// uses to drive a byte-count progress bar over each of the driver's two
// passes without osmsource itself depending on a terminal library.
func WithReaderWrap(wrap func(*os.File) (io.ReadCloser, error)) Option {
	return func(s *ndjsonSource) { s.wrap = wrap }
}

// NewNDJSONSource opens path lazily on every Stream call so the driver's
// two passes each get a fresh read from the beginning. batchSize <= 0
// falls back to DefaultBatchSize.
func NewNDJSONSource(path string, batchSize int, opts ...Option) Source {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	s := &ndjsonSource{path: path, batchSize: batchSize}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *ndjsonSource) Stream(ctx context.Context) (<-chan Buffer, <-chan error) {
	buffers := make(chan Buffer)
	errs := make(chan error, 1)

	go func() {
		defer close(buffers)
		defer close(errs)

		f, err := os.Open(s.path)
		if err != nil {
			errs <- fmt.Errorf("osmsource: open %s: %w", s.path, err)

			return
		}

		var rc io.ReadCloser = f

		if s.wrap != nil {
			rc, err = s.wrap(f)
			if err != nil {
				f.Close()

				errs <- fmt.Errorf("osmsource: wrap %s: %w", s.path, err)

				return
			}
		}

		defer rc.Close()

		scanner := bufio.NewScanner(rc)
		scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

		var buf Buffer

		flush := func() bool {
			if buf.Empty() {
				return true
			}

			select {
			case buffers <- buf:
				buf = Buffer{}

				return true
			case <-ctx.Done():
				return false
			}
		}

		for scanner.Scan() {
			if ctx.Err() != nil {
				return
			}

			line := scanner.Bytes()
			if len(line) == 0 {
				continue
			}

			var rec record
			if err := json.Unmarshal(line, &rec); err != nil {
				errs <- fmt.Errorf("osmsource: decode line: %w", err)

				return
			}

			if err := appendRecord(&buf, rec); err != nil {
				errs <- err

				return
			}

			if bufferLen(buf) >= s.batchSize {
				if !flush() {
					return
				}
			}
		}

		if err := scanner.Err(); err != nil {
			errs <- fmt.Errorf("osmsource: scan %s: %w", s.path, err)

			return
		}

		flush()
	}()

	return buffers, errs
}

func bufferLen(b Buffer) int {
	return len(b.Nodes) + len(b.Ways) + len(b.Relations)
}

func appendRecord(buf *Buffer, rec record) error {
	switch rec.Type {
	case "node":
		buf.Nodes = append(buf.Nodes, model.Node{
			ID:    model.NodeID(rec.ID),
			Point: model.Point{Lat: model.Degrees(rec.Lat), Lon: model.Degrees(rec.Lon)},
			Tags:  tagList(rec.Tags),
		})
	case "way":
		ids := make([]model.NodeID, len(rec.Nodes))
		for i, id := range rec.Nodes {
			ids[i] = model.NodeID(id)
		}

		buf.Ways = append(buf.Ways, model.Way{
			ID:      model.WayID(rec.ID),
			Tags:    tagList(rec.Tags),
			NodeIDs: ids,
		})
	case "relation":
		members := make([]model.RelationMember, len(rec.Members))
		for i, m := range rec.Members {
			members[i] = model.RelationMember{
				ID:   m.ID,
				Kind: memberKind(m.Type),
				Role: m.Role,
			}
		}

		buf.Relations = append(buf.Relations, model.Relation{
			ID:      model.RelationID(rec.ID),
			Tags:    tagList(rec.Tags),
			Members: members,
		})
	default:
		return fmt.Errorf("osmsource: unknown entity type %q", rec.Type)
	}

	return nil
}

func memberKind(t string) model.RelationMemberKind {
	switch t {
	case "node":
		return model.MemberNode
	case "way":
		return model.MemberWay
	case "relation":
		return model.MemberRelation
	default:
		return model.MemberUnknown
	}
}

// tagList converts the unordered JSON tag map into a TagList ordered by
// key, the closest a JSON map can get to the file-order determinism
// spec.md §4.6 asks of a real OSM reader's tag lists.
func tagList(m map[string]string) model.TagList {
	if len(m) == 0 {
		return nil
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	tags := make(model.TagList, len(keys))
	for i, k := range keys {
		tags[i] = model.Tag{Key: k, Value: m[k]}
	}

	return tags
}
