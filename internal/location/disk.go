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

package location

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path"

	"github.com/maguro/osm2rdf/model"
)

const (
	diskRecordSize = 24 // uint64 id + float64 lat + float64 lon
	diskIndexName  = "locations.idx"
)

// Backing selects the in-memory structure a disk-backed index is shadowed
// by for reads, matching the --store-locations-on-disk sparse|dense CLI
// values.
type Backing int

const (
	BackingSparse Backing = iota
	BackingDense
)

// DiskIndex spools node locations to a fixed-record file as they are
// populated, then reloads them into an in-memory Index for pass two so
// lookups stay simple map/slice reads rather than repeated file I/O.
// Grounded on the teacher's initializeTempStore: a temp directory and one
// append-only file, created once and closed by the caller when the run
// ends.
type DiskIndex struct {
	file    *os.File
	backing Backing
	dense   *DenseIndex
	sparse  *SparseIndex
	sealed  bool
}

// NewDiskIndex creates the spool file under dir (created if necessary) and
// returns an index ready for pass-one Put calls.
func NewDiskIndex(dir string, backing Backing) (*DiskIndex, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("location: cannot create cache directory %s: %w", dir, err)
	}

	f, err := os.Create(path.Join(dir, diskIndexName))
	if err != nil {
		return nil, fmt.Errorf("location: cannot create spool file: %w", err)
	}

	return &DiskIndex{file: f, backing: backing}, nil
}

func (d *DiskIndex) Put(id model.NodeID, p model.Point) error {
	if d.sealed {
		return fmt.Errorf("location: Put called on a sealed disk index")
	}

	var record [diskRecordSize]byte
	binary.BigEndian.PutUint64(record[0:8], uint64(id))
	binary.BigEndian.PutUint64(record[8:16], math.Float64bits(float64(p.Lat)))
	binary.BigEndian.PutUint64(record[16:24], math.Float64bits(float64(p.Lon)))

	if _, err := d.file.Write(record[:]); err != nil {
		return fmt.Errorf("location: spool write failed: %w", err)
	}

	return nil
}

// Seal stops accepting writes and loads every spooled record into the
// configured in-memory backing, after which Get is safe to call from any
// number of goroutines.
func (d *DiskIndex) Seal() error {
	if d.sealed {
		return nil
	}

	d.sealed = true

	if _, err := d.file.Seek(0, 0); err != nil {
		return fmt.Errorf("location: cannot rewind spool file: %w", err)
	}

	switch d.backing {
	case BackingDense:
		d.dense = NewDenseIndex(0)
	default:
		d.sparse = NewSparseIndex()
	}

	buf := make([]byte, diskRecordSize)

	for {
		_, err := io.ReadFull(d.file, buf)
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return fmt.Errorf("location: corrupt spool file: %w", err)
		}

		id := model.NodeID(binary.BigEndian.Uint64(buf[0:8]))
		lat := math.Float64frombits(binary.BigEndian.Uint64(buf[8:16]))
		lon := math.Float64frombits(binary.BigEndian.Uint64(buf[16:24]))
		p := model.Point{Lat: model.Degrees(lat), Lon: model.Degrees(lon)}

		if d.dense != nil {
			if err := d.dense.Put(id, p); err != nil {
				return err
			}
		} else {
			if err := d.sparse.Put(id, p); err != nil {
				return err
			}
		}
	}

	return nil
}

func (d *DiskIndex) Get(id model.NodeID) (model.Point, bool) {
	if !d.sealed {
		return model.Point{}, false
	}

	if d.dense != nil {
		return d.dense.Get(id)
	}

	return d.sparse.Get(id)
}

func (d *DiskIndex) Close() error {
	return d.file.Close()
}
