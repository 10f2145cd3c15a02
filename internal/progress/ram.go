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

package progress

import "runtime"

// RAM is a point-in-time snapshot of this process's memory use, reported
// alongside the run summary since spec.md §5 identifies the location
// index as the dominant consumer of peak memory.
type RAM struct {
	HeapAllocBytes uint64
	SysBytes       uint64
}

// SampleRAM reads the current heap and system memory figures from the Go
// runtime. It is a coarse probe, not an OS-level RSS measurement; a real
// RAM probe external collaborator (spec.md §1) might shell out to the OS,
// but none of that appears anywhere in the retrieval pack, so this stays
// on the one memory signal the standard library exposes directly.
func SampleRAM() RAM {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return RAM{HeapAllocBytes: m.HeapAlloc, SysBytes: m.Sys}
}
