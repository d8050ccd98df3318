// Copyright 2020 Grail Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package bedmask

import (
	"fmt"
	"strconv"

	gunsafe "github.com/grailbio/base/unsafe"
	"github.com/grailbio/dazztrack/dazzdb"
	"github.com/grailbio/dazztrack/encoding/track"
	"github.com/grailbio/dazztrack/util"
)

// maxSuggestDist bounds the edit distance of did-you-mean suggestions for
// unknown scaffold names.
const maxSuggestDist = 2

// mapper accumulates the mask intervals of one conversion run.
type mapper struct {
	db     *dazzdb.DB
	cutoff int
	sink   Sink
	out    []track.Interval
	stats  Stats
}

// scaffoldRecord maps one scaffold-coordinate record: locate the
// scaffold's contig run, clip the interval against every overlapping
// contig, and keep each clipped part at least cutoff long.  One record
// yields zero or more intervals.
func (m *mapper) scaffoldRecord(line int, name []byte, begin, end int) {
	first, ok := m.db.FirstContig(gunsafe.BytesToString(name))
	if !ok {
		e := UnknownScaffold{Line: line, Scaffold: string(name)}
		if c, ok := util.Closest(gunsafe.BytesToString(name), m.db.Scaffolds(), maxSuggestDist); ok {
			e.Suggestion = c
		}
		m.sink.Notify(e)
		m.stats.Skipped++
		return
	}
	m.sink.Notify(BeginSearch{Line: line, Scaffold: string(name), First: int32(first + 1)})

	accepted, rejected := 0, 0
	for i := first; i < m.db.NumContigs(); i++ {
		c := m.db.Contig(i)
		if c.Scaffold != gunsafe.BytesToString(name) {
			// Contigs of one scaffold form a contiguous run.
			m.sink.Notify(EndOfScaffoldSearch{Line: line, Scaffold: string(name), Contig: int32(i + 1)})
			break
		}
		if end < int(c.Begin) {
			// Contigs are sorted by scaffold position; nothing later overlaps.
			m.sink.Notify(EndOfIntervalSearch{Line: line, Scaffold: string(name), Contig: int32(i + 1)})
			break
		}
		if int(c.End) < begin {
			continue
		}
		clipBegin, clipEnd := begin, end
		if b := int(c.Begin); b > clipBegin {
			clipBegin = b
		}
		if e := int(c.End); e < clipEnd {
			clipEnd = e
		}
		clipBegin -= int(c.Begin)
		clipEnd -= int(c.Begin)
		if clipEnd-clipBegin >= m.cutoff {
			m.out = append(m.out, track.Interval{ContigID: int32(i + 1), Begin: int32(clipBegin), End: int32(clipEnd)})
			accepted++
		} else {
			m.sink.Notify(CutoffRejected{
				Line:   line,
				Contig: int32(i + 1),
				Begin:  int32(clipBegin),
				End:    int32(clipEnd),
				Cutoff: m.cutoff,
			})
			rejected++
		}
	}
	if accepted == 0 {
		m.sink.Notify(UnmappedRecord{Line: line, Scaffold: string(name), Rejected: rejected})
		m.stats.Unmapped++
	} else if accepted > 1 {
		m.sink.Notify(SplitRecord{Line: line, Scaffold: string(name), Parts: accepted})
		m.stats.Split++
	}
	m.stats.Intervals += accepted
	m.stats.Rejected += rejected
}

// contigRecord maps one contig-coordinate record: the first field is a
// 1-based contig ID and the coordinates are already contig-local, so the
// record is bounds-checked and passed through without search, splitting,
// or cutoff filtering.
func (m *mapper) contigRecord(line int, idTok []byte, begin, end int) {
	id, err := strconv.Atoi(gunsafe.BytesToString(idTok))
	if err != nil {
		m.sink.Notify(MalformedRecord{Line: line, Reason: fmt.Sprintf("contig id %q", idTok)})
		m.stats.Skipped++
		return
	}
	if id < 1 || id > m.db.NumContigs() {
		m.sink.Notify(MalformedRecord{Line: line, Reason: fmt.Sprintf("contig id %d outside [1, %d]", id, m.db.NumContigs())})
		m.stats.Skipped++
		return
	}
	length := int(m.db.Contig(id - 1).Len())
	if begin < 0 || end < begin || end > length {
		m.sink.Notify(MalformedRecord{
			Line:   line,
			Reason: fmt.Sprintf("interval [%d, %d) outside contig %d of length %d", begin, end, id, length),
		})
		m.stats.Skipped++
		return
	}
	m.out = append(m.out, track.Interval{ContigID: int32(id), Begin: int32(begin), End: int32(end)})
	m.stats.Intervals++
}
