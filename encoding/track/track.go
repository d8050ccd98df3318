// Package track reads and writes mask tracks: positional annotation
// tracks attached to a DAZZ_DB-style assembly database as a pair of
// hidden files next to the database.  A mask named "dust" over the
// database /data/asm.db occupies /data/.asm.dust.anno and
// /data/.asm.dust.data.
//
// All integers are little-endian.  The .anno header file holds
//
//   int32  numContigs
//   int32  kind (0 for a mask track)
//   int64  offset[numContigs+1]
//
// where offset[i] is the byte position in the .data file of the first
// interval belonging to the 1-based contig i+1, and the final offset
// equals the .data file's total length.  Offsets are monotonically
// non-decreasing; a contig without intervals repeats its predecessor's
// offset.  The .data file is the concatenation, per contig in increasing
// ID order, of that contig's (begin, end) pairs as two int32 values,
// sorted and half-open in contig-local coordinates.
package track

import (
	"encoding/binary"
	"fmt"
	"io"
	"sort"

	"github.com/grailbio/base/log"
)

const (
	// maskKind is the header kind value of a position-only mask track, as
	// opposed to a data-bearing track.
	maskKind = int32(0)

	// dataStride is the size of one encoded interval: two int32 fields.
	dataStride = 8
)

// Interval is one mask interval: a half-open [Begin, End) span in the
// local coordinates of the contig with the given 1-based ID.
type Interval struct {
	ContigID int32
	Begin    int32
	End      int32
}

// compare orders intervals lexicographically by (ContigID, Begin, End).
func compare(x, y *Interval) int {
	if x.ContigID != y.ContigID {
		return int(x.ContigID) - int(y.ContigID)
	}
	if x.Begin != y.Begin {
		return int(x.Begin) - int(y.Begin)
	}
	return int(x.End) - int(y.End)
}

// Sort sorts intervals in place into serialization order.
func Sort(intervals []Interval) {
	sort.Slice(intervals, func(i, j int) bool {
		return compare(&intervals[i], &intervals[j]) < 0
	})
}

// Write sorts intervals in place and writes one mask, the header stream
// to annoW and the interval data stream to dataW.  Every interval's
// contig ID must lie in [1, numContigs]; an ID outside that range is a
// caller bug, not an input error, and aborts the process.
func Write(annoW, dataW io.Writer, numContigs int, intervals []Interval) error {
	Sort(intervals)
	header := [2]int32{int32(numContigs), maskKind}
	if err := binary.Write(annoW, binary.LittleEndian, &header); err != nil {
		return err
	}

	// Walk the contigs in step with the sorted intervals, recording each
	// contig's starting byte offset in the data stream.
	offsets := make([]int64, 0, numContigs+1)
	var off int64
	idx := 0
	for id := int32(1); id <= int32(numContigs); id++ {
		offsets = append(offsets, off)
		for idx < len(intervals) && intervals[idx].ContigID == id {
			pair := [2]int32{intervals[idx].Begin, intervals[idx].End}
			if err := binary.Write(dataW, binary.LittleEndian, &pair); err != nil {
				return err
			}
			off += dataStride
			idx++
		}
		if idx < len(intervals) && intervals[idx].ContigID < id {
			log.Panicf("interval %+v out of order at contig %d", intervals[idx], id)
		}
	}
	offsets = append(offsets, off)
	if idx < len(intervals) {
		log.Panicf("interval %+v lies beyond the table's %d contigs", intervals[idx], numContigs)
	}
	return binary.Write(annoW, binary.LittleEndian, offsets)
}

// Mask is one decoded mask track.
type Mask struct {
	NumContigs int
	Intervals  []Interval // sorted by (ContigID, Begin, End)
}

// Read decodes one mask from its header and data streams, validating the
// header shape, the offset table, and interval ordering.
func Read(annoR, dataR io.Reader) (*Mask, error) {
	var header [2]int32
	if err := binary.Read(annoR, binary.LittleEndian, &header); err != nil {
		return nil, err
	}
	if header[0] < 0 {
		return nil, fmt.Errorf("negative contig count %d in mask header", header[0])
	}
	if header[1] != maskKind {
		return nil, fmt.Errorf("track kind %d is not a mask", header[1])
	}
	numContigs := int(header[0])
	offsets := make([]int64, numContigs+1)
	if err := binary.Read(annoR, binary.LittleEndian, offsets); err != nil {
		return nil, err
	}
	if offsets[0] != 0 {
		return nil, fmt.Errorf("mask data must start at offset 0, not %d", offsets[0])
	}

	mask := &Mask{NumContigs: numContigs}
	for i := 0; i < numContigs; i++ {
		delta := offsets[i+1] - offsets[i]
		if delta < 0 {
			return nil, fmt.Errorf("mask offsets decrease: offset[%d]=%d, offset[%d]=%d",
				i, offsets[i], i+1, offsets[i+1])
		}
		if delta%dataStride != 0 {
			return nil, fmt.Errorf("contig %d spans %d data bytes, not a multiple of %d", i+1, delta, dataStride)
		}
		for j := int64(0); j < delta/dataStride; j++ {
			var pair [2]int32
			if err := binary.Read(dataR, binary.LittleEndian, &pair); err != nil {
				return nil, fmt.Errorf("reading mask data for contig %d: %v", i+1, err)
			}
			iv := Interval{ContigID: int32(i + 1), Begin: pair[0], End: pair[1]}
			if iv.Begin < 0 || iv.End < iv.Begin {
				return nil, fmt.Errorf("invalid mask interval [%d, %d) on contig %d", iv.Begin, iv.End, i+1)
			}
			if n := len(mask.Intervals); n > 0 {
				if prev := &mask.Intervals[n-1]; compare(prev, &iv) > 0 {
					return nil, fmt.Errorf("mask intervals out of order: %+v precedes %+v", *prev, iv)
				}
			}
			mask.Intervals = append(mask.Intervals, iv)
		}
	}
	// The final offset must account for the whole data stream.
	var trailing [1]byte
	if _, err := io.ReadFull(dataR, trailing[:]); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("mask data continues past the final offset %d", offsets[numContigs])
		}
		return nil, err
	}
	return mask, nil
}
